package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/1brianleon/matchcentre/external/whoscored"
	"github.com/1brianleon/matchcentre/internal/config"
	"github.com/1brianleon/matchcentre/internal/infrastructure/browser"
	"github.com/1brianleon/matchcentre/internal/infrastructure/repository/postgres"
	"github.com/1brianleon/matchcentre/internal/infrastructure/webfetch"
	"github.com/1brianleon/matchcentre/internal/observability"
	"github.com/1brianleon/matchcentre/internal/platform/logging"
	"github.com/1brianleon/matchcentre/internal/usecase"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Default().Error("load config", "error", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownUptrace := observability.InitUptrace(cfg, logger)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := shutdownUptrace(ctx); err != nil {
			logger.Warn("uptrace shutdown failed", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("scrape interrupted")
			os.Exit(130)
		}
		logger.Error("scrape failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *logging.Logger) error {
	db, err := postgres.Open(ctx, cfg.DBURL, cfg.DBDisablePreparedBinary)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	session, err := browser.NewSession(ctx, browser.Options{Headless: cfg.BrowserHeadless}, logger)
	if err != nil {
		return err
	}
	defer session.Close()

	navigator := whoscored.NewNavigator(session, whoscored.NavigatorConfig{
		BaseURL:     cfg.BaseURL,
		NoDataTitle: cfg.NoDataTitle,
		RenderWait:  cfg.RenderWait,
		PageScrollY: cfg.PageScrollY,
	}, logger)

	navCtx, cancelNav := context.WithTimeout(ctx, cfg.NavTimeout)
	defer cancelNav()

	competitions, err := navigator.Competitions(navCtx)
	if err != nil {
		return err
	}
	logger.Info("tournaments discovered", "count", len(competitions))

	urls, err := navigator.SeasonMatchURLs(navCtx, competitions, cfg.Competition, cfg.Season)
	if err != nil {
		return err
	}
	logger.Info("match urls collected",
		"competition", cfg.Competition, "season", cfg.Season, "count", len(urls))

	var fetcher whoscored.StaticFetcher
	if cfg.StaticFetchEnabled {
		fetcher = webfetch.New(webfetch.Config{
			Timeout:    cfg.StaticFetchTimeout,
			MaxRetries: cfg.StaticFetchMaxRetries,
		}, logger)
	}

	scraper := whoscored.NewScraper(session, fetcher, cfg.RenderWait, logger)
	service := usecase.NewScrapeService(
		scraper,
		postgres.NewSink(db),
		usecase.NewRecordValidator(),
		logger,
		cfg.RequestDelay,
		cfg.MatchTimeout,
	)

	result, err := service.Run(ctx, urls)
	logger.Info("scrape finished",
		"attempted", result.Attempted,
		"scraped", result.Scraped,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)
	for _, failure := range result.Failures {
		logger.Warn("failed match", "url", failure.URL, "error", failure.Err)
	}

	return err
}
