// Command fixtures scrapes every match linked from a single fixtures
// listing, such as a team's fixtures page, entered on stdin.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/1brianleon/matchcentre/external/whoscored"
	"github.com/1brianleon/matchcentre/internal/config"
	"github.com/1brianleon/matchcentre/internal/infrastructure/browser"
	"github.com/1brianleon/matchcentre/internal/infrastructure/repository/postgres"
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
		_ = shutdownUptrace(ctx)
	}()

	listingURL, err := promptListingURL()
	if err != nil {
		logger.Error("read fixtures url", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, listingURL, logger); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("scrape interrupted")
			os.Exit(130)
		}
		logger.Error("scrape failed", "error", err)
		os.Exit(1)
	}
}

func promptListingURL() (string, error) {
	fmt.Fprint(os.Stderr, "fixtures url: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	url := strings.TrimSpace(line)
	if url == "" {
		return "", fmt.Errorf("fixtures url is required")
	}

	return url, nil
}

func run(ctx context.Context, cfg config.Config, listingURL string, logger *logging.Logger) error {
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

	urls, err := navigator.ListingMatchURLs(navCtx, listingURL)
	if err != nil {
		return err
	}
	logger.Info("match urls collected", "listing", listingURL, "count", len(urls))

	scraper := whoscored.NewScraper(session, nil, cfg.RenderWait, logger)
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
