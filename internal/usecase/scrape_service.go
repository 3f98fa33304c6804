package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/1brianleon/matchcentre/internal/platform/logging"
)

const sinkWorkerCount = 4

// ScrapeService drives the per-match pipeline: fetch, normalize, validate,
// persist. Matches fail independently; one bad page never aborts the batch.
type ScrapeService struct {
	source       MatchSource
	sink         RecordSink
	validator    *RecordValidator
	logger       *logging.Logger
	requestDelay time.Duration
	matchTimeout time.Duration
}

func NewScrapeService(
	source MatchSource,
	sink RecordSink,
	validator *RecordValidator,
	logger *logging.Logger,
	requestDelay time.Duration,
	matchTimeout time.Duration,
) *ScrapeService {
	if logger == nil {
		logger = logging.Default()
	}
	if validator == nil {
		validator = NewRecordValidator()
	}

	return &ScrapeService{
		source:       source,
		sink:         sink,
		validator:    validator,
		logger:       logger,
		requestDelay: requestDelay,
		matchTimeout: matchTimeout,
	}
}

// MatchFailure ties a failed match URL to its error for the batch report.
type MatchFailure struct {
	URL string
	Err error
}

// ScrapeResult summarizes one batch run.
type ScrapeResult struct {
	Attempted int
	Scraped   int
	Skipped   int
	Failed    int
	Failures  []MatchFailure
}

// Run scrapes every URL in order, pausing between requests. It returns early
// only when the context is cancelled; per-match errors are collected in the
// result.
func (s *ScrapeService) Run(ctx context.Context, urls []string) (ScrapeResult, error) {
	ctx, span := startRunSpan(ctx, "usecase.ScrapeService.Run")
	defer span.End()

	pool, err := ants.NewPool(sinkWorkerCount)
	if err != nil {
		return ScrapeResult{}, fmt.Errorf("create sink worker pool: %w", err)
	}
	defer pool.Release()

	result := ScrapeResult{Attempted: len(urls)}
	for i, url := range urls {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		s.logger.InfoContext(ctx, "scraping match",
			"url", url, "index", i+1, "total", len(urls))

		if err := s.scrapeOne(ctx, pool, url); err != nil {
			switch {
			case errors.Is(err, ErrNoPayload):
				result.Skipped++
				s.logger.InfoContext(ctx, "no match centre payload, skipping", "url", url)
			// A dead browser session also surfaces as a canceled error, so
			// the batch aborts only when our own context is done.
			case errors.Is(err, context.Canceled) && ctx.Err() != nil:
				result.Failed++
				result.Failures = append(result.Failures, MatchFailure{URL: url, Err: err})
				return result, ctx.Err()
			default:
				result.Failed++
				result.Failures = append(result.Failures, MatchFailure{URL: url, Err: err})
				s.logger.ErrorContext(ctx, "match scrape failed", "url", url, "error", err)
			}
		} else {
			result.Scraped++
			s.logger.InfoContext(ctx, "match scraped", "url", url)
		}

		if i < len(urls)-1 {
			if err := sleepContext(ctx, s.requestDelay); err != nil {
				return result, err
			}
		}
	}

	return result, nil
}

func (s *ScrapeService) scrapeOne(ctx context.Context, pool *ants.Pool, url string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScrapeService.scrapeOne")
	defer span.End()

	if s.matchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.matchTimeout)
		defer cancel()
	}

	bundle, err := s.source.FetchMatch(ctx, url)
	if err != nil {
		return err
	}
	if err := s.validator.ValidateBundle(ctx, bundle); err != nil {
		return err
	}

	return s.persist(ctx, pool, bundle)
}

// persist flushes the four record families concurrently. Each flush retries
// once before reporting; any flush failure fails the whole match so a rerun
// repairs partial writes via the upsert keys.
func (s *ScrapeService) persist(ctx context.Context, pool *ants.Pool, bundle *MatchBundle) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScrapeService.persist")
	defer span.End()

	flushes := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"matches", func(ctx context.Context) error { return s.sink.UpsertMatch(ctx, bundle.Match) }},
		{"events", func(ctx context.Context) error { return s.sink.UpsertEvents(ctx, bundle.Events) }},
		{"players", func(ctx context.Context) error { return s.sink.UpsertPlayers(ctx, bundle.Players) }},
		{"lineups", func(ctx context.Context) error { return s.sink.UpsertLineups(ctx, bundle.Lineups) }},
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for _, flush := range flushes {
		flush := flush
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()

			err := flush.fn(ctx)
			if err != nil {
				s.logger.WarnContext(ctx, "sink flush failed, retrying",
					"table", flush.name, "match_id", bundle.Match.MatchID, "error", err)
				err = flush.fn(ctx)
			}
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("flush %s for match %d: %w", flush.name, bundle.Match.MatchID, err)
				}
				mu.Unlock()
			}
		}); err != nil {
			wg.Done()
			return fmt.Errorf("submit %s flush: %w", flush.name, err)
		}
	}
	wg.Wait()

	return firstErr
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
