package whoscored

import (
	"context"
	"fmt"
	"time"

	"github.com/1brianleon/matchcentre/internal/platform/logging"
	"github.com/1brianleon/matchcentre/internal/usecase"
)

// Scraper fetches match pages and turns them into record bundles. When a
// static fetcher is configured it is tried first; the browser session is the
// fallback for pages that only render their payload client side.
type Scraper struct {
	session    Session
	fetcher    StaticFetcher
	logger     *logging.Logger
	renderWait time.Duration
}

func NewScraper(session Session, fetcher StaticFetcher, renderWait time.Duration, logger *logging.Logger) *Scraper {
	if logger == nil {
		logger = logging.Default()
	}

	return &Scraper{session: session, fetcher: fetcher, logger: logger, renderWait: renderWait}
}

var _ usecase.MatchSource = (*Scraper)(nil)

func (s *Scraper) FetchMatch(ctx context.Context, url string) (*usecase.MatchBundle, error) {
	mctx, err := MatchContextFromURL(url)
	if err != nil {
		return nil, &usecase.ParseError{URL: url, Err: err}
	}

	if s.fetcher != nil {
		mc, err := s.fetchStatic(ctx, url)
		if err == nil {
			return Normalize(mc, mctx)
		}
		if s.session == nil {
			return nil, err
		}
		// A static miss includes pages that only render their payload
		// client side, so any failure falls through to the browser.
		s.logger.WarnContext(ctx, "static fetch missed payload, falling back to browser", "url", url, "error", err)
	}
	if s.session == nil {
		return nil, fmt.Errorf("no page source available for %s", url)
	}

	html, err := s.renderedSource(ctx, url)
	if err != nil {
		return nil, err
	}
	mc, err := ParseMatchCentre(url, html)
	if err != nil {
		return nil, err
	}

	return Normalize(mc, mctx)
}

func (s *Scraper) fetchStatic(ctx context.Context, url string) (*MatchCentre, error) {
	body, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("static fetch %s: %w", url, err)
	}

	return ParseMatchCentre(url, string(body))
}

func (s *Scraper) renderedSource(ctx context.Context, url string) (string, error) {
	if err := s.session.Navigate(ctx, url); err != nil {
		return "", fmt.Errorf("navigate to %s: %w", url, err)
	}
	if s.renderWait > 0 {
		timer := time.NewTimer(s.renderWait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	html, err := s.session.Document(ctx)
	if err != nil {
		return "", fmt.Errorf("read page source for %s: %w", url, err)
	}

	return html, nil
}
