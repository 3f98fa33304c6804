package whoscored

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bytedance/sonic"

	"github.com/1brianleon/matchcentre/internal/platform/logging"
	"github.com/1brianleon/matchcentre/internal/usecase"
)

const testMatchURL = "https://www.whoscored.com/matches/1729096/live/England-Premier-League-2023-2024-Arsenal-Chelsea"

// matchPage embeds the fixture payload the way the live site does, as a
// single line inside a script tag.
func matchPage(t *testing.T) string {
	t.Helper()
	var payload any
	if err := sonic.Unmarshal([]byte(normalizeFixture), &payload); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	compact, err := sonic.Marshal(payload)
	if err != nil {
		t.Fatalf("compact fixture: %v", err)
	}
	return pageWithPayload(string(compact))
}

func TestScraperFetchMatch(t *testing.T) {
	t.Parallel()

	session := &scriptSession{documents: []string{matchPage(t)}}
	scraper := NewScraper(session, nil, 0, logging.NewNop())

	bundle, err := scraper.FetchMatch(context.Background(), testMatchURL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bundle.Match.MatchID != 1729096 {
		t.Fatalf("unexpected match id %d", bundle.Match.MatchID)
	}
	if bundle.Match.Region != "England" || bundle.Match.Competition != "Premier-League" {
		t.Fatalf("url info not propagated: %+v", bundle.Match)
	}
	if len(bundle.Events) != 3 || len(bundle.Players) != 3 || len(bundle.Lineups) != 3 {
		t.Fatalf("unexpected record counts: %d events, %d players, %d lineups",
			len(bundle.Events), len(bundle.Players), len(bundle.Lineups))
	}
	if len(session.navigates) != 1 || session.navigates[0] != testMatchURL {
		t.Fatalf("expected navigation to match page, got %v", session.navigates)
	}
}

func TestScraperFetchMatchNoPayload(t *testing.T) {
	t.Parallel()

	session := &scriptSession{documents: []string{"<html><body>fixtures</body></html>"}}
	scraper := NewScraper(session, nil, 0, logging.NewNop())

	_, err := scraper.FetchMatch(context.Background(), testMatchURL)
	if !errors.Is(err, usecase.ErrNoPayload) {
		t.Fatalf("expected ErrNoPayload, got %v", err)
	}
}

func TestScraperFetchMatchBadURL(t *testing.T) {
	t.Parallel()

	scraper := NewScraper(&scriptSession{}, nil, 0, logging.NewNop())
	_, err := scraper.FetchMatch(context.Background(), "https://www.whoscored.com/matches/not-a-number/live/x")
	var parseErr *usecase.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

type staticPage struct {
	body []byte
	err  error
}

func (s staticPage) Fetch(context.Context, string) ([]byte, error) {
	return s.body, s.err
}

func TestScraperPrefersStaticFetch(t *testing.T) {
	t.Parallel()

	session := &scriptSession{}
	fetcher := staticPage{body: []byte(matchPage(t))}
	scraper := NewScraper(session, fetcher, 0, logging.NewNop())

	bundle, err := scraper.FetchMatch(context.Background(), testMatchURL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bundle.Match.MatchID != 1729096 {
		t.Fatalf("unexpected match id %d", bundle.Match.MatchID)
	}
	if len(session.navigates) != 0 {
		t.Fatalf("expected no browser navigation, got %v", session.navigates)
	}
}

func TestScraperStaticPayloadMissFallsBack(t *testing.T) {
	t.Parallel()

	session := &scriptSession{documents: []string{matchPage(t)}}
	fetcher := staticPage{body: []byte("<html><body>rendered client side</body></html>")}
	scraper := NewScraper(session, fetcher, 0, logging.NewNop())

	bundle, err := scraper.FetchMatch(context.Background(), testMatchURL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bundle.Match.MatchID != 1729096 {
		t.Fatalf("unexpected match id %d", bundle.Match.MatchID)
	}
	if len(session.navigates) != 1 {
		t.Fatalf("expected browser fallback navigation, got %v", session.navigates)
	}
}

func TestScraperFallsBackToBrowser(t *testing.T) {
	t.Parallel()

	session := &scriptSession{documents: []string{matchPage(t)}}
	fetcher := staticPage{err: fmt.Errorf("blocked")}
	scraper := NewScraper(session, fetcher, 0, logging.NewNop())

	bundle, err := scraper.FetchMatch(context.Background(), testMatchURL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bundle.Match.MatchID != 1729096 {
		t.Fatalf("unexpected match id %d", bundle.Match.MatchID)
	}
	if len(session.navigates) != 1 {
		t.Fatalf("expected browser fallback navigation, got %v", session.navigates)
	}
}
