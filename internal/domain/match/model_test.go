package match

import "testing"

func TestIDFromURL(t *testing.T) {
	t.Parallel()

	id, err := IDFromURL("https://www.whoscored.com/matches/1729096/live/England-Premier-League-2023-2024-Arsenal-Chelsea")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 1729096 {
		t.Fatalf("expected match id 1729096, got %d", id)
	}
}

func TestIDFromURLRejectsShortOrTextual(t *testing.T) {
	t.Parallel()

	if _, err := IDFromURL("abc"); err == nil {
		t.Fatal("expected error for short url")
	}
	if _, err := IDFromURL("https://example.com/matches/abc/live/Some-Match"); err == nil {
		t.Fatal("expected error for non-numeric id segment")
	}
}

func TestInfoFromURL(t *testing.T) {
	t.Parallel()

	region, competition, season, ok := InfoFromURL("https://www.whoscored.com/matches/1729096/live/England-Premier-League-2023-2024-Arsenal-Chelsea")
	if !ok {
		t.Fatal("expected url info to parse")
	}
	if region != "England" {
		t.Fatalf("expected region England, got %q", region)
	}
	if competition != "Premier-League" {
		t.Fatalf("expected competition Premier-League, got %q", competition)
	}
	if season != "2023-2024" {
		t.Fatalf("expected season 2023-2024, got %q", season)
	}
}

func TestInfoFromURLMissingSlug(t *testing.T) {
	t.Parallel()

	if _, _, _, ok := InfoFromURL("https://www.whoscored.com/matches/1729096/live"); ok {
		t.Fatal("expected no url info for slugless url")
	}
}

func TestParseScore(t *testing.T) {
	t.Parallel()

	home, away, err := ParseScore("2 : 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if home != 2 || away != 1 {
		t.Fatalf("expected 2-1, got %d-%d", home, away)
	}
}

func TestParseScoreMalformed(t *testing.T) {
	t.Parallel()

	for _, score := range []string{"", "2-1", "2 : ", "a : b"} {
		if _, _, err := ParseScore(score); err == nil {
			t.Fatalf("expected error for score %q", score)
		}
	}
}
