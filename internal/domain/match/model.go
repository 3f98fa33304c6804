package match

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Record is the per-match summary row extracted from a match centre payload.
type Record struct {
	MatchID              int    `validate:"required,gt=0"`
	MatchDate            string `validate:"required,len=10"`
	HomeScore            int    `validate:"gte=0"`
	AwayScore            int    `validate:"gte=0"`
	HomeTeamName         string `validate:"required"`
	AwayTeamName         string `validate:"required"`
	MatchMinutes         int    `validate:"gte=0"`
	MatchMinutesExpanded int    `validate:"gte=0"`
	Region               string
	Competition          string
	Season               string
}

// urlInfo captures "<region>-<competition>-<season>" out of a match URL slug,
// e.g. "/England-Premier-League-2023-2024-Arsenal-Chelsea". The region segment
// never contains a dash; the season is always "YYYY-YYYY".
var urlInfo = regexp.MustCompile(`/([^/-]+)-([^/]+?)-(\d{4}-\d{4})-`)

// IDFromURL extracts the numeric match id, which sits in the third path
// segment from the end of a match centre URL.
func IDFromURL(rawURL string) (int, error) {
	parts := strings.Split(strings.TrimRight(rawURL, "/"), "/")
	if len(parts) < 3 {
		return 0, fmt.Errorf("match url too short: %q", rawURL)
	}
	id, err := strconv.Atoi(parts[len(parts)-3])
	if err != nil {
		return 0, fmt.Errorf("parse match id from %q: %w", rawURL, err)
	}

	return id, nil
}

// InfoFromURL parses region, competition and season out of the URL slug.
// Returns ok=false when the URL does not carry the expected slug, in which
// case the record keeps those fields empty.
func InfoFromURL(rawURL string) (region, competition, season string, ok bool) {
	m := urlInfo.FindStringSubmatch(rawURL)
	if m == nil {
		return "", "", "", false
	}

	return m[1], m[2], m[3], true
}

// ParseScore splits a score string like "2 : 1" into its halves.
func ParseScore(score string) (home, away int, err error) {
	parts := strings.Split(score, " : ")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("unexpected score format: %q", score)
	}
	home, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("parse home score from %q: %w", score, err)
	}
	away, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("parse away score from %q: %w", score, err)
	}

	return home, away, nil
}
