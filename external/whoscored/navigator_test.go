package whoscored

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/1brianleon/matchcentre/internal/platform/logging"
	"github.com/1brianleon/matchcentre/internal/usecase"
)

// scriptSession feeds the navigator a fixed sequence of page states.
// Documents and attribute reads are consumed in call order.
type scriptSession struct {
	documents []string
	titles    []string
	classes   []string

	navigates []string
	clicks    []string
	scripts   []string
}

func (s *scriptSession) Navigate(_ context.Context, url string) error {
	s.navigates = append(s.navigates, url)
	return nil
}

func (s *scriptSession) Document(_ context.Context) (string, error) {
	if len(s.documents) == 0 {
		return "", fmt.Errorf("no more documents scripted")
	}
	doc := s.documents[0]
	s.documents = s.documents[1:]
	return doc, nil
}

func (s *scriptSession) Click(_ context.Context, selector string) error {
	s.clicks = append(s.clicks, selector)
	return nil
}

func (s *scriptSession) Attribute(_ context.Context, _, name string) (string, bool, error) {
	switch name {
	case "title":
		if len(s.titles) == 0 {
			return "", false, fmt.Errorf("no more titles scripted")
		}
		title := s.titles[0]
		s.titles = s.titles[1:]
		return title, true, nil
	case "class":
		if len(s.classes) == 0 {
			return "", false, fmt.Errorf("no more classes scripted")
		}
		class := s.classes[0]
		s.classes = s.classes[1:]
		return class, true, nil
	default:
		return "", false, nil
	}
}

func (s *scriptSession) Evaluate(_ context.Context, script string) error {
	s.scripts = append(s.scripts, script)
	return nil
}

func testNavigator(session Session) *Navigator {
	return NewNavigator(session, NavigatorConfig{
		BaseURL:     "https://www.whoscored.com",
		NoDataTitle: "No data for previous week",
	}, logging.NewNop())
}

const seasonPage = `<html><body>
<select id="seasons">
  <option value="/r/9618">2024/2025</option>
  <option value="/r/9075">2023/2024</option>
</select>
</body></html>`

func monthPage(ids ...int) string {
	page := `<html><body><div class="divtable">`
	for _, id := range ids {
		page += fmt.Sprintf(
			`<div class="divtable-row"><a class="result-1 rc" href="/matches/%d/live/Germany-Bundesliga-2023-2024-Home-Away">2 : 1</a></div>`, id)
	}
	page += `<div class="divtable-row"><span class="result-1">vs</span></div>`
	page += `</div></body></html>`
	return page
}

func TestSeasonMatchURLsWalksToBoundary(t *testing.T) {
	t.Parallel()

	session := &scriptSession{
		documents: []string{
			seasonPage,         // season label lookup
			seasonPage,         // stage lookup, no stages
			monthPage(300),     // latest month
			monthPage(100, 200), // earlier month
			monthPage(100, 200), // boundary view, same rows again
		},
		titles: []string{"", "No data for previous week"},
	}

	nav := testNavigator(session)
	competitions := map[string]string{"Bundesliga": "https://www.whoscored.com/regions/81/tournaments/3/germany-bundesliga"}
	urls, err := nav.SeasonMatchURLs(context.Background(), competitions, "Bundesliga", "2023/2024")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"https://www.whoscored.com/matches/300/live/Germany-Bundesliga-2023-2024-Home-Away",
		"https://www.whoscored.com/matches/100/live/Germany-Bundesliga-2023-2024-Home-Away",
		"https://www.whoscored.com/matches/200/live/Germany-Bundesliga-2023-2024-Home-Away",
	}
	if len(urls) != len(want) {
		t.Fatalf("expected %d urls, got %d: %v", len(want), len(urls), urls)
	}
	for i, u := range want {
		if urls[i] != u {
			t.Fatalf("url %d: expected %q, got %q", i, u, urls[i])
		}
	}

	if len(session.clicks) == 0 || session.clicks[0] != "#seasons option:nth-child(2)" {
		t.Fatalf("expected second season option clicked first, got %v", session.clicks)
	}
}

func TestSeasonMatchURLsUnknownSeason(t *testing.T) {
	t.Parallel()

	session := &scriptSession{documents: []string{seasonPage}}
	nav := testNavigator(session)
	competitions := map[string]string{"Bundesliga": "https://www.whoscored.com/x"}

	_, err := nav.SeasonMatchURLs(context.Background(), competitions, "Bundesliga", "2019/2020")
	var navErr *usecase.NavigationError
	if !errors.As(err, &navErr) {
		t.Fatalf("expected NavigationError, got %v", err)
	}
	if navErr.Season != "2019/2020" {
		t.Fatalf("unexpected season in error: %q", navErr.Season)
	}
	if len(navErr.Available) != 2 || navErr.Available[0] != "2024/2025" {
		t.Fatalf("expected available season labels, got %v", navErr.Available)
	}
}

func TestSeasonMatchURLsEmptyDisabledIsTerminal(t *testing.T) {
	t.Parallel()

	emptyPage := `<html><body><div class="divtable"></div></body></html>`
	session := &scriptSession{
		documents: []string{seasonPage, seasonPage, emptyPage},
		classes:   []string{"previous button ui-state-default is-disabled"},
	}

	nav := testNavigator(session)
	competitions := map[string]string{"Bundesliga": "https://www.whoscored.com/x"}
	urls, err := nav.SeasonMatchURLs(context.Background(), competitions, "Bundesliga", "2023/2024")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(urls) != 0 {
		t.Fatalf("expected no urls, got %v", urls)
	}
}

func TestSeasonMatchURLsStagePolicy(t *testing.T) {
	t.Parallel()

	stagePage := `<html><body>
<select id="seasons"><option>2023/2024</option></select>
<select id="stages">
  <option>Qualification</option>
  <option>Group Stages</option>
  <option>Final Stage</option>
</select>
</body></html>`

	session := &scriptSession{
		documents: []string{
			stagePage, stagePage,
			monthPage(500), monthPage(500), // Group Stages walk
			monthPage(600), monthPage(600), // Final Stage walk
		},
		titles: []string{"No data for previous week", "No data for previous week"},
	}

	nav := testNavigator(session)
	competitions := map[string]string{"Champions League": "https://www.whoscored.com/x"}
	urls, err := nav.SeasonMatchURLs(context.Background(), competitions, "Champions League", "2023/2024")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(urls) != 2 {
		t.Fatalf("expected 2 urls, got %v", urls)
	}

	var stageClicks []string
	for _, c := range session.clicks {
		if len(c) > 7 && c[:7] == "#stages" {
			stageClicks = append(stageClicks, c)
		}
	}
	want := []string{"#stages option:nth-child(2)", "#stages option:nth-child(3)"}
	if len(stageClicks) != len(want) {
		t.Fatalf("expected stage clicks %v, got %v", want, stageClicks)
	}
	for i := range want {
		if stageClicks[i] != want[i] {
			t.Fatalf("stage click %d: expected %q, got %q", i, want[i], stageClicks[i])
		}
	}
}

func TestSeasonMatchURLsUnknownCompetition(t *testing.T) {
	t.Parallel()

	nav := testNavigator(&scriptSession{})
	_, err := nav.SeasonMatchURLs(context.Background(), map[string]string{"Bundesliga": "u"}, "Serie A", "2023/2024")
	var navErr *usecase.NavigationError
	if !errors.As(err, &navErr) {
		t.Fatalf("expected NavigationError, got %v", err)
	}
}

func TestCompetitionsAppliesNameOverride(t *testing.T) {
	t.Parallel()

	landing := `<html><body>
<ul id="popular-tournaments-list">
  <li><a href="/regions/81/tournaments/3/germany-bundesliga">Bundesliga</a></li>
  <li><a href="/regions/182/tournaments/77/Russia-premier-league">Premier League</a></li>
  <li><a href="">broken</a></li>
</ul>
</body></html>`

	session := &scriptSession{documents: []string{landing}}
	nav := testNavigator(session)

	competitions, err := nav.Competitions(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(competitions) != 2 {
		t.Fatalf("expected 2 competitions, got %v", competitions)
	}
	if _, ok := competitions["Bundesliga"]; !ok {
		t.Fatalf("expected Bundesliga entry, got %v", competitions)
	}
	url, ok := competitions["Russian Premier League"]
	if !ok {
		t.Fatalf("expected Russian Premier League override, got %v", competitions)
	}
	if url != "https://www.whoscored.com/regions/182/tournaments/77/Russia-premier-league" {
		t.Fatalf("unexpected url %q", url)
	}
	if len(session.navigates) != 1 || session.navigates[0] != "https://www.whoscored.com" {
		t.Fatalf("expected landing navigation, got %v", session.navigates)
	}
}

func TestListingMatchURLsDeduplicates(t *testing.T) {
	t.Parallel()

	session := &scriptSession{
		documents: []string{
			monthPage(7, 8),
			monthPage(7, 8), // boundary view repeats
		},
		titles: []string{"No data for previous week"},
	}

	nav := testNavigator(session)
	urls, err := nav.ListingMatchURLs(context.Background(), "https://www.whoscored.com/teams/13/fixtures")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(urls) != 2 {
		t.Fatalf("expected 2 deduplicated urls, got %v", urls)
	}
}
