package whoscored

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/1brianleon/matchcentre/internal/platform/logging"
	"github.com/1brianleon/matchcentre/internal/usecase"
)

const (
	popularTournamentsSelector = "#popular-tournaments-list li a"
	seasonOptionSelector       = "#seasons option"
	stageOptionSelector        = "#stages option"
	fixtureRowSelector         = ".divtable-row"
	matchLinkSelector          = "a.result-1.rc"
	previousPageSelector       = "#date-controller a:first-child"

	disabledClassFragment = "is-disabled"
)

type NavigatorConfig struct {
	BaseURL     string
	NoDataTitle string
	RenderWait  time.Duration
	PageScrollY int
}

// Navigator walks the tournament pages of a live session and collects match
// centre URLs. It owns no scraping; it only finds the pages worth scraping.
type Navigator struct {
	session Session
	cfg     NavigatorConfig
	logger  *logging.Logger
}

func NewNavigator(session Session, cfg NavigatorConfig, logger *logging.Logger) *Navigator {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.NoDataTitle == "" {
		cfg.NoDataTitle = "No data for previous week"
	}
	if cfg.PageScrollY <= 0 {
		cfg.PageScrollY = 400
	}

	return &Navigator{session: session, cfg: cfg, logger: logger}
}

// Competitions loads the landing page and returns the popular tournaments as
// display name to absolute URL.
func (n *Navigator) Competitions(ctx context.Context) (map[string]string, error) {
	if err := n.session.Navigate(ctx, n.cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("open landing page: %w", err)
	}
	if err := n.settle(ctx); err != nil {
		return nil, err
	}

	doc, err := n.document(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string)
	doc.Find(popularTournamentsSelector).Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		name := CompetitionName(s.Text(), href)
		if name == "" {
			return
		}
		out[name] = n.absoluteURL(href)
	})
	if len(out) == 0 {
		return nil, fmt.Errorf("no tournaments found on landing page")
	}

	return out, nil
}

// SeasonMatchURLs drives the competition page to the requested season and
// returns every match centre URL of that season, deduplicated in discovery
// order. A season label missing from the dropdown is a *usecase.NavigationError.
func (n *Navigator) SeasonMatchURLs(ctx context.Context, competitions map[string]string, competition, season string) ([]string, error) {
	compURL, ok := competitions[competition]
	if !ok {
		available := make([]string, 0, len(competitions))
		for name := range competitions {
			available = append(available, name)
		}
		return nil, &usecase.NavigationError{Competition: competition, Available: available}
	}

	if err := n.session.Navigate(ctx, compURL); err != nil {
		return nil, fmt.Errorf("open competition page: %w", err)
	}
	if err := n.settle(ctx); err != nil {
		return nil, err
	}

	if err := n.selectSeason(ctx, competition, season); err != nil {
		return nil, err
	}

	stages, err := n.stageLabels(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var urls []string
	collect := func() error {
		stageURLs, err := n.paginate(ctx)
		if err != nil {
			return err
		}
		for _, u := range stageURLs {
			if _, dup := seen[u]; dup {
				continue
			}
			seen[u] = struct{}{}
			urls = append(urls, u)
		}
		return nil
	}

	if len(stages) == 0 {
		if err := n.scrollIntoFixtures(ctx); err != nil {
			return nil, err
		}
		if err := collect(); err != nil {
			return nil, err
		}
		return urls, nil
	}

	for i, stage := range stages {
		if !StageAllowed(competition, stage) {
			n.logger.InfoContext(ctx, "skipping stage", "competition", competition, "stage", stage)
			continue
		}
		n.logger.InfoContext(ctx, "walking stage", "competition", competition, "stage", stage)
		if err := n.session.Click(ctx, fmt.Sprintf("%s:nth-child(%d)", stageOptionSelector, i+1)); err != nil {
			return nil, fmt.Errorf("select stage %q: %w", stage, err)
		}
		if err := n.settle(ctx); err != nil {
			return nil, err
		}
		if err := n.scrollIntoFixtures(ctx); err != nil {
			return nil, err
		}
		if err := collect(); err != nil {
			return nil, err
		}
	}

	return urls, nil
}

// ListingMatchURLs paginates an already-reachable fixtures listing, such as a
// team's fixtures page, without any season or stage selection.
func (n *Navigator) ListingMatchURLs(ctx context.Context, listingURL string) ([]string, error) {
	if err := n.session.Navigate(ctx, listingURL); err != nil {
		return nil, fmt.Errorf("open fixtures listing: %w", err)
	}
	if err := n.settle(ctx); err != nil {
		return nil, err
	}
	if err := n.scrollIntoFixtures(ctx); err != nil {
		return nil, err
	}

	urls, err := n.paginate(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(urls))
	out := urls[:0]
	for _, u := range urls {
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}

	return out, nil
}

func (n *Navigator) selectSeason(ctx context.Context, competition, season string) error {
	doc, err := n.document(ctx)
	if err != nil {
		return err
	}

	var labels []string
	index := -1
	doc.Find(seasonOptionSelector).Each(func(i int, s *goquery.Selection) {
		label := strings.TrimSpace(s.Text())
		labels = append(labels, label)
		if index < 0 && label == season {
			index = i
		}
	})
	if index < 0 {
		return &usecase.NavigationError{Competition: competition, Season: season, Available: labels}
	}

	if err := n.session.Click(ctx, fmt.Sprintf("%s:nth-child(%d)", seasonOptionSelector, index+1)); err != nil {
		return fmt.Errorf("select season %q: %w", season, err)
	}

	return n.settle(ctx)
}

func (n *Navigator) stageLabels(ctx context.Context) ([]string, error) {
	doc, err := n.document(ctx)
	if err != nil {
		return nil, err
	}

	var labels []string
	doc.Find(stageOptionSelector).Each(func(_ int, s *goquery.Selection) {
		label := strings.TrimSpace(s.Text())
		if label != "" {
			labels = append(labels, label)
		}
	})

	return labels, nil
}

// paginate collects the visible match links, then keeps stepping backwards
// through the calendar until the previous control announces the boundary or
// goes disabled on an empty page.
func (n *Navigator) paginate(ctx context.Context) ([]string, error) {
	var urls []string
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rows, err := n.visibleMatchLinks(ctx)
		if err != nil {
			return nil, err
		}

		if len(rows) == 0 {
			disabled, err := n.previousDisabled(ctx)
			if err != nil {
				return nil, err
			}
			if disabled {
				return urls, nil
			}
			if err := n.stepBack(ctx); err != nil {
				return nil, err
			}
			continue
		}

		urls = append(urls, rows...)

		if err := n.stepBack(ctx); err != nil {
			return nil, err
		}

		title, _, err := n.session.Attribute(ctx, previousPageSelector, "title")
		if err != nil {
			return nil, fmt.Errorf("read previous control title: %w", err)
		}
		if strings.TrimSpace(title) == n.cfg.NoDataTitle {
			// The boundary view still shows the earliest page; pick up
			// whatever is on it before stopping.
			rows, err := n.visibleMatchLinks(ctx)
			if err != nil {
				return nil, err
			}
			urls = append(urls, rows...)
			return urls, nil
		}
	}
}

func (n *Navigator) visibleMatchLinks(ctx context.Context) ([]string, error) {
	doc, err := n.document(ctx)
	if err != nil {
		return nil, err
	}

	var urls []string
	doc.Find(fixtureRowSelector).Each(func(_ int, row *goquery.Selection) {
		href, ok := row.Find(matchLinkSelector).First().Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		urls = append(urls, n.absoluteURL(href))
	})

	return urls, nil
}

func (n *Navigator) previousDisabled(ctx context.Context) (bool, error) {
	class, ok, err := n.session.Attribute(ctx, previousPageSelector, "class")
	if err != nil {
		return false, fmt.Errorf("read previous control class: %w", err)
	}
	if !ok {
		return true, nil
	}

	return strings.Contains(class, disabledClassFragment), nil
}

func (n *Navigator) stepBack(ctx context.Context) error {
	if err := n.session.Click(ctx, previousPageSelector); err != nil {
		return fmt.Errorf("click previous page: %w", err)
	}

	return n.settle(ctx)
}

func (n *Navigator) scrollIntoFixtures(ctx context.Context) error {
	script := fmt.Sprintf("window.scrollTo(0, %d)", n.cfg.PageScrollY)
	if err := n.session.Evaluate(ctx, script); err != nil {
		return fmt.Errorf("scroll fixtures into view: %w", err)
	}

	return nil
}

func (n *Navigator) document(ctx context.Context) (*goquery.Document, error) {
	html, err := n.session.Document(ctx)
	if err != nil {
		return nil, fmt.Errorf("read page source: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse page source: %w", err)
	}

	return doc, nil
}

func (n *Navigator) absoluteURL(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}

	return n.cfg.BaseURL + href
}

func (n *Navigator) settle(ctx context.Context) error {
	if n.cfg.RenderWait <= 0 {
		return nil
	}
	timer := time.NewTimer(n.cfg.RenderWait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
