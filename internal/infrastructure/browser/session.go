package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/1brianleon/matchcentre/internal/platform/logging"
)

// Session drives one headless Chrome tab. It satisfies the page session the
// navigator and scraper expect, and must be closed when the run ends.
type Session struct {
	ctx         context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
	opTimeout   time.Duration
	logger      *logging.Logger
}

type Options struct {
	Headless  bool
	UserAgent string
	// OpTimeout bounds each individual browser action.
	OpTimeout time.Duration
	WindowW   int
	WindowH   int
}

func NewSession(ctx context.Context, opts Options, logger *logging.Logger) (*Session, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if opts.OpTimeout <= 0 {
		opts.OpTimeout = 30 * time.Second
	}
	if opts.WindowW <= 0 {
		opts.WindowW = 1366
	}
	if opts.WindowH <= 0 {
		opts.WindowH = 900
	}

	allocOpts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	allocOpts = append(allocOpts,
		chromedp.Flag("headless", opts.Headless),
		chromedp.WindowSize(opts.WindowW, opts.WindowH),
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
	)
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)

	// Starting the browser eagerly surfaces a missing Chrome binary here
	// instead of on the first navigation.
	if err := chromedp.Run(tabCtx); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, fmt.Errorf("start browser: %w", err)
	}

	return &Session{
		ctx:         tabCtx,
		cancelTab:   cancelTab,
		cancelAlloc: cancelAlloc,
		opTimeout:   opts.OpTimeout,
		logger:      logger,
	}, nil
}

func (s *Session) Close() {
	s.cancelTab()
	s.cancelAlloc()
}

func (s *Session) Navigate(ctx context.Context, url string) error {
	return s.run(ctx, chromedp.Navigate(url))
}

func (s *Session) Document(ctx context.Context) (string, error) {
	var html string
	if err := s.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", err
	}

	return html, nil
}

func (s *Session) Click(ctx context.Context, selector string) error {
	return s.run(ctx, chromedp.Click(selector, chromedp.ByQuery))
}

func (s *Session) Attribute(ctx context.Context, selector, name string) (string, bool, error) {
	var value string
	var ok bool
	if err := s.run(ctx, chromedp.AttributeValue(selector, name, &value, &ok, chromedp.ByQuery)); err != nil {
		return "", false, err
	}

	return value, ok, nil
}

func (s *Session) Evaluate(ctx context.Context, script string) error {
	return s.run(ctx, chromedp.Evaluate(script, nil))
}

// run executes actions on the tab context with a per-call timeout, while a
// watcher honors cancellation of the caller's context.
func (s *Session) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	runCtx, cancel := context.WithTimeout(s.ctx, s.opTimeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if err := chromedp.Run(runCtx, actions...); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}

	return nil
}
