package webfetch

import (
	"context"
	"fmt"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"

	"github.com/1brianleon/matchcentre/internal/platform/logging"
)

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

var errTransient = crerr.New("static fetch transient failure")

// Fetcher pulls raw page bytes over plain HTTP. Useful for pages that embed
// their payload in the initial response, where a full browser round trip is
// wasted time.
type Fetcher struct {
	client     *fasthttp.Client
	timeout    time.Duration
	maxRetries int
	userAgent  string
	logger     *logging.Logger
}

type Config struct {
	Timeout    time.Duration
	MaxRetries int
	UserAgent  string
}

func New(cfg Config, logger *logging.Logger) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &Fetcher{
		client: &fasthttp.Client{
			ReadTimeout:         cfg.Timeout,
			WriteTimeout:        cfg.Timeout,
			MaxIdleConnDuration: time.Minute,
		},
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		userAgent:  cfg.UserAgent,
		logger:     logger,
	}
}

// Fetch gets the page body, retrying transient failures with a linear
// backoff. Non-retryable statuses fail immediately.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		body, err := f.fetchOnce(url)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !crerr.Is(err, errTransient) {
			return nil, err
		}
		if attempt == f.maxRetries {
			break
		}

		backoff := time.Duration(attempt+1) * time.Second
		f.logger.WarnContext(ctx, "static fetch retrying",
			"url", url, "attempt", attempt+1, "error", err)
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, lastErr
}

func (f *Fetcher) fetchOnce(url string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetUserAgent(f.userAgent)
	req.Header.Set(fasthttp.HeaderAccept, "text/html")

	if err := f.client.DoTimeout(req, resp, f.timeout); err != nil {
		return nil, fmt.Errorf("%w: %v", errTransient, err)
	}

	status := resp.StatusCode()
	switch {
	case status >= 200 && status < 300:
	case isRetryableStatus(status):
		return nil, fmt.Errorf("%w: status=%d", errTransient, status)
	default:
		return nil, fmt.Errorf("fetch %s: status=%d", url, status)
	}

	body, err := resp.BodyUncompressed()
	if err != nil {
		return nil, fmt.Errorf("decompress response: %w", err)
	}
	out := make([]byte, len(body))
	copy(out, body)

	return out, nil
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusTooManyRequests || status >= 500
}
