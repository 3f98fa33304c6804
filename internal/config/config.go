package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/1brianleon/matchcentre/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the scraper binaries.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	LogLevel       logging.Level

	DBURL                   string
	DBDisablePreparedBinary bool

	BaseURL      string
	Competition  string
	Season       string
	RequestDelay time.Duration
	RenderWait   time.Duration
	MatchTimeout time.Duration
	NavTimeout   time.Duration
	NoDataTitle  string
	PageScrollY  int

	StaticFetchEnabled    bool
	StaticFetchTimeout    time.Duration
	StaticFetchMaxRetries int

	BrowserHeadless bool

	UptraceEnabled bool
	UptraceDSN     string
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	dbURL, err := resolveDBURL()
	if err != nil {
		return Config{}, err
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	requestDelay, err := time.ParseDuration(getEnv("SCRAPER_REQUEST_DELAY", "2s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SCRAPER_REQUEST_DELAY: %w", err)
	}
	if requestDelay < 0 {
		return Config{}, fmt.Errorf("SCRAPER_REQUEST_DELAY must be >= 0")
	}

	renderWait, err := time.ParseDuration(getEnv("SCRAPER_RENDER_WAIT", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SCRAPER_RENDER_WAIT: %w", err)
	}
	if renderWait < 0 {
		return Config{}, fmt.Errorf("SCRAPER_RENDER_WAIT must be >= 0")
	}

	matchTimeout, err := time.ParseDuration(getEnv("SCRAPER_MATCH_TIMEOUT", "90s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SCRAPER_MATCH_TIMEOUT: %w", err)
	}
	if matchTimeout <= 0 {
		return Config{}, fmt.Errorf("SCRAPER_MATCH_TIMEOUT must be > 0")
	}

	navTimeout, err := time.ParseDuration(getEnv("SCRAPER_NAV_TIMEOUT", "15m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SCRAPER_NAV_TIMEOUT: %w", err)
	}
	if navTimeout <= 0 {
		return Config{}, fmt.Errorf("SCRAPER_NAV_TIMEOUT must be > 0")
	}

	pageScrollY, err := getEnvAsInt("SCRAPER_PAGE_SCROLL_Y", 400)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCRAPER_PAGE_SCROLL_Y: %w", err)
	}

	staticFetchEnabled, err := strconv.ParseBool(getEnv("SCRAPER_STATIC_FETCH", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SCRAPER_STATIC_FETCH: %w", err)
	}
	staticFetchTimeout, err := time.ParseDuration(getEnv("SCRAPER_STATIC_FETCH_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SCRAPER_STATIC_FETCH_TIMEOUT: %w", err)
	}
	if staticFetchTimeout <= 0 {
		return Config{}, fmt.Errorf("SCRAPER_STATIC_FETCH_TIMEOUT must be > 0")
	}
	staticFetchMaxRetries, err := getEnvAsInt("SCRAPER_STATIC_FETCH_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCRAPER_STATIC_FETCH_MAX_RETRIES: %w", err)
	}
	if staticFetchMaxRetries < 0 {
		return Config{}, fmt.Errorf("SCRAPER_STATIC_FETCH_MAX_RETRIES must be >= 0")
	}

	browserHeadless, err := strconv.ParseBool(getEnv("BROWSER_HEADLESS", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BROWSER_HEADLESS: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	return Config{
		AppEnv:                  appEnv,
		ServiceName:             getEnv("APP_SERVICE_NAME", "matchcentre-scraper"),
		ServiceVersion:          getEnv("APP_SERVICE_VERSION", "dev"),
		LogLevel:                logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		DBURL:                   dbURL,
		DBDisablePreparedBinary: dbDisablePreparedBinary,
		BaseURL:                 strings.TrimRight(getEnv("SCRAPER_BASE_URL", "https://www.whoscored.com"), "/"),
		Competition:             strings.TrimSpace(getEnv("SCRAPER_COMPETITION", "Bundesliga")),
		Season:                  strings.TrimSpace(getEnv("SCRAPER_SEASON", "2023/2024")),
		RequestDelay:            requestDelay,
		RenderWait:              renderWait,
		MatchTimeout:            matchTimeout,
		NavTimeout:              navTimeout,
		NoDataTitle:             getEnv("SCRAPER_NO_DATA_TITLE", "No data for previous week"),
		PageScrollY:             pageScrollY,
		StaticFetchEnabled:      staticFetchEnabled,
		StaticFetchTimeout:      staticFetchTimeout,
		StaticFetchMaxRetries:   staticFetchMaxRetries,
		BrowserHeadless:         browserHeadless,
		UptraceEnabled:          uptraceEnabled,
		UptraceDSN:              uptraceDSN,
	}, nil
}

// resolveDBURL prefers a full DB_URL and otherwise assembles one from the
// discrete DB_* variables, the way managed Postgres providers hand them out.
func resolveDBURL() (string, error) {
	if dbURL := strings.TrimSpace(getEnv("DB_URL", "")); dbURL != "" {
		return dbURL, nil
	}

	host := strings.TrimSpace(getEnv("DB_HOST", ""))
	user := strings.TrimSpace(getEnv("DB_USER", ""))
	if host == "" || user == "" {
		return "", fmt.Errorf("either DB_URL or DB_HOST and DB_USER are required")
	}

	port, err := getEnvAsInt("DB_PORT", 5432)
	if err != nil {
		return "", fmt.Errorf("parse DB_PORT: %w", err)
	}
	if port <= 0 {
		return "", fmt.Errorf("DB_PORT must be > 0")
	}
	password := getEnv("DB_PASSWORD", "")
	name := strings.TrimSpace(getEnv("DB_NAME", "postgres"))

	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		url.QueryEscape(user), url.QueryEscape(password), host, port, name), nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}
