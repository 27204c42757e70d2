package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultHTTPAddr          = ":8080"
	defaultCookieSecure      = "false"
	defaultRefreshCookiePath = "/api/v1/auth"
)

// Config is built once at startup and handed to constructors; nothing
// reads the environment after Load returns.
type Config struct {
	AppEnv      string
	HTTPAddr    string
	DatabaseURL string

	// Two independent secrets and two independent default lifetimes.
	// All four are required; there are no fallback values on purpose.
	AccessSecret  string
	AccessTTL     time.Duration
	RefreshSecret string
	RefreshTTL    time.Duration

	CookieSecure bool
	// RefreshCookiePath scopes the Refresh cookie to the auth endpoints
	// so the long-lived credential is not sent with every API request.
	RefreshCookiePath string
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))

	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var err error
	if cfg.AccessSecret, err = requireEnv("AUTH_ACCESS_SECRET"); err != nil {
		return nil, err
	}
	if cfg.RefreshSecret, err = requireEnv("AUTH_REFRESH_SECRET"); err != nil {
		return nil, err
	}
	if cfg.AccessTTL, err = requireDurationEnv("AUTH_ACCESS_TTL"); err != nil {
		return nil, err
	}
	if cfg.RefreshTTL, err = requireDurationEnv("AUTH_REFRESH_TTL"); err != nil {
		return nil, err
	}

	cfg.CookieSecure = parseBoolEnv("COOKIE_SECURE", defaultCookieSecure)
	cfg.RefreshCookiePath = strings.TrimSpace(getEnv("REFRESH_COOKIE_PATH", defaultRefreshCookiePath))

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.AccessTTL <= 0 {
		return fmt.Errorf("AUTH_ACCESS_TTL must be > 0")
	}
	if cfg.RefreshTTL <= 0 {
		return fmt.Errorf("AUTH_REFRESH_TTL must be > 0")
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return fmt.Errorf("AUTH_ACCESS_SECRET and AUTH_REFRESH_SECRET must differ")
	}
	if cfg.RefreshCookiePath == "" {
		return fmt.Errorf("REFRESH_COOKIE_PATH must not be empty")
	}
	if isProdLike(cfg.AppEnv) && !cfg.CookieSecure {
		return fmt.Errorf("in prod/release COOKIE_SECURE must be true")
	}
	return nil
}

func isProdLike(env string) bool {
	return env == "prod" || env == "production" || env == "release"
}

func requireEnv(name string) (string, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return "", fmt.Errorf("%s is required", name)
	}
	return v, nil
}

func requireDurationEnv(name string) (time.Duration, error) {
	v, err := requireEnv(name)
	if err != nil {
		return 0, err
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, v, err)
	}
	return d, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
