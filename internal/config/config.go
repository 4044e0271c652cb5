package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/metinatakli/cinescope-autotests/internal/domain"
)

const (
	DefaultAuthBaseURL   = "https://auth.dev-cinescope.coconutqa.ru/"
	DefaultMoviesBaseURL = "https://api.dev-cinescope.coconutqa.ru/"
	DefaultUIBaseURL     = "https://dev-cinescope.coconutqa.ru/"

	TargetStub   = "stub"
	TargetRemote = "remote"
)

// KnownBrokenFilters lists GET /movies query filters the dev service accepts
// but ignores. Suites skip them instead of asserting on the result.
var KnownBrokenFilters = map[string]struct{}{
	"location":  {},
	"published": {},
}

func FilterBroken(name string) bool {
	_, ok := KnownBrokenFilters[name]
	return ok
}

type Config struct {
	Target        string
	AuthBaseURL   string
	MoviesBaseURL string
	UIBaseURL     string
	SuperAdmin    domain.Credentials

	DB      DBConfig
	Log     LogConfig
	Browser BrowserConfig

	OtelCollectorUrl string
}

type DBConfig struct {
	Host     string
	Port     int
	Name     string
	Username string
	Password string
	SSLMode  string
	MaxConns int
}

type LogConfig struct {
	Level   slog.Level
	File    string
	NoColor bool
}

type BrowserConfig struct {
	Headless bool
	SlowMo   time.Duration
	Timeout  time.Duration
	TraceDir string
}

// Load reads the process environment after merging the given dotenv files
// (".env" when none are given). Missing files are not an error.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var errs []error

	cfg := Config{
		Target:        strings.ToLower(getenv("CINESCOPE_TARGET", TargetStub)),
		AuthBaseURL:   getenv("AUTH_BASE_URL", DefaultAuthBaseURL),
		MoviesBaseURL: getenv("MOVIES_BASE_URL", DefaultMoviesBaseURL),
		UIBaseURL:     getenv("UI_BASE_URL", DefaultUIBaseURL),
		SuperAdmin: domain.Credentials{
			Email:    os.Getenv("SUPER_ADMIN_USERNAME"),
			Password: os.Getenv("SUPER_ADMIN_PASSWORD"),
		},
		DB: DBConfig{
			Host:     os.Getenv("DB_MOVIES_HOST"),
			Port:     getInt("DB_MOVIES_PORT", 5432, &errs),
			Name:     os.Getenv("DB_MOVIES_NAME"),
			Username: os.Getenv("DB_MOVIES_USERNAME"),
			Password: os.Getenv("DB_MOVIES_PASSWORD"),
			SSLMode:  getenv("DB_MOVIES_SSLMODE", "disable"),
			MaxConns: getInt("DB_MOVIES_MAX_CONNS", 5, &errs),
		},
		Log: LogConfig{
			Level:   getLevel("LOG_LEVEL", slog.LevelInfo, &errs),
			File:    os.Getenv("LOG_FILE"),
			NoColor: getBool("NO_COLOR", false, &errs),
		},
		Browser: BrowserConfig{
			Headless: getBool("BROWSER_HEADLESS", true, &errs),
			SlowMo:   getDuration("BROWSER_SLOW_MO", 0, &errs),
			Timeout:  getDuration("BROWSER_TIMEOUT", 10*time.Second, &errs),
			TraceDir: getenv("TRACE_DIR", "traces"),
		},
		OtelCollectorUrl: os.Getenv("OTEL_COLLECTOR_URL"),
	}

	if cfg.Target != TargetStub && cfg.Target != TargetRemote {
		errs = append(errs, fmt.Errorf("CINESCOPE_TARGET must be %q or %q, got %q", TargetStub, TargetRemote, cfg.Target))
	}

	for name, raw := range map[string]string{
		"AUTH_BASE_URL":   cfg.AuthBaseURL,
		"MOVIES_BASE_URL": cfg.MoviesBaseURL,
		"UI_BASE_URL":     cfg.UIBaseURL,
	} {
		if u, err := url.Parse(raw); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s is not an absolute URL: %q", name, raw))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Remote() bool {
	return c.Target == TargetRemote
}

// RequireSuperAdmin reports whether the privileged account is configured.
func (c Config) RequireSuperAdmin() error {
	if c.SuperAdmin.Empty() {
		return fmt.Errorf("%w: set SUPER_ADMIN_USERNAME and SUPER_ADMIN_PASSWORD", domain.ErrMissingCredentials)
	}

	return nil
}

func (c DBConfig) Configured() bool {
	return c.Host != "" && c.Name != "" && c.Username != ""
}

func (c DBConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.Username, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   "/" + c.Name,
	}

	q := u.Query()
	q.Set("sslmode", c.SSLMode)
	u.RawQuery = q.Encode()

	return u.String()
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}

	return def
}

func getInt(key string, def int, errs *[]error) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}

	return v
}

func getBool(key string, def bool, errs *[]error) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}

	return v
}

func getDuration(key string, def time.Duration, errs *[]error) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}

	v, err := time.ParseDuration(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}

	return v
}

func getLevel(key string, def slog.Level, errs *[]error) slog.Level {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}

	return level
}
