package config

import (
	"errors"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	cerrors "github.com/takak2166/sitedata/internal/errors"
)

// EnvDevelopment enables the development chapter override.
const EnvDevelopment = "development"

// Config holds the runtime configuration of the data layer
type Config struct {
	Endpoint         string
	Timeout          time.Duration
	LogLevel         string
	Environment      string
	DevChapterTitle  string
	DevChapterBaseID string
	SanitizeHTML     bool
	MetricsTextfile  string
}

// Load reads the given .env files (default ".env"; missing files are
// skipped) and builds a Config from the process environment. Variables
// already set in the environment take precedence over .env values.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, cerrors.Wrap(cerrors.CategoryConfig, err, "failed to load "+f)
		}
	}

	cfg := Config{
		Endpoint:         os.Getenv("CMS_ENDPOINT"),
		Timeout:          30 * time.Second,
		LogLevel:         getenv("LOG_LEVEL", "info"),
		Environment:      getenv("APP_ENV", "production"),
		DevChapterTitle:  getenv("DEV_CHAPTER_TITLE", "Test"),
		DevChapterBaseID: getenv("DEV_CHAPTER_BASE_ID", "appe3hVONuwBkuQv1"),
		MetricsTextfile:  os.Getenv("METRICS_TEXTFILE"),
	}

	if v := os.Getenv("CMS_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, cerrors.Wrap(cerrors.CategoryConfig, err, "invalid CMS_TIMEOUT")
		}
		cfg.Timeout = d
	}
	if v := os.Getenv("CMS_SANITIZE_HTML"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, cerrors.Wrap(cerrors.CategoryConfig, err, "invalid CMS_SANITIZE_HTML")
		}
		cfg.SanitizeHTML = b
	}

	return cfg, cfg.Validate()
}

// Validate checks that the endpoint is an absolute http(s) URL and the
// timeout is positive.
func (c Config) Validate() error {
	if c.Endpoint == "" {
		return cerrors.Config("CMS_ENDPOINT is not set")
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return cerrors.Wrap(cerrors.CategoryConfig, err, "invalid CMS_ENDPOINT")
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return cerrors.Config("CMS_ENDPOINT must be an absolute http(s) URL").With("endpoint", c.Endpoint)
	}
	if c.Timeout <= 0 {
		return cerrors.Config("CMS_TIMEOUT must be positive").With("timeout", c.Timeout)
	}
	return nil
}

// IsDevelopment reports whether the development chapter override applies.
func (c Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
