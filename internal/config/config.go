package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"

	"catalogdash/internal/log"
	"catalogdash/internal/source"
)

type Config struct {
	// HTTP Server
	Port        string
	CORSOrigins []string

	// Product source. ProductsFile wins over ProductsURL when set.
	ProductsURL  string
	ProductsFile string
	FetchTimeout time.Duration

	// Table
	PageSize int

	// Filtered page cache
	CacheSize int
	CacheTTL  time.Duration

	// Refresh requests per second, per client
	RefreshRate float64

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads the environment, first merging a .env file when one is given
// and exists. Variables already set in the environment are not overridden.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnvList("CORS_ORIGINS", []string{"*"}),

		ProductsURL:  getEnv("PRODUCTS_URL", source.DefaultURL),
		ProductsFile: getEnv("PRODUCTS_FILE", ""),
		FetchTimeout: getEnvDuration("FETCH_TIMEOUT", 30*time.Second),

		PageSize: getEnvInt("PAGE_SIZE", 5),

		CacheSize: getEnvInt("CACHE_SIZE", 128),
		CacheTTL:  getEnvDuration("CACHE_TTL", 5*time.Minute),

		RefreshRate: getEnvFloat("REFRESH_RATE", 0.2),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", log.FormatJSON),
	}
	return cfg, nil
}

// Validate validates the configuration and returns every problem found.
func (c *Config) Validate() error {
	var result *multierror.Error

	if port, err := strconv.Atoi(c.Port); err != nil {
		result = multierror.Append(result, fmt.Errorf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		result = multierror.Append(result, fmt.Errorf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.ProductsFile == "" {
		if c.ProductsURL == "" {
			result = multierror.Append(result, fmt.Errorf("either PRODUCTS_URL or PRODUCTS_FILE must be set"))
		} else if u, err := url.Parse(c.ProductsURL); err != nil {
			result = multierror.Append(result, fmt.Errorf("invalid products URL '%s': %v", c.ProductsURL, err))
		} else if u.Scheme != "http" && u.Scheme != "https" {
			result = multierror.Append(result, fmt.Errorf("invalid products URL scheme '%s': must be 'http' or 'https'", u.Scheme))
		}
	}

	if c.FetchTimeout < 0 {
		result = multierror.Append(result, fmt.Errorf("invalid fetch timeout %v: must not be negative", c.FetchTimeout))
	}

	if c.PageSize < 1 || c.PageSize > 1000 {
		result = multierror.Append(result, fmt.Errorf("invalid page size %d: must be between 1 and 1000", c.PageSize))
	}

	if c.CacheSize < 0 {
		result = multierror.Append(result, fmt.Errorf("invalid cache size %d: must not be negative", c.CacheSize))
	}
	if c.CacheSize > 0 && c.CacheTTL < time.Second {
		result = multierror.Append(result, fmt.Errorf("invalid cache TTL %v: must be at least 1 second", c.CacheTTL))
	}

	if c.RefreshRate <= 0 {
		result = multierror.Append(result, fmt.Errorf("invalid refresh rate %v: must be positive", c.RefreshRate))
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		result = multierror.Append(result, err)
	}
	if c.LogFormat != log.FormatJSON && c.LogFormat != log.FormatConsole {
		result = multierror.Append(result, fmt.Errorf("invalid log format '%s': must be 'json' or 'console'", c.LogFormat))
	}

	return result.ErrorOrNil()
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
