package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jobscout-ai/agent/internal/domain"
)

// Config contains runtime settings for the agent.
type Config struct {
	LogLevel string
	Host     string // default 0.0.0.0
	Port     string // default PORT env or 8080

	Backend struct {
		BaseURL  string        // jobs backend, e.g. http://localhost:8000/api
		Timeout  time.Duration // per-request bound
		PageSize int           // listings per page
	}

	DefaultCountry string        // market used before any location selection
	ScrapeTTL      time.Duration // how long the scrape indicator stays raised

	Sheets struct {
		CredentialsPath string // optional; export tool degrades without it
	}
}

// Load populates config from environment variables.
func Load() (Config, error) {
	cfg := Config{
		LogLevel:       "info",
		Host:           "0.0.0.0",
		Port:           "8080",
		DefaultCountry: domain.CountryIndia,
		ScrapeTTL:      30 * time.Second,
	}
	cfg.Backend.Timeout = 30 * time.Second
	cfg.Backend.PageSize = 40

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if v := os.Getenv("AGENT_HOST"); v != "" {
		cfg.Host = v
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}

	cfg.Backend.BaseURL = os.Getenv("JOBS_API_URL")

	if v := os.Getenv("JOBS_API_TIMEOUT_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return cfg, fmt.Errorf("invalid JOBS_API_TIMEOUT_SECONDS: %q", v)
		}
		cfg.Backend.Timeout = time.Duration(secs) * time.Second
	}

	if v := os.Getenv("PAGE_SIZE"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size <= 0 {
			return cfg, fmt.Errorf("invalid PAGE_SIZE: %q", v)
		}
		cfg.Backend.PageSize = size
	}

	if v := os.Getenv("DEFAULT_COUNTRY"); v != "" {
		if v != domain.CountryIndia && v != domain.CountryUAE {
			return cfg, fmt.Errorf("invalid DEFAULT_COUNTRY: %q", v)
		}
		cfg.DefaultCountry = v
	}

	if v := os.Getenv("SCRAPE_SIGNAL_TTL_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return cfg, fmt.Errorf("invalid SCRAPE_SIGNAL_TTL_SECONDS: %q", v)
		}
		cfg.ScrapeTTL = time.Duration(secs) * time.Second
	}

	cfg.Sheets.CredentialsPath = os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH")

	var missingVars []string

	if cfg.Backend.BaseURL == "" {
		missingVars = append(missingVars, "JOBS_API_URL")
	}

	if len(missingVars) > 0 {
		return cfg, fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", "))
	}

	return cfg, nil
}
