package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"worklog-insights/internal/daterange"
	"worklog-insights/internal/jira"
	"worklog-insights/internal/report"
	"worklog-insights/internal/worklog"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// SettingsFile is the optional YAML file in the data path that overrides the
// report settings from the environment.
const SettingsFile = "settings.yaml"

// DefaultTimezone is the zone used for day boundaries unless configured.
const DefaultTimezone = "+05:30"

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Jira      jira.Config
	Fetch     worklog.FetchOptions
	Report    report.Settings
	DataPath  string
	ExportDir string
}

// Settings mirrors settings.yaml. Unset fields keep the environment value.
type Settings struct {
	WorkdayHours *float64 `yaml:"workday_hours"`
	Timezone     string   `yaml:"timezone"`
	PageSize     *int     `yaml:"page_size"`
	PageDelayMS  *int     `yaml:"page_delay_ms"`
}

// Load loads the configuration from .env files, environment variables and
// the optional settings.yaml.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory (highest priority for MCP servers)
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	// 3. Resolve Data Paths
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	exportDir := getEnv("EXPORT_PATH", filepath.Join(dataPath, "exports"))

	tz := getEnv("REPORT_TIMEZONE", "")
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := daterange.ParseZone(tz)
	if err != nil {
		return nil, fmt.Errorf("REPORT_TIMEZONE: %w", err)
	}

	fetch := worklog.DefaultFetchOptions()
	fetch.PageSize = getEnvInt("JIRA_PAGE_SIZE", fetch.PageSize)
	fetch.PageDelay = time.Duration(getEnvInt("JIRA_PAGE_DELAY_MS", int(fetch.PageDelay/time.Millisecond))) * time.Millisecond
	fetch.MaxRetries = getEnvInt("JIRA_MAX_RETRIES", fetch.MaxRetries)

	timeoutSecs := getEnvInt("JIRA_REQUEST_TIMEOUT_SECONDS", 90)

	cfg := &AppConfig{
		Jira: jira.Config{
			BaseURL:        getEnv("JIRA_URL", ""),
			Username:       getEnv("JIRA_USERNAME", ""),
			Token:          getEnv("JIRA_TOKEN", ""),
			XsrfToken:      getEnv("JIRA_XSRF_TOKEN", ""),
			SessionID:      getEnv("JIRA_SESSION_ID", ""),
			RememberMe:     getEnv("JIRA_REMEMBERME_COOKIE", ""),
			GCILB:          getEnv("JIRA_GCILB", ""),
			GCLB:           getEnv("JIRA_GCLB", ""),
			FixturePath:    getEnv("JIRA_FIXTURE_PATH", ""),
			RequestTimeout: time.Duration(timeoutSecs) * time.Second,
		},
		Fetch: fetch,
		Report: report.Settings{
			WorkdayHours: getEnvFloat("WORKDAY_HOURS", 8),
			Location:     loc,
		},
		DataPath:  dataPath,
		ExportDir: exportDir,
	}

	if err := cfg.applySettingsFile(filepath.Join(dataPath, SettingsFile)); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applySettingsFile overlays settings.yaml when it exists.
func (c *AppConfig) applySettingsFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := c.Apply(s); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	log.Debug().Str("path", path).Msg("Applied settings file")
	return nil
}

// Apply overlays the set fields of s onto the configuration.
func (c *AppConfig) Apply(s Settings) error {
	if s.WorkdayHours != nil {
		if *s.WorkdayHours <= 0 || *s.WorkdayHours > 24 {
			return fmt.Errorf("workday_hours must be within (0, 24], got %v", *s.WorkdayHours)
		}
		c.Report.WorkdayHours = *s.WorkdayHours
	}
	if s.Timezone != "" {
		loc, err := daterange.ParseZone(s.Timezone)
		if err != nil {
			return err
		}
		c.Report.Location = loc
	}
	if s.PageSize != nil && *s.PageSize > 0 {
		c.Fetch.PageSize = *s.PageSize
	}
	if s.PageDelayMS != nil && *s.PageDelayMS >= 0 {
		c.Fetch.PageDelay = time.Duration(*s.PageDelayMS) * time.Millisecond
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring non-integer setting")
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f > 0 {
			return f
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring invalid setting")
	}
	return fallback
}
