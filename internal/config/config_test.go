package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Environment(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("DATA_PATH", dir)
	t.Setenv("LOGS_FOLDER", filepath.Join(dir, "logs"))
	t.Setenv("JIRA_URL", "https://jira.example.com")
	t.Setenv("JIRA_USERNAME", "reporter@example.com")
	t.Setenv("JIRA_TOKEN", "secret")
	t.Setenv("JIRA_PAGE_SIZE", "50")
	t.Setenv("JIRA_PAGE_DELAY_MS", "0")
	t.Setenv("WORKDAY_HOURS", "7.5")
	t.Setenv("REPORT_TIMEZONE", "UTC")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Jira.BaseURL != "https://jira.example.com" || cfg.Jira.Username != "reporter@example.com" {
		t.Errorf("unexpected jira config %+v", cfg.Jira)
	}
	if cfg.Fetch.PageSize != 50 || cfg.Fetch.PageDelay != 0 || cfg.Fetch.MaxRetries != 2 {
		t.Errorf("unexpected fetch options %+v", cfg.Fetch)
	}
	if cfg.Report.WorkdayHours != 7.5 || cfg.Report.Location != time.UTC {
		t.Errorf("unexpected report settings %+v", cfg.Report)
	}
	if cfg.ExportDir != filepath.Join(dir, "exports") {
		t.Errorf("ExportDir = %s", cfg.ExportDir)
	}
}

func TestLoad_DefaultTimezone(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("DATA_PATH", dir)
	t.Setenv("LOGS_FOLDER", filepath.Join(dir, "logs"))
	t.Setenv("REPORT_TIMEZONE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	_, offset := time.Date(2024, 1, 1, 0, 0, 0, 0, cfg.Report.Location).Zone()
	if offset != 5*3600+30*60 {
		t.Errorf("default offset = %d, want +05:30", offset)
	}
}

func TestLoad_SettingsFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("DATA_PATH", dir)
	t.Setenv("LOGS_FOLDER", filepath.Join(dir, "logs"))
	t.Setenv("WORKDAY_HOURS", "8")

	yaml := "workday_hours: 6\ntimezone: \"-03:00\"\npage_size: 25\n"
	if err := os.WriteFile(filepath.Join(dir, SettingsFile), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Report.WorkdayHours != 6 || cfg.Fetch.PageSize != 25 {
		t.Errorf("settings file not applied: %+v %+v", cfg.Report, cfg.Fetch)
	}
	_, offset := time.Date(2024, 1, 1, 0, 0, 0, 0, cfg.Report.Location).Zone()
	if offset != -3*3600 {
		t.Errorf("offset = %d, want -03:00", offset)
	}
}

func TestApply_Rejects(t *testing.T) {
	tests := []struct {
		name string
		s    Settings
	}{
		{"zero workday", Settings{WorkdayHours: ptr(0.0)}},
		{"long workday", Settings{WorkdayHours: ptr(25.0)}},
		{"bad zone", Settings{Timezone: "Mars/Olympus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &AppConfig{}
			if err := cfg.Apply(tt.s); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func ptr[T any](v T) *T { return &v }
