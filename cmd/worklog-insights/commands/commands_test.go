package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"worklog-insights/internal/export"
	"worklog-insights/internal/report"
)

type stubResult struct {
	Total string `json:"total"`
}

func (stubResult) Kind() report.Kind { return report.KindAnalytics }

func (stubResult) Sheets() []export.Sheet {
	return []export.Sheet{
		{Name: "Summary", Header: []string{"Metric", "Value"}, Rows: [][]string{{"Total Hours", "7h 30m"}}},
		{Name: "Overtime", Header: []string{"User", "Date"}, Rows: nil},
	}
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := render(&buf, stubResult{Total: "7h 30m"}, formatJSON); err != nil {
		t.Fatalf("render() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"total": "7h 30m"`) {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestRender_Table(t *testing.T) {
	var buf bytes.Buffer
	if err := render(&buf, stubResult{}, formatTable); err != nil {
		t.Fatalf("render() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Summary", "Overtime", "Total Hours", "7h 30m"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRender_UnknownFormat(t *testing.T) {
	if err := render(&bytes.Buffer{}, stubResult{}, "xml"); err == nil {
		t.Fatal("expected an error for an unknown format")
	}
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)

	paths, err := writeCSV(dir, stubResult{}, now)
	if err != nil {
		t.Fatalf("writeCSV() error = %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("got %d files, want 2", len(paths))
	}
	if got := filepath.Base(paths[0]); !strings.HasPrefix(got, "analytics_20240305_140709") {
		t.Errorf("file name = %s", got)
	}

	data, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Total Hours,7h 30m") {
		t.Errorf("csv content = %q", data)
	}
}

func TestRequestSchema(t *testing.T) {
	schema, err := requestSchema()
	if err != nil {
		t.Fatalf("requestSchema() error = %v", err)
	}
	for _, prop := range []string{"start_date", "end_date", "project", "user", "kind"} {
		if _, ok := schema.Properties[prop]; !ok {
			t.Errorf("schema missing property %q", prop)
		}
	}
}
