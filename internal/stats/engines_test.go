package stats

import (
	"fmt"
	"math"
	"testing"
	"time"

	"worklog-insights/internal/daterange"
	"worklog-insights/internal/worklog"

	"pgregory.net/rapid"
)

func day(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func entry(project, actor string, at time.Time, seconds int) worklog.Entry {
	return worklog.Entry{
		ProjectName:     project,
		Assignee:        actor,
		Author:          actor,
		UpdatedBy:       actor,
		LoggedAt:        at,
		DurationSeconds: seconds,
	}
}

func januaryRange(t *testing.T) daterange.Range {
	t.Helper()
	rng, err := daterange.Parse("2024-01-01", "2024-01-31", time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	return rng
}

func TestEngines_EmptyInput(t *testing.T) {
	rng := januaryRange(t)

	if got := ProjectHoursTotals(nil); len(got) != 0 {
		t.Errorf("ProjectHoursTotals(nil) = %v", got)
	}
	if got := ResourceAllocation(nil, worklog.ByUpdater); len(got) != 0 {
		t.Errorf("ResourceAllocation(nil) = %v", got)
	}
	bal := DailyHoursBalance(nil, OvertimeParams{})
	if len(bal.Overtime) != 0 || len(bal.Undertime) != 0 {
		t.Errorf("DailyHoursBalance(nil) = %+v", bal)
	}
	if got := ResourceUtilization(nil, rng, UtilizationParams{}); len(got) != 0 {
		t.Errorf("ResourceUtilization(nil) = %v", got)
	}
	if got := ProjectPerformanceMetrics(nil, rng); len(got) != 0 {
		t.Errorf("ProjectPerformanceMetrics(nil) = %v", got)
	}
	if got := ExecutiveSummaryMetrics(nil, 8); got != (ExecutiveMetrics{}) {
		t.Errorf("ExecutiveSummaryMetrics(nil) = %+v", got)
	}
	if got := ProjectRollups(nil, rng); len(got) != 0 {
		t.Errorf("ProjectRollups(nil) = %v", got)
	}
	if got := ResourceRollups(nil, rng, 8); len(got) != 0 {
		t.Errorf("ResourceRollups(nil) = %v", got)
	}
}

func TestProjectHoursTotals(t *testing.T) {
	entries := []worklog.Entry{
		entry("Beta", "Alice", day(2024, 1, 2, 9), 3600),
		entry("Alpha", "Bob", day(2024, 1, 2, 9), 7200),
		entry("", "Bob", day(2024, 1, 3, 9), 1800),
		entry("Beta", "Bob", day(2024, 1, 3, 9), 3600),
	}

	got := ProjectHoursTotals(entries)
	want := []ProjectHours{{"Alpha", 2}, {"Beta", 2}, {worklog.UnknownProject, 0.5}}
	if len(got) != len(want) {
		t.Fatalf("got %d projects, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestProjectHoursTotals_SumMatchesEntries(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 50).Draw(t, "n")
		entries := make([]worklog.Entry, n)
		for i := range entries {
			project := rapid.SampledFrom([]string{"Alpha", "Beta", "Gamma", ""}).Draw(t, "project")
			secs := rapid.IntRange(0, 12*3600).Draw(t, "seconds")
			entries[i] = entry(project, "Alice", day(2024, 1, 2, 9), secs)
		}

		var sum float64
		for _, p := range ProjectHoursTotals(entries) {
			sum += p.Hours
		}
		if math.Abs(sum-TotalHours(entries)) > 1e-9 {
			t.Fatalf("project sum %v != entry sum %v", sum, TotalHours(entries))
		}
	})
}

func TestResourceAllocation(t *testing.T) {
	entries := []worklog.Entry{
		entry("Alpha", "Alice", day(2024, 1, 2, 9), 3600),
		entry("Beta", "Alice", day(2024, 1, 2, 9), 3600),
		entry("Beta", "Bob", day(2024, 1, 2, 9), 3600),
		entry("Beta", "Alice", day(2024, 1, 3, 9), 3600),
	}

	got := ResourceAllocation(entries, worklog.ByUpdater)
	if len(got) != 2 {
		t.Fatalf("got %d projects, want 2", len(got))
	}
	if got[0].Project != "Beta" || got[0].ActorCount != 2 {
		t.Errorf("first = %+v, want Beta with 2 actors", got[0])
	}
	if fmt.Sprint(got[0].Actors) != "[Alice Bob]" {
		t.Errorf("actors = %v, want first-seen order", got[0].Actors)
	}
	if got[1].Project != "Alpha" || got[1].ActorCount != 1 {
		t.Errorf("second = %+v", got[1])
	}
}

func TestDailyHoursBalance_OvertimeScenario(t *testing.T) {
	entries := []worklog.Entry{
		entry("Alpha", "Alice", day(2024, 1, 2, 9), 9*3600),
		entry("Alpha", "Alice", day(2024, 1, 2, 18), 1800),
	}

	got := DailyHoursBalance(entries, OvertimeParams{Threshold: 8, Actor: worklog.ByUpdater, Location: time.UTC})
	if len(got.Overtime) != 1 || len(got.Undertime) != 0 {
		t.Fatalf("got %+v, want one overtime record", got)
	}
	rec := got.Overtime[0]
	if rec.Actor != "Alice" || rec.Date != "2024-01-02" || rec.ExcessHours != 1.5 || rec.TotalHours != 9.5 {
		t.Errorf("overtime = %+v", rec)
	}
}

func TestDailyHoursBalance_Boundaries(t *testing.T) {
	tests := []struct {
		name      string
		seconds   int
		overtime  int
		undertime int
	}{
		{"exactly workday", 8 * 3600, 0, 0},
		{"just under", 8*3600 - 60, 0, 1},
		{"just over", 8*3600 + 60, 1, 0},
		{"nothing logged", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := []worklog.Entry{entry("Alpha", "Alice", day(2024, 1, 2, 9), tt.seconds)}
			got := DailyHoursBalance(entries, OvertimeParams{Threshold: 8})
			if len(got.Overtime) != tt.overtime || len(got.Undertime) != tt.undertime {
				t.Errorf("got %d overtime / %d undertime, want %d / %d",
					len(got.Overtime), len(got.Undertime), tt.overtime, tt.undertime)
			}
		})
	}
}

func TestDailyHoursBalance_DayKeyUsesLocation(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	// 20:00 UTC on the 2nd is already the 3rd in IST.
	entries := []worklog.Entry{entry("Alpha", "Alice", time.Date(2024, 1, 2, 20, 0, 0, 0, time.UTC), 3600)}

	got := DailyHoursBalance(entries, OvertimeParams{Threshold: 8, Location: ist})
	if len(got.Undertime) != 1 || got.Undertime[0].Date != "2024-01-03" {
		t.Errorf("undertime = %+v, want one record on 2024-01-03", got.Undertime)
	}
}

func TestDailyHoursBalance_OneClassificationPerGroup(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 40).Draw(t, "n")
		entries := make([]worklog.Entry, n)
		for i := range entries {
			who := rapid.SampledFrom([]string{"Alice", "Bob", "Cara"}).Draw(t, "actor")
			d := rapid.IntRange(1, 5).Draw(t, "day")
			secs := rapid.IntRange(0, 6*3600).Draw(t, "seconds")
			entries[i] = entry("Alpha", who, day(2024, 1, d, 9), secs)
		}
		threshold := float64(rapid.IntRange(1, 10).Draw(t, "threshold"))

		got := DailyHoursBalance(entries, OvertimeParams{Threshold: threshold})
		seen := make(map[string]bool)
		for _, r := range got.Overtime {
			seen[r.Date+"|"+r.Actor] = true
		}
		for _, r := range got.Undertime {
			if seen[r.Date+"|"+r.Actor] {
				t.Fatalf("%s %s classified as both overtime and undertime", r.Date, r.Actor)
			}
		}
	})
}

func TestResourceUtilization(t *testing.T) {
	// 2024-01-01 (Mon) to 2024-01-05 (Fri): five working days, 40h capacity.
	rng, err := daterange.Parse("2024-01-01", "2024-01-05", time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	entries := []worklog.Entry{
		entry("Alpha", "Alice", day(2024, 1, 2, 9), 10*3600),
		entry("Beta", "Alice", day(2024, 1, 4, 9), 10*3600),
		entry("Alpha", "Bob", day(2024, 1, 3, 9), 50*3600),
	}
	entries[0].AuthorEmail = "alice@example.com"

	got := ResourceUtilization(entries, rng, UtilizationParams{WorkdayHours: 8, Actor: worklog.ByUpdater})
	if len(got) != 2 {
		t.Fatalf("got %d actors, want 2", len(got))
	}

	alice := got[0]
	if alice.Actor != "Alice" || alice.UtilizationPercent != 50 || alice.ProjectsWorked != 2 {
		t.Errorf("alice = %+v", alice)
	}
	if alice.AvgHoursPerDay != 4 || alice.LastActiveDate != "2024-01-04" || alice.Email != "alice@example.com" {
		t.Errorf("alice = %+v", alice)
	}
	if got[1].UtilizationPercent != 100 {
		t.Errorf("bob utilization = %d, want capped at 100", got[1].UtilizationPercent)
	}
}

func TestResourceUtilization_PercentBounded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		start := day(2024, 1, 1, 0).AddDate(0, 0, rapid.IntRange(0, 30).Draw(t, "start"))
		end := start.AddDate(0, 0, rapid.IntRange(0, 14).Draw(t, "span"))
		rng := daterange.Normalize(start, end, time.UTC)

		n := rapid.IntRange(0, 20).Draw(t, "n")
		entries := make([]worklog.Entry, n)
		for i := range entries {
			who := rapid.SampledFrom([]string{"Alice", "Bob"}).Draw(t, "actor")
			entries[i] = entry("Alpha", who, start, rapid.IntRange(0, 100*3600).Draw(t, "seconds"))
		}
		workday := float64(rapid.IntRange(1, 12).Draw(t, "workday"))

		for _, u := range ResourceUtilization(entries, rng, UtilizationParams{WorkdayHours: workday}) {
			if u.UtilizationPercent < 0 || u.UtilizationPercent > 100 {
				t.Fatalf("utilization %d outside [0,100]", u.UtilizationPercent)
			}
		}
	})
}

func TestClassify(t *testing.T) {
	tests := []struct {
		hours float64
		want  Classification
	}{
		{9, Overtime},
		{8, Neither},
		{0, Neither},
		{0.25, Undertime},
	}
	for _, tt := range tests {
		if got := Classify(tt.hours, 8); got != tt.want {
			t.Errorf("Classify(%v) = %v, want %v", tt.hours, got, tt.want)
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1.236, 1.24},
		{1.234, 1.23},
		{2.0 / 3.0, 0.67},
		{0, 0},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
