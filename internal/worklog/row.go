package worklog

import (
	"slices"
	"time"

	"worklog-insights/internal/daterange"
	"worklog-insights/internal/timefmt"
)

// Row is the per-entry report line shown in worklog tables and consumed by
// the executive summary.
type Row struct {
	Date        string `json:"date"`
	ProjectName string `json:"projectName"`
	ProjectID   string `json:"projectId"`
	IssueID     string `json:"issueId"`
	Assignee    string `json:"assignee"`
	UpdatedBy   string `json:"updatedBy,omitempty"`
	Issue       string `json:"issue"`
	Comment     string `json:"comment"`
	Hours       string `json:"hours"`
}

// Rows renders entries as report lines sorted by date ascending. The assignee
// column is produced by assignee so callers choose raw or resolved names.
func Rows(entries []Entry, loc *time.Location, assignee ActorFunc) []Row {
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, Row{
			Date:        daterange.DayKey(e.LoggedAt, loc),
			ProjectName: orDefault(e.ProjectName, NoProjectName),
			ProjectID:   orDefault(e.ProjectID, NoProjectID),
			IssueID:     orDefault(e.IssueKey, NoIssueID),
			Assignee:    assignee(e),
			UpdatedBy:   e.UpdatedBy,
			Issue:       orDefault(e.IssueSummary, NoTitle),
			Comment:     e.Comment,
			Hours:       timefmt.FormatSeconds(e.DurationSeconds),
		})
	}

	slices.SortStableFunc(rows, func(a, b Row) int {
		switch {
		case a.Date < b.Date:
			return -1
		case a.Date > b.Date:
			return 1
		}
		return 0
	})
	return rows
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
