package report

import (
	"context"

	"worklog-insights/internal/daterange"
	"worklog-insights/internal/export"
	"worklog-insights/internal/timefmt"
	"worklog-insights/internal/worklog"
)

// TotalRowLabel marks the footer line of the user worklog sheet.
const TotalRowLabel = "Total Actual Hours"

// WorklogRow is a worklog line with its list key.
type WorklogRow struct {
	worklog.Row
	UniqueKey string `json:"uniqueKey"`
}

// WorklogReport lists individual worklogs sorted by day.
type WorklogReport struct {
	ReportKind Kind         `json:"kind"`
	Start      string       `json:"startDate"`
	End        string       `json:"endDate"`
	Rows       []WorklogRow `json:"rows"`
	// TotalHours sums the Hours column, e.g. "12h 30m".
	TotalHours string `json:"totalHours"`
}

func (r *WorklogReport) Kind() Kind { return r.ReportKind }

func (r *WorklogReport) Sheets() []export.Sheet {
	header := []string{"Date", "ProjectName", "ProjectID", "IssueID", "Assignee", "UpdatedBy", "Issue", "Comment", "Hours"}
	user := r.ReportKind == KindUserWorklog
	if user {
		header = []string{"Date", "ProjectName", "ProjectID", "IssueID", "Assignee", "Issue", "Comment", "Hours"}
	}

	rows := make([][]string, 0, len(r.Rows)+1)
	for _, row := range r.Rows {
		if user {
			rows = append(rows, []string{row.Date, row.ProjectName, row.ProjectID, row.IssueID, row.Assignee, row.Issue, row.Comment, row.Hours})
			continue
		}
		rows = append(rows, []string{row.Date, row.ProjectName, row.ProjectID, row.IssueID, row.Assignee, row.UpdatedBy, row.Issue, row.Comment, row.Hours})
	}
	if user {
		rows = append(rows, []string{TotalRowLabel, "", "", "", "", "", "", r.TotalHours})
	}
	return []export.Sheet{{Name: r.ReportKind.Title(), Header: header, Rows: rows}}
}

func (s *Service) worklogReport(ctx context.Context, req Request, rng daterange.Range) (Result, error) {
	entries, err := s.entries(ctx, worklog.ProjectQuery(rng, req.Project, worklog.WorklogFields), rng)
	if err != nil {
		return nil, err
	}
	rows := worklog.Rows(entries, s.settings.Location, worklog.ResolveAssignee)
	return newWorklogReport(KindWorklog, rng, rows), nil
}

// userWorklogReport runs the broad query and keeps the worklogs the user
// logged. The Assignee column shows the raw issue assignee.
func (s *Service) userWorklogReport(ctx context.Context, req Request, rng daterange.Range) (Result, error) {
	entries, err := s.entries(ctx, worklog.UserQuery(rng, worklog.WorklogFields), rng)
	if err != nil {
		return nil, err
	}
	entries = worklog.FilterByActor(entries, req.User, worklog.ByUpdater)

	rows := worklog.Rows(entries, s.settings.Location, worklog.RawAssignee)
	for i := range rows {
		rows[i].UpdatedBy = ""
	}
	return newWorklogReport(KindUserWorklog, rng, rows), nil
}

func newWorklogReport(kind Kind, rng daterange.Range, rows []worklog.Row) *WorklogReport {
	r := &WorklogReport{
		ReportKind: kind,
		Start:      rng.StartDay(),
		End:        rng.EndDay(),
		Rows:       make([]WorklogRow, 0, len(rows)),
	}
	hours := make([]string, 0, len(rows))
	for _, row := range rows {
		r.Rows = append(r.Rows, WorklogRow{Row: row, UniqueKey: newKey()})
		hours = append(hours, row.Hours)
	}
	r.TotalHours = timefmt.SumDisplay(hours)
	return r
}
