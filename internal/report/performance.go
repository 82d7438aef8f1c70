package report

import (
	"context"
	"fmt"
	"strconv"

	"worklog-insights/internal/daterange"
	"worklog-insights/internal/export"
	"worklog-insights/internal/stats"
	"worklog-insights/internal/worklog"
)

// PerformanceRow is the delivery summary of one project.
type PerformanceRow struct {
	ProjectID              string  `json:"projectId"`
	ProjectName            string  `json:"projectName"`
	TotalIssues            int     `json:"totalIssues"`
	CompletedIssues        int     `json:"completedIssues"`
	CompletionRate         string  `json:"completionRate"`
	TotalHoursSpent        float64 `json:"totalHoursSpent"`
	AvgHoursPerIssue       float64 `json:"avgHoursPerIssue"`
	ResourceCount          int     `json:"resourceCount"`
	AvgIssueResolutionDays float64 `json:"avgIssueResolutionDays"`
	HighPriorityIssues     int     `json:"highPriorityIssues"`
	BugCount               int     `json:"bugCount"`
	StoryCount             int     `json:"storyCount"`
	TaskCount              int     `json:"taskCount"`
	LastUpdated            string  `json:"lastUpdated"`
	UniqueKey              string  `json:"uniqueKey"`
}

// PerformanceReport holds one row per project, in the order projects were
// first seen.
type PerformanceReport struct {
	Projects []PerformanceRow `json:"data"`
	Total    int              `json:"total"`
}

func (r *PerformanceReport) Kind() Kind { return KindProjectPerformance }

func (r *PerformanceReport) Sheets() []export.Sheet {
	sheet := export.Sheet{
		Name: KindProjectPerformance.Title(),
		Header: []string{
			"ProjectID", "ProjectName", "TotalIssues", "CompletedIssues", "CompletionRate",
			"TotalHoursSpent", "AvgHoursPerIssue", "ResourceCount", "AvgIssueResolutionDays",
			"HighPriorityIssues", "BugCount", "StoryCount", "TaskCount", "LastUpdated",
		},
	}
	for _, p := range r.Projects {
		sheet.Rows = append(sheet.Rows, []string{
			p.ProjectID, p.ProjectName, strconv.Itoa(p.TotalIssues), strconv.Itoa(p.CompletedIssues), p.CompletionRate,
			hoursCell(p.TotalHoursSpent), hoursCell(p.AvgHoursPerIssue), strconv.Itoa(p.ResourceCount), hoursCell(p.AvgIssueResolutionDays),
			strconv.Itoa(p.HighPriorityIssues), strconv.Itoa(p.BugCount), strconv.Itoa(p.StoryCount), strconv.Itoa(p.TaskCount), p.LastUpdated,
		})
	}
	return []export.Sheet{sheet}
}

func (s *Service) performanceReport(ctx context.Context, req Request, rng daterange.Range) (Result, error) {
	issues, err := s.source.Fetch(ctx, worklog.ProjectQuery(rng, req.Project, worklog.PerformanceFields))
	if err != nil {
		return nil, err
	}

	metrics := stats.ProjectPerformanceMetrics(issues, rng)
	r := &PerformanceReport{Projects: make([]PerformanceRow, 0, len(metrics)), Total: len(metrics)}
	for _, m := range metrics {
		r.Projects = append(r.Projects, PerformanceRow{
			ProjectID:              m.ProjectID,
			ProjectName:            m.ProjectName,
			TotalIssues:            m.TotalIssues,
			CompletedIssues:        m.CompletedIssues,
			CompletionRate:         fmt.Sprintf("%.1f%%", m.CompletionRate),
			TotalHoursSpent:        stats.Round2(m.TotalHours),
			AvgHoursPerIssue:       stats.Round2(m.AvgHoursPerIssue),
			ResourceCount:          m.ResourceCount,
			AvgIssueResolutionDays: stats.Round2(m.AvgResolutionDays),
			HighPriorityIssues:     m.HighPriorityIssues,
			BugCount:               m.BugCount,
			StoryCount:             m.StoryCount,
			TaskCount:              m.TaskCount,
			LastUpdated:            m.LastUpdated,
			UniqueKey:              newKey(),
		})
	}
	return r, nil
}
