package stats

import (
	"math"
	"strings"
	"time"

	"worklog-insights/internal/daterange"
	"worklog-insights/internal/jira"
	"worklog-insights/internal/worklog"
)

// ProjectPerformance summarises the issues of one project that had time
// logged in the report window.
type ProjectPerformance struct {
	ProjectID          string  `json:"projectId"`
	ProjectName        string  `json:"projectName"`
	TotalIssues        int     `json:"totalIssues"`
	CompletedIssues    int     `json:"completedIssues"`
	CompletionRate     float64 `json:"completionRate"`
	TotalHours         float64 `json:"totalHoursSpent"`
	AvgHoursPerIssue   float64 `json:"avgHoursPerIssue"`
	ResourceCount      int     `json:"resourceCount"`
	AvgResolutionDays  float64 `json:"avgIssueResolutionDays"`
	HighPriorityIssues int     `json:"highPriorityIssues"`
	BugCount           int     `json:"bugCount"`
	StoryCount         int     `json:"storyCount"`
	TaskCount          int     `json:"taskCount"`
	LastUpdated        string  `json:"lastUpdated"`
}

// ProjectPerformanceMetrics groups issues by project in first-seen order.
// Only worklogs started inside rng count toward hours and resources.
func ProjectPerformanceMetrics(issues []jira.Issue, rng daterange.Range) []ProjectPerformance {
	loc := rng.Location

	idx := make(map[string]int)
	var out []ProjectPerformance
	var resources []map[string]struct{}
	var lastUpdated []time.Time

	for _, issue := range issues {
		id := issue.ProjectKey
		if id == "" {
			id = issue.ProjectName
		}
		i, ok := idx[id]
		if !ok {
			i = len(out)
			idx[id] = i
			name := issue.ProjectName
			if name == "" {
				name = worklog.UnknownProject
			}
			out = append(out, ProjectPerformance{ProjectID: orNone(issue.ProjectKey, worklog.NoProjectID), ProjectName: name})
			resources = append(resources, make(map[string]struct{}))
			lastUpdated = append(lastUpdated, time.Time{})
		}
		p := &out[i]

		p.TotalIssues++
		n := float64(p.TotalIssues)
		p.AvgResolutionDays = (p.AvgResolutionDays*(n-1) + resolutionDays(issue)) / n

		if containsFold(issue.Status, "done") {
			p.CompletedIssues++
		}
		if containsFold(issue.Priority, "high") {
			p.HighPriorityIssues++
		}
		switch {
		case containsFold(issue.IssueType, "bug"):
			p.BugCount++
		case containsFold(issue.IssueType, "story"):
			p.StoryCount++
		case containsFold(issue.IssueType, "task"):
			p.TaskCount++
		}

		if issue.Assignee != "" {
			resources[i][issue.Assignee] = struct{}{}
		}
		for _, wl := range issue.Worklogs {
			if wl.Started.IsZero() || !rng.Contains(wl.Started) {
				continue
			}
			p.TotalHours += float64(max(wl.TimeSpentSeconds, 0)) / 3600
			if wl.Author != "" {
				resources[i][wl.Author] = struct{}{}
			}
		}

		if issue.Updated.After(lastUpdated[i]) {
			lastUpdated[i] = issue.Updated
		}
	}

	for i := range out {
		p := &out[i]
		p.ResourceCount = len(resources[i])
		p.CompletionRate = float64(p.CompletedIssues) / float64(p.TotalIssues) * 100
		p.AvgHoursPerIssue = p.TotalHours / float64(p.TotalIssues)
		if !lastUpdated[i].IsZero() {
			p.LastUpdated = daterange.DayKey(lastUpdated[i], loc)
		}
	}
	return out
}

// resolutionDays is the whole days between creation and last update. Issues
// missing either timestamp contribute 0.
func resolutionDays(issue jira.Issue) float64 {
	if issue.Created.IsZero() || issue.Updated.IsZero() {
		return 0
	}
	return math.Floor(issue.Updated.Sub(issue.Created).Hours() / 24)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}

func orNone(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
