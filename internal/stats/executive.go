package stats

import (
	"worklog-insights/internal/daterange"
	"worklog-insights/internal/timefmt"
	"worklog-insights/internal/worklog"
)

// ExecutiveMetrics is the headline block of the executive summary.
type ExecutiveMetrics struct {
	TotalProjects      int     `json:"totalProjects"`
	ActiveUsers        int     `json:"activeUsers"`
	TotalHours         float64 `json:"totalHours"`
	AvgHoursPerProject float64 `json:"avgHoursPerProject"`
	MostProductiveDay  string  `json:"mostProductiveDay"`
	OvertimeInstances  int     `json:"overtimeInstances"`
}

// ProjectRollup is one project's line in the executive summary.
type ProjectRollup struct {
	Project       string  `json:"project"`
	TotalHours    float64 `json:"totalHours"`
	TeamMembers   int     `json:"teamMembers"`
	AvgDailyHours float64 `json:"avgDailyHours"`
}

// ResourceRollup is one person's line in the executive summary.
type ResourceRollup struct {
	Resource           string  `json:"resource"`
	TotalHours         float64 `json:"totalHours"`
	ProjectsWorked     int     `json:"projectsWorked"`
	AvgDailyHours      float64 `json:"avgDailyHours"`
	UtilizationPercent int     `json:"utilizationPercent"`
}

// RowActor credits a report row to whoever logged it, else the assignee.
func RowActor(r worklog.Row) string {
	if r.UpdatedBy != "" {
		return r.UpdatedBy
	}
	return r.Assignee
}

// ExecutiveSummaryMetrics rolls report rows up into the headline figures.
// A row counts as an overtime instance when that single entry exceeds
// threshold. The most productive day is the first day reaching the maximum.
func ExecutiveSummaryMetrics(rows []worklog.Row, threshold float64) ExecutiveMetrics {
	if threshold <= 0 {
		threshold = DefaultWorkdayHours
	}

	var m ExecutiveMetrics
	projects := make(map[string]struct{})
	actors := make(map[string]struct{})
	var days []string
	dayHours := make(map[string]float64)

	for _, r := range rows {
		h := timefmt.ParseHours(r.Hours)
		m.TotalHours += h
		projects[r.ProjectName] = struct{}{}
		actors[RowActor(r)] = struct{}{}
		if _, ok := dayHours[r.Date]; !ok {
			days = append(days, r.Date)
		}
		dayHours[r.Date] += h
		if h > threshold {
			m.OvertimeInstances++
		}
	}

	m.TotalProjects = len(projects)
	m.ActiveUsers = len(actors)
	if m.TotalProjects > 0 {
		m.AvgHoursPerProject = m.TotalHours / float64(m.TotalProjects)
	}

	best := -1.0
	for _, d := range days {
		if dayHours[d] > best {
			best = dayHours[d]
			m.MostProductiveDay = d
		}
	}
	return m
}

// ProjectRollups totals hours and distinct contributors per project. Daily
// averages are taken over the calendar days of rng.
func ProjectRollups(rows []worklog.Row, rng daterange.Range) []ProjectRollup {
	days := float64(daterange.CalendarDays(rng))

	idx := make(map[string]int)
	var members []map[string]struct{}
	out := []ProjectRollup{}

	for _, r := range rows {
		i, ok := idx[r.ProjectName]
		if !ok {
			i = len(out)
			idx[r.ProjectName] = i
			out = append(out, ProjectRollup{Project: r.ProjectName})
			members = append(members, make(map[string]struct{}))
		}
		out[i].TotalHours += timefmt.ParseHours(r.Hours)
		members[i][RowActor(r)] = struct{}{}
	}

	for i := range out {
		out[i].TeamMembers = len(members[i])
		out[i].AvgDailyHours = out[i].TotalHours / days
	}
	return out
}

// ResourceRollups totals hours per person. Utilization is measured against
// the working days of rng times workdayHours.
func ResourceRollups(rows []worklog.Row, rng daterange.Range, workdayHours float64) []ResourceRollup {
	if workdayHours <= 0 {
		workdayHours = DefaultWorkdayHours
	}
	days := float64(daterange.CalendarDays(rng))
	capacity := float64(daterange.CountWorkingDays(rng)) * workdayHours

	idx := make(map[string]int)
	var projects []map[string]struct{}
	out := []ResourceRollup{}

	for _, r := range rows {
		who := RowActor(r)
		i, ok := idx[who]
		if !ok {
			i = len(out)
			idx[who] = i
			out = append(out, ResourceRollup{Resource: who})
			projects = append(projects, make(map[string]struct{}))
		}
		out[i].TotalHours += timefmt.ParseHours(r.Hours)
		projects[i][r.ProjectName] = struct{}{}
	}

	for i := range out {
		out[i].ProjectsWorked = len(projects[i])
		out[i].AvgDailyHours = out[i].TotalHours / days
		out[i].UtilizationPercent = Percent(out[i].TotalHours, capacity)
	}
	return out
}
