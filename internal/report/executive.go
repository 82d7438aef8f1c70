package report

import (
	"cmp"
	"context"
	"slices"
	"strconv"

	"worklog-insights/internal/daterange"
	"worklog-insights/internal/export"
	"worklog-insights/internal/stats"
	"worklog-insights/internal/worklog"

	"golang.org/x/sync/errgroup"
)

// NotComputed labels metrics the summary carries a slot for but has no
// formula behind.
const NotComputed = "not computed"

// ProjectRollupRow is one project line of the executive summary.
type ProjectRollupRow struct {
	Project       string  `json:"project"`
	TotalHours    float64 `json:"totalHours"`
	TeamMembers   int     `json:"teamMembers"`
	AvgDailyHours float64 `json:"avgDailyHours"`
	UniqueKey     string  `json:"uniqueKey"`
}

// ResourceRollupRow is one person line of the executive summary.
type ResourceRollupRow struct {
	Resource        string  `json:"resource"`
	TotalHours      float64 `json:"totalHours"`
	ProjectsWorked  int     `json:"projectsWorked"`
	AvgDailyHours   float64 `json:"avgDailyHours"`
	UtilizationRate string  `json:"utilizationRate"`
	UniqueKey       string  `json:"uniqueKey"`
}

// ExecutiveReport is the one-page roll-up across projects and people.
type ExecutiveReport struct {
	TotalProjects      int                 `json:"totalProjects"`
	ActiveUsers        int                 `json:"activeUsers"`
	TotalHours         float64             `json:"totalHours"`
	AvgHoursPerProject float64             `json:"avgHoursPerProject"`
	MostProductiveDay  string              `json:"mostProductiveDay"`
	OvertimeInstances  int                 `json:"overtimeInstances"`
	Efficiency         string              `json:"efficiency"`
	CompletionRate     string              `json:"completionRate"`
	Projects           []ProjectRollupRow  `json:"projectPerformance"`
	Resources          []ResourceRollupRow `json:"resourceUtilization"`
}

func (r *ExecutiveReport) Kind() Kind { return KindExecutiveSummary }

func (r *ExecutiveReport) Sheets() []export.Sheet {
	summary := export.Sheet{
		Name:   KindExecutiveSummary.Title(),
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total Projects", strconv.Itoa(r.TotalProjects)},
			{"Active Users", strconv.Itoa(r.ActiveUsers)},
			{"Total Hours Logged", hoursCell(r.TotalHours) + "h"},
			{"Average Hours per Project", hoursCell(r.AvgHoursPerProject) + "h"},
			{"Most Productive Day", r.MostProductiveDay},
			{"Team Efficiency", r.Efficiency},
			{"Overtime Instances", strconv.Itoa(r.OvertimeInstances)},
			{"Project Completion Rate", r.CompletionRate},
		},
	}

	projects := export.Sheet{Name: "Project Performance", Header: []string{"Project", "Total Hours", "Team Members", "Avg Daily Hours"}}
	for _, p := range r.Projects {
		projects.Rows = append(projects.Rows, []string{p.Project, hoursCell(p.TotalHours), strconv.Itoa(p.TeamMembers), hoursCell(p.AvgDailyHours)})
	}

	resources := export.Sheet{Name: "Resource Utilization", Header: []string{"Resource", "Total Hours", "Projects Worked", "Avg Daily Hours", "Utilization Rate"}}
	for _, u := range r.Resources {
		resources.Rows = append(resources.Rows, []string{u.Resource, hoursCell(u.TotalHours), strconv.Itoa(u.ProjectsWorked), hoursCell(u.AvgDailyHours), u.UtilizationRate})
	}

	return []export.Sheet{summary, projects, resources}
}

// executiveReport rolls up the same rows the worklog report shows. The three
// sections read the rows only, so they are computed concurrently.
func (s *Service) executiveReport(ctx context.Context, req Request, rng daterange.Range) (Result, error) {
	entries, err := s.entries(ctx, worklog.ProjectQuery(rng, req.Project, worklog.WorklogFields), rng)
	if err != nil {
		return nil, err
	}
	rows := worklog.Rows(entries, s.settings.Location, worklog.ResolveAssignee)

	var (
		metrics   stats.ExecutiveMetrics
		projects  []stats.ProjectRollup
		resources []stats.ResourceRollup
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		metrics = stats.ExecutiveSummaryMetrics(rows, s.settings.WorkdayHours)
		return gctx.Err()
	})
	g.Go(func() error {
		projects = stats.ProjectRollups(rows, rng)
		return gctx.Err()
	})
	g.Go(func() error {
		resources = stats.ResourceRollups(rows, rng, s.settings.WorkdayHours)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r := &ExecutiveReport{
		TotalProjects:      metrics.TotalProjects,
		ActiveUsers:        metrics.ActiveUsers,
		TotalHours:         stats.Round2(metrics.TotalHours),
		AvgHoursPerProject: stats.Round2(metrics.AvgHoursPerProject),
		MostProductiveDay:  metrics.MostProductiveDay,
		OvertimeInstances:  metrics.OvertimeInstances,
		Efficiency:         NotComputed,
		CompletionRate:     NotComputed,
		Projects:           make([]ProjectRollupRow, 0, len(projects)),
		Resources:          make([]ResourceRollupRow, 0, len(resources)),
	}
	for _, p := range projects {
		r.Projects = append(r.Projects, ProjectRollupRow{
			Project:       p.Project,
			TotalHours:    stats.Round2(p.TotalHours),
			TeamMembers:   p.TeamMembers,
			AvgDailyHours: stats.Round2(p.AvgDailyHours),
			UniqueKey:     newKey(),
		})
	}
	for _, u := range resources {
		r.Resources = append(r.Resources, ResourceRollupRow{
			Resource:        u.Resource,
			TotalHours:      stats.Round2(u.TotalHours),
			ProjectsWorked:  u.ProjectsWorked,
			AvgDailyHours:   stats.Round2(u.AvgDailyHours),
			UtilizationRate: percentCell(u.UtilizationPercent),
			UniqueKey:       newKey(),
		})
	}
	slices.SortStableFunc(r.Projects, func(a, b ProjectRollupRow) int {
		return cmp.Compare(b.TotalHours, a.TotalHours)
	})
	slices.SortStableFunc(r.Resources, func(a, b ResourceRollupRow) int {
		return cmp.Compare(b.TotalHours, a.TotalHours)
	})
	return r, nil
}
