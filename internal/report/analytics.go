package report

import (
	"cmp"
	"context"
	"slices"
	"strconv"
	"strings"

	"worklog-insights/internal/daterange"
	"worklog-insights/internal/export"
	"worklog-insights/internal/stats"
	"worklog-insights/internal/worklog"
)

// ProjectHoursRow is one project in the hours breakdown.
type ProjectHoursRow struct {
	Project    string  `json:"project"`
	TotalHours float64 `json:"totalHours"`
	UniqueKey  string  `json:"uniqueKey"`
}

// AllocationRow lists who logged time on a project.
type AllocationRow struct {
	Project   string   `json:"project"`
	UserCount int      `json:"userCount"`
	Users     []string `json:"users"`
	UniqueKey string   `json:"uniqueKey"`
}

// OvertimeRow is one person-day above the workday.
type OvertimeRow struct {
	Resource      string  `json:"resource"`
	Date          string  `json:"date"`
	OvertimeHours float64 `json:"overtimeHours"`
	TotalHours    float64 `json:"totalHours"`
	UniqueKey     string  `json:"uniqueKey"`
}

// UndertimeRow is one person-day below the workday.
type UndertimeRow struct {
	Resource       string  `json:"resource"`
	Date           string  `json:"date"`
	UndertimeHours float64 `json:"undertimeHours"`
	TotalHours     float64 `json:"totalHours"`
	UniqueKey      string  `json:"uniqueKey"`
}

// AnalyticsReport is the dashboard view: where hours went, who worked where,
// and which days ran long or short.
type AnalyticsReport struct {
	ProjectHours       []ProjectHoursRow `json:"projectHours"`
	ResourceAllocation []AllocationRow   `json:"resourceAllocation"`
	Overtime           []OvertimeRow     `json:"overtimeAnalysis"`
	Undertime          []UndertimeRow    `json:"undertimeAnalysis"`
	TotalHours         float64           `json:"totalHours"`
	TotalProjects      int               `json:"totalProjects"`
	TotalUsers         int               `json:"totalUsers"`
}

func (r *AnalyticsReport) Kind() Kind { return KindAnalytics }

func (r *AnalyticsReport) Sheets() []export.Sheet {
	projects := export.Sheet{Name: "Project Hours", Header: []string{"Project", "Total Hours"}}
	for _, p := range r.ProjectHours {
		projects.Rows = append(projects.Rows, []string{p.Project, hoursCell(p.TotalHours)})
	}

	alloc := export.Sheet{Name: "Resource Allocation", Header: []string{"Project", "User Count", "Users"}}
	for _, a := range r.ResourceAllocation {
		alloc.Rows = append(alloc.Rows, []string{a.Project, strconv.Itoa(a.UserCount), strings.Join(a.Users, ", ")})
	}

	over := export.Sheet{Name: "Overtime", Header: []string{"Resource", "Date", "Overtime Hours", "Total Hours"}}
	for _, o := range r.Overtime {
		over.Rows = append(over.Rows, []string{o.Resource, o.Date, hoursCell(o.OvertimeHours), hoursCell(o.TotalHours)})
	}

	under := export.Sheet{Name: "Undertime", Header: []string{"Resource", "Date", "Undertime Hours", "Total Hours"}}
	for _, u := range r.Undertime {
		under.Rows = append(under.Rows, []string{u.Resource, u.Date, hoursCell(u.UndertimeHours), hoursCell(u.TotalHours)})
	}

	return []export.Sheet{projects, alloc, over, under}
}

// analyticsReport credits worklogs to their author. The user filter narrows
// every section; TotalUsers counts authors before that filter.
func (s *Service) analyticsReport(ctx context.Context, req Request, rng daterange.Range) (Result, error) {
	all, err := s.entries(ctx, worklog.ProjectQuery(rng, req.Project, worklog.WorklogFields), rng)
	if err != nil {
		return nil, err
	}
	entries := worklog.FilterByActor(all, req.User, worklog.ByAuthor)

	r := &AnalyticsReport{
		ProjectHours:       []ProjectHoursRow{},
		ResourceAllocation: []AllocationRow{},
		Overtime:           []OvertimeRow{},
		Undertime:          []UndertimeRow{},
		TotalHours:         stats.Round2(stats.TotalHours(entries)),
		TotalProjects:      stats.DistinctProjects(entries),
		TotalUsers:         distinctAuthors(all),
	}

	hours := stats.ProjectHoursTotals(entries)
	for _, p := range hours[:min(len(hours), projectHoursLimit)] {
		r.ProjectHours = append(r.ProjectHours, ProjectHoursRow{
			Project:    truncate(p.Project, projectHoursNameWidth),
			TotalHours: stats.Round2(p.Hours),
			UniqueKey:  newKey(),
		})
	}

	alloc := stats.ResourceAllocation(entries, worklog.ByAuthor)
	for _, a := range alloc[:min(len(alloc), allocationLimit)] {
		r.ResourceAllocation = append(r.ResourceAllocation, AllocationRow{
			Project:   truncate(a.Project, allocationNameWidth),
			UserCount: a.ActorCount,
			Users:     a.Actors,
			UniqueKey: newKey(),
		})
	}

	bal := stats.DailyHoursBalance(entries, stats.OvertimeParams{
		Threshold: s.settings.WorkdayHours,
		Actor:     worklog.ByAuthor,
		Location:  s.settings.Location,
	})
	for _, o := range bal.Overtime {
		r.Overtime = append(r.Overtime, OvertimeRow{
			Resource:      truncate(o.Actor, resourceNameWidth),
			Date:          o.Date,
			OvertimeHours: stats.Round2(o.ExcessHours),
			TotalHours:    stats.Round2(o.TotalHours),
			UniqueKey:     newKey(),
		})
	}
	for _, u := range bal.Undertime {
		r.Undertime = append(r.Undertime, UndertimeRow{
			Resource:       truncate(u.Actor, resourceNameWidth),
			Date:           u.Date,
			UndertimeHours: stats.Round2(u.DeficitHours),
			TotalHours:     stats.Round2(u.TotalHours),
			UniqueKey:      newKey(),
		})
	}
	slices.SortStableFunc(r.Overtime, func(a, b OvertimeRow) int {
		return cmp.Compare(b.OvertimeHours, a.OvertimeHours)
	})
	slices.SortStableFunc(r.Undertime, func(a, b UndertimeRow) int {
		return cmp.Compare(b.UndertimeHours, a.UndertimeHours)
	})

	return r, nil
}

// distinctAuthors counts authors of in-range worklogs only; the dashboard
// also counted authors of worklogs outside the window.
func distinctAuthors(entries []worklog.Entry) int {
	set := make(map[string]struct{})
	for _, e := range entries {
		if e.Author != "" {
			set[e.Author] = struct{}{}
		}
	}
	return len(set)
}
