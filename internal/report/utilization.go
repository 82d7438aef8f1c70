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
)

// UtilizationRow is one person's logged share of working time.
type UtilizationRow struct {
	Employee           string  `json:"employee"`
	Email              string  `json:"email,omitempty"`
	TotalHours         float64 `json:"totalHours"`
	Utilization        string  `json:"utilization"`
	UtilizationPercent int     `json:"utilizationPercent"`
	ProjectsWorked     int     `json:"projectsWorked"`
	AvgHoursPerDay     float64 `json:"avgHoursPerDay"`
	LastActiveDate     string  `json:"lastActiveDate,omitempty"`
	UniqueKey          string  `json:"uniqueKey"`
}

// UtilizationReport ranks people by the share of working time they logged.
type UtilizationReport struct {
	WorkingDays int              `json:"workingDays"`
	Resources   []UtilizationRow `json:"resources"`
}

func (r *UtilizationReport) Kind() Kind { return KindResourceUtilization }

func (r *UtilizationReport) Sheets() []export.Sheet {
	sheet := export.Sheet{
		Name:   KindResourceUtilization.Title(),
		Header: []string{"Employee", "Email", "TotalHours", "Utilization", "ProjectsWorked", "AvgHoursPerDay", "LastActiveDate"},
	}
	for _, u := range r.Resources {
		sheet.Rows = append(sheet.Rows, []string{
			u.Employee, u.Email, hoursCell(u.TotalHours), u.Utilization,
			strconv.Itoa(u.ProjectsWorked), hoursCell(u.AvgHoursPerDay), u.LastActiveDate,
		})
	}
	return []export.Sheet{sheet}
}

func (s *Service) utilizationReport(ctx context.Context, req Request, rng daterange.Range) (Result, error) {
	entries, err := s.entries(ctx, worklog.UserQuery(rng, worklog.WorklogFields), rng)
	if err != nil {
		return nil, err
	}
	entries = worklog.FilterByActor(entries, req.User, worklog.ByUpdater)

	util := stats.ResourceUtilization(entries, rng, stats.UtilizationParams{
		WorkdayHours: s.settings.WorkdayHours,
		Actor:        worklog.ByUpdater,
		Location:     s.settings.Location,
	})

	r := &UtilizationReport{
		WorkingDays: daterange.CountWorkingDays(rng),
		Resources:   make([]UtilizationRow, 0, len(util)),
	}
	for _, u := range util {
		r.Resources = append(r.Resources, UtilizationRow{
			Employee:           u.Actor,
			Email:              u.Email,
			TotalHours:         stats.Round2(u.TotalHours),
			Utilization:        percentCell(u.UtilizationPercent),
			UtilizationPercent: u.UtilizationPercent,
			ProjectsWorked:     u.ProjectsWorked,
			AvgHoursPerDay:     stats.Round2(u.AvgHoursPerDay),
			LastActiveDate:     u.LastActiveDate,
			UniqueKey:          newKey(),
		})
	}
	slices.SortStableFunc(r.Resources, func(a, b UtilizationRow) int {
		return cmp.Compare(b.UtilizationPercent, a.UtilizationPercent)
	})
	return r, nil
}
