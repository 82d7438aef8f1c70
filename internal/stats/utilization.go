package stats

import (
	"time"

	"worklog-insights/internal/daterange"
	"worklog-insights/internal/worklog"
)

// Utilization is one actor's share of the available working time.
type Utilization struct {
	Actor              string  `json:"employee"`
	Email              string  `json:"email,omitempty"`
	TotalHours         float64 `json:"totalHours"`
	UtilizationPercent int     `json:"utilizationPercent"`
	ProjectsWorked     int     `json:"projectsWorked"`
	AvgHoursPerDay     float64 `json:"avgHoursPerDay"`
	LastActiveDate     string  `json:"lastActiveDate,omitempty"`
}

// UtilizationParams configures ResourceUtilization.
type UtilizationParams struct {
	WorkdayHours float64
	Actor        worklog.ActorFunc
	Location     *time.Location
}

// ResourceUtilization measures each actor's hours against the working days in
// rng. Actors come out in first-seen order.
func ResourceUtilization(entries []worklog.Entry, rng daterange.Range, p UtilizationParams) []Utilization {
	if p.WorkdayHours <= 0 {
		p.WorkdayHours = DefaultWorkdayHours
	}
	if p.Actor == nil {
		p.Actor = worklog.ByUpdater
	}
	loc := p.Location
	if loc == nil {
		loc = rng.Location
	}
	workingDays := float64(daterange.CountWorkingDays(rng))

	type acc struct {
		actor      string
		email      string
		hours      float64
		projects   map[string]struct{}
		lastActive time.Time
	}
	idx := make(map[string]int)
	var accs []*acc

	for _, e := range entries {
		who := p.Actor(e)
		i, ok := idx[who]
		if !ok {
			i = len(accs)
			idx[who] = i
			accs = append(accs, &acc{actor: who, email: e.Email(), projects: make(map[string]struct{})})
		}
		a := accs[i]
		a.hours += e.Hours()
		a.projects[worklog.ProjectLabel(e)] = struct{}{}
		if e.LoggedAt.After(a.lastActive) {
			a.lastActive = e.LoggedAt
		}
	}

	out := make([]Utilization, 0, len(accs))
	for _, a := range accs {
		u := Utilization{
			Actor:              a.actor,
			Email:              a.email,
			TotalHours:         a.hours,
			UtilizationPercent: Percent(a.hours, workingDays*p.WorkdayHours),
			ProjectsWorked:     len(a.projects),
			AvgHoursPerDay:     a.hours / workingDays,
		}
		if !a.lastActive.IsZero() {
			u.LastActiveDate = daterange.DayKey(a.lastActive, loc)
		}
		out = append(out, u)
	}
	return out
}
