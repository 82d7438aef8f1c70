package report

import (
	"fmt"
	"strings"
	"time"

	"worklog-insights/internal/daterange"
	"worklog-insights/internal/worklog"
)

// Request is an inbound report request.
type Request struct {
	StartDate string `json:"start_date" jsonschema:"First day of the report window, YYYY-MM-DD"`
	EndDate   string `json:"end_date" jsonschema:"Last day of the report window (inclusive), YYYY-MM-DD"`
	Project   string `json:"project,omitempty" jsonschema:"Project key, or ALL for every project"`
	User      string `json:"user,omitempty" jsonschema:"Display name of the person, or ALL"`
	Kind      Kind   `json:"kind" jsonschema:"Report kind: worklog, user-worklog, analytics, project-performance, resource-utilization or executive-summary"`
}

// InvalidFilterError rejects a request before anything is fetched.
type InvalidFilterError struct {
	Field  string
	Reason string
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// validate checks the request and resolves its window in loc. Defaults are
// applied to the returned copy.
func (r Request) validate(loc *time.Location) (Request, daterange.Range, error) {
	if _, ok := kindTitles[r.Kind]; !ok {
		return r, daterange.Range{}, &InvalidFilterError{Field: "kind", Reason: fmt.Sprintf("unknown report kind %q", r.Kind)}
	}
	if strings.TrimSpace(r.StartDate) == "" {
		return r, daterange.Range{}, &InvalidFilterError{Field: "start_date", Reason: "is required"}
	}
	if strings.TrimSpace(r.EndDate) == "" {
		return r, daterange.Range{}, &InvalidFilterError{Field: "end_date", Reason: "is required"}
	}

	for _, d := range [][2]string{{"start_date", r.StartDate}, {"end_date", r.EndDate}} {
		if _, err := time.Parse(daterange.DayLayout, strings.TrimSpace(d[1])); err != nil {
			return r, daterange.Range{}, &InvalidFilterError{Field: d[0], Reason: fmt.Sprintf("%q is not a YYYY-MM-DD day", d[1])}
		}
	}
	rng, err := daterange.Parse(r.StartDate, r.EndDate, loc)
	if err != nil {
		return r, daterange.Range{}, &InvalidFilterError{Field: "date_range", Reason: err.Error()}
	}

	r.Project = strings.TrimSpace(r.Project)
	if r.Project == "" {
		r.Project = worklog.AllProjects
	}
	r.User = strings.TrimSpace(r.User)
	if r.Kind == KindUserWorklog && r.User == "" {
		return r, daterange.Range{}, &InvalidFilterError{Field: "user", Reason: "is required for user-worklog reports"}
	}
	if r.User == "" {
		r.User = worklog.AllUsers
	}
	return r, rng, nil
}
