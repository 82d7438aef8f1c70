// Package report turns a report request into assembled, display-ready
// records. Each request runs fetch, flatten, aggregate and assemble in turn
// and shares nothing with other requests.
package report

import (
	"context"
	"time"

	"worklog-insights/internal/daterange"
	"worklog-insights/internal/export"
	"worklog-insights/internal/jira"
	"worklog-insights/internal/stats"
	"worklog-insights/internal/worklog"

	"github.com/rs/zerolog/log"
)

// IssueSource returns every issue matching a query.
type IssueSource interface {
	Fetch(ctx context.Context, q worklog.Query) ([]jira.Issue, error)
}

// Settings are the report-wide knobs.
type Settings struct {
	// WorkdayHours is the standard workday used for overtime and utilization.
	WorkdayHours float64
	// Location decides day boundaries and day keys.
	Location *time.Location
}

// DefaultSettings uses an 8 hour workday and UTC+05:30 day keys.
func DefaultSettings() Settings {
	return Settings{
		WorkdayHours: stats.DefaultWorkdayHours,
		Location:     time.FixedZone("UTC+05:30", 5*3600+30*60),
	}
}

// Result is an assembled report.
type Result interface {
	Kind() Kind
	Sheets() []export.Sheet
}

// Service assembles reports from an IssueSource.
type Service struct {
	source   IssueSource
	settings Settings
}

// NewService builds a Service, filling unset settings with defaults.
func NewService(source IssueSource, settings Settings) *Service {
	if settings.WorkdayHours <= 0 {
		settings.WorkdayHours = stats.DefaultWorkdayHours
	}
	if settings.Location == nil {
		settings.Location = DefaultSettings().Location
	}
	return &Service{source: source, settings: settings}
}

// Settings returns the effective settings.
func (s *Service) Settings() Settings {
	return s.settings
}

type generator func(s *Service, ctx context.Context, req Request, rng daterange.Range) (Result, error)

var generators = map[Kind]generator{
	KindWorklog:             (*Service).worklogReport,
	KindUserWorklog:         (*Service).userWorklogReport,
	KindAnalytics:           (*Service).analyticsReport,
	KindProjectPerformance:  (*Service).performanceReport,
	KindResourceUtilization: (*Service).utilizationReport,
	KindExecutiveSummary:    (*Service).executiveReport,
}

// Generate validates req and builds the report it names. Invalid requests
// fail with *InvalidFilterError before anything is fetched; tracker failures
// surface as *jira.UpstreamFetchError and no partial report is returned.
func (s *Service) Generate(ctx context.Context, req Request) (Result, error) {
	req, rng, err := req.validate(s.settings.Location)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	log.Info().
		Str("kind", string(req.Kind)).
		Str("start", rng.StartDay()).
		Str("end", rng.EndDay()).
		Str("project", req.Project).
		Str("user", req.User).
		Msg("Generating report")

	res, err := generators[req.Kind](s, ctx, req, rng)
	if err != nil {
		log.Error().Err(err).Str("kind", string(req.Kind)).Msg("Report failed")
		return nil, err
	}

	log.Info().Str("kind", string(req.Kind)).Dur("took", time.Since(start)).Msg("Report ready")
	return res, nil
}

// entries fetches and flattens the worklogs for q.
func (s *Service) entries(ctx context.Context, q worklog.Query, rng daterange.Range) ([]worklog.Entry, error) {
	issues, err := s.source.Fetch(ctx, q)
	if err != nil {
		return nil, err
	}
	return worklog.Flatten(issues, rng), nil
}
