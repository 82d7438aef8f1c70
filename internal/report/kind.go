package report

import (
	"fmt"
	"strings"
)

// Kind names one of the report shapes the service can assemble.
type Kind string

const (
	KindWorklog             Kind = "worklog"
	KindUserWorklog         Kind = "user-worklog"
	KindAnalytics           Kind = "analytics"
	KindProjectPerformance  Kind = "project-performance"
	KindResourceUtilization Kind = "resource-utilization"
	KindExecutiveSummary    Kind = "executive-summary"
)

var kindTitles = map[Kind]string{
	KindWorklog:             "Worklog Report",
	KindUserWorklog:         "Worklog Report",
	KindAnalytics:           "Analytics",
	KindProjectPerformance:  "Project Performance",
	KindResourceUtilization: "Resource Utilization",
	KindExecutiveSummary:    "Executive Summary",
}

// Kinds returns every supported kind in display order.
func Kinds() []Kind {
	return []Kind{
		KindWorklog,
		KindUserWorklog,
		KindAnalytics,
		KindProjectPerformance,
		KindResourceUtilization,
		KindExecutiveSummary,
	}
}

// ParseKind accepts a kind name case-insensitively, with underscores or dashes.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-"))
	if _, ok := kindTitles[k]; !ok {
		return "", &InvalidFilterError{Field: "kind", Reason: fmt.Sprintf("unknown report kind %q", s)}
	}
	return k, nil
}

// Title is the human heading used for sheets and file names.
func (k Kind) Title() string {
	return kindTitles[k]
}
