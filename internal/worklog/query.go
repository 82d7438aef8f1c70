package worklog

import (
	"fmt"
	"strings"

	"worklog-insights/internal/daterange"
)

// AllProjects and AllUsers are the sentinels that widen a query.
const (
	AllProjects = "ALL"
	AllUsers    = "ALL"
)

var (
	// WorklogFields are the fields needed to flatten worklogs.
	WorklogFields = []string{"worklog", "summary", "assignee", "project", "key"}
	// PerformanceFields adds the issue attributes used by project performance.
	PerformanceFields = []string{"worklog", "summary", "assignee", "project", "key", "status", "created", "updated", "priority", "issuetype"}
	// ProjectFields is enough to list projects.
	ProjectFields = []string{"project"}
)

// Query is an opaque tracker predicate plus the field and expansion selectors
// sent with every page.
type Query struct {
	JQL    string
	Fields []string
	Expand []string
}

// ProjectQuery selects issues with worklogs in the range, optionally narrowed
// to a single project.
func ProjectQuery(rng daterange.Range, project string, fields []string) Query {
	jql := worklogDateClause(rng)
	if project != "" && project != AllProjects {
		jql = fmt.Sprintf("project = %s AND %s", quote(project), jql)
	}
	return Query{JQL: jql, Fields: fields, Expand: []string{"worklog"}}
}

// UserQuery is the broader query used for user reports; the result is
// filtered down to the user client-side.
func UserQuery(rng daterange.Range, fields []string) Query {
	return Query{
		JQL:    "timespent > 0 AND " + worklogDateClause(rng),
		Fields: fields,
		Expand: []string{"worklog"},
	}
}

// UnscopedQuery selects every issue that has logged time.
func UnscopedQuery(fields []string) Query {
	q := Query{JQL: "timespent > 0", Fields: fields}
	for _, f := range fields {
		if f == "worklog" {
			q.Expand = []string{"worklog"}
			break
		}
	}
	return q
}

func worklogDateClause(rng daterange.Range) string {
	return fmt.Sprintf(`worklogDate >= "%s" AND worklogDate <= "%s"`, rng.StartDay(), rng.EndDay())
}

func quote(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}
