package mcp

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type projectReportArgs struct {
	StartDate string `json:"start_date" jsonschema:"First day of the report window in YYYY-MM-DD form"`
	EndDate   string `json:"end_date" jsonschema:"Last day of the report window in YYYY-MM-DD form (inclusive)"`
	Project   string `json:"project,omitempty" jsonschema:"Project key to report on. Omit or pass ALL for every project"`
}

type userReportArgs struct {
	StartDate string `json:"start_date" jsonschema:"First day of the report window in YYYY-MM-DD form"`
	EndDate   string `json:"end_date" jsonschema:"Last day of the report window in YYYY-MM-DD form (inclusive)"`
	User      string `json:"user" jsonschema:"Display name of the person whose worklogs to list"`
}

type analyticsArgs struct {
	StartDate string `json:"start_date" jsonschema:"First day of the report window in YYYY-MM-DD form"`
	EndDate   string `json:"end_date" jsonschema:"Last day of the report window in YYYY-MM-DD form (inclusive)"`
	Project   string `json:"project,omitempty" jsonschema:"Project key to report on. Omit or pass ALL for every project"`
	User      string `json:"user,omitempty" jsonschema:"Display name to narrow to. Omit or pass ALL for the whole team"`
}

type utilizationArgs struct {
	StartDate string `json:"start_date" jsonschema:"First day of the report window in YYYY-MM-DD form"`
	EndDate   string `json:"end_date" jsonschema:"Last day of the report window in YYYY-MM-DD form (inclusive)"`
	User      string `json:"user,omitempty" jsonschema:"Display name to narrow to. Omit or pass ALL for everyone"`
}

type usersArgs struct {
	StartDate string `json:"start_date" jsonschema:"First day of the report window in YYYY-MM-DD form"`
	EndDate   string `json:"end_date" jsonschema:"Last day of the report window in YYYY-MM-DD form (inclusive)"`
	Project   string `json:"project,omitempty" jsonschema:"Project key to list contributors of. Omit or pass ALL for every project"`
}

type noArgs struct{}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.sdk, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List every Jira project that has time logged against it.",
	}, s.handleListProjects)

	sdkmcp.AddTool(s.sdk, &sdkmcp.Tool{
		Name:        "list_users",
		Description: "List the people who logged time in a date window, optionally within one project. Service accounts are excluded.",
	}, s.handleListUsers)

	sdkmcp.AddTool(s.sdk, &sdkmcp.Tool{
		Name:        "worklog_report",
		Description: "List individual worklogs in a date window, sorted by day. Unassigned issues are credited to whoever logged the time.",
	}, s.handleWorklogReport)

	sdkmcp.AddTool(s.sdk, &sdkmcp.Tool{
		Name:        "user_worklog_report",
		Description: "List the worklogs one person logged in a date window, with the total of their hours.",
	}, s.handleUserWorklogReport)

	sdkmcp.AddTool(s.sdk, &sdkmcp.Tool{
		Name:        "analytics",
		Description: "Summarise a date window: hours per project, people per project, and days each person logged more or less than a standard workday.",
	}, s.handleAnalytics)

	sdkmcp.AddTool(s.sdk, &sdkmcp.Tool{
		Name:        "project_performance",
		Description: "Per-project issue counts, completion rate, issue type mix, hours logged in the window and average resolution time.",
	}, s.handleProjectPerformance)

	sdkmcp.AddTool(s.sdk, &sdkmcp.Tool{
		Name:        "resource_utilization",
		Description: "Rank people by the share of available working time (working days x workday hours) they logged in a date window.",
	}, s.handleResourceUtilization)

	sdkmcp.AddTool(s.sdk, &sdkmcp.Tool{
		Name:        "executive_summary",
		Description: "Headline figures for a date window: totals, most productive day, overtime instances, plus per-project and per-person roll-ups.",
	}, s.handleExecutiveSummary)
}
