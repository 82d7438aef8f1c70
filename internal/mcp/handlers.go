package mcp

import (
	"context"

	"worklog-insights/internal/report"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) handleListProjects(ctx context.Context, _ *sdkmcp.CallToolRequest, _ noArgs) (*sdkmcp.CallToolResult, any, error) {
	projects, err := s.reports.Projects(ctx)
	if err != nil {
		return toolError("list_projects", err), nil, nil
	}
	var guidance []string
	if len(projects) == 0 {
		guidance = append(guidance, "No project has logged time yet.")
	}
	return toolResult(WrapResponse(projects, guidance...)), nil, nil
}

func (s *Server) handleListUsers(ctx context.Context, _ *sdkmcp.CallToolRequest, args usersArgs) (*sdkmcp.CallToolResult, any, error) {
	users, err := s.reports.Users(ctx, args.Project, args.StartDate, args.EndDate)
	if err != nil {
		return toolError("list_users", err), nil, nil
	}
	var guidance []string
	if len(users) == 0 {
		guidance = append(guidance, "Nobody logged time in this window. Widen the dates or drop the project filter.")
	}
	return toolResult(WrapResponse(users, guidance...)), nil, nil
}

func (s *Server) handleWorklogReport(ctx context.Context, _ *sdkmcp.CallToolRequest, args projectReportArgs) (*sdkmcp.CallToolResult, any, error) {
	return s.generate(ctx, "worklog_report", report.Request{
		Kind:      report.KindWorklog,
		StartDate: args.StartDate,
		EndDate:   args.EndDate,
		Project:   args.Project,
	}), nil, nil
}

func (s *Server) handleUserWorklogReport(ctx context.Context, _ *sdkmcp.CallToolRequest, args userReportArgs) (*sdkmcp.CallToolResult, any, error) {
	return s.generate(ctx, "user_worklog_report", report.Request{
		Kind:      report.KindUserWorklog,
		StartDate: args.StartDate,
		EndDate:   args.EndDate,
		User:      args.User,
	}), nil, nil
}

func (s *Server) handleAnalytics(ctx context.Context, _ *sdkmcp.CallToolRequest, args analyticsArgs) (*sdkmcp.CallToolResult, any, error) {
	return s.generate(ctx, "analytics", report.Request{
		Kind:      report.KindAnalytics,
		StartDate: args.StartDate,
		EndDate:   args.EndDate,
		Project:   args.Project,
		User:      args.User,
	}), nil, nil
}

func (s *Server) handleProjectPerformance(ctx context.Context, _ *sdkmcp.CallToolRequest, args projectReportArgs) (*sdkmcp.CallToolResult, any, error) {
	return s.generate(ctx, "project_performance", report.Request{
		Kind:      report.KindProjectPerformance,
		StartDate: args.StartDate,
		EndDate:   args.EndDate,
		Project:   args.Project,
	}), nil, nil
}

func (s *Server) handleResourceUtilization(ctx context.Context, _ *sdkmcp.CallToolRequest, args utilizationArgs) (*sdkmcp.CallToolResult, any, error) {
	return s.generate(ctx, "resource_utilization", report.Request{
		Kind:      report.KindResourceUtilization,
		StartDate: args.StartDate,
		EndDate:   args.EndDate,
		User:      args.User,
	}), nil, nil
}

func (s *Server) handleExecutiveSummary(ctx context.Context, _ *sdkmcp.CallToolRequest, args projectReportArgs) (*sdkmcp.CallToolResult, any, error) {
	return s.generate(ctx, "executive_summary", report.Request{
		Kind:      report.KindExecutiveSummary,
		StartDate: args.StartDate,
		EndDate:   args.EndDate,
		Project:   args.Project,
	}), nil, nil
}

func (s *Server) generate(ctx context.Context, tool string, req report.Request) *sdkmcp.CallToolResult {
	res, err := s.reports.Generate(ctx, req)
	if err != nil {
		return toolError(tool, err)
	}
	return toolResult(WrapResponse(res, guidanceFor(res)...))
}
