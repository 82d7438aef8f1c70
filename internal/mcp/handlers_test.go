package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"

	"worklog-insights/internal/jira"
	"worklog-insights/internal/report"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type fakeReporter struct {
	last report.Request
	err  error
}

func (f *fakeReporter) Generate(_ context.Context, req report.Request) (report.Result, error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &report.WorklogReport{ReportKind: req.Kind, TotalHours: "0h 0m"}, nil
}

func (f *fakeReporter) Projects(context.Context) ([]report.Project, error) {
	return []report.Project{{ID: "OPS", Name: "Operations"}}, f.err
}

func (f *fakeReporter) Users(_ context.Context, project, start, end string) ([]report.User, error) {
	f.last = report.Request{Project: project, StartDate: start, EndDate: end}
	return []report.User{{Name: "Alice"}}, f.err
}

func connect(t *testing.T, rep Reporter) *sdkmcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	serverT, clientT := sdkmcp.NewInMemoryTransports()
	srv := NewServer(rep, "test")
	ss, err := srv.Connect(ctx, serverT)
	if err != nil {
		t.Fatalf("server connect: %v", err)
	}
	t.Cleanup(func() { _ = ss.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "v0"}, nil)
	cs, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func callText(t *testing.T, cs *sdkmcp.ClientSession, name string, args map[string]any) (string, bool) {
	t.Helper()
	res, err := cs.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		t.Fatalf("CallTool(%s) error = %v", name, err)
	}
	if len(res.Content) == 0 {
		t.Fatalf("CallTool(%s) returned no content", name)
	}
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	if !ok {
		t.Fatalf("CallTool(%s) content is %T", name, res.Content[0])
	}
	return text.Text, res.IsError
}

func TestListTools(t *testing.T) {
	cs := connect(t, &fakeReporter{})

	res, err := cs.ListTools(context.Background(), &sdkmcp.ListToolsParams{})
	if err != nil {
		t.Fatalf("ListTools() error = %v", err)
	}

	want := map[string]bool{
		"list_projects": false, "list_users": false, "worklog_report": false, "user_worklog_report": false,
		"analytics": false, "project_performance": false, "resource_utilization": false, "executive_summary": false,
	}
	for _, tool := range res.Tools {
		want[tool.Name] = true
	}
	for name, found := range want {
		if !found {
			t.Errorf("tool %s not registered", name)
		}
	}
}

func TestToolsMapToReportKinds(t *testing.T) {
	tests := []struct {
		tool string
		args map[string]any
		want report.Request
	}{
		{"worklog_report", map[string]any{"start_date": "2024-01-01", "end_date": "2024-01-31", "project": "OPS"},
			report.Request{Kind: report.KindWorklog, StartDate: "2024-01-01", EndDate: "2024-01-31", Project: "OPS"}},
		{"user_worklog_report", map[string]any{"start_date": "2024-01-01", "end_date": "2024-01-31", "user": "Alice"},
			report.Request{Kind: report.KindUserWorklog, StartDate: "2024-01-01", EndDate: "2024-01-31", User: "Alice"}},
		{"analytics", map[string]any{"start_date": "2024-01-01", "end_date": "2024-01-31", "user": "The Team"},
			report.Request{Kind: report.KindAnalytics, StartDate: "2024-01-01", EndDate: "2024-01-31", User: "The Team"}},
		{"project_performance", map[string]any{"start_date": "2024-01-01", "end_date": "2024-01-31"},
			report.Request{Kind: report.KindProjectPerformance, StartDate: "2024-01-01", EndDate: "2024-01-31"}},
		{"resource_utilization", map[string]any{"start_date": "2024-01-01", "end_date": "2024-01-31"},
			report.Request{Kind: report.KindResourceUtilization, StartDate: "2024-01-01", EndDate: "2024-01-31"}},
		{"executive_summary", map[string]any{"start_date": "2024-01-01", "end_date": "2024-01-31", "project": "ALL"},
			report.Request{Kind: report.KindExecutiveSummary, StartDate: "2024-01-01", EndDate: "2024-01-31", Project: "ALL"}},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			rep := &fakeReporter{}
			cs := connect(t, rep)

			text, isErr := callText(t, cs, tt.tool, tt.args)
			if isErr {
				t.Fatalf("unexpected tool error: %s", text)
			}
			if rep.last != tt.want {
				t.Errorf("request = %+v, want %+v", rep.last, tt.want)
			}
			if !strings.Contains(text, `"data"`) {
				t.Errorf("response not wrapped: %s", text)
			}
		})
	}
}

func TestToolErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"invalid filter", &report.InvalidFilterError{Field: "end_date", Reason: "is required"}, "Invalid arguments"},
		{"rate limited", &jira.UpstreamFetchError{Status: 429, Message: "Too Many Requests"}, "rate limiting"},
		{"upstream", &jira.UpstreamFetchError{Status: 500, Message: "boom"}, "no partial report"},
		{"other", errors.New("disk full"), "disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := connect(t, &fakeReporter{err: tt.err})
			text, isErr := callText(t, cs, "worklog_report", map[string]any{"start_date": "2024-01-01", "end_date": "2024-01-31"})
			if !isErr {
				t.Fatal("expected IsError result")
			}
			if !strings.Contains(text, tt.want) {
				t.Errorf("message %q does not contain %q", text, tt.want)
			}
		})
	}
}

func TestEmptyReportGuidance(t *testing.T) {
	cs := connect(t, &fakeReporter{})
	text, _ := callText(t, cs, "worklog_report", map[string]any{"start_date": "2024-01-01", "end_date": "2024-01-31"})
	if !strings.Contains(text, "not an error") {
		t.Errorf("expected empty-result guidance, got %s", text)
	}
}

func TestListUsers(t *testing.T) {
	rep := &fakeReporter{}
	cs := connect(t, rep)

	text, isErr := callText(t, cs, "list_users", map[string]any{"start_date": "2024-01-01", "end_date": "2024-01-31", "project": "OPS"})
	if isErr {
		t.Fatalf("unexpected tool error: %s", text)
	}
	if rep.last.Project != "OPS" || !strings.Contains(text, "Alice") {
		t.Errorf("unexpected result %s for %+v", text, rep.last)
	}
}
