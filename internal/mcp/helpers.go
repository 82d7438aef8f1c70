package mcp

import (
	"errors"
	"fmt"

	"worklog-insights/internal/jira"
	"worklog-insights/internal/report"

	"github.com/goccy/go-json"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// ResponseEnvelope wraps tool output with hints for the calling agent.
type ResponseEnvelope struct {
	Data     any      `json:"data"`
	Guidance []string `json:"_guidance,omitempty"`
}

func WrapResponse(data any, guidance ...string) ResponseEnvelope {
	return ResponseEnvelope{Data: data, Guidance: guidance}
}

func toolResult(env ResponseEnvelope) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: formatResult(env)}},
	}
}

// toolError reports a failure to the agent as tool output rather than a
// protocol error so it can correct its arguments and retry.
func toolError(tool string, err error) *sdkmcp.CallToolResult {
	log.Warn().Err(err).Str("tool", tool).Msg("Tool call failed")

	msg := err.Error()
	var filterErr *report.InvalidFilterError
	var upErr *jira.UpstreamFetchError
	switch {
	case errors.As(err, &filterErr):
		msg = fmt.Sprintf("Invalid arguments: %s. Dates must be YYYY-MM-DD with start_date on or before end_date.", filterErr.Error())
	case errors.As(err, &upErr) && upErr.RateLimited():
		msg = fmt.Sprintf("Jira is rate limiting requests (%s). Wait a moment and retry.", upErr.Error())
	case errors.As(err, &upErr):
		msg = fmt.Sprintf("Jira request failed, no partial report was produced: %s", upErr.Error())
	}

	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: msg}},
		IsError: true,
	}
}

func formatResult(data any) string {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(out)
}

// guidanceFor explains empty results so they are not mistaken for failures.
func guidanceFor(res report.Result) []string {
	empty := false
	switch r := res.(type) {
	case *report.WorklogReport:
		empty = len(r.Rows) == 0
	case *report.AnalyticsReport:
		empty = len(r.ProjectHours) == 0
	case *report.PerformanceReport:
		empty = len(r.Projects) == 0
	case *report.UtilizationReport:
		empty = len(r.Resources) == 0
	case *report.ExecutiveReport:
		empty = len(r.Projects) == 0
	}
	if !empty {
		return nil
	}
	return []string{"No time was logged for this filter and window. This is an empty result, not an error."}
}
