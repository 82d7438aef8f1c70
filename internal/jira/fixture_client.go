package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

// fixtureClient serves a saved search dump (see cmd/mockgen) page by page.
// The JQL predicate is not evaluated; report code filters by date afterwards.
type fixtureClient struct {
	issues []IssueDTO
	byKey  map[string][]WorklogDTO
}

// NewFixtureClient loads a SearchResponse JSON file.
func NewFixtureClient(path string) (Client, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}

	var dump SearchResponse
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, fmt.Errorf("failed to decode fixture %s: %w", path, err)
	}

	log.Info().Str("path", path).Int("issues", len(dump.Issues)).Msg("Using offline Jira fixture")
	return newFixtureClient(dump.Issues), nil
}

func newFixtureClient(issues []IssueDTO) *fixtureClient {
	c := &fixtureClient{issues: issues, byKey: make(map[string][]WorklogDTO)}
	for _, is := range issues {
		if is.Fields.Worklog != nil {
			c.byKey[is.Key] = is.Fields.Worklog.Worklogs
		}
	}
	return c
}

func (c *fixtureClient) SearchIssues(ctx context.Context, sr SearchRequest) (*SearchResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := min(max(sr.StartAt, 0), len(c.issues))
	end := len(c.issues)
	if sr.MaxResults > 0 {
		end = min(start+sr.MaxResults, len(c.issues))
	}
	return &SearchResponse{
		StartAt:    start,
		MaxResults: sr.MaxResults,
		Total:      len(c.issues),
		Issues:     c.issues[start:end],
	}, nil
}

func (c *fixtureClient) GetIssueWorklogs(ctx context.Context, issueKey string) ([]WorklogDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	wls, ok := c.byKey[issueKey]
	if !ok {
		return nil, &UpstreamFetchError{Status: 404, Message: fmt.Sprintf("issue %s not found", issueKey)}
	}
	return wls, nil
}
