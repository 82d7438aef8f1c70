package jira

import (
	"context"
	"time"
)

// Issue is the subset of a tracker issue the worklog reports consume.
type Issue struct {
	Key           string
	Summary       string
	ProjectKey    string
	ProjectName   string
	Assignee      string
	AssigneeEmail string
	Status        string
	Priority      string
	IssueType     string
	Created       time.Time
	Updated       time.Time
	Worklogs      []Worklog
}

// Worklog is one logged-time entry against an issue. Started is zero when the
// tracker sent a timestamp that could not be parsed.
type Worklog struct {
	Author           string
	AuthorEmail      string
	Started          time.Time
	TimeSpentSeconds int
	Comment          string
}

// SearchRequest describes one page of an issue search.
type SearchRequest struct {
	JQL        string
	Fields     []string
	Expand     []string
	StartAt    int
	MaxResults int
}

// Client is the interface for interacting with Jira.
type Client interface {
	SearchIssues(ctx context.Context, req SearchRequest) (*SearchResponse, error)
	GetIssueWorklogs(ctx context.Context, issueKey string) ([]WorklogDTO, error)
}

// Config holds the authentication and connection settings for Jira.
type Config struct {
	BaseURL string

	// Cloud basic auth (username + API token) or a Data Center PAT when
	// Username is empty.
	Username string
	Token    string

	// Data Center Cookies
	XsrfToken  string
	SessionID  string
	RememberMe string

	// Load Balancer Cookies
	GCILB string
	GCLB  string

	// FixturePath switches to an offline client reading a search dump.
	FixturePath string

	RequestTimeout time.Duration
}

// NewClient creates a new Jira client based on the provided configuration.
func NewClient(cfg Config) (Client, error) {
	if cfg.FixturePath != "" {
		return NewFixtureClient(cfg.FixturePath)
	}
	return NewDataCenterClient(cfg), nil
}
