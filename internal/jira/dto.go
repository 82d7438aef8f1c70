package jira

import (
	"encoding/json"
	"strings"
	"time"
)

// SearchResponse is the top-level container for Jira search results.
type SearchResponse struct {
	StartAt    int        `json:"startAt"`
	MaxResults int        `json:"maxResults"`
	Total      int        `json:"total"`
	Issues     []IssueDTO `json:"issues"`
}

// IssueDTO represents a single issue in the Jira search response.
type IssueDTO struct {
	Key    string    `json:"key"`
	Fields FieldsDTO `json:"fields"`
}

// FieldsDTO contains the specific fields we care about. Every nested object
// is optional because the field selection differs per report.
type FieldsDTO struct {
	Summary   string          `json:"summary"`
	Assignee  *UserDTO        `json:"assignee"`
	Project   *ProjectDTO     `json:"project"`
	Status    *NamedDTO       `json:"status"`
	Priority  *NamedDTO       `json:"priority"`
	IssueType *NamedDTO       `json:"issuetype"`
	Created   string          `json:"created"`
	Updated   string          `json:"updated"`
	Worklog   *WorklogPageDTO `json:"worklog"`
}

// UserDTO is a Jira user reference.
type UserDTO struct {
	AccountID    string `json:"accountId,omitempty"`
	Name         string `json:"name,omitempty"`
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress,omitempty"`
	Active       *bool  `json:"active,omitempty"`
}

// ProjectDTO is the project an issue belongs to.
type ProjectDTO struct {
	ID   string `json:"id,omitempty"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

// NamedDTO covers status, priority and issue type, which share the same shape.
type NamedDTO struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// WorklogPageDTO is the (possibly truncated) worklog list embedded in an issue.
type WorklogPageDTO struct {
	StartAt    int          `json:"startAt"`
	MaxResults int          `json:"maxResults"`
	Total      int          `json:"total"`
	Worklogs   []WorklogDTO `json:"worklogs"`
}

// Truncated reports whether Jira returned fewer worklogs than exist.
func (p *WorklogPageDTO) Truncated() bool {
	return p != nil && p.Total > len(p.Worklogs)
}

// WorklogDTO is a single worklog entry.
type WorklogDTO struct {
	ID               string   `json:"id,omitempty"`
	Author           *UserDTO `json:"author,omitempty"`
	UpdateAuthor     *UserDTO `json:"updateAuthor,omitempty"`
	Comment          Text     `json:"comment"`
	Started          string   `json:"started"`
	TimeSpentSeconds int      `json:"timeSpentSeconds"`
}

// Text decodes a comment that is either a plain string (API v2) or an
// Atlassian Document Format object, flattening the latter to its text nodes.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Text(s)
		return nil
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		// Unreadable comments are not worth failing a report over.
		*t = ""
		return nil
	}
	var parts []string
	collectText(doc, &parts)
	*t = Text(strings.Join(parts, " "))
	return nil
}

func collectText(node any, parts *[]string) {
	switch v := node.(type) {
	case map[string]any:
		if s, ok := v["text"].(string); ok && s != "" {
			*parts = append(*parts, s)
		}
		if content, ok := v["content"]; ok {
			collectText(content, parts)
		}
	case []any:
		for _, child := range v {
			collectText(child, parts)
		}
	}
}

// ParseTime is a helper for the strict Jira time format, falling back to RFC 3339.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02T15:04:05.000-0700", s)
	if err == nil {
		return t, nil
	}
	if t, rfcErr := time.Parse(time.RFC3339, s); rfcErr == nil {
		return t, nil
	}
	return time.Time{}, err
}
