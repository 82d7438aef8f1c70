package jira

import (
	"encoding/json"
	"testing"
	"time"
)

func TestMapIssue(t *testing.T) {
	raw := `{
		"key": "OPS-12",
		"fields": {
			"summary": "Rotate certificates",
			"assignee": {"displayName": "Alice", "emailAddress": "alice@example.com"},
			"project": {"key": "OPS", "name": "Operations"},
			"status": {"name": "Done"},
			"priority": {"name": "High"},
			"issuetype": {"name": "Task"},
			"created": "2024-01-01T08:00:00.000+0000",
			"updated": "2024-01-05T08:00:00.000+0000",
			"worklog": {"total": 2, "worklogs": [
				{"updateAuthor": {"displayName": "Bob"}, "author": {"displayName": "Carol"}, "started": "2024-01-02T09:00:00.000+0530", "timeSpentSeconds": 5400, "comment": "pairing"},
				{"author": {"displayName": "Carol", "emailAddress": "carol@example.com"}, "started": "not-a-date", "timeSpentSeconds": -10}
			]}
		}
	}`

	var dto IssueDTO
	if err := json.Unmarshal([]byte(raw), &dto); err != nil {
		t.Fatal(err)
	}
	issue := MapIssue(dto)

	if issue.ProjectKey != "OPS" || issue.ProjectName != "Operations" {
		t.Errorf("project = %s/%s", issue.ProjectKey, issue.ProjectName)
	}
	if issue.Assignee != "Alice" || issue.Status != "Done" || issue.Priority != "High" || issue.IssueType != "Task" {
		t.Errorf("unexpected issue fields %+v", issue)
	}
	if !issue.Created.Equal(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)) {
		t.Errorf("Created = %v", issue.Created)
	}
	if len(issue.Worklogs) != 2 {
		t.Fatalf("expected 2 worklogs, got %d", len(issue.Worklogs))
	}

	first := issue.Worklogs[0]
	if first.Author != "Bob" {
		t.Errorf("update author should win, got %q", first.Author)
	}
	if !first.Started.Equal(time.Date(2024, 1, 2, 3, 30, 0, 0, time.UTC)) {
		t.Errorf("Started = %v", first.Started)
	}

	second := issue.Worklogs[1]
	if second.Author != "Carol" || second.AuthorEmail != "carol@example.com" {
		t.Errorf("author fallback failed: %+v", second)
	}
	if !second.Started.IsZero() {
		t.Errorf("malformed start should map to zero time, got %v", second.Started)
	}
	if second.TimeSpentSeconds != 0 {
		t.Errorf("negative duration should clamp to 0, got %d", second.TimeSpentSeconds)
	}
}

func TestMapIssue_MissingObjects(t *testing.T) {
	issue := MapIssue(IssueDTO{Key: "X-1"})
	if issue.ProjectName != "" || issue.Assignee != "" || issue.Worklogs != nil {
		t.Errorf("expected zero values, got %+v", issue)
	}
}

func TestText_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"PlainString", `"fixed the build"`, "fixed the build"},
		{"Null", `null`, ""},
		{"ADF", `{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"fixed"},{"type":"text","text":"the build"}]}]}`, "fixed the build"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Text
			if err := json.Unmarshal([]byte(tt.raw), &got); err != nil {
				t.Fatal(err)
			}
			if string(got) != tt.want {
				t.Errorf("Text = %q, want %q", got, tt.want)
			}
		})
	}
}
