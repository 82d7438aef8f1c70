// Package worklog fetches worklogged issues from the tracker and flattens them
// into per-entry records that the aggregation engines reduce.
package worklog

import (
	"time"
)

// Fallback literals. Different reports show different placeholders and the
// values are observable output, so each keeps its own.
const (
	Unassigned     = "Unassigned"
	UnknownUser    = "Unknown User"
	UnknownProject = "Unknown Project"
	NoProjectName  = "No project name"
	NoProjectID    = "No project ID"
	NoIssueID      = "No issue ID"
	NoTitle        = "No title available"
	NoComment      = "No comment"
)

// Entry is one worklog flattened out of its parent issue.
type Entry struct {
	IssueKey     string
	IssueSummary string
	ProjectID    string
	ProjectName  string
	// Assignee is the issue assignee, or Unassigned.
	Assignee      string
	AssigneeEmail string
	// Author is the raw worklog author and may be empty.
	Author      string
	AuthorEmail string
	// UpdatedBy is the author, falling back to Assignee.
	UpdatedBy       string
	LoggedAt        time.Time
	DurationSeconds int
	Comment         string
}

// Hours returns the logged duration as fractional hours.
func (e Entry) Hours() float64 {
	return float64(e.DurationSeconds) / 3600
}

// Email returns the best known address for the person behind the entry.
func (e Entry) Email() string {
	if e.AuthorEmail != "" {
		return e.AuthorEmail
	}
	return e.AssigneeEmail
}

// ActorFunc picks the person credited for an entry.
type ActorFunc func(Entry) string

// ResolveAssignee re-attributes unassigned work to whoever logged it.
func ResolveAssignee(e Entry) string {
	if e.Assignee == Unassigned || e.Assignee == "" {
		return e.UpdatedBy
	}
	return e.Assignee
}

// RawAssignee returns the issue assignee unchanged.
func RawAssignee(e Entry) string {
	return e.Assignee
}

// ByUpdater credits the worklog author, then the assignee, then Unassigned.
func ByUpdater(e Entry) string {
	if e.UpdatedBy != "" {
		return e.UpdatedBy
	}
	return Unassigned
}

// ByAuthor credits only the worklog author, or UnknownUser.
func ByAuthor(e Entry) string {
	if e.Author != "" {
		return e.Author
	}
	return UnknownUser
}

// ProjectLabel names the entry's project for grouping.
func ProjectLabel(e Entry) string {
	if e.ProjectName != "" {
		return e.ProjectName
	}
	return UnknownProject
}
