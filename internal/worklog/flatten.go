package worklog

import (
	"worklog-insights/internal/daterange"
	"worklog-insights/internal/jira"
)

// Flatten expands each issue's worklogs into entries whose start instant lies
// inside rng. Worklogs with an unparsable start are dropped because they
// cannot be placed in the window.
func Flatten(issues []jira.Issue, rng daterange.Range) []Entry {
	var entries []Entry
	for _, issue := range issues {
		assignee := issue.Assignee
		if assignee == "" {
			assignee = Unassigned
		}

		for _, wl := range issue.Worklogs {
			if wl.Started.IsZero() || !rng.Contains(wl.Started) {
				continue
			}

			updatedBy := wl.Author
			if updatedBy == "" {
				updatedBy = assignee
			}
			comment := wl.Comment
			if comment == "" {
				comment = NoComment
			}

			entries = append(entries, Entry{
				IssueKey:        issue.Key,
				IssueSummary:    issue.Summary,
				ProjectID:       issue.ProjectKey,
				ProjectName:     issue.ProjectName,
				Assignee:        assignee,
				AssigneeEmail:   issue.AssigneeEmail,
				Author:          wl.Author,
				AuthorEmail:     wl.AuthorEmail,
				UpdatedBy:       updatedBy,
				LoggedAt:        wl.Started,
				DurationSeconds: max(wl.TimeSpentSeconds, 0),
				Comment:         comment,
			})
		}
	}
	return entries
}

// IsAllUsers reports whether user is one of the sentinels meaning "everyone".
func IsAllUsers(user string) bool {
	switch user {
	case "", AllUsers, "All Resources", "The Team":
		return true
	}
	return false
}

// FilterByActor keeps entries credited to user. The "everyone" sentinels
// return entries unchanged.
func FilterByActor(entries []Entry, user string, actor ActorFunc) []Entry {
	if IsAllUsers(user) {
		return entries
	}
	var kept []Entry
	for _, e := range entries {
		if actor(e) == user {
			kept = append(kept, e)
		}
	}
	return kept
}
