package jira

import (
	"github.com/rs/zerolog/log"
)

// MapIssue transforms a Jira DTO into a domain Issue. Missing or malformed
// fields are left at their zero value.
func MapIssue(item IssueDTO) Issue {
	f := item.Fields
	issue := Issue{
		Key:     item.Key,
		Summary: f.Summary,
	}

	if f.Project != nil {
		issue.ProjectKey = f.Project.Key
		issue.ProjectName = f.Project.Name
	}
	if f.Assignee != nil {
		issue.Assignee = f.Assignee.DisplayName
		issue.AssigneeEmail = f.Assignee.EmailAddress
	}
	if f.Status != nil {
		issue.Status = f.Status.Name
	}
	if f.Priority != nil {
		issue.Priority = f.Priority.Name
	}
	if f.IssueType != nil {
		issue.IssueType = f.IssueType.Name
	}

	if t, err := ParseTime(f.Created); err == nil {
		issue.Created = t
	}
	if t, err := ParseTime(f.Updated); err == nil {
		issue.Updated = t
	}

	if f.Worklog != nil {
		issue.Worklogs = MapWorklogs(item.Key, f.Worklog.Worklogs)
	}

	return issue
}

// MapWorklogs converts worklog DTOs. The update author is preferred over the
// creating author, matching who last touched the logged time.
func MapWorklogs(issueKey string, dtos []WorklogDTO) []Worklog {
	worklogs := make([]Worklog, 0, len(dtos))
	for _, dto := range dtos {
		wl := Worklog{
			TimeSpentSeconds: dto.TimeSpentSeconds,
			Comment:          string(dto.Comment),
		}
		if wl.TimeSpentSeconds < 0 {
			wl.TimeSpentSeconds = 0
		}

		author := dto.UpdateAuthor
		if author == nil || author.DisplayName == "" {
			author = dto.Author
		}
		if author != nil {
			wl.Author = author.DisplayName
			wl.AuthorEmail = author.EmailAddress
		}

		if t, err := ParseTime(dto.Started); err == nil {
			wl.Started = t
		} else {
			log.Debug().Str("issue", issueKey).Str("started", dto.Started).Msg("Unparsable worklog start")
		}

		worklogs = append(worklogs, wl)
	}
	return worklogs
}
