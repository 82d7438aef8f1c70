package report

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"worklog-insights/internal/worklog"
)

// systemUserMarkers flag service accounts by display-name substring.
var systemUserMarkers = []string{
	"atlassian", "slack", "trello", "assistant", "bot", "jira",
	"automation", "system", "addon", "integration", "admin", "administrator",
}

// IsSystemUser reports whether name looks like a service account.
func IsSystemUser(name string) bool {
	lower := strings.ToLower(name)
	for _, m := range systemUserMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// Project is a project that has time logged against it.
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// User is a person who has logged time.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Projects lists every project with logged time, sorted by name.
func (s *Service) Projects(ctx context.Context) ([]Project, error) {
	issues, err := s.source.Fetch(ctx, worklog.UnscopedQuery(worklog.ProjectFields))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	projects := []Project{}
	for _, issue := range issues {
		if issue.ProjectKey == "" || seen[issue.ProjectKey] {
			continue
		}
		seen[issue.ProjectKey] = true
		projects = append(projects, Project{ID: issue.ProjectKey, Name: issue.ProjectName})
	}

	slices.SortFunc(projects, func(a, b Project) int {
		return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return projects, nil
}

// Users lists the people who logged time in rng, optionally within one
// project. Service accounts are left out.
func (s *Service) Users(ctx context.Context, project, start, end string) ([]User, error) {
	req, rng, err := Request{Kind: KindWorklog, StartDate: start, EndDate: end, Project: project}.validate(s.settings.Location)
	if err != nil {
		return nil, err
	}

	entries, err := s.entries(ctx, worklog.ProjectQuery(rng, req.Project, worklog.WorklogFields), rng)
	if err != nil {
		return nil, err
	}
	return collectUsers(entries), nil
}

func collectUsers(entries []worklog.Entry) []User {
	idx := make(map[string]int)
	users := []User{}
	for _, e := range entries {
		if e.Author == "" || IsSystemUser(e.Author) {
			continue
		}
		if i, ok := idx[e.Author]; ok {
			if users[i].Email == "" {
				users[i].Email = e.AuthorEmail
			}
			continue
		}
		idx[e.Author] = len(users)
		users = append(users, User{Name: e.Author, Email: e.AuthorEmail})
	}

	slices.SortFunc(users, func(a, b User) int {
		return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return users
}
