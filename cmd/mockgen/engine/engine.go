// Package engine synthesises a Jira search dump with worklogs so reports can
// run offline against JIRA_FIXTURE_PATH.
package engine

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"worklog-insights/internal/jira"
)

const jiraTimeLayout = "2006-01-02T15:04:05.000-0700"

type GeneratorConfig struct {
	Scenario string // "steady", "crunch" or "sparse"
	Count    int    // issues
	Days     int    // calendar days of history ending at Now
	Seed     uint64
	Now      time.Time
	Location *time.Location
}

var (
	projects = []jira.ProjectDTO{
		{ID: "10000", Key: "OPS", Name: "Operations"},
		{ID: "10001", Key: "WEB", Name: "Customer Web Portal"},
		{ID: "10002", Key: "DATA", Name: "Data Platform Migration Programme"},
	}
	people = []jira.UserDTO{
		{Name: "alice", DisplayName: "Alice Perera", EmailAddress: "alice@example.com"},
		{Name: "bob", DisplayName: "Bob Fernando", EmailAddress: "bob@example.com"},
		{Name: "chamari", DisplayName: "Chamari Silva", EmailAddress: "chamari@example.com"},
		{Name: "dinesh", DisplayName: "Dinesh Kumar", EmailAddress: "dinesh@example.com"},
	}
	automation = jira.UserDTO{Name: "automation", DisplayName: "Jira Automation"}
	statuses   = []string{"To Do", "In Progress", "In Review", "Done", "Done"}
	priorities = []string{"Highest", "High", "Medium", "Low"}
	types      = []string{"Bug", "Story", "Task", "Sub-task", "Epic"}
)

// Generate builds cfg.Count issues spread over the last cfg.Days days.
func Generate(cfg GeneratorConfig) jira.SearchResponse {
	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Days <= 0 {
		cfg.Days = 30
	}
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	first := cfg.Now.In(cfg.Location).AddDate(0, 0, -cfg.Days+1)
	first = time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, cfg.Location)

	issues := make([]jira.IssueDTO, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		project := projects[i%len(projects)]
		created := first.Add(time.Duration(rng.IntN(cfg.Days*24)) * time.Hour)

		var assignee *jira.UserDTO
		// Roughly one in six issues is unassigned.
		if rng.IntN(6) != 0 {
			a := people[rng.IntN(len(people))]
			assignee = &a
		}

		worklogs := generateWorklogs(rng, cfg, created, assignee)
		updated := created
		for _, wl := range worklogs {
			if t, err := jira.ParseTime(wl.Started); err == nil && t.After(updated) {
				updated = t
			}
		}

		p := project
		issues = append(issues, jira.IssueDTO{
			Key: fmt.Sprintf("%s-%d", project.Key, i+1),
			Fields: jira.FieldsDTO{
				Summary:   fmt.Sprintf("Synthetic %s work item %d", project.Name, i+1),
				Assignee:  assignee,
				Project:   &p,
				Status:    &jira.NamedDTO{Name: statuses[rng.IntN(len(statuses))]},
				Priority:  &jira.NamedDTO{Name: priorities[rng.IntN(len(priorities))]},
				IssueType: &jira.NamedDTO{Name: types[rng.IntN(len(types))]},
				Created:   created.Format(jiraTimeLayout),
				Updated:   updated.Format(jiraTimeLayout),
				Worklog: &jira.WorklogPageDTO{
					MaxResults: len(worklogs),
					Total:      len(worklogs),
					Worklogs:   worklogs,
				},
			},
		})
	}

	return jira.SearchResponse{MaxResults: len(issues), Total: len(issues), Issues: issues}
}

func generateWorklogs(rng *rand.Rand, cfg GeneratorConfig, created time.Time, assignee *jira.UserDTO) []jira.WorklogDTO {
	n := 1 + rng.IntN(4)
	maxMinutes := 4 * 60
	switch cfg.Scenario {
	case "crunch":
		n += 2
		maxMinutes = 10 * 60
	case "sparse":
		n = 1
		maxMinutes = 90
	}

	out := make([]jira.WorklogDTO, 0, n)
	for j := 0; j < n; j++ {
		author := people[rng.IntN(len(people))]
		if assignee != nil && rng.IntN(2) == 0 {
			author = *assignee
		}
		if rng.IntN(40) == 0 {
			author = automation
		}

		day := created.AddDate(0, 0, rng.IntN(5))
		if day.After(cfg.Now) {
			day = created
		}
		started := time.Date(day.Year(), day.Month(), day.Day(), 8+rng.IntN(10), rng.IntN(60), 0, 0, cfg.Location)

		a := author
		out = append(out, jira.WorklogDTO{
			ID:               fmt.Sprintf("%d", 20000+rng.IntN(80000)),
			Author:           &a,
			UpdateAuthor:     &a,
			Comment:          jira.Text(comments[rng.IntN(len(comments))]),
			Started:          started.Format(jiraTimeLayout),
			TimeSpentSeconds: (15 + rng.IntN(maxMinutes)) * 60,
		})
	}
	return out
}

var comments = []string{"", "Investigation", "Implementation", "Code review", "Pairing session", "Deployment and verification"}

// Save writes the dump as an indented JSON file and returns its path.
func Save(outDir, name string, dump jira.SearchResponse) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(outDir, name+".json")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dump); err != nil {
		return "", fmt.Errorf("failed to encode fixture: %w", err)
	}
	return path, nil
}
