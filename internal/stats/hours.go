// Package stats holds the aggregation engines. Every function is pure: it
// reads its inputs, never mutates them, and returns the empty form of its
// result for empty input.
package stats

import (
	"cmp"
	"slices"

	"worklog-insights/internal/worklog"
)

// ProjectHours is the total logged against one project.
type ProjectHours struct {
	Project string  `json:"project"`
	Hours   float64 `json:"totalHours"`
}

// ProjectHoursTotals groups entries by project name and sums their hours,
// sorted by hours descending then name. The list is not capped.
func ProjectHoursTotals(entries []worklog.Entry) []ProjectHours {
	idx := make(map[string]int)
	var out []ProjectHours

	for _, e := range entries {
		name := worklog.ProjectLabel(e)
		i, ok := idx[name]
		if !ok {
			i = len(out)
			idx[name] = i
			out = append(out, ProjectHours{Project: name})
		}
		out[i].Hours += e.Hours()
	}

	slices.SortStableFunc(out, func(a, b ProjectHours) int {
		if c := cmp.Compare(b.Hours, a.Hours); c != 0 {
			return c
		}
		return cmp.Compare(a.Project, b.Project)
	})
	return out
}

// TotalHours sums the hours of every entry.
func TotalHours(entries []worklog.Entry) float64 {
	var total float64
	for _, e := range entries {
		total += e.Hours()
	}
	return total
}

// Allocation lists the distinct people who logged time on a project.
type Allocation struct {
	Project    string   `json:"project"`
	ActorCount int      `json:"userCount"`
	Actors     []string `json:"users"`
}

// ResourceAllocation collects the distinct actors per project in first-seen
// order, sorted by actor count descending.
func ResourceAllocation(entries []worklog.Entry, actor worklog.ActorFunc) []Allocation {
	idx := make(map[string]int)
	seen := make(map[[2]string]bool)
	var out []Allocation

	for _, e := range entries {
		name := worklog.ProjectLabel(e)
		i, ok := idx[name]
		if !ok {
			i = len(out)
			idx[name] = i
			out = append(out, Allocation{Project: name, Actors: []string{}})
		}

		who := actor(e)
		key := [2]string{name, who}
		if seen[key] {
			continue
		}
		seen[key] = true
		out[i].Actors = append(out[i].Actors, who)
		out[i].ActorCount++
	}

	slices.SortStableFunc(out, func(a, b Allocation) int {
		return cmp.Compare(b.ActorCount, a.ActorCount)
	})
	return out
}

// DistinctActors counts the different people credited across entries.
func DistinctActors(entries []worklog.Entry, actor worklog.ActorFunc) int {
	set := make(map[string]struct{})
	for _, e := range entries {
		set[actor(e)] = struct{}{}
	}
	return len(set)
}

// DistinctProjects counts the different projects across entries.
func DistinctProjects(entries []worklog.Entry) int {
	set := make(map[string]struct{})
	for _, e := range entries {
		set[worklog.ProjectLabel(e)] = struct{}{}
	}
	return len(set)
}
