// Package query selects, orders and counts tasks for the listing, search
// and stats commands. Every function returns a new slice and leaves the
// input untouched.
package query

import (
	"sort"
	"strings"
	"time"

	"github.com/nibzard/claw-todo-go/internal/todo"
)

// Kind identifies a list criterion.
type Kind string

// Criterion kinds.
const (
	KindAll      Kind = "all"
	KindDone     Kind = "done"
	KindActive   Kind = "active"
	KindOverdue  Kind = "overdue"
	KindPriority Kind = "priority"
	KindTag      Kind = "tag"
)

// Criterion selects tasks for listing.
type Criterion struct {
	Kind     Kind
	Priority todo.Priority // set for KindPriority
	Tag      string        // set for KindTag
}

// String returns the criterion in the form accepted by ParseCriterion.
func (c Criterion) String() string {
	switch c.Kind {
	case KindPriority:
		return string(c.Priority)
	case KindTag:
		return c.Tag
	default:
		return string(c.Kind)
	}
}

// ParseCriterion maps a list argument to a criterion. An empty argument
// means active tasks. Priority names select active tasks of that level;
// any unrecognized word is a tag.
func ParseCriterion(s string) Criterion {
	switch s {
	case "":
		return Criterion{Kind: KindActive}
	case string(KindAll), string(KindDone), string(KindActive), string(KindOverdue):
		return Criterion{Kind: Kind(s)}
	case string(todo.PriorityHigh), string(todo.PriorityMedium), string(todo.PriorityLow):
		return Criterion{Kind: KindPriority, Priority: todo.Priority(s)}
	default:
		return Criterion{Kind: KindTag, Tag: s}
	}
}

// Match reports whether t satisfies c at time now.
func (c Criterion) Match(t *todo.Task, now time.Time) bool {
	switch c.Kind {
	case KindAll:
		return true
	case KindDone:
		return t.Status == todo.StatusDone
	case KindActive:
		return t.IsActive()
	case KindOverdue:
		return t.IsOverdue(now)
	case KindPriority:
		return t.IsActive() && t.Priority == c.Priority
	case KindTag:
		return t.HasTag(c.Tag)
	}
	return false
}

// Filter returns the tasks matching c, ordered by Sort.
func Filter(tasks []todo.Task, c Criterion, now time.Time) []todo.Task {
	out := make([]todo.Task, 0, len(tasks))
	for i := range tasks {
		if c.Match(&tasks[i], now) {
			out = append(out, tasks[i])
		}
	}
	sortInPlace(out, true)
	return out
}

// Sort returns a copy of tasks ordered by priority rank, then by due date
// (tasks with a due date first, earlier first). Ties keep input order.
func Sort(tasks []todo.Task) []todo.Task {
	out := append([]todo.Task(nil), tasks...)
	if out == nil {
		out = []todo.Task{}
	}
	sortInPlace(out, true)
	return out
}

// ByPriority returns a copy of tasks ordered by priority rank only. Ties
// keep input order.
func ByPriority(tasks []todo.Task) []todo.Task {
	out := append([]todo.Task(nil), tasks...)
	if out == nil {
		out = []todo.Task{}
	}
	sortInPlace(out, false)
	return out
}

// Find returns tasks whose text or any tag contains q, case-insensitively,
// regardless of status. Results are ordered by priority rank only.
func Find(tasks []todo.Task, q string) []todo.Task {
	q = strings.ToLower(q)
	out := make([]todo.Task, 0)
	for _, t := range tasks {
		if matchesText(t, q) {
			out = append(out, t)
		}
	}
	sortInPlace(out, false)
	return out
}

func matchesText(t todo.Task, q string) bool {
	if strings.Contains(strings.ToLower(t.Text), q) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func sortInPlace(tasks []todo.Task, byDue bool) {
	sort.SliceStable(tasks, func(i, j int) bool {
		ri, rj := tasks[i].Priority.Rank(), tasks[j].Priority.Rank()
		if ri != rj {
			return ri < rj
		}
		if !byDue {
			return false
		}
		di, iok := tasks[i].DueTime()
		dj, jok := tasks[j].DueTime()
		switch {
		case iok && jok:
			return di.Before(dj)
		case iok != jok:
			return iok
		}
		return false
	})
}

// Stats holds task counts.
type Stats struct {
	Counts map[todo.Status]int
	Total  int
}

// Count returns the number of tasks with status s.
func (s Stats) Count(status todo.Status) int {
	return s.Counts[status]
}

// Active returns the number of tasks that are not done.
func (s Stats) Active() int {
	return s.Total - s.Counts[todo.StatusDone]
}

// ComputeStats counts tasks by status. The four known statuses are always
// present; unknown statuses found in the document are counted as well.
func ComputeStats(tasks []todo.Task) Stats {
	st := Stats{Counts: make(map[todo.Status]int, len(todo.Statuses))}
	for _, s := range todo.Statuses {
		st.Counts[s] = 0
	}
	for _, t := range tasks {
		st.Counts[t.Status]++
	}
	st.Total = len(tasks)
	return st
}
