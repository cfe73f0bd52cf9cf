package todo

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

var (
	// ErrNotFound matches every *NotFoundError.
	ErrNotFound = errors.New("task not found")
	// ErrRejected is returned when input fails validation and nothing changed.
	ErrRejected = errors.New("rejected")
)

// NotFoundError is returned when no task matches an identifier.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return ErrNotFound.Error() + ": " + e.ID
}

// Is makes errors.Is(err, ErrNotFound) hold.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Status represents a task status.
type Status string

const (
	StatusTodo    Status = "todo"
	StatusDoing   Status = "doing"
	StatusBlocked Status = "blocked"
	StatusDone    Status = "done"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusTodo, StatusDoing, StatusDone, StatusBlocked}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusDoing, StatusBlocked, StatusDone:
		return true
	}
	return false
}

// Priority represents a task priority level.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists every priority level from highest to lowest.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Valid reports whether p is one of the known priority levels.
func (p Priority) Valid() bool {
	return slices.Contains(Priorities, p)
}

// Rank orders priorities: high=0, medium=1, low=2. Values that are not a
// known level (hand-edited files) rank after low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// ParsePriority reports whether s is exactly one of the known levels.
// Matching is case sensitive: "HIGH" is not a level.
func ParsePriority(s string) (Priority, bool) {
	p := Priority(s)
	return p, p.Valid()
}

// Task represents a single task in the store document.
type Task struct {
	ID        string     `json:"id" yaml:"id"`
	Text      string     `json:"text" yaml:"text"`
	Status    Status     `json:"status" yaml:"status"`
	Priority  Priority   `json:"priority" yaml:"priority"`
	Created   time.Time  `json:"created" yaml:"created"`
	Completed *time.Time `json:"completed,omitempty" yaml:"completed,omitempty"`
	Due       string     `json:"due,omitempty" yaml:"due,omitempty"`
	Tags      []string   `json:"tags" yaml:"tags"`

	// Unreadable created/completed values from a hand-edited document,
	// written back as found.
	rawCreated   []byte
	rawCompleted []byte
}

// IsActive reports whether the task is not done.
func (t *Task) IsActive() bool {
	return t.Status != StatusDone
}

// DueTime returns the parsed due date. ok is false when no due date is set
// or the stored value could not be parsed.
func (t *Task) DueTime() (time.Time, bool) {
	if t.Due == "" {
		return time.Time{}, false
	}
	return parseDueTime(t.Due)
}

// IsOverdue reports whether the task is active and its due date is before now.
func (t *Task) IsOverdue(now time.Time) bool {
	if !t.IsActive() {
		return false
	}
	due, ok := t.DueTime()
	return ok && due.Before(now)
}

// HasTag reports whether the task carries tag exactly.
func (t *Task) HasTag(tag string) bool {
	for _, existing := range t.Tags {
		if existing == tag {
			return true
		}
	}
	return false
}

// NewOptions holds the optional inputs of New.
type NewOptions struct {
	Priority string
	Tags     []string
	Due      string
	// Now is the creation time; zero means time.Now.
	Now time.Time
	// Existing is consulted so the generated id is unique in the store.
	Existing []Task
}

// New creates a task from user input. It returns the task and any warnings
// produced by coercing invalid input. Empty text is rejected.
func New(text string, opts NewOptions) (Task, []string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, nil, fmt.Errorf("%w: task text is empty", ErrRejected)
	}

	var warnings []string
	priority := PriorityMedium
	if strings.TrimSpace(opts.Priority) != "" {
		p, ok := ParsePriority(opts.Priority)
		if ok {
			priority = p
		} else {
			warnings = append(warnings, fmt.Sprintf("Invalid priority: %s. Using medium.", opts.Priority))
		}
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC().Truncate(time.Millisecond)

	id, err := uniqueID(now, opts.Existing)
	if err != nil {
		return Task{}, nil, err
	}

	task := Task{
		ID:       id,
		Text:     text,
		Status:   StatusTodo,
		Priority: priority,
		Created:  now,
		Tags:     mergeTags(nil, opts.Tags),
	}
	if strings.TrimSpace(opts.Due) != "" {
		task.Due = ParseDue(opts.Due)
	}
	return task, warnings, nil
}

// mergeTags appends tags to existing, trimming whitespace, dropping empty
// values and keeping the first occurrence of each tag. The result is never nil.
func mergeTags(existing []string, tags []string) []string {
	seen := make(map[string]bool, len(existing)+len(tags))
	result := make([]string, 0, len(existing)+len(tags))
	for _, list := range [][]string{existing, tags} {
		for _, tag := range list {
			tag = strings.TrimSpace(tag)
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			result = append(result, tag)
		}
	}
	return result
}
