package todo

import (
	"fmt"
	"strings"
	"time"
)

// Complete marks the task done and stamps the completion time.
func (t *Task) Complete(now time.Time) {
	completed := now.UTC().Truncate(time.Millisecond)
	t.Status = StatusDone
	t.Completed = &completed
}

// Start marks the task as in progress. A previous completion time is kept.
func (t *Task) Start() {
	t.Status = StatusDoing
}

// Block marks the task as blocked.
func (t *Task) Block() {
	t.Status = StatusBlocked
}

// SetPriority replaces the priority. Unknown levels are rejected and the
// task is left unchanged.
func (t *Task) SetPriority(level string) error {
	p, ok := ParsePriority(level)
	if !ok {
		return fmt.Errorf("%w: priority must be one of high, medium, low, got %q", ErrRejected, level)
	}
	t.Priority = p
	return nil
}

// SetDue replaces the due date using the same lenient parsing as New.
func (t *Task) SetDue(s string) {
	t.Due = ParseDue(s)
}

// AddTags unions tags into the task's tag list, keeping first-seen order.
func (t *Task) AddTags(tags ...string) {
	t.Tags = mergeTags(t.Tags, tags)
}

// Rename replaces the task text. Empty text is rejected.
func (t *Task) Rename(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("%w: task text is empty", ErrRejected)
	}
	t.Text = text
	return nil
}

// Remove deletes the task identified by idOrPrefix and returns the new
// collection along with the removed task.
func Remove(tasks []Task, idOrPrefix string) ([]Task, Task, error) {
	i, err := Resolve(tasks, idOrPrefix)
	if err != nil {
		return tasks, Task{}, err
	}
	removed := tasks[i]
	result := make([]Task, 0, len(tasks)-1)
	result = append(result, tasks[:i]...)
	result = append(result, tasks[i+1:]...)
	return result, removed, nil
}

// ClearCompleted removes every done task and reports how many were removed.
func ClearCompleted(tasks []Task) ([]Task, int) {
	kept := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status != StatusDone {
			kept = append(kept, t)
		}
	}
	return kept, len(tasks) - len(kept)
}
