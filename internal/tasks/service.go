// Package tasks implements the claw-todo command surface on top of a store.
//
// Each call is one load, operate, save cycle against the store document.
// Queries never write.
package tasks

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/claw-todo-go/internal/logging"
	"github.com/nibzard/claw-todo-go/internal/query"
	"github.com/nibzard/claw-todo-go/internal/store"
	"github.com/nibzard/claw-todo-go/internal/todo"
)

// Store is the persistence contract the service needs.
type Store interface {
	Load() []todo.Task
	Save(tasks []todo.Task) error
}

// Service runs task operations against a store.
type Service struct {
	store           Store
	now             func() time.Time
	logger          *log.Logger
	defaultPriority string
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDefaultPriority sets the priority used when Add is given none.
func WithDefaultPriority(level string) Option {
	return func(s *Service) {
		s.defaultPriority = level
	}
}

// New returns a Service operating on st.
func New(st Store, opts ...Option) *Service {
	s := &Service{
		store:  st,
		now:    time.Now,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add creates a task and appends it to the collection. Coercions of invalid
// input are returned as warnings.
func (s *Service) Add(text, priority string, tags []string, due string) (todo.Task, []string, error) {
	tasks := s.store.Load()
	if priority == "" {
		priority = s.defaultPriority
	}

	task, warnings, err := todo.New(text, todo.NewOptions{
		Priority: priority,
		Tags:     tags,
		Due:      due,
		Now:      s.now(),
		Existing: tasks,
	})
	if err != nil {
		return todo.Task{}, nil, err
	}
	for _, w := range warnings {
		s.logger.Debug("input coerced", "task", task.ID, "warning", w)
	}

	tasks = append(tasks, task)
	if err := s.store.Save(tasks); err != nil {
		return todo.Task{}, warnings, err
	}
	s.logger.Debug("task added", "id", task.ID, "priority", task.Priority)
	return task, warnings, nil
}

// Now returns the current time from the service clock.
func (s *Service) Now() time.Time {
	return s.now()
}

// List returns the tasks matching criterion in display order.
func (s *Service) List(criterion string) []todo.Task {
	return query.Filter(s.store.Load(), query.ParseCriterion(criterion), s.now())
}

// Find returns the tasks whose text or tags contain q.
func (s *Service) Find(q string) []todo.Task {
	return query.Find(s.store.Load(), q)
}

// All returns the collection in document order.
func (s *Service) All() []todo.Task {
	return s.store.Load()
}

// Stats returns task counts by status.
func (s *Service) Stats() query.Stats {
	return query.ComputeStats(s.store.Load())
}

// Done marks a task done and stamps its completion time.
func (s *Service) Done(idOrPrefix string) (todo.Task, error) {
	return s.update(idOrPrefix, func(t *todo.Task) error {
		t.Complete(s.now())
		return nil
	})
}

// Doing marks a task in progress.
func (s *Service) Doing(idOrPrefix string) (todo.Task, error) {
	return s.update(idOrPrefix, func(t *todo.Task) error {
		t.Start()
		return nil
	})
}

// Block marks a task blocked.
func (s *Service) Block(idOrPrefix string) (todo.Task, error) {
	return s.update(idOrPrefix, func(t *todo.Task) error {
		t.Block()
		return nil
	})
}

// Priority changes a task's priority. An unknown level is rejected and
// nothing is saved.
func (s *Service) Priority(idOrPrefix, level string) (todo.Task, error) {
	return s.update(idOrPrefix, func(t *todo.Task) error {
		return t.SetPriority(level)
	})
}

// Due sets a task's due date.
func (s *Service) Due(idOrPrefix, date string) (todo.Task, error) {
	return s.update(idOrPrefix, func(t *todo.Task) error {
		t.SetDue(date)
		return nil
	})
}

// Tag adds tags to a task.
func (s *Service) Tag(idOrPrefix string, tags []string) (todo.Task, error) {
	return s.update(idOrPrefix, func(t *todo.Task) error {
		t.AddTags(tags...)
		return nil
	})
}

// Edit replaces a task's text.
func (s *Service) Edit(idOrPrefix, text string) (todo.Task, error) {
	return s.update(idOrPrefix, func(t *todo.Task) error {
		return t.Rename(text)
	})
}

// Remove deletes a task and returns it.
func (s *Service) Remove(idOrPrefix string) (todo.Task, error) {
	tasks := s.store.Load()
	remaining, removed, err := todo.Remove(tasks, idOrPrefix)
	if err != nil {
		return todo.Task{}, err
	}
	if err := s.store.Save(remaining); err != nil {
		return todo.Task{}, err
	}
	s.logger.Debug("task removed", "id", removed.ID)
	return removed, nil
}

// Clear removes every done task and returns how many were removed. The
// store is written only when something was removed.
func (s *Service) Clear() (int, error) {
	tasks := s.store.Load()
	remaining, removed := todo.ClearCompleted(tasks)
	if removed == 0 {
		return 0, nil
	}
	if err := s.store.Save(remaining); err != nil {
		return 0, err
	}
	s.logger.Debug("cleared completed tasks", "count", removed)
	return removed, nil
}

// update resolves idOrPrefix, applies fn to the task and saves the
// collection. Nothing is saved when fn fails.
func (s *Service) update(idOrPrefix string, fn func(*todo.Task) error) (todo.Task, error) {
	tasks := s.store.Load()
	idx, err := todo.Resolve(tasks, idOrPrefix)
	if err != nil {
		return todo.Task{}, err
	}
	task := &tasks[idx]
	if err := fn(task); err != nil {
		return todo.Task{}, err
	}
	if err := s.store.Save(tasks); err != nil {
		return todo.Task{}, fmt.Errorf("update %s: %w", task.ID, err)
	}
	s.logger.Debug("task updated", "id", task.ID, "status", task.Status)
	return *task, nil
}

var _ Store = (*store.Store)(nil)
