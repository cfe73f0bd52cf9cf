// Package store loads and saves the task collection document.
//
// Loading is lenient: a missing or unparseable document is treated as an
// empty collection and never reported to the caller, and single records with
// odd field types are read rather than rejected. Saving always writes the
// whole document through a temp file and a rename, so readers see either the
// old or the new document, never a partial one. Save refuses to replace a
// document that has content but cannot be parsed.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/gofrs/flock"

	"github.com/nibzard/claw-todo-go/internal/logging"
	"github.com/nibzard/claw-todo-go/internal/todo"
	"github.com/nibzard/claw-todo-go/internal/tododir"
)

// ErrUnparseable is returned by Save when the existing document is not a
// task list. The document is left as it is.
var ErrUnparseable = errors.New("task file is not a valid task list")

// Store is a handle on one store document. It is created once per
// invocation and passed to every operation.
type Store struct {
	path    string
	lockDir string
	logger  *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLockDir keeps the write lock file in dir instead of next to the
// document.
func WithLockDir(dir string) Option {
	return func(s *Store) {
		s.lockDir = dir
	}
}

// New returns a Store for the document at path.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the document path.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the document exists as a regular file.
func (s *Store) Exists() bool {
	info, err := os.Stat(s.path)
	return err == nil && !info.IsDir()
}

// LockPath returns the lock file used while saving.
func (s *Store) LockPath() string {
	if s.lockDir == "" {
		return s.path + tododir.LockSuffix
	}
	return tododir.LockPath(s.lockDir, s.path)
}

// Parse decodes a store document. The document must be an array of
// objects; fields inside each object are read leniently by todo.Task.
func Parse(data []byte) ([]todo.Task, error) {
	var tasks []todo.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("parse store document: %w", err)
	}
	if tasks == nil {
		// "null" decodes without error.
		return nil, fmt.Errorf("parse store document: not an array")
	}
	return tasks, nil
}

// Marshal encodes tasks as a store document with 2-space indentation and a
// trailing newline.
func Marshal(tasks []todo.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []todo.Task{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tasks); err != nil {
		return nil, fmt.Errorf("marshal store document: %w", err)
	}
	return buf.Bytes(), nil
}

// Load reads the collection. A missing or corrupt document yields an empty
// collection; the cause is logged at debug level only.
func (s *Store) Load() []todo.Task {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Debug("store unreadable, using empty list", "path", s.path, "err", err)
		}
		return []todo.Task{}
	}

	tasks, err := Parse(data)
	if err != nil {
		s.logger.Debug("store corrupt, using empty list", "path", s.path, "err", err)
		return []todo.Task{}
	}
	return tasks
}

// Save replaces the document with tasks. The write goes to a temp file in
// the same directory which is synced and renamed over the document while
// holding an advisory lock on LockPath.
func (s *Store) Save(tasks []todo.Task) error {
	data, err := Marshal(tasks)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	lockPath := s.LockPath()
	if err := os.MkdirAll(filepath.Dir(lockPath), 0755); err != nil {
		return fmt.Errorf("create lock dir: %w", err)
	}
	lock := flock.New(lockPath)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock store: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	if err := s.checkOverwrite(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write store: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("replace store: %w", err)
	}

	s.logger.Debug("store saved", "path", s.path, "tasks", len(tasks))
	return nil
}

// checkOverwrite fails when the current document has content that does not
// parse. Blank and "null" documents may be replaced.
func (s *Store) checkOverwrite() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read store: %w", err)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil
	}
	if _, err := Parse(trimmed); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrUnparseable, s.path, err)
	}
	return nil
}
