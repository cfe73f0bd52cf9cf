package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nibzard/claw-todo-go/internal/tododir"
	"github.com/nibzard/claw-todo-go/internal/utils"
)

// LocateOptions are the inputs of store location resolution.
type LocateOptions struct {
	// Override is an explicit document path (flag, env or config).
	Override string
	// Global selects GlobalPath.
	Global bool
	// GlobalPath is the global document path.
	GlobalPath string
	// WorkDir is where the ancestor search starts.
	WorkDir string
	// FileName is the document name searched for; defaults to TODO.json.
	FileName string
}

// Locate resolves the document path. Priority: explicit override, then the
// global path when Global is set, then the nearest ancestor of WorkDir
// (WorkDir included) that holds an existing document, then FileName in
// WorkDir.
func Locate(opts LocateOptions) (string, error) {
	workDir := opts.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting working directory: %w", err)
		}
		workDir = wd
	}
	if abs, err := filepath.Abs(workDir); err == nil {
		workDir = abs
	}

	fileName := opts.FileName
	if fileName == "" {
		fileName = tododir.DefaultStoreFile
	}

	if opts.Override != "" {
		return absFrom(workDir, utils.ExpandPath(opts.Override)), nil
	}

	if opts.Global {
		globalPath := opts.GlobalPath
		if globalPath == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("resolving home directory: %w", err)
			}
			globalPath = tododir.GlobalStorePath(home)
		}
		return absFrom(workDir, utils.ExpandPath(globalPath)), nil
	}

	if found := FindAncestor(workDir, fileName); found != "" {
		return found, nil
	}

	return filepath.Join(workDir, fileName), nil
}

// FindAncestor walks from dir toward the filesystem root and returns the
// first existing regular file named fileName, or "" if none exists.
func FindAncestor(dir, fileName string) string {
	dir = filepath.Clean(dir)
	for {
		candidate := filepath.Join(dir, fileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func absFrom(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}
