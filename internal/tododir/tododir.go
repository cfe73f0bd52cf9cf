// Package tododir provides constants and path helpers for claw-todo files.
package tododir

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
)

const (
	// Dir is the name of the per-user state directory.
	Dir = ".claw-todo"

	// AppName is used for OS-specific config directories.
	AppName = "claw-todo"

	// DefaultStoreFile is the default store document name.
	DefaultStoreFile = "TODO.json"

	// DefaultConfigFile is the config file name inside Dir.
	DefaultConfigFile = "config.toml"

	// LocksDir holds write lock files inside Dir.
	LocksDir = "locks"

	// LockSuffix ends every write lock file name.
	LockSuffix = ".lock"
)

// ProjectConfigFiles are looked up in the working directory, in order.
var ProjectConfigFiles = []string{".claw-todo.toml", "claw-todo.toml"}

// DirPath returns the state directory inside home.
func DirPath(home string) string {
	if home == "" {
		return Dir
	}
	return filepath.Join(home, Dir)
}

// GlobalStorePath returns the global store document path inside home.
func GlobalStorePath(home string) string {
	return filepath.Join(DirPath(home), DefaultStoreFile)
}

// ConfigPath returns the user config file path inside home.
func ConfigPath(home string) string {
	return filepath.Join(DirPath(home), DefaultConfigFile)
}

// LockDir returns the directory for write lock files inside home.
func LockDir(home string) string {
	return filepath.Join(DirPath(home), LocksDir)
}

// LockPath returns the lock file in lockDir for a store document, named
// after a hash of the document's absolute path.
func LockPath(lockDir, storePath string) string {
	if abs, err := filepath.Abs(storePath); err == nil {
		storePath = abs
	}
	sum := sha256.Sum256([]byte(storePath))
	return filepath.Join(lockDir, hex.EncodeToString(sum[:8])+LockSuffix)
}
