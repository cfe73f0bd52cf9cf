package config

import "github.com/nibzard/claw-todo-go/internal/tododir"

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource

	// Files that contributed to Config; empty when not present.
	UserFile    string
	ProjectFile string
	EnvFile     string
}

// Default values.
const (
	DefaultFileName  = tododir.DefaultStoreFile
	DefaultPriority  = "medium"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
	DefaultColor     = true
)

// Config holds the full configuration for claw-todo.
type Config struct {
	// Store location
	File       string `toml:"file"`        // Explicit store document path
	Global     bool   `toml:"global"`      // Use GlobalFile instead of the project document
	GlobalFile string `toml:"global_file"` // Defaults to ~/.claw-todo/TODO.json
	FileName   string `toml:"file_name"`   // Document name searched for from the working directory

	// Validation
	SchemaFile string `toml:"schema_file"` // Custom JSON Schema for doctor; empty uses the bundled one

	// Task defaults
	DefaultPriority string `toml:"default_priority"`

	// Output
	Color bool `toml:"color"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Working directory (computed)
	WorkDir string `toml:"-"`
}

// Entry is one configuration value for display.
type Entry struct {
	Name   string
	Value  string
	Source ConfigSource
}
