package config

import "os"

// Environment variable names.
const (
	EnvFile          = "CLAW_TODO_FILE"
	EnvGlobal        = "CLAW_TODO_GLOBAL"
	EnvGlobalFile    = "CLAW_TODO_GLOBAL_FILE"
	EnvSchema        = "CLAW_TODO_SCHEMA"
	EnvPriority      = "CLAW_TODO_PRIORITY"
	EnvColor         = "CLAW_TODO_COLOR"
	EnvNoColor       = "NO_COLOR"
	EnvLogLevel      = "CLAW_TODO_LOG_LEVEL"
	EnvLogFormat     = "CLAW_TODO_LOG_FORMAT"
	EnvLogTimestamps = "CLAW_TODO_LOG_TIMESTAMPS"
	EnvLogCaller     = "CLAW_TODO_LOG_CALLER"
)

// loadFromEnvWithSources loads environment variables and updates source tracking.
func loadFromEnvWithSources(cfg *Config, sources map[string]ConfigSource) {
	loadFromEnvHelper(cfg, sources, SourceEnv)
}

// loadFromEnvHelper is the shared implementation for env loading.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnvHelper(cfg *Config, sources map[string]ConfigSource, source ConfigSource) {
	track := func(field string) {
		if sources != nil {
			sources[field] = source
		}
	}

	if v := os.Getenv(EnvFile); v != "" {
		cfg.File = v
		track("file")
	}
	if v := os.Getenv(EnvGlobal); v != "" {
		cfg.Global = boolFromString(v)
		track("global")
	}
	if v := os.Getenv(EnvGlobalFile); v != "" {
		cfg.GlobalFile = v
		track("global_file")
	}
	if v := os.Getenv(EnvSchema); v != "" {
		cfg.SchemaFile = v
		track("schema_file")
	}
	if v := os.Getenv(EnvPriority); v != "" {
		cfg.DefaultPriority = v
		track("default_priority")
	}
	if v := os.Getenv(EnvColor); v != "" {
		cfg.Color = boolFromString(v)
		track("color")
	}
	// https://no-color.org: any non-empty value disables color.
	if v := os.Getenv(EnvNoColor); v != "" {
		cfg.Color = false
		track("color")
	}

	// Logging configuration
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
		track("log_level")
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
		track("log_format")
	}
	if v := os.Getenv(EnvLogTimestamps); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		track("log_timestamps")
	}
	if v := os.Getenv(EnvLogCaller); v != "" {
		cfg.LogCaller = boolFromString(v)
		track("log_caller")
	}
}
