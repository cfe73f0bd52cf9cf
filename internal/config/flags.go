package config

import (
	"flag"

	"github.com/nibzard/claw-todo-go/internal/tododir"
)

// parseFlagsWithSources parses CLI flags and updates source tracking.
func parseFlagsWithSources(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	return parseFlagsHelper(cfg, fs, args, sources, SourceFlag)
}

// parseFlagsHelper is the shared implementation for flag parsing.
// Flags are bound to locals and only applied when explicitly set, so a flag
// left at its default never masks a value from a file or the environment.
// If sources is non-nil, it tracks the source of each value.
func parseFlagsHelper(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource, source ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet(tododir.AppName, flag.ContinueOnError)
	}

	var (
		file, globalFile, schemaFile string
		global, noColor              bool
		logLevel, logFormat          string
		logTimestamps, logCaller     bool
	)

	fs.StringVar(&file, "file", cfg.File, "Path to the task file")
	fs.BoolVar(&global, "g", cfg.Global, "Use the global task file (shorthand)")
	fs.BoolVar(&global, "global", cfg.Global, "Use the global task file")
	fs.StringVar(&globalFile, "global-file", cfg.GlobalFile, "Path to the global task file")
	fs.StringVar(&schemaFile, "schema", cfg.SchemaFile, "Path to a JSON Schema used by doctor")
	fs.BoolVar(&noColor, "no-color", !cfg.Color, "Disable colored output")
	fs.StringVar(&logLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&logFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&logTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&logCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Map flag names to source field names
	flagToSource := map[string]string{
		"file":           "file",
		"g":              "global",
		"global":         "global",
		"global-file":    "global_file",
		"schema":         "schema_file",
		"no-color":       "color",
		"log-level":      "log_level",
		"log-format":     "log_format",
		"log-timestamps": "log_timestamps",
		"log-caller":     "log_caller",
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "file":
			cfg.File = file
		case "g", "global":
			cfg.Global = global
		case "global-file":
			cfg.GlobalFile = globalFile
		case "schema":
			cfg.SchemaFile = schemaFile
		case "no-color":
			cfg.Color = !noColor
		case "log-level":
			cfg.LogLevel = logLevel
		case "log-format":
			cfg.LogFormat = logFormat
		case "log-timestamps":
			cfg.LogTimestamps = logTimestamps
		case "log-caller":
			cfg.LogCaller = logCaller
		}
		if sources == nil {
			return
		}
		if fieldName, ok := flagToSource[f.Name]; ok {
			sources[fieldName] = source
		}
	})

	return nil
}
