package config

import (
	"strconv"

	"github.com/nibzard/claw-todo-go/internal/store"
)

// LocateOptions returns the store location inputs for this configuration.
func (c *Config) LocateOptions() store.LocateOptions {
	return store.LocateOptions{
		Override:   c.File,
		Global:     c.Global,
		GlobalPath: c.GlobalFile,
		WorkDir:    c.WorkDir,
		FileName:   c.FileName,
	}
}

// ValidationOptions returns the schema validation inputs for this configuration.
func (c *Config) ValidationOptions() store.ValidationOptions {
	return store.ValidationOptions{SchemaPath: c.SchemaFile}
}

// Values returns every configurable field as display strings, keyed like
// the TOML file.
func (c *Config) Values() map[string]string {
	return map[string]string{
		"file":             c.File,
		"global":           strconv.FormatBool(c.Global),
		"global_file":      c.GlobalFile,
		"file_name":        c.FileName,
		"schema_file":      c.SchemaFile,
		"default_priority": c.DefaultPriority,
		"color":            strconv.FormatBool(c.Color),
		"log_level":        c.LogLevel,
		"log_format":       c.LogFormat,
		"log_timestamps":   strconv.FormatBool(c.LogTimestamps),
		"log_caller":       strconv.FormatBool(c.LogCaller),
	}
}

// Entries returns the effective configuration in a stable order with the
// source of each value.
func (cws *ConfigWithSources) Entries() []Entry {
	values := cws.Config.Values()
	fields := configFields()
	entries := make([]Entry, 0, len(fields))
	for _, name := range fields {
		source, ok := cws.Sources[name]
		if !ok {
			source = SourceDefault
		}
		entries = append(entries, Entry{Name: name, Value: values[name], Source: source})
	}
	return entries
}
