package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# claw-todo configuration file
# Values can be overridden by environment variables (CLAW_TODO_*) or CLI flags.

# Explicit task file. When empty, claw-todo uses the nearest TODO.json found
# from the working directory upwards, or creates one in the working directory.
# file = "~/notes/TODO.json"

# Name of the task file searched for from the working directory
file_name = "TODO.json"

# Always use the global task file
global = false

# Global task file (supports ~ expansion and %VAR% on Windows)
# global_file = "~/.claw-todo/TODO.json"

# JSON Schema used by "claw-todo doctor" (bundled schema when empty)
# schema_file = "todo.schema.json"

# Priority for new tasks when none is given: high, medium or low
default_priority = "medium"

# Colored output (NO_COLOR=1 disables it)
color = true

# Logging (written to stderr)
log_level = "warn"   # debug, info, warn, error
log_format = "text"  # text, json, logfmt
log_timestamps = false
log_caller = false
`
}
