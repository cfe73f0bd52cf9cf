// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.claw-todo/config.toml or OS-specific config directory)
// 3. Project config file (.claw-todo.toml or claw-todo.toml in the working directory)
// 4. .env file in the working directory (never overrides variables already set)
// 5. Environment variables (CLAW_TODO_*, NO_COLOR)
// 6. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.claw-todo/config.toml (preferred)
// - Windows: %APPDATA%\claw-todo\config.toml
// - macOS: ~/Library/Application Support/claw-todo/config.toml
// - Linux/BSD: $XDG_CONFIG_HOME/claw-todo/config.toml or ~/.config/claw-todo/config.toml
//
// Project-level config locations (overrides user config):
// - ./.claw-todo.toml (preferred)
// - ./claw-todo.toml
package config
