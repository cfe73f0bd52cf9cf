package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/nibzard/claw-todo-go/internal/logging"
	"github.com/nibzard/claw-todo-go/internal/utils"
)

// LoadWithSources loads configuration from multiple sources in priority
// order and tracks the source of each value:
// 1. Defaults
// 2. User config file
// 3. Project config file
// 4. .env file
// 5. Environment variables
// 6. CLI flags
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}

	cws := &ConfigWithSources{
		Config:  &Config{WorkDir: wd},
		Sources: make(map[string]ConfigSource),
	}
	cfg := cws.Config

	// 1. Set defaults (all fields start with default source)
	setDefaults(cfg)
	for _, field := range configFields() {
		cws.Sources[field] = SourceDefault
	}

	// 2. Try to load from user config file
	if userConfigFile := findUserConfigFile(); userConfigFile != "" {
		if err := loadConfigFileWithSources(cfg, userConfigFile, cws.Sources, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
		cws.UserFile = userConfigFile
	}

	// 3. Try to load from project config file (overrides user config)
	if projectConfigFile := findProjectConfigFile(wd); projectConfigFile != "" {
		if err := loadConfigFileWithSources(cfg, projectConfigFile, cws.Sources, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
		cws.ProjectFile = projectConfigFile
	}

	// 4. Load .env into the process environment
	envFile, err := loadDotEnv(wd)
	if err != nil {
		return nil, err
	}
	cws.EnvFile = envFile

	// 5. Override from environment
	loadFromEnvWithSources(cfg, cws.Sources)

	// 6. Parse CLI flags (they override everything)
	if err := parseFlagsWithSources(cfg, fs, args, cws.Sources); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 7. Compute derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cws, nil
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"file",
		"global",
		"global_file",
		"file_name",
		"schema_file",
		"default_priority",
		"color",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// loadConfigFileWithSources loads TOML config and updates source tracking.
// Only keys present in the file are applied.
func loadConfigFileWithSources(cfg *Config, path string, sources map[string]ConfigSource, source ConfigSource) error {
	tempCfg := &Config{}
	md, err := toml.DecodeFile(path, tempCfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown key %q", undecoded[0].String())
	}

	apply := func(key string, fn func()) {
		if md.IsDefined(key) {
			fn()
			sources[key] = source
		}
	}
	apply("file", func() { cfg.File = tempCfg.File })
	apply("global", func() { cfg.Global = tempCfg.Global })
	apply("global_file", func() { cfg.GlobalFile = tempCfg.GlobalFile })
	apply("file_name", func() { cfg.FileName = tempCfg.FileName })
	apply("schema_file", func() { cfg.SchemaFile = resolveFrom(filepath.Dir(path), tempCfg.SchemaFile) })
	apply("default_priority", func() { cfg.DefaultPriority = tempCfg.DefaultPriority })
	apply("color", func() { cfg.Color = tempCfg.Color })
	apply("log_level", func() { cfg.LogLevel = tempCfg.LogLevel })
	apply("log_format", func() { cfg.LogFormat = tempCfg.LogFormat })
	apply("log_timestamps", func() { cfg.LogTimestamps = tempCfg.LogTimestamps })
	apply("log_caller", func() { cfg.LogCaller = tempCfg.LogCaller })

	return nil
}

// loadDotEnv loads dir/.env if present. Variables already set in the
// environment keep their values.
func loadDotEnv(dir string) (string, error) {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return "", fmt.Errorf("loading %s: %w", path, err)
	}
	return path, nil
}

// finalizeConfig computes derived values and validates settings.
func finalizeConfig(cfg *Config) error {
	cfg.File = utils.ExpandPath(cfg.File)
	cfg.GlobalFile = utils.ExpandPath(cfg.GlobalFile)
	cfg.SchemaFile = utils.ExpandPath(cfg.SchemaFile)

	if cfg.FileName == "" {
		cfg.FileName = DefaultFileName
	}
	if filepath.Base(cfg.FileName) != cfg.FileName {
		return fmt.Errorf("file_name must be a plain file name, got %q", cfg.FileName)
	}

	if cfg.File != "" {
		cfg.File = resolveFrom(cfg.WorkDir, cfg.File)
	}
	if cfg.SchemaFile != "" {
		cfg.SchemaFile = resolveFrom(cfg.WorkDir, cfg.SchemaFile)
	}

	if !logging.ValidLevel(cfg.LogLevel) {
		return fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}
	if !logging.ValidFormat(cfg.LogFormat) {
		return fmt.Errorf("invalid log format %q", cfg.LogFormat)
	}

	return nil
}

func resolveFrom(base, p string) string {
	if p == "" {
		return p
	}
	p = utils.ExpandPath(p)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}
