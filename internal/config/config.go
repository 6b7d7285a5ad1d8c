// Package config loads the project-level `.boundscheck.toml` file that the
// cmd/boundscheck driver reads for its default client context and log
// level, the same shape and library the teacher compiler's depm.LoadModule
// uses for its own module file.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
)

// FileName is the configuration file boundscheck looks for in the current
// directory, mirroring the teacher's ChaiModuleFileName convention.
const FileName = ".boundscheck.toml"

// tomlConfig is the on-disk shape of the configuration file.
// NonNullableByDefault is a *bool, not bool, so Load can tell an omitted
// key apart from an explicit `false` and keep Default()'s true in the
// former case.
type tomlConfig struct {
	NonNullableByDefault *bool  `toml:"non-nullable-by-default"`
	LogLevel             string `toml:"log-level"`
	HierarchyFile        string `toml:"hierarchy-file"`
}

// Config is the validated, in-memory project configuration.
type Config struct {
	// NonNullableByDefault seeds the default client context's
	// NonNullableByDefault flag when a CLI invocation does not override it.
	NonNullableByDefault bool

	// LogLevel is one of "error", "warn", "info", "debug", matching the
	// teacher cmd package's -ll/--loglevel flag values.
	LogLevel string

	// HierarchyFile is the path, relative to the config file's directory,
	// to the YAML class-hierarchy fixture the `check` subcommand loads by
	// default.
	HierarchyFile string
}

// Default returns the configuration used when no `.boundscheck.toml` is
// present.
func Default() *Config {
	return &Config{
		NonNullableByDefault: true,
		LogLevel:             "info",
		HierarchyFile:        "hierarchy.yaml",
	}
}

// Load reads and validates the configuration file at path. If path does not
// exist, Load returns Default() rather than an error -- the file is
// optional, exactly as the teacher's own tooling treats CLI flags as
// overriding, not requiring, a project file.
func Load(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: reading %q: %w", path, err)
	}

	var raw tomlConfig
	if err := toml.Unmarshal(buf, &raw); err != nil {
		return nil, fmt.Errorf("config: parsing %q: %w", path, err)
	}

	cfg := Default()
	if raw.NonNullableByDefault != nil {
		cfg.NonNullableByDefault = *raw.NonNullableByDefault
	}
	if raw.LogLevel != "" {
		cfg.LogLevel = raw.LogLevel
	}
	if raw.HierarchyFile != "" {
		cfg.HierarchyFile = raw.HierarchyFile
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.LogLevel {
	case "error", "warn", "info", "debug":
		return nil
	default:
		return fmt.Errorf("config: invalid log-level %q", c.LogLevel)
	}
}
