package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/Limetric/schemaferry/generator"
	"github.com/Limetric/schemaferry/processor"
)

// Config holds the TOML-driven runner configuration.
type Config struct {
	Dialect             string            `toml:"dialect"`
	DSN                 string            `toml:"dsn"`
	DefaultSchema       string            `toml:"default_schema"`
	MigrationsDir       string            `toml:"migrations_dir"`
	VersionTable        string            `toml:"version_table"`
	VersionSchema       string            `toml:"version_schema"`
	Compatibility       string            `toml:"compatibility"` // strict|loose
	StrictFeatures      bool              `toml:"strict_features"`
	UnquotedIdentifiers bool              `toml:"unquoted_identifiers"`
	Preview             bool              `toml:"preview"`
	Timeout             string            `toml:"timeout"`
	Parameters          map[string]string `toml:"parameters"`

	timeout time.Duration
	// configDir is the directory containing the TOML file, used to resolve
	// relative paths.
	configDir string
}

// loadConfig reads a TOML config file and returns a Config with defaults
// applied.
func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Config{
		MigrationsDir: "migrations",
		VersionTable:  "VersionInfo",
		Compatibility: "strict",
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if unknown := md.Undecoded(); len(unknown) > 0 {
		keys := make([]string, len(unknown))
		for i, k := range unknown {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	cfg.configDir = filepath.Dir(absPath)

	cfg.Dialect = strings.ToLower(strings.TrimSpace(cfg.Dialect))
	if cfg.Dialect == "" {
		return nil, fmt.Errorf("dialect is required (must be one of: %s)", strings.Join(generator.Dialects(), ", "))
	}
	if !slices.Contains(generator.Dialects(), cfg.Dialect) {
		return nil, fmt.Errorf("dialect must be one of: %s", strings.Join(generator.Dialects(), ", "))
	}

	switch cfg.Compatibility {
	case "strict", "loose":
	default:
		return nil, fmt.Errorf("compatibility must be one of: strict, loose")
	}

	if cfg.Timeout != "" {
		d, err := time.ParseDuration(cfg.Timeout)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("timeout must be a non-negative duration such as \"30s\"")
		}
		cfg.timeout = d
	}

	if strings.TrimSpace(cfg.MigrationsDir) == "" {
		return nil, fmt.Errorf("migrations_dir must not be empty")
	}
	if strings.TrimSpace(cfg.VersionTable) == "" {
		return nil, fmt.Errorf("version_table must not be empty")
	}

	return &cfg, nil
}

// checkConnection runs after command-line overrides, since --preview can
// lift the driver and dsn requirements.
func (c *Config) checkConnection() error {
	if c.Preview {
		return nil
	}
	if !processor.HasDriver(c.Dialect) {
		return fmt.Errorf("dialect %s has no bundled driver; set preview = true to generate SQL only", c.Dialect)
	}
	if c.DSN == "" {
		return fmt.Errorf("dsn is required unless preview = true")
	}
	return nil
}

// resolvePath resolves a path relative to the config file directory.
func (c *Config) resolvePath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.configDir, p)
}

func (c *Config) generatorOptions() generator.Options {
	opts := generator.Options{
		StrictFeatures:      c.StrictFeatures,
		UnquotedIdentifiers: c.UnquotedIdentifiers,
	}
	if c.Compatibility == "loose" {
		opts.Compatibility = generator.Loose
	}
	return opts
}

// connects reports whether a database connection should be opened. Preview
// still connects when it can, so pending migrations are computed against
// the real version table.
func (c *Config) connects() bool {
	return c.DSN != "" && processor.HasDriver(c.Dialect)
}
