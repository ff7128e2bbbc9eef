// Package config provides reading and writing of odin configuration.
// Supports both global (~/.odin/config.yaml) and local (.odin/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.odin/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is repository-specific config in .odin/config.yaml
	ScopeLocal
)

// Author represents the author metadata stored in the repository config.
type Author struct {
	Name  string `yaml:"name,omitempty"`
	Email string `yaml:"email,omitempty"`
}

// Store holds content store configuration options.
type Store struct {
	// Dir overrides the content directory. Relative paths resolve against
	// the repository root.
	Dir       string `yaml:"dir,omitempty"`
	VerifyPDF *bool  `yaml:"verify_pdf,omitempty"`
}

// Limits holds size limit configuration options.
type Limits struct {
	MaxSource *int64 `yaml:"max_source,omitempty"`
}

// DefaultMaxSource is the largest accepted source file when not configured.
const DefaultMaxSource = 512 * 1024 * 1024 // 512 MB

// Validation bounds for configuration values.
const (
	MinMaxSource = 1
	MaxMaxSource = 64 * 1024 * 1024 * 1024 // 64 GB
)

// Config contains configuration for odin.
type Config struct {
	Author Author `yaml:"author,omitempty"`
	Store  Store  `yaml:"store,omitempty"`
	Limits Limits `yaml:"limits,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Limits.MaxSource != nil {
		v := *c.Limits.MaxSource
		if v < MinMaxSource || v > MaxMaxSource {
			return fmt.Errorf("%w: max_source must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxSource, int64(MaxMaxSource), v)
		}
	}
	return nil
}

// VerifyPDF reports whether sources must parse as PDF (defaults to false).
func (c *Config) VerifyPDF() bool {
	if c.Store.VerifyPDF == nil {
		return false
	}
	return *c.Store.VerifyPDF
}

// MaxSource returns the maximum source file size in bytes (defaults to 512 MB).
func (c *Config) MaxSource() int64 {
	if c.Limits.MaxSource == nil {
		return DefaultMaxSource
	}
	return *c.Limits.MaxSource
}

// root is the directory holding the local .odin directory. Empty means the
// working directory.
var root string

// SetRoot points local config at the repository found by discovery.
func SetRoot(dir string) {
	root = dir
}

// LocalPath returns the path to the local (repository) config file.
func LocalPath() string {
	return filepath.Join(root, ".odin", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.odin/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".odin", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	// Check if local config exists
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	// Fall back to global
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
