// Package config loads the birch.toml workspace manifest. Every setting has
// a default, so tools work without a manifest at all.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file birch looks for when resolving a workspace.
const ManifestName = "birch.toml"

// Config is the workspace configuration.
type Config struct {
	Source SourceConfig `toml:"source"`
	Check  CheckConfig  `toml:"check"`
	Cache  CacheConfig  `toml:"cache"`
}

// SourceConfig selects which files count as sources.
type SourceConfig struct {
	// Extensions lists the file suffixes scanned in directory mode.
	Extensions []string `toml:"extensions"`
}

// CheckConfig tunes the check pipeline.
type CheckConfig struct {
	// MaxProblems caps the diagnostics printed per file.
	MaxProblems int `toml:"max_problems"`
	// Jobs limits parallelism; 0 means one worker per CPU.
	Jobs int `toml:"jobs"`
}

// CacheConfig controls the on-disk result cache.
type CacheConfig struct {
	Enabled bool `toml:"enabled"`
	// Dir overrides the XDG cache location.
	Dir string `toml:"dir"`
}

var (
	// ErrBadExtension indicates a [source].extensions entry without a leading dot.
	ErrBadExtension = errors.New("extensions must start with a dot")
	// ErrBadJobs indicates a negative [check].jobs value.
	ErrBadJobs = errors.New("jobs must not be negative")
	// ErrBadMaxProblems indicates a non-positive [check].max_problems value.
	ErrBadMaxProblems = errors.New("max_problems must be positive")
)

// Default returns the configuration used when no manifest exists.
func Default() *Config {
	return &Config{
		Source: SourceConfig{Extensions: []string{".br"}},
		Check:  CheckConfig{MaxProblems: 20},
		Cache:  CacheConfig{Enabled: true},
	}
}

// Find walks up from startDir to locate the manifest.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads and validates a manifest, filling defaults for unset sections.
func Load(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	// A decoded zero wins over the default only when the key was written.
	if !meta.IsDefined("source", "extensions") {
		cfg.Source.Extensions = Default().Source.Extensions
	}
	if !meta.IsDefined("check", "max_problems") {
		cfg.Check.MaxProblems = Default().Check.MaxProblems
	}
	if !meta.IsDefined("cache", "enabled") {
		cfg.Cache.Enabled = true
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault finds and loads the manifest for startDir, falling back to
// defaults when there is none. The returned path is "" in the fallback case.
func LoadOrDefault(startDir string) (*Config, string, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

func (c *Config) validate() error {
	for _, ext := range c.Source.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("invalid extension %q: %w", ext, ErrBadExtension)
		}
	}
	if c.Check.Jobs < 0 {
		return fmt.Errorf("invalid jobs %d: %w", c.Check.Jobs, ErrBadJobs)
	}
	if c.Check.MaxProblems <= 0 {
		return fmt.Errorf("invalid max_problems %d: %w", c.Check.MaxProblems, ErrBadMaxProblems)
	}
	return nil
}
