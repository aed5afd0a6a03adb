// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/playbook/lib/render"
	"github.com/bureau-foundation/playbook/lib/scenario"
	"github.com/bureau-foundation/playbook/lib/snapshot"
)

// EnvironmentVariable names the config file when --config is absent.
const EnvironmentVariable = "PLAYBOOK_CONFIG"

// Config is the master configuration for playbook.
type Config struct {
	// Name is the title shown in the catalog and gallery header.
	Name string `yaml:"name"`

	// Snapshot configures preview capture.
	Snapshot SnapshotConfig `yaml:"snapshot"`

	// Export configures where `playbook snapshot` writes its output.
	Export ExportConfig `yaml:"export"`
}

// SnapshotConfig configures the preview pipeline.
type SnapshotConfig struct {
	// Limit is how many scenarios are captured eagerly. The rest are
	// captured when selected.
	Limit int `yaml:"limit"`

	// ColorScheme is "light" or "dark".
	ColorScheme string `yaml:"color_scheme"`

	// Profile is the color fidelity of captured frames: truecolor,
	// ansi256, ansi, or ascii.
	Profile string `yaml:"profile"`

	// Concurrency bounds how many captures wait at once.
	Concurrency int `yaml:"concurrency"`

	// Width and Height fix the screen size Fill layouts expand to.
	// Zero means the terminal's size.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ExportConfig configures snapshot export.
type ExportConfig struct {
	// Dir is the output directory for per-scenario files.
	Dir string `yaml:"dir"`

	// Compression is the bundle compression: zstd, lz4, or none.
	Compression string `yaml:"compression"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Name: "PLAYBOOK",
		Snapshot: SnapshotConfig{
			Limit:       snapshot.DefaultLimit,
			ColorScheme: "light",
			Profile:     "ansi256",
			Concurrency: snapshot.DefaultConcurrency,
		},
		Export: ExportConfig{
			Dir:         "snapshots",
			Compression: "zstd",
		},
	}
}

// Load loads configuration from the file named by PLAYBOOK_CONFIG, or
// returns Default when the variable is unset.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from path, overlaying Default.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.expandVariables()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// loadFile merges a single configuration file into the current config.
// JSONC is normalized to plain JSON first, which the YAML decoder reads
// as a subset of YAML.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Export.Dir = expandVars(c.Export.Dir, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if c.Snapshot.Limit < 0 {
		errs = append(errs, fmt.Errorf("snapshot.limit must be >= 0, got %d", c.Snapshot.Limit))
	}
	if _, ok := scenario.ParseColorScheme(c.Snapshot.ColorScheme); !ok {
		errs = append(errs, fmt.Errorf("snapshot.color_scheme must be light or dark, got %q", c.Snapshot.ColorScheme))
	}
	if _, err := render.ParseProfile(c.Snapshot.Profile); err != nil {
		errs = append(errs, fmt.Errorf("snapshot.profile: %w", err))
	}
	if c.Snapshot.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("snapshot.concurrency must be >= 1, got %d", c.Snapshot.Concurrency))
	}
	if c.Snapshot.Width < 0 || c.Snapshot.Height < 0 {
		errs = append(errs, fmt.Errorf("snapshot.width and snapshot.height must be >= 0"))
	}
	if !contains([]string{"zstd", "lz4", "none"}, c.Export.Compression) {
		errs = append(errs, fmt.Errorf("export.compression must be one of: zstd, lz4, none; got %q", c.Export.Compression))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func contains(slice []string, s string) bool {
	for _, item := range slice {
		if item == s {
			return true
		}
	}
	return false
}

// Screen returns the configured screen size, or the terminal's size
// when none is configured.
func (c *Config) Screen() scenario.Size {
	if c.Snapshot.Width > 0 && c.Snapshot.Height > 0 {
		return scenario.Size{Width: c.Snapshot.Width, Height: c.Snapshot.Height}
	}
	return render.Screen()
}

// Pipeline converts the snapshot section into a pipeline config. The
// caller supplies the clock and logger.
func (c *Config) Pipeline() (snapshot.Config, error) {
	scheme, ok := scenario.ParseColorScheme(c.Snapshot.ColorScheme)
	if !ok {
		return snapshot.Config{}, fmt.Errorf("unknown color scheme %q", c.Snapshot.ColorScheme)
	}
	profile, err := render.ParseProfile(c.Snapshot.Profile)
	if err != nil {
		return snapshot.Config{}, err
	}
	limit := c.Snapshot.Limit
	if limit == 0 {
		// Zero in the pipeline means "default"; here it means none.
		limit = -1
	}
	return snapshot.Config{
		Limit:       limit,
		Scheme:      scheme,
		Profile:     profile,
		Screen:      c.Screen(),
		Concurrency: c.Snapshot.Concurrency,
	}, nil
}
