// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package config holds the generator configuration: an HCL file, defaults
// and command-line overrides.
package config

import (
	"path/filepath"

	"grimm.is/compdoc/internal/configdoc"
	"grimm.is/compdoc/internal/errors"
	"grimm.is/compdoc/internal/generator"
	"grimm.is/compdoc/internal/logging"
)

// DefaultFile is the configuration file looked up in the working directory.
const DefaultFile = "compdoc.hcl"

// Config is the decoded configuration file.
type Config struct {
	Output      string          `hcl:"output,optional"`
	Title       string          `hcl:"title,optional"`
	Level       int             `hcl:"level,optional"`
	Locale      string          `hcl:"locale,optional"`
	Version     string          `hcl:"version,optional"`
	WorkDir     string          `hcl:"work_dir,optional"`
	Sources     []string        `hcl:"sources,optional"`
	Include     []string        `hcl:"include,optional"`
	MetricsFile string          `hcl:"metrics_file,optional"`
	Formats     []*FormatConfig `hcl:"format,block"`
	Log         *LogConfig      `hcl:"log,block"`
}

// FormatConfig requests one secondary output.
//
//	format "html" {
//	  path = "docs/components.html"
//	}
type FormatConfig struct {
	Name string `hcl:"name,label"`
	Path string `hcl:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `hcl:"level,optional"`
	JSON  bool   `hcl:"json,optional"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Level: configdoc.DefaultLevel,
		Log:   &LogConfig{Level: "info"},
	}
}

// applyDefaults fills unset values.
func (c *Config) applyDefaults() {
	if c.Level == 0 {
		c.Level = configdoc.DefaultLevel
	}
	if c.Log == nil {
		c.Log = &LogConfig{}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// resolvePaths makes relative paths relative to base.
func (c *Config) resolvePaths(base string) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}

	c.Output = resolve(c.Output)
	c.WorkDir = resolve(c.WorkDir)
	c.MetricsFile = resolve(c.MetricsFile)
	for i, s := range c.Sources {
		c.Sources[i] = resolve(s)
	}
	for _, f := range c.Formats {
		f.Path = resolve(f.Path)
	}
}

// FormatMap returns the requested formats keyed by name.
func (c *Config) FormatMap() map[string]string {
	m := make(map[string]string, len(c.Formats))
	for _, f := range c.Formats {
		m[f.Name] = f.Path
	}
	return m
}

// SetFormat adds or replaces a format destination.
func (c *Config) SetFormat(name, path string) {
	for _, f := range c.Formats {
		if f.Name == name {
			f.Path = path
			return
		}
	}
	c.Formats = append(c.Formats, &FormatConfig{Name: name, Path: path})
}

// Validate checks the configuration for a generate run.
func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return errors.New(errors.KindValidation, "no metadata sources configured")
	}
	if c.Output == "" {
		return errors.New(errors.KindValidation, "no output file configured")
	}
	if c.Level < 1 {
		return errors.Attr(errors.Errorf(errors.KindValidation, "level must be at least 1, got %d", c.Level), "level", c.Level)
	}

	seen := make(map[string]bool)
	for _, f := range c.Formats {
		if seen[f.Name] {
			return errors.WithFormat(errors.Errorf(errors.KindValidation, "format %s is configured twice", f.Name), f.Name)
		}
		seen[f.Name] = true
	}

	if c.Log != nil && c.Log.Level != "" {
		if _, err := logging.ParseLevel(c.Log.Level); err != nil {
			return errors.Wrap(err, errors.KindValidation, "invalid log level")
		}
	}
	return nil
}

// GeneratorOptions converts the configuration to generator options.
func (c *Config) GeneratorOptions() generator.Options {
	return generator.Options{
		Sources: c.Sources,
		Include: c.Include,
		Output:  c.Output,
		Title:   c.Title,
		Version: c.Version,
		Locale:  c.Locale,
		Level:   c.Level,
		Formats: c.FormatMap(),
		WorkDir: c.WorkDir,
	}
}

// LoggingConfig converts the log block to a logger configuration.
func (c *Config) LoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	if c.Log == nil {
		return cfg
	}
	if level, err := logging.ParseLevel(c.Log.Level); err == nil {
		cfg.Level = level
	}
	cfg.JSON = c.Log.JSON
	return cfg
}

// Overrides are command-line values; nil fields keep the file value.
type Overrides struct {
	Output      *string
	Title       *string
	Level       *int
	Locale      *string
	Version     *string
	WorkDir     *string
	MetricsFile *string
	LogLevel    *string
	LogJSON     *bool
	Sources     []string
	Include     []string
	Formats     map[string]string
}

// Apply overlays o onto c.
func (c *Config) Apply(o Overrides) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	setString(&c.Output, o.Output)
	setString(&c.Title, o.Title)
	setString(&c.Locale, o.Locale)
	setString(&c.Version, o.Version)
	setString(&c.WorkDir, o.WorkDir)
	setString(&c.MetricsFile, o.MetricsFile)
	if o.Level != nil {
		c.Level = *o.Level
	}

	if len(o.Sources) > 0 {
		c.Sources = o.Sources
	}
	if len(o.Include) > 0 {
		c.Include = o.Include
	}
	for _, name := range sortedNames(o.Formats) {
		c.SetFormat(name, o.Formats[name])
	}

	if c.Log == nil {
		c.Log = &LogConfig{}
	}
	setString(&c.Log.Level, o.LogLevel)
	if o.LogJSON != nil {
		c.Log.JSON = *o.LogJSON
	}
}
