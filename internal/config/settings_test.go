// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/compdoc/internal/errors"
	"grimm.is/compdoc/internal/logging"
)

const sampleConfig = `
output  = "docs/components.adoc"
title   = "Components"
locale  = "en"
version = "1.0"
sources = ["components", "/abs/more"]
include = ["**/*.hcl"]

format "html" {
  path = "docs/components.html"
}

format "pdf" {
  path = "docs/components.pdf"
}

log {
  level = "debug"
  json  = true
}
`

func TestDecode(t *testing.T) {
	cfg, err := Decode("compdoc.hcl", []byte(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "docs/components.adoc", cfg.Output)
	assert.Equal(t, "Components", cfg.Title)
	assert.Equal(t, 2, cfg.Level, "level defaults to 2")
	assert.Equal(t, []string{"components", "/abs/more"}, cfg.Sources)
	assert.Equal(t, map[string]string{
		"html": "docs/components.html",
		"pdf":  "docs/components.pdf",
	}, cfg.FormatMap())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
	assert.NoError(t, cfg.Validate())

	logCfg := cfg.LoggingConfig()
	assert.Equal(t, logging.LevelDebug, logCfg.Level)
	assert.True(t, logCfg.JSON)
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode("compdoc.hcl", []byte(`output = `))
	require.Error(t, err)
	assert.Equal(t, errors.KindInput, errors.GetKind(err))

	_, err = Decode("compdoc.hcl", []byte(`colour = "red"`))
	require.Error(t, err)
	assert.Equal(t, "compdoc.hcl", errors.GetAttributes(err)["source"])
}

func TestLoadFile_ResolvesPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "compdoc.hcl")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "docs", "components.adoc"), cfg.Output)
	assert.Equal(t, []string{filepath.Join(dir, "components"), "/abs/more"}, cfg.Sources)
	assert.Equal(t, filepath.Join(dir, "docs", "components.pdf"), cfg.FormatMap()["pdf"])

	_, err = LoadFile(filepath.Join(dir, "missing.hcl"))
	assert.Equal(t, errors.KindInput, errors.GetKind(err))
}

func TestApply(t *testing.T) {
	cfg, err := Decode("compdoc.hcl", []byte(sampleConfig))
	require.NoError(t, err)

	title := "Reference"
	level := 3
	logJSON := false
	cfg.Apply(Overrides{
		Title:   &title,
		Level:   &level,
		LogJSON: &logJSON,
		Sources: []string{"other"},
		Formats: map[string]string{"pdf": "out.pdf", "markdown": "out.md"},
	})

	assert.Equal(t, "Reference", cfg.Title)
	assert.Equal(t, 3, cfg.Level)
	assert.Equal(t, "docs/components.adoc", cfg.Output, "unset overrides keep file values")
	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, []string{"other"}, cfg.Sources)
	assert.False(t, cfg.Log.JSON)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, map[string]string{
		"html":     "docs/components.html",
		"pdf":      "out.pdf",
		"markdown": "out.md",
	}, cfg.FormatMap())

	opts := cfg.GeneratorOptions()
	assert.Equal(t, 3, opts.Level)
	assert.Equal(t, cfg.FormatMap(), opts.Formats)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.Sources = []string{"components"}
		cfg.Output = "out.adoc"
		return cfg
	}
	require.NoError(t, valid().Validate())

	tests := map[string]func(*Config){
		"no sources":      func(c *Config) { c.Sources = nil },
		"no output":       func(c *Config) { c.Output = "" },
		"level zero":      func(c *Config) { c.Level = 0 },
		"bad log level":   func(c *Config) { c.Log.Level = "loud" },
		"duplicate format": func(c *Config) {
			c.Formats = []*FormatConfig{{Name: "html", Path: "a"}, {Name: "html", Path: "b"}}
		},
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Equal(t, errors.KindValidation, errors.GetKind(err))
		})
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	example := Example()
	data := Marshal(example)

	assert.Contains(t, string(data), `format "html" {`)

	decoded, err := Decode("compdoc.hcl", data)
	require.NoError(t, err)
	assert.Equal(t, example.Output, decoded.Output)
	assert.Equal(t, example.Sources, decoded.Sources)
	assert.Equal(t, example.FormatMap(), decoded.FormatMap())
	assert.Equal(t, "info", decoded.Log.Level)
}

func TestLoad_Default(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Level)

	require.NoError(t, os.WriteFile(DefaultFile, Marshal(Example()), 0o644))
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "Components", cfg.Title)
}
