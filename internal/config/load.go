// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package config

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"grimm.is/compdoc/internal/errors"
)

// LoadFile reads a configuration file. Relative paths inside it are
// resolved against the file's directory.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithSource(errors.Wrap(err, errors.KindInput, "failed to read config file"), path)
	}

	cfg, err := Decode(path, data)
	if err != nil {
		return nil, err
	}
	cfg.resolvePaths(filepath.Dir(path))
	return cfg, nil
}

// Decode decodes configuration source. filename is used in diagnostics.
func Decode(filename string, data []byte) (*Config, error) {
	var cfg Config
	if err := hclsimple.Decode(filename, data, nil, &cfg); err != nil {
		return nil, errors.WithSource(errors.Wrap(err, errors.KindInput, "failed to decode config"), filename)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Load returns the configuration of path, or of DefaultFile when path is
// empty and that file exists, or Default otherwise.
func Load(path string) (*Config, error) {
	if path != "" {
		return LoadFile(path)
	}
	if _, err := os.Stat(DefaultFile); err == nil {
		return LoadFile(DefaultFile)
	}
	return Default(), nil
}

func sortedNames(m map[string]string) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
