// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package metadata

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"grimm.is/compdoc/internal/errors"
	"grimm.is/compdoc/internal/i18n"
	"grimm.is/compdoc/internal/logging"
)

// DefaultInclude selects every descriptor file below a source.
var DefaultInclude = []string{"**/*.hcl", "**/*.go"}

// LoadOptions controls which files of a source are read.
type LoadOptions struct {
	// Include holds doublestar patterns, relative to each source directory.
	// Empty means DefaultInclude.
	Include []string
}

// Set is the result of loading metadata sources.
type Set struct {
	Components []*ComponentDescriptor
	Catalog    *i18n.Catalog
}

// Component returns the component with the given name, or nil.
func (s *Set) Component(name string) *ComponentDescriptor {
	for _, c := range s.Components {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Load reads component descriptors and message bundles from sources. A source
// is a directory or a single descriptor file. Any unreadable or invalid input
// fails the whole load.
func Load(sources []string, opts LoadOptions) (*Set, error) {
	if len(sources) == 0 {
		return nil, errors.New(errors.KindValidation, "no metadata sources given")
	}

	include := opts.Include
	if len(include) == 0 {
		include = DefaultInclude
	}
	for _, pattern := range include {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Attr(errors.Errorf(errors.KindValidation, "invalid include pattern %q", pattern), "pattern", pattern)
		}
	}

	log := logging.WithComponent("loader")
	set := &Set{Catalog: i18n.NewCatalog()}
	names := make(map[string]string)

	for _, src := range sources {
		components, err := loadSource(src, include, set.Catalog)
		if err != nil {
			return nil, err
		}
		if len(components) == 0 {
			return nil, errors.WithSource(errors.New(errors.KindInput, "source contains no component descriptors"), src)
		}

		for _, c := range components {
			if prev, dup := names[c.Name]; dup {
				err := errors.Errorf(errors.KindInput, "component %s is declared in both %s and %s", c.Name, prev, c.Source)
				return nil, errors.WithComponent(err, c.Name, c.Source)
			}
			if err := Validate(c); err != nil {
				return nil, err
			}
			names[c.Name] = c.Source
			set.Components = append(set.Components, c)
		}
		log.Debug("source loaded", "source", src, "components", len(components))
	}

	log.Info("metadata loaded", "components", len(set.Components), "locales", len(set.Catalog.Locales()))
	return set, nil
}

// loadSource reads one source. Descriptor files are handled in lexical order;
// components keep that order, then declaration order within a file.
func loadSource(src string, include []string, catalog *i18n.Catalog) ([]*ComponentDescriptor, error) {
	info, err := os.Stat(src)
	if err != nil {
		return nil, errors.WithSource(errors.Wrap(err, errors.KindInput, "cannot read metadata source"), src)
	}

	var files []string
	if info.IsDir() {
		files, err = listSource(src, include)
		if err != nil {
			return nil, err
		}
	} else {
		files = []string{src}
		if bundles, _ := filepath.Glob(filepath.Join(filepath.Dir(src), i18n.BundleBaseName+"*.properties")); len(bundles) > 0 {
			files = append(files, bundles...)
		}
	}
	sort.Strings(files)

	fileOrder := make(map[string]int, len(files))
	var (
		components []*ComponentDescriptor
		goParser   *GoParser
	)

	for i, path := range files {
		fileOrder[path] = i

		if _, ok := i18n.BundleLocale(path); ok {
			if err := catalog.LoadFile(path); err != nil {
				return nil, err
			}
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.WithSource(errors.Wrap(err, errors.KindInput, "cannot read metadata file"), path)
		}

		switch {
		case filepath.Ext(path) == ".hcl":
			parsed, err := ParseHCL(data, path)
			if err != nil {
				return nil, err
			}
			components = append(components, parsed...)
		case isGoSource(path):
			if goParser == nil {
				goParser = NewGoParser()
			}
			if err := goParser.ParseFile(path, data); err != nil {
				return nil, err
			}
		default:
			return nil, errors.WithSource(errors.New(errors.KindInput, "unsupported metadata file"), path)
		}
	}

	if goParser != nil {
		parsed, err := goParser.Components()
		if err != nil {
			return nil, err
		}
		components = append(components, parsed...)
	}

	sort.SliceStable(components, func(i, j int) bool {
		return fileOrder[components[i].Source] < fileOrder[components[j].Source]
	})
	return components, nil
}

// listSource returns the descriptor files and message bundles below dir.
func listSource(dir string, include []string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if _, ok := i18n.BundleLocale(path); ok {
			files = append(files, path)
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if !matchAny(include, filepath.ToSlash(rel)) {
			return nil
		}
		if filepath.Ext(path) == ".hcl" || isGoSource(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.WithSource(errors.Wrap(err, errors.KindInput, "cannot list metadata source"), dir)
	}

	return files, nil
}

func matchAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
