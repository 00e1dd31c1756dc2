// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"grimm.is/compdoc/internal/i18n"
	"grimm.is/compdoc/internal/metadata"
)

// DefaultLevel is the heading level of component sections.
const DefaultLevel = 2

// Placeholders written for absent values.
const (
	NoDefault        = "-"
	NoElementDefault = "<empty>"
	NoType           = "-"
	AlwaysEnabled    = "Always enabled"
)

// Document is a rendered documentation model, independent of output format.
type Document struct {
	Title    string
	Version  string
	Level    int
	Locale   string
	Sections []*Section
}

// Section documents one component.
type Section struct {
	Name        string
	Family      string
	Title       string
	Description string
	Rows        []Row

	Component *metadata.ComponentDescriptor
}

// Row is one line of a configuration table.
type Row struct {
	DisplayName string
	Description string
	Default     string
	Condition   string
	Path        string
	Type        string

	ValueType string
	Depth     int
}

// Cells returns the row's table cells in column order.
func (r Row) Cells() []string {
	return []string{r.DisplayName, r.Description, r.Default, r.Condition, r.Path, r.Type}
}

// Columns are the configuration table headers, matching Row.Cells.
var Columns = []string{
	"Display Name",
	"Description",
	"Default Value",
	"Enabled If",
	"Configuration Path",
	"Configuration Type",
}

// Options configure document building.
type Options struct {
	Title   string
	Version string
	Level   int
	Locale  string
}

// Build creates the document of components, resolving texts from catalog
// for opts.Locale. A nil catalog keeps the declared texts.
func Build(components []*metadata.ComponentDescriptor, catalog *i18n.Catalog, opts Options) *Document {
	level := opts.Level
	if level < 1 {
		level = DefaultLevel
	}

	var loc *i18n.Localizer
	if catalog != nil {
		loc = catalog.For(i18n.NormalizeLocale(opts.Locale))
	}

	doc := &Document{
		Title:   opts.Title,
		Version: opts.Version,
		Level:   level,
		Locale:  opts.Locale,
	}
	for _, c := range components {
		doc.Sections = append(doc.Sections, BuildSection(c, loc))
	}
	return doc
}

// BuildSection localizes and flattens one component.
func BuildSection(c *metadata.ComponentDescriptor, loc *i18n.Localizer) *Section {
	title := c.DisplayName
	if title == "" {
		title = c.Name
	}

	return &Section{
		Name:        c.Name,
		Family:      c.Family,
		Title:       loc.Text(metadata.ComponentKey(c.Name, metadata.DisplayNameKey), title),
		Description: loc.Text(metadata.ComponentKey(c.Name, metadata.DocumentationKey), c.Description),
		Rows:        FlattenLocalized(c, loc),
		Component:   c,
	}
}

// Row returns the row with the given path.
func (s *Section) Row(path string) (Row, bool) {
	for _, r := range s.Rows {
		if r.Path == path {
			return r, true
		}
	}
	return Row{}, false
}

// RowCount returns the number of table rows in the document.
func (d *Document) RowCount() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Rows)
	}
	return n
}
