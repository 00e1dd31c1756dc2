// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package i18n resolves component and property texts from locale bundles.
//
// Bundles are Java-style .properties files placed next to component metadata:
// Messages.properties holds the root texts and Messages_<locale>.properties
// holds overrides for one locale. A lookup that finds nothing falls back to the
// text declared in the metadata itself.
package i18n

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/magiconair/properties"

	"grimm.is/compdoc/internal/errors"
)

// BundleBaseName is the file name prefix of message bundles.
const BundleBaseName = "Messages"

// Catalog holds the merged bundles of every loaded locale.
type Catalog struct {
	bundles map[string]*properties.Properties
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{bundles: make(map[string]*properties.Properties)}
}

// BundleLocale reports the locale of a bundle file name. Messages.properties
// is Root; Messages_fr_FR.properties is "fr_FR".
func BundleLocale(filename string) (string, bool) {
	base := filepath.Base(filename)
	if !strings.HasSuffix(base, ".properties") {
		return "", false
	}
	name := strings.TrimSuffix(base, ".properties")

	if name == BundleBaseName {
		return Root, true
	}
	if locale, ok := strings.CutPrefix(name, BundleBaseName+"_"); ok && locale != "" {
		return NormalizeLocale(locale), true
	}
	return "", false
}

// LoadFile merges a bundle file into the catalog. Files are read as
// ISO-8859-1 and ${...} references are kept literally.
func (c *Catalog) LoadFile(path string) error {
	locale, ok := BundleLocale(path)
	if !ok {
		return errors.WithSource(errors.Errorf(errors.KindInput, "%s is not a message bundle", filepath.Base(path)), path)
	}

	loader := &properties.Loader{
		Encoding:         properties.ISO_8859_1,
		DisableExpansion: true,
	}
	props, err := loader.LoadFile(path)
	if err != nil {
		return errors.WithSource(errors.Wrap(err, errors.KindInput, "failed to read message bundle"), path)
	}

	c.Add(locale, props)
	return nil
}

// Add merges props into the bundle of locale. Later keys win.
func (c *Catalog) Add(locale string, props *properties.Properties) {
	locale = NormalizeLocale(locale)
	if existing, ok := c.bundles[locale]; ok {
		existing.Merge(props)
		return
	}
	props.DisableExpansion = true
	c.bundles[locale] = props
}

// Set stores a single entry, mostly useful for tests and programmatic catalogs.
func (c *Catalog) Set(locale, key, value string) {
	locale = NormalizeLocale(locale)
	props, ok := c.bundles[locale]
	if !ok {
		props = properties.NewProperties()
		props.DisableExpansion = true
		c.bundles[locale] = props
	}
	_, _, _ = props.Set(key, value)
}

// Lookup searches the candidate bundles of locale for key.
func (c *Catalog) Lookup(locale, key string) (string, bool) {
	if c == nil {
		return "", false
	}
	for _, candidate := range Candidates(locale) {
		props, ok := c.bundles[candidate]
		if !ok {
			continue
		}
		if v, ok := props.Get(key); ok {
			return v, true
		}
	}
	return "", false
}

// Resolve returns the localized text for key, or fallback when no bundle has it.
func (c *Catalog) Resolve(locale, key, fallback string) string {
	if v, ok := c.Lookup(locale, key); ok {
		return v
	}
	return fallback
}

// Locales lists the locales that have a bundle, Root included when present.
func (c *Catalog) Locales() []string {
	out := make([]string, 0, len(c.bundles))
	for locale := range c.bundles {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// For binds the catalog to one locale.
func (c *Catalog) For(locale string) *Localizer {
	return &Localizer{catalog: c, locale: locale}
}

// Localizer resolves texts for a single locale.
type Localizer struct {
	catalog *Catalog
	locale  string
}

// Locale returns the bound locale.
func (l *Localizer) Locale() string {
	return l.locale
}

// Text returns the localized text for key or fallback.
func (l *Localizer) Text(key, fallback string) string {
	if l == nil {
		return fallback
	}
	return l.catalog.Resolve(l.locale, key, fallback)
}
