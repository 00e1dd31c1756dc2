// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Root is the locale of the base bundle (Messages.properties).
const Root = ""

// NormalizeLocale maps a locale identifier to the underscore form used in
// bundle file names. Valid BCP 47 tags are canonicalized ("en-us" becomes
// "en_US"); anything else, such as "test", is kept verbatim. "root", "und"
// and the empty string all denote Root.
func NormalizeLocale(locale string) string {
	locale = strings.TrimSpace(locale)
	if locale == "" || strings.EqualFold(locale, "root") {
		return Root
	}

	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return strings.ReplaceAll(locale, "-", "_")
	}
	if tag == language.Und {
		return Root
	}

	base, _ := tag.Base()
	out := base.String()
	if region, conf := tag.Region(); conf == language.Exact {
		out += "_" + region.String()
	}
	return out
}

// Candidates returns the bundle locales to consult for locale, most specific
// first, ending with Root: "fr_FR" yields ["fr_FR", "fr", ""].
func Candidates(locale string) []string {
	norm := NormalizeLocale(locale)
	if norm == Root {
		return []string{Root}
	}

	parts := strings.Split(norm, "_")
	out := make([]string, 0, len(parts)+1)
	for i := len(parts); i > 0; i-- {
		out = append(out, strings.Join(parts[:i], "_"))
	}
	return append(out, Root)
}
