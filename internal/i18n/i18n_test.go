// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLocale(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", Root},
		{"root", Root},
		{"und", Root},
		{"en", "en"},
		{"en-us", "en_US"},
		{"fr_FR", "fr_FR"},
		{"test", "test"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeLocale(tt.in))
		})
	}
}

func TestCandidates(t *testing.T) {
	assert.Equal(t, []string{"fr_FR", "fr", Root}, Candidates("fr-FR"))
	assert.Equal(t, []string{"test", Root}, Candidates("test"))
	assert.Equal(t, []string{Root}, Candidates(""))
}

func TestBundleLocale(t *testing.T) {
	locale, ok := BundleLocale("/a/b/Messages.properties")
	assert.True(t, ok)
	assert.Equal(t, Root, locale)

	locale, ok = BundleLocale("Messages_test.properties")
	assert.True(t, ok)
	assert.Equal(t, "test", locale)

	_, ok = BundleLocale("Other.properties")
	assert.False(t, ok)

	_, ok = BundleLocale("Messages.txt")
	assert.False(t, ok)
}

func TestCatalog_ResolveFallbackChain(t *testing.T) {
	c := NewCatalog()
	c.Set(Root, "my._documentation", "root doc")
	c.Set("fr", "my._documentation", "doc fr")
	c.Set("fr_CA", "other._documentation", "autre")

	assert.Equal(t, "doc fr", c.Resolve("fr_CA", "my._documentation", "declared"))
	assert.Equal(t, "autre", c.Resolve("fr-CA", "other._documentation", "declared"))
	assert.Equal(t, "root doc", c.Resolve("de", "my._documentation", "declared"))
	assert.Equal(t, "declared", c.Resolve("de", "missing", "declared"))
}

func TestCatalog_NilIsEmpty(t *testing.T) {
	var c *Catalog
	assert.Equal(t, "fallback", c.Resolve("test", "k", "fallback"))

	var l *Localizer
	assert.Equal(t, "fallback", l.Text("k", "fallback"))
}

func TestCatalog_LoadFile(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "Messages.properties")
	test := filepath.Join(dir, "Messages_test.properties")

	require.NoError(t, os.WriteFile(root, []byte("my.configuration._displayName=Configuration\n"), 0644))
	// ISO-8859-1 encoded e-acute, and a literal ${index} that must not be expanded.
	require.NoError(t, os.WriteFile(test, []byte("my._documentation=Awesome Doc\nmy.list[]._documentation=caf\xe9 ${index}\n"), 0644))

	c := NewCatalog()
	require.NoError(t, c.LoadFile(root))
	require.NoError(t, c.LoadFile(test))

	assert.Equal(t, []string{Root, "test"}, c.Locales())

	l := c.For("test")
	assert.Equal(t, "test", l.Locale())
	assert.Equal(t, "Awesome Doc", l.Text("my._documentation", "super my component"))
	assert.Equal(t, "café ${index}", l.Text("my.list[]._documentation", ""))
	assert.Equal(t, "Configuration", l.Text("my.configuration._displayName", "configuration"))

	assert.Equal(t, "super my component", c.For(Root).Text("my._documentation", "super my component"))
}

func TestCatalog_LoadFileErrors(t *testing.T) {
	c := NewCatalog()
	assert.Error(t, c.LoadFile(filepath.Join(t.TempDir(), "Messages.properties")))
	assert.Error(t, c.LoadFile("notes.properties"))
}
