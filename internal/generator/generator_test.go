// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package generator

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/compdoc/internal/errors"
	"grimm.is/compdoc/internal/metrics"
)

var fixtureSources = []string{filepath.Join("testdata", "components")}

const expectedAsciidoc = `== my

super my component

=== Configuration

[cols="d,d,m,a,e,d",options="header"]
|===
|Display Name|Description|Default Value|Enabled If|Configuration Path|Configuration Type
|configuration||-|Always enabled|configuration|-
|input|the input value|-|Always enabled|configuration.input|-
|nested||-|Always enabled|configuration.nested|dataset
|datastore||-|Always enabled|configuration.nested.datastore|datastore
|user||unknown|Always enabled|configuration.nested.datastore.user|datastore
|===
`

func TestRun_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		Sources: fixtureSources,
		Output:  filepath.Join(dir, "out", "components.adoc"),
		Formats: map[string]string{
			"html": filepath.Join(dir, "out", "components.html"),
			"pdf":  filepath.Join(dir, "out", "components.pdf"),
		},
	}

	res, err := New(opts, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Components)
	assert.Equal(t, 5, res.Rows)
	assert.Equal(t, []string{opts.Output, opts.Formats["html"], opts.Formats["pdf"]}, res.Written)

	adoc, err := os.ReadFile(opts.Output)
	require.NoError(t, err)
	assert.Equal(t, expectedAsciidoc, string(adoc))

	html, err := os.Open(opts.Formats["html"])
	require.NoError(t, err)
	defer html.Close()
	scanner := bufio.NewScanner(html)
	require.True(t, scanner.Scan())
	assert.Equal(t, "<!DOCTYPE html>", scanner.Text())

	pdf, err := os.ReadFile(opts.Formats["pdf"])
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
}

func TestRun_Locale(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		Sources: fixtureSources,
		Output:  filepath.Join(dir, "components.adoc"),
		Locale:  "test",
		Title:   "Components",
		Version: "1.2",
	}

	_, err := New(opts, nil).Run(context.Background())
	require.NoError(t, err)

	adoc, err := os.ReadFile(opts.Output)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(adoc), "= Components\n:revnumber: 1.2\n:toc:\n\n== my\n\nAwesome Doc\n\n"))
}

func TestRun_Deterministic(t *testing.T) {
	dir := t.TempDir()
	var outputs []string
	for i := 0; i < 3; i++ {
		opts := Options{
			Sources: fixtureSources,
			Output:  filepath.Join(dir, "components.adoc"),
			Formats: map[string]string{"markdown": filepath.Join(dir, "components.md"), "yaml": filepath.Join(dir, "components.yaml")},
		}
		_, err := New(opts, nil).Run(context.Background())
		require.NoError(t, err)

		var combined strings.Builder
		for _, path := range []string{opts.Output, opts.Formats["markdown"], opts.Formats["yaml"]} {
			data, err := os.ReadFile(path)
			require.NoError(t, err)
			combined.Write(data)
		}
		outputs = append(outputs, combined.String())
	}
	assert.Equal(t, outputs[0], outputs[1])
	assert.Equal(t, outputs[0], outputs[2])
}

func TestRun_InputErrorWritesNothing(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "broken.hcl"), []byte(`component "x" {`), 0o644))

	out := t.TempDir()
	opts := Options{
		Sources: []string{src},
		Output:  filepath.Join(out, "components.adoc"),
		Formats: map[string]string{"html": filepath.Join(out, "components.html")},
	}

	collector := metrics.NewCollector(nil, "")
	_, err := New(opts, collector).Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.KindInput, errors.GetKind(err))
	assert.Equal(t, filepath.Join(src, "broken.hcl"), errors.GetAttributes(err)["source"])

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, failure := collector.GetRunCounts()
	assert.Equal(t, int64(1), failure)
}

func TestRun_InvalidOptions(t *testing.T) {
	out := t.TempDir()
	tests := []struct {
		name string
		opts Options
	}{
		{"unknown format", Options{Sources: fixtureSources, Output: filepath.Join(out, "a.adoc"), Formats: map[string]string{"docx": filepath.Join(out, "a.docx")}}},
		{"negative level", Options{Sources: fixtureSources, Output: filepath.Join(out, "a.adoc"), Level: -1}},
		{"no output", Options{Sources: fixtureSources}},
		{"no sources", Options{Output: filepath.Join(out, "a.adoc")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts, nil).Run(context.Background())
			require.Error(t, err)
			assert.Equal(t, errors.KindValidation, errors.GetKind(err))
		})
	}

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Options{Sources: fixtureSources, Output: filepath.Join(t.TempDir(), "a.adoc")}, nil).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_Metrics(t *testing.T) {
	dir := t.TempDir()
	collector := metrics.NewCollector(nil, filepath.Join(dir, "compdoc.prom"))
	opts := Options{
		Sources: fixtureSources,
		Output:  filepath.Join(dir, "components.adoc"),
		Formats: map[string]string{"jsonschema": filepath.Join(dir, "components.json")},
	}

	_, err := New(opts, collector).Run(context.Background())
	require.NoError(t, err)

	reg := collector.Registry()
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.Components))
	assert.Equal(t, 5.0, testutil.ToFloat64(reg.Rows))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.OutputsTotal.WithLabelValues("asciidoc")))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.OutputsTotal.WithLabelValues("jsonschema")))
	assert.FileExists(t, filepath.Join(dir, "compdoc.prom"))
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	g := New(Options{Sources: fixtureSources, Output: filepath.Join(dir, "components.adoc")}, nil)

	res, err := g.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, res.UpToDate)
	assert.Contains(t, res.Diff, "+== my\n")
	assert.Contains(t, res.Diff, "+++ generated")

	_, err = g.Run(context.Background())
	require.NoError(t, err)

	res, err = g.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, res.UpToDate)
	assert.Empty(t, res.Diff)

	require.NoError(t, os.WriteFile(g.Options().Output, []byte(strings.Replace(expectedAsciidoc, "unknown", "nobody", 1)), 0o644))
	res, err = g.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, res.UpToDate)
	assert.Contains(t, res.Diff, "-|user||nobody|")
	assert.Contains(t, res.Diff, "+|user||unknown|")
}

func TestRender(t *testing.T) {
	rendered, err := New(Options{Sources: fixtureSources, Level: 3}, nil).Render(context.Background())
	require.NoError(t, err)
	assert.Len(t, rendered.Set.Components, 1)
	assert.True(t, strings.HasPrefix(rendered.Asciidoc, "=== my\n"))
}
