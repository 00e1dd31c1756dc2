// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package main

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/compdoc/internal/config"
	"grimm.is/compdoc/internal/errors"
)

const component = `
component "my" {
  family        = "test"
  documentation = "super my component"

  option "configuration" {
    option "input" {
      documentation = "the input value"
    }

    option "nested" {
      type = "dataset"

      option "datastore" {
        type = "datastore"

        option "user" {
          default = "unknown"
        }
      }
    }
  }
}
`

// workspace creates a components directory in a fresh working directory.
func workspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "components"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "components", "my.hcl"), []byte(component), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "components", "Messages_test.properties"), []byte("my._documentation=Awesome Doc\n"), 0o644))
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestGenerate(t *testing.T) {
	dir := workspace(t)

	out, err := execute(t, "generate",
		"-o", "docs/components.adoc",
		"--title", "Components",
		"--locale", "test",
		"--format", "html=docs/components.html",
		"--format", "reference=docs/components.txt",
		"--metrics-file", "metrics.prom",
		"components")
	require.NoError(t, err)
	assert.Contains(t, out, "docs/components.adoc")
	assert.Contains(t, out, "docs/components.html")

	adoc, err := os.ReadFile(filepath.Join(dir, "docs", "components.adoc"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(adoc), "= Components\n"))
	assert.Contains(t, string(adoc), "Awesome Doc")
	assert.Contains(t, string(adoc), "|unknown|")

	html, err := os.ReadFile(filepath.Join(dir, "docs", "components.html"))
	require.NoError(t, err)
	assert.Equal(t, "<!DOCTYPE html>", strings.SplitN(string(html), "\n", 2)[0])

	assert.FileExists(t, filepath.Join(dir, "docs", "components.txt"))
	assert.FileExists(t, filepath.Join(dir, "metrics.prom"))
}

func TestGenerate_ConfigFile(t *testing.T) {
	dir := workspace(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultFile), []byte(`
output  = "out/doc.adoc"
title   = "From File"
sources = ["components"]
`), 0o644))

	_, err := execute(t, "generate", "--title", "From Flag")
	require.NoError(t, err)

	adoc, err := os.ReadFile(filepath.Join(dir, "out", "doc.adoc"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(adoc), "= From Flag\n"), "flags override the config file")
}

func TestGenerate_Errors(t *testing.T) {
	workspace(t)

	_, err := execute(t, "generate", "components")
	assert.Equal(t, errors.KindValidation, errors.GetKind(err), "missing output")

	_, err = execute(t, "generate", "-o", "out.adoc", "--format", "html", "components")
	assert.Equal(t, errors.KindValidation, errors.GetKind(err))

	_, err = execute(t, "generate", "-o", "out.adoc", "--format", "docx=out.docx", "components")
	assert.Equal(t, errors.KindValidation, errors.GetKind(err))

	_, err = execute(t, "generate", "-o", "out.adoc", "--level=-1", "components")
	assert.Equal(t, errors.KindValidation, errors.GetKind(err))

	_, err = execute(t, "generate", "-o", "out.adoc", "missing")
	assert.Equal(t, errors.KindInput, errors.GetKind(err))
	assert.NoFileExists(t, "out.adoc")
}

func TestCheck(t *testing.T) {
	dir := workspace(t)

	_, err := execute(t, "generate", "-o", "doc.adoc", "components")
	require.NoError(t, err)

	out, err := execute(t, "check", "-o", "doc.adoc", "components")
	require.NoError(t, err)
	assert.Contains(t, out, "up to date")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.adoc"), []byte("stale\n"), 0o644))
	out, err = execute(t, "check", "-o", "doc.adoc", "components")

	var exit *exitError
	require.True(t, stderrors.As(err, &exit))
	assert.Equal(t, 1, exit.code)
	assert.Contains(t, out, "--- doc.adoc")
	assert.Contains(t, out, "+++ generated")
	assert.Contains(t, out, "-stale")
}

func TestTree(t *testing.T) {
	workspace(t)

	out, err := execute(t, "tree", "components")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "test\n"))
	assert.Contains(t, out, "└── nested [dataset]")
	assert.Contains(t, out, "└── user")

	out, err = execute(t, "tree", "--depth", "2", "components")
	require.NoError(t, err)
	assert.NotContains(t, out, "configuration")

	_, err = execute(t, "tree")
	assert.Equal(t, errors.KindValidation, errors.GetKind(err))
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	out, err := execute(t, "init")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultFile+"\n", out)

	cfg, err := config.LoadFile(filepath.Join(dir, config.DefaultFile))
	require.NoError(t, err)
	assert.Equal(t, "Components", cfg.Title)

	_, err = execute(t, "init")
	assert.Equal(t, errors.KindValidation, errors.GetKind(err))

	_, err = execute(t, "init", "--force")
	assert.NoError(t, err)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "compdoc version dev (build: unknown)\n", out)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil))
	assert.Equal(t, 3, exitCode(&exitError{code: 3}))
	assert.Equal(t, 1, exitCode(errors.Attr(errors.New(errors.KindInput, "bad descriptor"), "source", "a.hcl")))
}
