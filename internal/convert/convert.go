// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package convert turns a rendered configuration document into secondary
// formats and writes them atomically.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"grimm.is/compdoc/internal/configdoc"
	"grimm.is/compdoc/internal/errors"
)

// Format names of the built-in converters.
const (
	FormatAsciidoc   = "asciidoc"
	FormatHTML       = "html"
	FormatPDF        = "pdf"
	FormatMarkdown   = "markdown"
	FormatJSONSchema = "jsonschema"
	FormatYAML       = "yaml"
	FormatReference  = "reference"
)

// Converter renders a document in one output format.
type Converter interface {
	Convert(ctx context.Context, doc *configdoc.Document, w io.Writer) error
}

// ConverterFunc adapts a function to the Converter interface.
type ConverterFunc func(ctx context.Context, doc *configdoc.Document, w io.Writer) error

// Convert calls f.
func (f ConverterFunc) Convert(ctx context.Context, doc *configdoc.Document, w io.Writer) error {
	return f(ctx, doc, w)
}

// Options configure the built-in converters.
type Options struct {
	// WorkDir receives intermediate files, such as the Markdown source of the
	// HTML output. Empty keeps intermediates in memory.
	WorkDir string
}

// Registry maps format names to converters.
type Registry struct {
	converters map[string]Converter
}

// NewRegistry creates a registry holding every built-in format.
func NewRegistry(opts Options) *Registry {
	r := &Registry{converters: make(map[string]Converter)}
	r.Register(FormatAsciidoc, textConverter(configdoc.GenerateAsciidoc))
	r.Register(FormatHTML, &HTMLConverter{WorkDir: opts.WorkDir})
	r.Register(FormatPDF, &PDFConverter{})
	r.Register(FormatMarkdown, textConverter(configdoc.GenerateMarkdown))
	r.Register(FormatReference, textConverter(configdoc.GenerateQuickReference))
	r.Register(FormatJSONSchema, ConverterFunc(convertJSONSchema))
	r.Register(FormatYAML, ConverterFunc(convertYAML))
	return r
}

// Register adds or replaces the converter of a format.
func (r *Registry) Register(name string, c Converter) {
	r.converters[strings.ToLower(name)] = c
}

// Get returns the converter of a format.
func (r *Registry) Get(name string) (Converter, error) {
	c, ok := r.converters[strings.ToLower(name)]
	if !ok {
		err := errors.Errorf(errors.KindValidation, "unknown output format %q (available: %s)", name, strings.Join(r.Names(), ", "))
		return nil, errors.WithFormat(err, name)
	}
	return c, nil
}

// Names lists the registered formats in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.converters))
	for name := range r.converters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks that every requested format is registered.
func (r *Registry) Validate(formats map[string]string) error {
	for _, name := range sortedKeys(formats) {
		if _, err := r.Get(name); err != nil {
			return err
		}
		if formats[name] == "" {
			return errors.WithFormat(errors.Errorf(errors.KindValidation, "format %s has no destination", name), name)
		}
	}
	return nil
}

// WriteAll converts doc into every requested format, in sorted format order.
// formats maps a format name to its destination path. Unknown formats are
// rejected before anything is written. It returns the written paths.
func (r *Registry) WriteAll(ctx context.Context, doc *configdoc.Document, formats map[string]string) ([]string, error) {
	if err := r.Validate(formats); err != nil {
		return nil, err
	}

	var written []string
	for _, name := range sortedKeys(formats) {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		c, _ := r.Get(name)
		path := formats[name]
		err := WriteFile(path, func(w io.Writer) error {
			return c.Convert(ctx, doc, w)
		})
		if err != nil {
			err = errors.Wrapf(err, errors.KindConversion, "%s conversion failed", name)
			return written, errors.WithPath(errors.WithFormat(err, name), path)
		}
		written = append(written, path)
	}
	return written, nil
}

// WriteFile writes the output of fn to path atomically: the content goes to
// a temporary file in the destination directory, which replaces path only
// when fn and the write succeed. On failure path is left untouched.
func WriteFile(path string, fn func(w io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = fn(tmp); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func textConverter(render func(*configdoc.Document) string) Converter {
	return ConverterFunc(func(_ context.Context, doc *configdoc.Document, w io.Writer) error {
		_, err := io.WriteString(w, render(doc))
		return err
	})
}

func convertJSONSchema(_ context.Context, doc *configdoc.Document, w io.Writer) error {
	out, err := configdoc.ConfigSchemaToJSON(configdoc.GenerateSchema(doc, false))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

func convertYAML(_ context.Context, doc *configdoc.Document, w io.Writer) error {
	out, err := configdoc.SchemaToYAML(configdoc.GenerateSchema(doc, true))
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
