// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package generator orchestrates a documentation run: load metadata, build
// the localized document, write the AsciiDoc output and convert it into the
// requested secondary formats.
package generator

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/pmezard/go-difflib/difflib"

	"grimm.is/compdoc/internal/configdoc"
	"grimm.is/compdoc/internal/convert"
	"grimm.is/compdoc/internal/errors"
	"grimm.is/compdoc/internal/logging"
	"grimm.is/compdoc/internal/metadata"
	"grimm.is/compdoc/internal/metrics"
)

// Options configure a generator.
type Options struct {
	Sources []string
	Include []string
	Output  string // AsciiDoc destination
	Title   string
	Version string
	Locale  string
	Level   int // heading level of component sections; zero means configdoc.DefaultLevel
	Formats map[string]string
	WorkDir string
}

// Result summarizes a successful run.
type Result struct {
	Components int
	Rows       int
	Written    []string
	Duration   time.Duration
}

// Rendered is a document rendered in memory.
type Rendered struct {
	Set      *metadata.Set
	Document *configdoc.Document
	Asciidoc string
}

// CheckResult compares the rendered document with the existing output.
type CheckResult struct {
	Path     string
	UpToDate bool
	Diff     string
}

// Generator renders component documentation.
type Generator struct {
	opts     Options
	registry *convert.Registry
	metrics  *metrics.Collector
	logger   *logging.Logger
}

// New creates a generator. A nil collector disables metrics.
func New(opts Options, collector *metrics.Collector) *Generator {
	if opts.Level == 0 {
		opts.Level = configdoc.DefaultLevel
	}
	return &Generator{
		opts:     opts,
		registry: convert.NewRegistry(convert.Options{WorkDir: opts.WorkDir}),
		metrics:  collector,
		logger:   logging.WithComponent("generator"),
	}
}

// Options returns the effective options.
func (g *Generator) Options() Options {
	return g.opts
}

// Registry returns the converters used for secondary formats.
func (g *Generator) Registry() *convert.Registry {
	return g.registry
}

// Validate checks the options before anything is read or written.
func (g *Generator) Validate() error {
	if len(g.opts.Sources) == 0 {
		return errors.New(errors.KindValidation, "no metadata sources given")
	}
	if g.opts.Level < 1 {
		return errors.Attr(errors.Errorf(errors.KindValidation, "heading level must be at least 1, got %d", g.opts.Level), "level", g.opts.Level)
	}
	return g.registry.Validate(g.opts.Formats)
}

// Render loads the metadata and renders the AsciiDoc document in memory.
func (g *Generator) Render(ctx context.Context) (*Rendered, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	set, err := metadata.Load(g.opts.Sources, metadata.LoadOptions{Include: g.opts.Include})
	if err != nil {
		return nil, err
	}

	doc := configdoc.Build(set.Components, set.Catalog, configdoc.Options{
		Title:   g.opts.Title,
		Version: g.opts.Version,
		Level:   g.opts.Level,
		Locale:  g.opts.Locale,
	})

	return &Rendered{
		Set:      set,
		Document: doc,
		Asciidoc: configdoc.GenerateAsciidoc(doc),
	}, nil
}

// Run renders the document, writes the primary output and every requested
// format. Nothing is written when loading or rendering fails.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	res, err := g.run(ctx)
	if res != nil {
		res.Duration = time.Since(start)
	}

	if g.metrics != nil {
		run := metrics.Run{Duration: time.Since(start), Err: err, Outputs: g.outputs()}
		if res != nil {
			run.Components = res.Components
			run.Rows = res.Rows
		}
		g.metrics.RecordRun(run)
	}

	if err != nil {
		g.logger.WithError(err).Error("Generation failed")
		return nil, err
	}

	g.logger.Info("Documentation generated",
		"components", res.Components,
		"rows", res.Rows,
		"files", len(res.Written),
		"duration", res.Duration.String())
	return res, nil
}

func (g *Generator) run(ctx context.Context) (*Result, error) {
	if g.opts.Output == "" {
		return nil, errors.New(errors.KindValidation, "no output file given")
	}

	rendered, err := g.Render(ctx)
	if err != nil {
		return nil, err
	}

	err = convert.WriteFile(g.opts.Output, func(w io.Writer) error {
		_, err := io.WriteString(w, rendered.Asciidoc)
		return err
	})
	if err != nil {
		return nil, errors.WithPath(errors.Wrap(err, errors.KindInternal, "failed to write output"), g.opts.Output)
	}
	g.logger.Debug("Primary output written", "path", g.opts.Output)

	res := &Result{
		Components: len(rendered.Document.Sections),
		Rows:       rendered.Document.RowCount(),
		Written:    []string{g.opts.Output},
	}

	written, err := g.registry.WriteAll(ctx, rendered.Document, g.opts.Formats)
	res.Written = append(res.Written, written...)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (g *Generator) outputs() map[string]string {
	out := make(map[string]string, len(g.opts.Formats)+1)
	if g.opts.Output != "" {
		out[convert.FormatAsciidoc] = g.opts.Output
	}
	for format, path := range g.opts.Formats {
		out[format] = path
	}
	return out
}

// Check renders the document and compares it with the existing primary
// output. A missing output file compares as empty.
func (g *Generator) Check(ctx context.Context) (*CheckResult, error) {
	if g.opts.Output == "" {
		return nil, errors.New(errors.KindValidation, "no output file given")
	}

	rendered, err := g.Render(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := os.ReadFile(g.opts.Output)
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.WithPath(errors.Wrap(err, errors.KindInput, "failed to read existing output"), g.opts.Output)
	}

	res := &CheckResult{Path: g.opts.Output, UpToDate: string(existing) == rendered.Asciidoc}
	if res.UpToDate {
		return res, nil
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(existing)),
		B:        difflib.SplitLines(rendered.Asciidoc),
		FromFile: g.opts.Output,
		ToFile:   "generated",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return nil, errors.Wrap(err, errors.KindInternal, "failed to diff output")
	}
	res.Diff = text
	return res, nil
}
