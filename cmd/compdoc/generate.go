// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"grimm.is/compdoc/internal/config"
	"grimm.is/compdoc/internal/errors"
	"grimm.is/compdoc/internal/generator"
	"grimm.is/compdoc/internal/logging"
	"grimm.is/compdoc/internal/metrics"
	"grimm.is/compdoc/internal/watch"
)

// generateFlags are shared by generate and check.
type generateFlags struct {
	configPath  string
	output      string
	title       string
	level       int
	locale      string
	version     string
	formats     []string
	workDir     string
	include     []string
	metricsFile string
	logLevel    string
	logJSON     bool
}

func (f *generateFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.configPath, "config", "c", "", "Config file path (HCL, default "+config.DefaultFile+" when present)")
	fl.StringVarP(&f.output, "output", "o", "", "AsciiDoc output file")
	fl.StringVar(&f.title, "title", "", "Document title")
	fl.IntVar(&f.level, "level", 0, "Heading level of component sections")
	fl.StringVar(&f.locale, "locale", "", "Locale of the generated texts")
	fl.StringVar(&f.version, "version-string", "", "Document revision number")
	fl.StringArrayVar(&f.formats, "format", nil, "Additional output as name=path (repeatable)")
	fl.StringVar(&f.workDir, "work-dir", "", "Directory for intermediate files")
	fl.StringArrayVar(&f.include, "include", nil, "Glob of metadata files to read inside source directories (repeatable)")
	fl.StringVar(&f.metricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile")
	fl.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fl.BoolVar(&f.logJSON, "log-json", false, "Log as JSON")
}

// overrides collects the flags that were set explicitly.
func (f *generateFlags) overrides(cmd *cobra.Command, args []string) (config.Overrides, error) {
	o := config.Overrides{Sources: args, Include: f.include}
	changed := cmd.Flags().Changed

	if changed("output") {
		o.Output = &f.output
	}
	if changed("title") {
		o.Title = &f.title
	}
	if changed("level") {
		o.Level = &f.level
	}
	if changed("locale") {
		o.Locale = &f.locale
	}
	if changed("version-string") {
		o.Version = &f.version
	}
	if changed("work-dir") {
		o.WorkDir = &f.workDir
	}
	if changed("metrics-file") {
		o.MetricsFile = &f.metricsFile
	}
	if changed("log-level") {
		o.LogLevel = &f.logLevel
	}
	if changed("log-json") {
		o.LogJSON = &f.logJSON
	}

	if len(f.formats) > 0 {
		o.Formats = make(map[string]string, len(f.formats))
		for _, spec := range f.formats {
			name, path, ok := strings.Cut(spec, "=")
			if !ok || name == "" || path == "" {
				return o, errors.WithFormat(errors.Errorf(errors.KindValidation, "invalid --format %q, want name=path", spec), spec)
			}
			o.Formats[name] = path
		}
	}
	return o, nil
}

// load reads the config file, applies the flags, validates the result and
// installs the configured logger.
func (f *generateFlags) load(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	o, err := f.overrides(cmd, args)
	if err != nil {
		return nil, err
	}
	cfg.Apply(o)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logCfg := cfg.LoggingConfig()
	logCfg.Output = cmd.ErrOrStderr()
	logging.SetDefault(logging.New(logCfg))
	return cfg, nil
}

func newGenerateCmd() *cobra.Command {
	var (
		flags   generateFlags
		watchFS bool
	)

	cmd := &cobra.Command{
		Use:   "generate [sources...]",
		Short: "Render the documentation and the requested formats",
		Long: `Renders the AsciiDoc configuration reference of every component found in
the sources and converts it to each requested format.

Example:
  compdoc generate -o docs/components.adoc components/
  compdoc generate -o docs/components.adoc --format html=docs/components.html --format pdf=docs/components.pdf components/
  compdoc generate -c compdoc.hcl --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd, args)
			if err != nil {
				return err
			}

			collector := metrics.NewCollector(nil, cfg.MetricsFile)
			gen := generator.New(cfg.GeneratorOptions(), collector)

			res, err := gen.Run(cmd.Context())
			if err != nil && !watchFS {
				return err
			}
			if res != nil {
				for _, path := range res.Written {
					fmt.Fprintln(cmd.OutOrStdout(), path)
				}
			}
			if !watchFS {
				return nil
			}

			w, err := watch.New(watch.Config{Roots: cfg.Sources})
			if err != nil {
				return err
			}
			defer w.Close()

			// Failed rebuilds are logged by the generator; watching continues.
			return w.Run(cmd.Context(), func(ctx context.Context, changed []string) error {
				logging.Info("Sources changed, regenerating", "files", len(changed))
				_, err := gen.Run(ctx)
				return err
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&watchFS, "watch", false, "Regenerate whenever a source changes")
	return cmd
}

func newCheckCmd() *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "check [sources...]",
		Short: "Report whether the AsciiDoc output is up to date",
		Long: `Renders the document in memory and compares it with the existing output.
A unified diff is printed and the exit status is 1 when they differ.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd, args)
			if err != nil {
				return err
			}

			res, err := generator.New(cfg.GeneratorOptions(), nil).Check(cmd.Context())
			if err != nil {
				return err
			}
			if res.UpToDate {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is up to date\n", res.Path)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), res.Diff)
			return &exitError{code: 1}
		},
	}

	flags.register(cmd)
	return cmd
}
