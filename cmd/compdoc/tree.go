// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"grimm.is/compdoc/internal/config"
	"grimm.is/compdoc/internal/errors"
	"grimm.is/compdoc/internal/metadata"
	"grimm.is/compdoc/internal/repository"
)

// sourceFlags select the metadata for tree and browse.
type sourceFlags struct {
	configPath string
	locale     string
	include    []string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "Config file providing sources, include and locale")
	cmd.Flags().StringVar(&f.locale, "locale", "", "Locale of the labels")
	cmd.Flags().StringArrayVar(&f.include, "include", nil, "Glob of metadata files to read (repeatable)")
}

// tree loads the sources given as args, falling back to the config file.
func (f *sourceFlags) tree(cmd *cobra.Command, args []string) (*repository.Tree, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	cfg.Apply(config.Overrides{Sources: args, Include: f.include})
	if cmd.Flags().Changed("locale") {
		cfg.Locale = f.locale
	}
	if len(cfg.Sources) == 0 {
		return nil, errors.New(errors.KindValidation, "no metadata sources given")
	}

	set, err := metadata.Load(cfg.Sources, metadata.LoadOptions{Include: cfg.Include})
	if err != nil {
		return nil, err
	}
	return repository.Build(set, cfg.Locale), nil
}

func newTreeCmd() *cobra.Command {
	var (
		flags  sourceFlags
		depth  int
		styled bool
	)

	cmd := &cobra.Command{
		Use:   "tree [sources...]",
		Short: "Display the component tree",
		Long: `The tree command prints families, components and their configuration
types and properties. Configuration types are shown in brackets.

Example:
  compdoc tree components/
  compdoc tree components/ --depth 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := flags.tree(cmd, args)
			if err != nil {
				return err
			}
			return repository.Print(cmd.OutOrStdout(), t, repository.PrintOptions{Depth: depth, Styled: styled})
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&depth, "depth", 0, "Maximum depth, families being level 1 (0 prints everything)")
	cmd.Flags().BoolVar(&styled, "color", false, "Colorize the output")
	return cmd
}

func newBrowseCmd() *cobra.Command {
	var flags sourceFlags

	cmd := &cobra.Command{
		Use:   "browse [sources...]",
		Short: "Browse components interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := flags.tree(cmd, args)
			if err != nil {
				return err
			}
			return repository.Browse(cmd.Context(), t)
		},
	}

	flags.register(cmd)
	return cmd
}

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write an example configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultFile
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.WithPath(errors.Errorf(errors.KindValidation, "%s already exists, use --force to overwrite", path), path)
			}
			if err := os.WriteFile(path, config.Marshal(config.Example()), 0o644); err != nil {
				return errors.WithPath(errors.Wrap(err, errors.KindInternal, "failed to write config"), path)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	return cmd
}
