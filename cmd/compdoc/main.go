// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// compdoc renders configuration reference documentation for components
// described in HCL files or annotated Go sources.
//
// Usage:
//
//	compdoc generate -o docs/components.adoc --format html=docs/components.html components/
//	compdoc check -o docs/components.adoc components/
//	compdoc tree components/
//	compdoc browse components/
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"grimm.is/compdoc/internal/errors"
	"grimm.is/compdoc/internal/logging"
)

// Set at build time via -ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

const appName = "compdoc"

// exitError ends the process with code without logging.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd().ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(err))
}

// exitCode logs err with its attributes and maps it to a process status.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exit *exitError
	if stderrors.As(err, &exit) {
		return exit.code
	}

	logging.Default().WithError(err).Error("Command failed", errors.KeyVals(err)...)
	return 1
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   appName,
		Short: "Generate component configuration documentation",
		Long: `compdoc reads component descriptors (HCL files or annotated Go sources,
plus Messages*.properties bundles) and renders an AsciiDoc configuration
reference. The same document can be converted to HTML, PDF, Markdown,
JSON Schema, YAML and a plain-text quick reference.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		newGenerateCmd(),
		newCheckCmd(),
		newTreeCmd(),
		newBrowseCmd(),
		newInitCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
			},
		},
	)
	return cmd
}
