// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/invowk/modreader/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand creates the `modreader` command tree bound to app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "modreader",
		Short: "Load, inspect and validate module descriptors",
		Long: TitleStyle.Render("modreader") + SubtitleStyle.Render(" - Load, inspect and validate module descriptors") + `

A descriptor is a JSON object stored in a module directory (module.json by
default). Its "type" field declares one of the module kinds Module, Submodule,
Scenario or Collection, and the rest of the object is checked against the
schema for that kind.

` + SubtitleStyle.Render("Examples:") + `
  modreader raw ./core               Print the parsed descriptor
  modreader get ./core version       Print one top-level field
  modreader validate ./core          Check the descriptor against its schema
  modreader scan .                   List every module below a directory
  modreader schema                   Print the descriptor schema
  modreader issues 3                 Explain an entry of the error catalog`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.initialize(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output")
	pf.StringVar(&app.flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/modreader/config.cue)")
	pf.StringVar(&app.flags.descriptorFile, "descriptor-file", "", `descriptor file name inside module directories (default "module.json")`)

	rootCmd.AddCommand(
		newRawCommand(app),
		newGetCommand(app),
		newValidateCommand(app),
		newScanCommand(app),
		newSchemaCommand(app),
		newIssuesCommand(app),
		newConfigCommand(app),
	)
	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the production App and runs the command tree.
// This is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}
	app.installLogger = true

	// fang overrides rootCmd.Version, so the version goes through fang.WithVersion.
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
