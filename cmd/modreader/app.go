// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/invowk/modreader/internal/config"
	"github.com/invowk/modreader/internal/issue"
	"github.com/invowk/modreader/pkg/locator"
	"github.com/invowk/modreader/pkg/reader"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer: all Cobra command handlers receive an App reference and read
	// descriptors through the readers it builds.
	App struct {
		Config      ConfigProvider
		Diagnostics DiagnosticRenderer
		fs          afero.Fs
		stdout      io.Writer
		stderr      io.Writer

		flags         globalFlags
		cfg           *config.Config
		logger        *slog.Logger
		installLogger bool
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config      ConfigProvider
		Diagnostics DiagnosticRenderer
		// Fs is the filesystem descriptors are read from and scanned.
		Fs     afero.Fs
		Stdout io.Writer
		Stderr io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// DiagnosticRenderer renders structured diagnostics.
	DiagnosticRenderer interface {
		Render(ctx context.Context, diags []locator.Diagnostic, stderr io.Writer)
	}

	globalFlags struct {
		verbose        bool
		configPath     string
		descriptorFile string
	}

	defaultDiagnosticRenderer struct{}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Diagnostics == nil {
		deps.Diagnostics = &defaultDiagnosticRenderer{}
	}
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}

	return &App{
		Config:      deps.Config,
		Diagnostics: deps.Diagnostics,
		fs:          deps.Fs,
		stdout:      deps.Stdout,
		stderr:      deps.Stderr,
		cfg:         config.DefaultConfig(),
		logger:      newLogger(deps.Stderr, false),
	}, nil
}

// initialize loads configuration, applies global flag overrides and builds the
// logger. Configuration errors are reported and the defaults are used instead.
func (a *App) initialize(cmd *cobra.Command) error {
	cfg, err := a.Config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: a.flags.configPath})
	if err != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, a.flags.verbose))
		cfg = config.DefaultConfig()
	}

	if a.flags.descriptorFile != "" {
		cfg.DescriptorFile = config.DescriptorFileName(a.flags.descriptorFile)
	}
	if !a.flags.verbose {
		a.flags.verbose = cfg.UI.Verbose
	}
	a.cfg = cfg

	a.logger = newLogger(a.stderr, a.flags.verbose)
	if a.installLogger {
		slog.SetDefault(a.logger)
	}
	applyColorScheme(cfg.UI.ColorScheme)
	return nil
}

// readerOptions returns the reader configuration derived from the effective config.
func (a *App) readerOptions() []reader.Option {
	return []reader.Option{
		reader.WithFileName(a.cfg.DescriptorFile.String()),
		reader.WithMaxFileSize(a.cfg.MaxFileSize),
		reader.WithMissingFilePolicy(a.cfg.MissingDescriptor.Policy()),
	}
}

// newReader builds a reader over the App filesystem that logs diagnostics.
func (a *App) newReader() (*reader.Reader, error) {
	opts := append(a.readerOptions(),
		reader.WithStorage(locator.NewFSStorage(a.fs)),
		reader.WithSink(locator.NewLogSink(a.logger)),
	)
	r, err := reader.New(opts...)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("configure reader").
			WithResource(a.cfg.DescriptorFile.String()).
			WithIssue(issue.ConfigLoadFailedId).
			WithSuggestion("Set descriptor_file to a file name such as module.json").
			Wrap(err).
			BuildError()
	}
	return r, nil
}

// fail prints err, with its catalog entry in verbose mode, and returns an
// ExitError with code 1. The command's own error printing is silenced.
func (a *App) fail(cmd *cobra.Command, err error) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	fmt.Fprintln(a.stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, a.flags.verbose))

	var svcErr *ServiceError
	if a.flags.verbose && errors.As(err, &svcErr) {
		renderServiceError(a.stderr, svcErr, a.glamourStyle())
	}
	return &ExitError{Code: 1, Err: err}
}

// glamourStyle returns the Markdown style matching the configured color scheme.
func (a *App) glamourStyle() string {
	return a.cfg.UI.ColorScheme.String()
}

func (r *defaultDiagnosticRenderer) Render(_ context.Context, diags []locator.Diagnostic, stderr io.Writer) {
	for _, diag := range diags {
		prefix := WarningStyle.Render("warning")
		if diag.Severity == locator.SeverityError {
			prefix = ErrorStyle.Render("error")
		}

		if diag.Path != "" {
			_, _ = fmt.Fprintf(stderr, "%s: %s (%s)\n", prefix, diag.Message, PathStyle.Render(diag.Path))
			continue
		}

		_, _ = fmt.Fprintf(stderr, "%s: %s\n", prefix, diag.Message)
	}
}
