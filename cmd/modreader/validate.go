// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/invowk/modreader/internal/issue"
	"github.com/invowk/modreader/pkg/descriptor"
	"github.com/invowk/modreader/pkg/locator"
	"github.com/invowk/modreader/pkg/modschema"

	"github.com/spf13/cobra"
)

// newValidateCommand creates the `modreader validate` command.
func newValidateCommand(app *App) *cobra.Command {
	var explain bool

	cmd := &cobra.Command{
		Use:   "validate <location>",
		Short: "Check a descriptor against the schema of its declared kind",
		Long: `Check that the descriptor at a location is a valid module.

The "type" field selects the schema: Module, Submodule, Scenario or Collection.
On success the kind and the descriptor header are printed. Otherwise the
command exits with status 1; --explain prints the schema violations.

Examples:
  modreader validate ./core
  modreader validate ./scenarios/smoke.json --explain`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, app, args[0], explain)
		},
	}

	cmd.Flags().BoolVar(&explain, "explain", false, "print why a descriptor is rejected")
	return cmd
}

func runValidate(cmd *cobra.Command, app *App, location string, explain bool) error {
	r, err := app.newReader()
	if err != nil {
		return app.fail(cmd, err)
	}

	d, kind, err := r.Classify(location)
	if err != nil {
		return app.fail(cmd, descriptorError(err, location))
	}

	if d != nil {
		summary, inspectErr := modschema.Inspect(kind, d)
		if inspectErr != nil {
			// Custom predicates may accept what the schema rejects.
			summary = &modschema.Summary{Type: kind.String()}
		}
		fmt.Fprintf(app.stdout, "%s %s is a valid %s\n",
			SuccessStyle.Render("✓"), PathStyle.Render(location), KindStyle.Render(kind.String()))
		printSummary(app, summary)
		return nil
	}

	// The descriptor was rejected or is absent: load it again to explain why.
	res := r.Locator().Load(location)
	if res.Err != nil {
		return app.fail(cmd, descriptorError(res.Err, location))
	}

	return app.fail(cmd, rejectionError(res.Descriptor, location, explain))
}

func printSummary(app *App, s *modschema.Summary) {
	if s.Name != "" {
		fmt.Fprintf(app.stdout, "  name:        %s\n", s.Name)
	}
	if s.Title != "" {
		fmt.Fprintf(app.stdout, "  title:       %s\n", s.Title)
	}
	if s.Version != "" {
		fmt.Fprintf(app.stdout, "  version:     %s\n", s.Version)
	}
	if s.Description != "" {
		fmt.Fprintf(app.stdout, "  description: %s\n", VerboseStyle.Render(s.Description))
	}
}

// rejectionError describes why d is not a valid module.
func rejectionError(d descriptor.Descriptor, location string, explain bool) error {
	if d == nil {
		cause := fmt.Errorf("%w: %s", locator.ErrMissingDescriptorFile, location)
		return descriptorError(cause, location)
	}

	kind, err := modschema.CheckDeclared(d)
	if errors.Is(err, descriptor.ErrUnrecognizedKind) {
		ae := issue.NewErrorContext().
			WithOperation("validate descriptor").
			WithResource(location).
			WithIssue(issue.UnrecognizedKindId).
			WithSuggestion(`Set "type" to one of Module, Submodule, Scenario or Collection`).
			Wrap(err).
			BuildError()
		return newServiceError(ae, issue.UnrecognizedKindId, "")
	}

	cause := fmt.Errorf("descriptor is not a valid %s", kind)
	if explain && err != nil {
		cause = fmt.Errorf("descriptor is not a valid %s: %w", kind, err)
	}
	ctx := issue.NewErrorContext().
		WithOperation("validate descriptor").
		WithResource(location).
		WithIssue(issue.ValidationRejectedId).
		Wrap(cause)
	if !explain {
		ctx.WithSuggestion("Run again with --explain to list the schema violations")
	}
	return newServiceError(ctx.BuildError(), issue.ValidationRejectedId, "")
}
