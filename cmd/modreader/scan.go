// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/invowk/modreader/internal/discovery"
	"github.com/invowk/modreader/pkg/descriptor"

	"github.com/spf13/cobra"
)

// newScanCommand creates the `modreader scan` command.
func newScanCommand(app *App) *cobra.Command {
	var (
		jsonFiles bool
		maxDepth  int
	)

	cmd := &cobra.Command{
		Use:   "scan [root]",
		Short: "List every valid module below a directory",
		Long: `Walk a directory tree and list every valid module found in it.

Each directory holding a descriptor file is a candidate. With --json-files,
other *.json files are classified as standalone descriptors too. Descriptors
that cannot be read or are not valid modules are reported as diagnostics.

Examples:
  modreader scan
  modreader scan ./modules --max-depth 2 --json-files`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}

			opts := discovery.Options{
				MaxDepth:         app.cfg.Scan.MaxDepth,
				SkipDirs:         app.cfg.Scan.SkipDirs,
				IncludeJSONFiles: app.cfg.Scan.IncludeJSONFiles,
			}
			if cmd.Flags().Changed("max-depth") {
				opts.MaxDepth = maxDepth
			}
			if cmd.Flags().Changed("json-files") {
				opts.IncludeJSONFiles = jsonFiles
			}

			scanner := discovery.NewScanner(app.fs, opts, app.readerOptions()...)
			result, err := scanner.Scan(cmd.Context(), root)
			if err != nil {
				return app.fail(cmd, fmt.Errorf("failed to scan %s: %w", root, err))
			}

			renderScanResult(app, result)
			app.Diagnostics.Render(cmd.Context(), result.Diagnostics, app.stderr)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonFiles, "json-files", false, "also classify standalone *.json files")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "maximum directory depth below the root (0 means unlimited)")
	return cmd
}

func renderScanResult(app *App, result discovery.Result) {
	for _, m := range result.Modules {
		name, _ := m.Descriptor.Value("name")
		s, _ := name.(string)
		fmt.Fprintf(app.stdout, "%s %s %s\n",
			KindStyle.Render(m.Kind.String()), PathStyle.Render(m.Path), s)
	}

	counts := result.CountByKind()
	parts := make([]string, 0, len(counts))
	for _, kind := range descriptor.Kinds() {
		if n := counts[kind]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, kind))
		}
	}

	summary := fmt.Sprintf("%d module(s) in %d candidate(s)", len(result.Modules), result.Candidates)
	if len(parts) > 0 {
		summary += " (" + strings.Join(parts, ", ") + ")"
	}
	fmt.Fprintln(app.stdout, SubtitleStyle.Render(summary))
}
