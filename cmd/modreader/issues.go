// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strconv"

	"github.com/invowk/modreader/internal/issue"

	"github.com/spf13/cobra"
)

// newIssuesCommand creates the `modreader issues` command, which lists the
// error catalog or prints one of its entries.
func newIssuesCommand(app *App) *cobra.Command {
	var markdown bool

	cmd := &cobra.Command{
		Use:   "issues [id]",
		Short: "List the error catalog or explain one entry",
		Long: `List the error catalog or explain one entry.

Without an argument, every entry is printed with its id, title and links.
With an id, the full explanation is rendered. Use --markdown to print the
Markdown source instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				listIssues(app)
				return nil
			}

			entry, err := lookupIssue(args[0])
			if err != nil {
				return app.fail(cmd, err)
			}
			if markdown {
				fmt.Fprint(app.stdout, entry.Document())
				return nil
			}
			rendered, err := entry.Render(app.glamourStyle())
			if err != nil {
				return app.fail(cmd, fmt.Errorf("render issue %d: %w", entry.Id(), err))
			}
			fmt.Fprint(app.stdout, rendered)
			return nil
		},
	}

	cmd.Flags().BoolVar(&markdown, "markdown", false, "print the Markdown source instead of rendering it")
	return cmd
}

func listIssues(app *App) {
	for _, entry := range issue.Values() {
		fmt.Fprintf(app.stdout, "%3d  %s\n", entry.Id(), entry.Title())
		for _, link := range entry.Links() {
			fmt.Fprintf(app.stdout, "       %s\n", link)
		}
	}
}

func lookupIssue(arg string) (*issue.Issue, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("look up issue").
			WithResource(arg).
			WithSuggestion("Issue ids are numbers; run 'modreader issues' to list them").
			Wrap(err).
			BuildError()
	}
	entry := issue.Get(issue.Id(id))
	if entry == nil {
		return nil, issue.NewErrorContext().
			WithOperation("look up issue").
			WithResource(arg).
			WithSuggestion("Run 'modreader issues' to list the known ids").
			Wrap(fmt.Errorf("no catalog entry with id %d", id)).
			BuildError()
	}
	return entry, nil
}
