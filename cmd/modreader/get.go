// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// newGetCommand creates the `modreader get` command.
func newGetCommand(app *App) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "get <location> <field>",
		Short: "Print one top-level field of a descriptor",
		Long: `Print the value of one top-level field of the descriptor at a location.

Strings are printed as-is, every other value as JSON. A field that is missing,
or whose value is false, 0, "" or null, is treated as absent and the command
exits with status 1 without output. Use --strict to print falsy values too.

Examples:
  modreader get ./core version
  modreader get ./core private --strict`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := app.newReader()
			if err != nil {
				return app.fail(cmd, err)
			}

			lookup := r.GetValue
			if strict {
				lookup = r.Lookup
			}

			v, ok, err := lookup(args[0], args[1])
			if err != nil {
				return app.fail(cmd, descriptorError(err, args[0]))
			}
			if !ok {
				cmd.SilenceUsage = true
				cmd.SilenceErrors = true
				return &ExitError{Code: 1}
			}

			if s, isString := v.(string); isString {
				fmt.Fprintln(app.stdout, s)
				return nil
			}
			out, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("failed to encode field %q: %w", args[1], err)
			}
			fmt.Fprintln(app.stdout, string(out))
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "report falsy values instead of treating them as absent")
	return cmd
}
