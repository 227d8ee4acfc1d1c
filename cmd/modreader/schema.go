// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/invowk/modreader/pkg/modschema"

	"github.com/spf13/cobra"
)

// newSchemaCommand creates the `modreader schema` command.
func newSchemaCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the CUE schema descriptors are validated against",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(app.stdout, modschema.Schema())
			return nil
		},
	}
}
