// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/invowk/modreader/pkg/descriptor"
	"github.com/invowk/modreader/pkg/locator"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatTOML = "toml"
)

// newRawCommand creates the `modreader raw` command.
func newRawCommand(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "raw <location>",
		Short: "Print the parsed descriptor without validating it",
		Long: `Print the parsed descriptor at a location without validating it.

The location is either a descriptor file or a module directory, in which case
the descriptor file inside it is read.

Examples:
  modreader raw ./core
  modreader raw ./core/module.json --format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isOutputFormat(format) {
				return fmt.Errorf("invalid --format %q: want json, yaml or toml", format)
			}

			r, err := app.newReader()
			if err != nil {
				return app.fail(cmd, err)
			}

			d, err := r.Raw(args[0])
			if err != nil {
				return app.fail(cmd, descriptorError(err, args[0]))
			}
			if d == nil {
				// Read and parse failures were already logged by the sink.
				if res := r.Locator().Load(args[0]); errors.Is(res.Err, locator.ErrNotFound) {
					return app.fail(cmd, descriptorError(res.Err, args[0]))
				}
				cmd.SilenceUsage = true
				cmd.SilenceErrors = true
				return &ExitError{Code: 1}
			}

			if err := writeDescriptor(app.stdout, d, format); err != nil {
				return fmt.Errorf("failed to encode descriptor as %s: %w", format, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format (json, yaml, toml)")
	return cmd
}

func isOutputFormat(format string) bool {
	switch format {
	case formatJSON, formatYAML, formatTOML:
		return true
	default:
		return false
	}
}

// writeDescriptor encodes d to w in the given format. Nulls are dropped from
// TOML output since TOML has no null value.
func writeDescriptor(w io.Writer, d descriptor.Descriptor, format string) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d.Plain()); err != nil {
			return err
		}
		return enc.Close()
	case formatTOML:
		return toml.NewEncoder(w).Encode(dropNulls(d.Plain()))
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	}
}

func dropNulls(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if v == nil {
			continue
		}
		out[k] = dropNullValue(v)
	}
	return out
}

func dropNullValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return dropNulls(t)
	case []any:
		out := make([]any, 0, len(t))
		for _, e := range t {
			if e == nil {
				continue
			}
			out = append(out, dropNullValue(e))
		}
		return out
	default:
		return v
	}
}
