// SPDX-License-Identifier: MPL-2.0

// Package cmd implements the modreader command line: raw, get, validate, scan,
// schema and config subcommands over the reader and discovery packages.
package cmd
