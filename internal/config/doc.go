// SPDX-License-Identifier: MPL-2.0

// Package config handles modreader configuration using Viper with CUE as the file format.
//
// Configuration is loaded from the first file found among:
//   - the path given with --config (exclusive when set)
//   - config.cue in the platform config directory ($XDG_CONFIG_HOME/modreader on
//     Linux, ~/Library/Application Support/modreader on macOS, %APPDATA%\modreader
//     on Windows)
//   - modreader.cue in the working directory
//
// Files are validated against the embedded CUE schema (config_schema.cue).
// Environment variables prefixed with MODREADER_ override file values, and a
// .env file in the working directory supplies such variables without
// overriding ones already set in the process environment.
package config
