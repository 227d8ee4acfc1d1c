// SPDX-License-Identifier: MPL-2.0

// Package cueutil wraps the CUE compile/unify/validate flow used to check
// descriptors and configuration files against embedded schemas.
//
// Every entry point follows the same three steps:
//
//  1. Compile the embedded schema and look up the root definition
//  2. Compile the user data (JSON is valid CUE) and unify it with the definition
//  3. Validate, and optionally decode into a Go value
//
// # Usage
//
//	//go:embed modschema.cue
//	var schema []byte
//
//	var compiled = cueutil.MustCompile(schema)
//
//	if err := compiled.Check(data, "#Module", cueutil.WithFilename(path)); err != nil {
//	    return err // includes the JSON path of the offending field
//	}
//
// Check and ParseAndDecode compile the schema on every call and suit one-off
// inputs such as configuration files.
package cueutil
