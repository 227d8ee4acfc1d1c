// SPDX-License-Identifier: MPL-2.0

// Package discovery scans a directory tree for module descriptors.
//
// A directory is a candidate when it contains the conventional descriptor file;
// standalone *.json files are candidates when Options.IncludeJSONFiles is set.
// Every candidate is loaded and classified through a fail-soft reader, so a
// broken descriptor is reported as a diagnostic and never aborts the scan.
package discovery
