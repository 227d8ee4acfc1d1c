// SPDX-License-Identifier: MPL-2.0

// Package reader is the public surface for loading module descriptors.
//
// A [Reader] combines a [locator.Locator] and a [classifier.Classifier]:
//   - [Reader.Raw] returns the parsed descriptor at a location, unvalidated.
//   - [Reader.GetValue] reads one top-level field, collapsing falsy values to absent.
//   - [Reader.JSON] returns the descriptor only when it is a valid module.
//
// Absent results are reported as a nil descriptor (or false) with a nil error.
// Under the default missing-file policy the only error a Reader returns is
// [locator.ErrMissingDescriptorFile], for a directory without a descriptor file.
package reader
