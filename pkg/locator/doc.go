// SPDX-License-Identifier: MPL-2.0

// Package locator resolves a path to a parsed module descriptor.
//
// A location may name a descriptor file directly or a directory expected to hold
// the conventionally named descriptor file. Resolution is fail-soft: a location
// where nothing exists, an unreadable file and a malformed document all resolve to
// "absent" (a nil Descriptor and a nil error), so callers can probe many candidate
// locations without per-call failure handling. Read and parse failures are reported
// to a [Sink] as [Diagnostic] values instead of being returned.
//
// The single exception is a directory that lacks the descriptor file, which is a
// layout misconfiguration rather than "no module here". With the default
// [MissingFileError] policy it is returned as an error wrapping
// [ErrMissingDescriptorFile]; [MissingFileAbsent] collapses it like every other
// failure.
//
// [Locator.Load] exposes the full outcome, including which failure occurred, for
// callers that want to apply their own policy.
package locator
