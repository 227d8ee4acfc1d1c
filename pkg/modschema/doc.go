// SPDX-License-Identifier: MPL-2.0

// Package modschema validates module descriptors against the embedded CUE
// schema, one definition per module kind.
//
// It is the validation service behind the classifier: [Predicates] returns the
// boolean table the classifier dispatches to, while [Check] and [Inspect] give
// callers the detailed reason a descriptor was rejected.
//
// # Schema summary
//
// Every kind requires "type" and a non-blank "name" and allows optional "title",
// "description" and "author" strings. In addition:
//   - Module: "version" (semantic version), optional "submodules" and "dependencies"
//   - Submodule: optional "module" (parent name) and "entry"
//   - Scenario: non-empty "modules" list
//   - Collection: non-empty "items" list
//
// Unknown fields are accepted.
package modschema
