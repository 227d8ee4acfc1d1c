// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors and a catalog of Markdown guidance
// for the failures a modreader user can hit: missing or malformed descriptors,
// unknown kinds, schema rejections and configuration errors.
package issue
