// SPDX-License-Identifier: MPL-2.0

// Package descriptor defines the untyped module descriptor document and the
// closed set of module kinds a descriptor may declare through its "type" field.
//
// A [Descriptor] is the JSON object read from a module descriptor file. It has no
// identity beyond the path it was read from and is treated as immutable once parsed.
//
// # Kinds
//
// [ParseKind] maps a discriminator value to one of [KindModule], [KindSubmodule],
// [KindScenario] or [KindCollection]. Anything else, including a missing field or a
// non-string value, maps to [KindUnrecognized].
//
// # Field access
//
// [Descriptor.Value] collapses falsy values (null, false, "", 0) to "absent" for
// compatibility with existing consumers. [Descriptor.Lookup] only reports key presence.
package descriptor
