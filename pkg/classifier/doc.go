// SPDX-License-Identifier: MPL-2.0

// Package classifier narrows a resolved descriptor to a valid module of a known kind.
//
// The discriminator field selects one predicate from an immutable [Predicates]
// table injected at construction. A descriptor is returned only when its kind is
// known and that kind's predicate accepts it; every other outcome is "absent",
// with no detail about why. Callers that need the reason should ask the
// validation service that supplied the predicates.
package classifier
