// SPDX-License-Identifier: MPL-2.0

package descriptor

import (
	"errors"
	"fmt"
)

const (
	// KindUnrecognized is the zero Kind: the discriminator is missing or not one
	// of the known module kinds.
	KindUnrecognized Kind = iota
	// KindModule is a top-level module.
	KindModule
	// KindSubmodule is a module nested under a parent module.
	KindSubmodule
	// KindScenario groups modules into a runnable scenario.
	KindScenario
	// KindCollection groups scenarios and modules for distribution.
	KindCollection
)

// ErrUnrecognizedKind is returned by Kind.Validate for KindUnrecognized and
// out-of-range values.
var ErrUnrecognizedKind = errors.New("unrecognized module kind")

// Kind is the module kind declared by a descriptor's discriminator field.
type Kind int

var kindNames = [...]string{
	KindModule:     "Module",
	KindSubmodule:  "Submodule",
	KindScenario:   "Scenario",
	KindCollection: "Collection",
}

// Kinds returns the known module kinds in declaration order.
func Kinds() []Kind {
	return []Kind{KindModule, KindSubmodule, KindScenario, KindCollection}
}

// ParseKind maps a discriminator value to a Kind. Only the exact, case-sensitive
// kind names are recognized; every other value yields KindUnrecognized.
func ParseKind(v any) Kind {
	s, ok := v.(string)
	if !ok {
		return KindUnrecognized
	}
	for _, k := range Kinds() {
		if kindNames[k] == s {
			return k
		}
	}
	return KindUnrecognized
}

// String returns the discriminator value for the kind, or "Unrecognized".
func (k Kind) String() string {
	if k.IsKnown() {
		return kindNames[k]
	}
	return "Unrecognized"
}

// IsKnown reports whether k is one of the four module kinds.
func (k Kind) IsKnown() bool {
	return k >= KindModule && k <= KindCollection
}

// Validate returns an error wrapping ErrUnrecognizedKind unless k is known.
func (k Kind) Validate() error {
	if k.IsKnown() {
		return nil
	}
	return fmt.Errorf("%w: %d", ErrUnrecognizedKind, int(k))
}
