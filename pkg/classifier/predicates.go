// SPDX-License-Identifier: MPL-2.0

package classifier

import (
	"fmt"

	"github.com/invowk/modreader/pkg/descriptor"
)

type (
	// Predicate decides whether a descriptor is acceptable for one kind.
	// Predicates must not modify the descriptor.
	Predicate func(descriptor.Descriptor) bool

	// Predicates is an immutable table of predicates keyed by kind.
	// The zero value has no predicates and rejects everything.
	Predicates struct {
		byKind [descriptor.KindCollection + 1]Predicate
	}
)

// NewPredicates builds a table from m. Only known kinds may appear as keys;
// nil predicates are skipped. Kinds without a predicate reject every descriptor.
func NewPredicates(m map[descriptor.Kind]Predicate) (Predicates, error) {
	var p Predicates
	for kind, pred := range m {
		if err := kind.Validate(); err != nil {
			return Predicates{}, fmt.Errorf("predicate table: %w", err)
		}
		p.byKind[kind] = pred
	}
	return p, nil
}

// MustPredicates is NewPredicates for static tables; it panics on an invalid kind.
func MustPredicates(m map[descriptor.Kind]Predicate) Predicates {
	p, err := NewPredicates(m)
	if err != nil {
		panic(err)
	}
	return p
}

// For returns the predicate registered for kind.
func (p Predicates) For(kind descriptor.Kind) (Predicate, bool) {
	if !kind.IsKnown() {
		return nil, false
	}
	pred := p.byKind[kind]
	return pred, pred != nil
}

// Kinds returns the kinds that have a predicate, in declaration order.
func (p Predicates) Kinds() []descriptor.Kind {
	var kinds []descriptor.Kind
	for _, k := range descriptor.Kinds() {
		if p.byKind[k] != nil {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
