// SPDX-License-Identifier: MPL-2.0

package classifier

import (
	"fmt"

	"github.com/invowk/modreader/pkg/descriptor"
	"github.com/invowk/modreader/pkg/locator"
)

// CodePredicatePanicked is reported when a predicate panics; the descriptor is rejected.
const CodePredicatePanicked = "predicate_panicked"

type (
	// Resolver produces the descriptor at a location, or nil when there is none.
	// *locator.Locator implements it.
	Resolver interface {
		Resolve(location string) (descriptor.Descriptor, error)
	}

	// Classifier dispatches descriptors to per-kind predicates. It keeps no
	// state between calls.
	Classifier struct {
		resolver   Resolver
		predicates Predicates
		sink       locator.Sink
	}

	// Option configures a Classifier.
	Option func(*Classifier)
)

// WithSink sets where predicate panics are reported. Default is locator.Discard.
func WithSink(sink locator.Sink) Option {
	return func(c *Classifier) {
		if sink != nil {
			c.sink = sink
		}
	}
}

// New creates a Classifier reading through resolver and validating with predicates.
func New(resolver Resolver, predicates Predicates, opts ...Option) *Classifier {
	c := &Classifier{
		resolver:   resolver,
		predicates: predicates,
		sink:       locator.Discard,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify reports the kind declared by d and whether that kind's predicate
// accepts it. Descriptors with a missing or unrecognized discriminator return
// (KindUnrecognized, false) without calling any predicate.
func (c *Classifier) Classify(d descriptor.Descriptor) (descriptor.Kind, bool) {
	return c.classify(d, "")
}

// ClassifyAt is Classify for a descriptor read from location; diagnostics
// raised while classifying it carry that path.
func (c *Classifier) ClassifyAt(location string, d descriptor.Descriptor) (descriptor.Kind, bool) {
	return c.classify(d, location)
}

// Resolve returns the descriptor at location if it is a valid module of a known
// kind, and nil otherwise. The returned descriptor is the one produced by the
// resolver, unmodified. Only resolver errors are returned.
func (c *Classifier) Resolve(location string) (descriptor.Descriptor, error) {
	d, _, err := c.ResolveKind(location)
	return d, err
}

// ResolveKind is Resolve that also returns the accepted kind.
func (c *Classifier) ResolveKind(location string) (descriptor.Descriptor, descriptor.Kind, error) {
	d, err := c.resolver.Resolve(location)
	if err != nil {
		return nil, descriptor.KindUnrecognized, err
	}
	if d == nil {
		return nil, descriptor.KindUnrecognized, nil
	}

	kind, ok := c.classify(d, location)
	if !ok {
		return nil, descriptor.KindUnrecognized, nil
	}
	return d, kind, nil
}

func (c *Classifier) classify(d descriptor.Descriptor, location string) (descriptor.Kind, bool) {
	kind := d.Kind()
	if !kind.IsKnown() {
		return descriptor.KindUnrecognized, false
	}
	pred, ok := c.predicates.For(kind)
	if !ok {
		return kind, false
	}
	return kind, c.accepts(pred, kind, d, location)
}

func (c *Classifier) accepts(pred Predicate, kind descriptor.Kind, d descriptor.Descriptor, location string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			c.sink.Report(locator.Diagnostic{
				Severity: locator.SeverityError,
				Code:     CodePredicatePanicked,
				Message:  fmt.Sprintf("%s predicate panicked: %v", kind, r),
				Path:     location,
			})
		}
	}()
	return pred(d)
}
