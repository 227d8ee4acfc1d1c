// SPDX-License-Identifier: MPL-2.0

package reader

import (
	"github.com/invowk/modreader/pkg/classifier"
	"github.com/invowk/modreader/pkg/descriptor"
	"github.com/invowk/modreader/pkg/locator"
	"github.com/invowk/modreader/pkg/modschema"
)

type (
	// Reader loads, inspects and classifies module descriptors.
	// It is safe for concurrent use when its Storage and Sink are.
	Reader struct {
		locator    *locator.Locator
		classifier *classifier.Classifier
	}

	// Option configures a Reader.
	Option func(*settings)

	settings struct {
		storage     locator.Storage
		fileName    string
		sink        locator.Sink
		predicates  *classifier.Predicates
		policy      locator.MissingFilePolicy
		maxFileSize int64
	}
)

// WithStorage sets the storage descriptors are read from. Default is the OS filesystem.
func WithStorage(s locator.Storage) Option {
	return func(o *settings) { o.storage = s }
}

// WithFileName sets the conventional descriptor file name. Default is locator.DefaultFileName.
func WithFileName(name string) Option {
	return func(o *settings) { o.fileName = name }
}

// WithSink sets where diagnostics are reported. Default is locator.Discard.
func WithSink(sink locator.Sink) Option {
	return func(o *settings) { o.sink = sink }
}

// WithPredicates replaces the schema predicates from modschema.
func WithPredicates(p classifier.Predicates) Option {
	return func(o *settings) { o.predicates = &p }
}

// WithMissingFilePolicy sets how a directory without a descriptor file resolves.
func WithMissingFilePolicy(p locator.MissingFilePolicy) Option {
	return func(o *settings) { o.policy = p }
}

// WithMaxFileSize bounds the size of descriptor files.
func WithMaxFileSize(size int64) Option {
	return func(o *settings) { o.maxFileSize = size }
}

// New creates a Reader. It fails only for a blank descriptor file name.
func New(opts ...Option) (*Reader, error) {
	s := settings{
		fileName: locator.DefaultFileName,
		sink:     locator.Discard,
	}
	for _, opt := range opts {
		opt(&s)
	}

	loc, err := locator.New(s.storage, s.fileName,
		locator.WithSink(s.sink),
		locator.WithMissingFilePolicy(s.policy),
		locator.WithMaxFileSize(s.maxFileSize),
	)
	if err != nil {
		return nil, err
	}

	predicates := modschema.Predicates()
	if s.predicates != nil {
		predicates = *s.predicates
	}

	return &Reader{
		locator:    loc,
		classifier: classifier.New(loc, predicates, classifier.WithSink(s.sink)),
	}, nil
}

// Locator returns the underlying locator.
func (r *Reader) Locator() *locator.Locator { return r.locator }

// Raw returns the parsed descriptor at location without validating it, or nil
// when there is none.
func (r *Reader) Raw(location string) (descriptor.Descriptor, error) {
	return r.locator.Resolve(location)
}

// GetValue returns the value of the top-level field key in the descriptor at
// location. Missing fields and falsy values (false, 0, "", null) are reported
// as absent. No kind validation is performed.
func (r *Reader) GetValue(location, key string) (any, bool, error) {
	d, err := r.locator.Resolve(location)
	if err != nil || d == nil {
		return nil, false, err
	}
	v, ok := d.Value(key)
	return v, ok, nil
}

// Lookup is GetValue without the falsy collapse: any present field is returned.
func (r *Reader) Lookup(location, key string) (any, bool, error) {
	d, err := r.locator.Resolve(location)
	if err != nil || d == nil {
		return nil, false, err
	}
	v, ok := d.Lookup(key)
	return v, ok, nil
}

// JSON returns the descriptor at location if it is a valid module of a known
// kind, and nil otherwise. The returned descriptor is the parsed document itself.
func (r *Reader) JSON(location string) (descriptor.Descriptor, error) {
	return r.classifier.Resolve(location)
}

// Classify is JSON that also returns the accepted kind. The kind is
// KindUnrecognized whenever the descriptor is nil.
func (r *Reader) Classify(location string) (descriptor.Descriptor, descriptor.Kind, error) {
	return r.classifier.ResolveKind(location)
}

// Accepts classifies an already parsed descriptor: it returns the declared kind
// and whether that kind's predicate accepts it.
func (r *Reader) Accepts(d descriptor.Descriptor) (descriptor.Kind, bool) {
	return r.classifier.Classify(d)
}

// AcceptsAt is Accepts for a descriptor read from location, so diagnostics
// about it name the file it came from.
func (r *Reader) AcceptsAt(location string, d descriptor.Descriptor) (descriptor.Kind, bool) {
	return r.classifier.ClassifyAt(location, d)
}
