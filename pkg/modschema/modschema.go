// SPDX-License-Identifier: MPL-2.0

package modschema

import (
	_ "embed"
	"fmt"

	"github.com/invowk/modreader/pkg/classifier"
	"github.com/invowk/modreader/pkg/cueutil"
	"github.com/invowk/modreader/pkg/descriptor"
)

//go:embed modschema.cue
var schema []byte

// compiled is shared by every check. Descriptors reach it already parsed, so
// the byte limit was applied by whoever read them and is not repeated here.
var compiled = cueutil.MustCompile(schema)

// Summary is the validated header of a descriptor.
type Summary struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Title       string `json:"title,omitempty"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`
}

// Schema returns the embedded CUE schema source.
func Schema() string {
	return string(schema)
}

// Check validates d against the schema definition for kind.
func Check(kind descriptor.Kind, d descriptor.Descriptor) error {
	def, data, err := prepare(kind, d)
	if err != nil {
		return err
	}
	return compiled.Check(data, def, checkOptions(kind)...)
}

// CheckDeclared validates d against the definition for the kind it declares.
func CheckDeclared(d descriptor.Descriptor) (descriptor.Kind, error) {
	kind := d.Kind()
	if !kind.IsKnown() {
		return kind, fmt.Errorf("%w: %q field is %v", descriptor.ErrUnrecognizedKind, descriptor.DiscriminatorField, d[descriptor.DiscriminatorField])
	}
	return kind, Check(kind, d)
}

// Inspect validates d against the definition for kind and decodes its header.
func Inspect(kind descriptor.Kind, d descriptor.Descriptor) (*Summary, error) {
	def, data, err := prepare(kind, d)
	if err != nil {
		return nil, err
	}
	result, err := cueutil.Decode[Summary](compiled, data, def, checkOptions(kind)...)
	if err != nil {
		return nil, err
	}
	return result.Value, nil
}

// Module reports whether d is a valid Module descriptor.
func Module(d descriptor.Descriptor) bool { return Check(descriptor.KindModule, d) == nil }

// Submodule reports whether d is a valid Submodule descriptor.
func Submodule(d descriptor.Descriptor) bool { return Check(descriptor.KindSubmodule, d) == nil }

// Scenario reports whether d is a valid Scenario descriptor.
func Scenario(d descriptor.Descriptor) bool { return Check(descriptor.KindScenario, d) == nil }

// Collection reports whether d is a valid Collection descriptor.
func Collection(d descriptor.Descriptor) bool { return Check(descriptor.KindCollection, d) == nil }

// Predicates returns the predicate table for all four kinds.
func Predicates() classifier.Predicates {
	return classifier.MustPredicates(map[descriptor.Kind]classifier.Predicate{
		descriptor.KindModule:     Module,
		descriptor.KindSubmodule:  Submodule,
		descriptor.KindScenario:   Scenario,
		descriptor.KindCollection: Collection,
	})
}

func prepare(kind descriptor.Kind, d descriptor.Descriptor) (string, []byte, error) {
	if err := kind.Validate(); err != nil {
		return "", nil, err
	}
	data, err := d.Marshal()
	if err != nil {
		return "", nil, fmt.Errorf("encode descriptor: %w", err)
	}
	return "#" + kind.String(), data, nil
}

func checkOptions(kind descriptor.Kind) []cueutil.Option {
	return []cueutil.Option{cueutil.WithFilename(kind.String()), cueutil.WithMaxFileSize(0)}
}
