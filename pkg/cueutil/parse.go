// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

type (
	// ParseResult contains the result of a successful parse.
	ParseResult[T any] struct {
		// Value is the decoded Go value.
		Value *T

		// Unified is the schema-unified CUE value, for callers that need to
		// extract more than what T captures. It shares the runtime of the
		// Schema that produced it and must not be used concurrently with
		// further calls on that Schema.
		Unified cue.Value
	}

	// Schema is a compiled CUE schema that can check many inputs.
	// Evaluation is serialized because a cue.Context is not safe for
	// concurrent use.
	Schema struct {
		mu    sync.Mutex
		value cue.Value
	}
)

// Compile compiles src once for reuse by Check and Decode.
func Compile(src []byte) (*Schema, error) {
	value := cuecontext.New().CompileBytes(src)
	if value.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", value.Err())
	}
	return &Schema{value: value}, nil
}

// MustCompile is Compile for embedded schemas; it panics if src does not compile.
func MustCompile(src []byte) *Schema {
	s, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return s
}

// Check validates data against the definition at schemaPath without decoding it.
// The returned error carries the JSON path of every violation.
func (s *Schema) Check(data []byte, schemaPath string, opts ...Option) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.unify(data, schemaPath, newOptions(opts))
	return err
}

// Decode validates data against the definition at schemaPath of s and
// decodes the unified value into T.
func Decode[T any](s *Schema, data []byte, schemaPath string, opts ...Option) (*ParseResult[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	options := newOptions(opts)
	unified, err := s.unify(data, schemaPath, options)
	if err != nil {
		return nil, err
	}

	var result T
	if err := unified.Decode(&result); err != nil {
		return nil, FormatError(err, options.filename)
	}

	return &ParseResult[T]{
		Value:   &result,
		Unified: unified,
	}, nil
}

// Check compiles schema and validates data against the definition at
// schemaPath. Callers checking many inputs should Compile once instead.
func Check(schema, data []byte, schemaPath string, opts ...Option) error {
	s, err := Compile(schema)
	if err != nil {
		return err
	}
	return s.Check(data, schemaPath, opts...)
}

// ParseAndDecode compiles schema, validates data against the definition at
// schemaPath and decodes the unified value into T.
//
// Parameters:
//   - schema: the embedded CUE schema bytes (from //go:embed)
//   - data: user-provided CUE or JSON bytes
//   - schemaPath: path to the root definition (e.g., "#Module", "#Config")
//   - opts: optional configuration
func ParseAndDecode[T any](schema, data []byte, schemaPath string, opts ...Option) (*ParseResult[T], error) {
	s, err := Compile(schema)
	if err != nil {
		return nil, err
	}
	return Decode[T](s, data, schemaPath, opts...)
}

// ParseAndDecodeString is ParseAndDecode for schemas embedded as a string.
func ParseAndDecodeString[T any](schema string, data []byte, schemaPath string, opts ...Option) (*ParseResult[T], error) {
	return ParseAndDecode[T]([]byte(schema), data, schemaPath, opts...)
}

// unify must be called with s.mu held.
func (s *Schema) unify(data []byte, schemaPath string, options parseOptions) (cue.Value, error) {
	if options.maxFileSize > 0 {
		if err := CheckFileSize(data, options.maxFileSize, options.filename); err != nil {
			return cue.Value{}, err
		}
	}

	root := s.value.LookupPath(cue.ParsePath(schemaPath))
	if root.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, root.Err())
	}

	userValue := s.value.Context().CompileBytes(data, cue.Filename(options.filename))
	if userValue.Err() != nil {
		return cue.Value{}, FormatError(userValue.Err(), options.filename)
	}

	unified := root.Unify(userValue)
	if err := unified.Validate(cue.Concrete(options.concrete)); err != nil {
		return cue.Value{}, FormatError(err, options.filename)
	}

	return unified, nil
}
