// SPDX-License-Identifier: MPL-2.0

package descriptor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
)

// DiscriminatorField is the reserved key holding the module kind.
const DiscriminatorField = "type"

// ErrNotObject is returned by Parse when the JSON document is valid but its
// top-level value is not an object.
var ErrNotObject = errors.New("descriptor is not a JSON object")

// Descriptor is a parsed module descriptor document. Numbers are kept as
// json.Number so they survive re-encoding unchanged.
type Descriptor map[string]any

// Parse decodes data as a single JSON object.
func Parse(data []byte) (Descriptor, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("invalid JSON: unexpected data after top-level value")
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrNotObject, jsonTypeName(v))
	}
	return Descriptor(obj), nil
}

// Kind returns the kind declared by the discriminator field.
func (d Descriptor) Kind() Kind {
	return ParseKind(d[DiscriminatorField])
}

// Lookup returns the value stored under key and whether the key is present.
// Present values are returned as-is, including null, false, "" and 0.
func (d Descriptor) Lookup(key string) (any, bool) {
	v, ok := d[key]
	return v, ok
}

// Value returns the value stored under key, treating missing keys and falsy
// values alike as absent. Use Lookup to tell the two apart.
func (d Descriptor) Value(key string) (any, bool) {
	v, ok := d[key]
	if !ok || !Truthy(v) {
		return nil, false
	}
	return v, true
}

// Marshal encodes the descriptor back to JSON.
func (d Descriptor) Marshal() ([]byte, error) {
	return json.Marshal(map[string]any(d))
}

// Plain returns a deep copy of d with every json.Number converted to int64
// when it is integral and in range, to float64 when it fits, or to its text.
// Encoders that do not understand json.Number (YAML, TOML) need this form.
func (d Descriptor) Plain() map[string]any {
	if d == nil {
		return nil
	}
	return plain(map[string]any(d)).(map[string]any)
}

func plain(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = plain(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = plain(e)
		}
		return out
	default:
		return v
	}
}

// Truthy reports whether v counts as a present value for Value: nil, false,
// the empty string and numeric zero are falsy, everything else is truthy
// (empty arrays and objects included).
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			// Out of float range: certainly not zero.
			return true
		}
		return f != 0 && !math.IsNaN(f)
	case float64:
		return x != 0 && !math.IsNaN(x)
	case float32:
		return x != 0 && !math.IsNaN(float64(x))
	case int:
		return x != 0
	case int64:
		return x != 0
	default:
		return true
	}
}

func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
