// SPDX-License-Identifier: MPL-2.0

package descriptor_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/invowk/modreader/pkg/descriptor"
)

func TestParseKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
		want  descriptor.Kind
	}{
		{name: "module", value: "Module", want: descriptor.KindModule},
		{name: "submodule", value: "Submodule", want: descriptor.KindSubmodule},
		{name: "scenario", value: "Scenario", want: descriptor.KindScenario},
		{name: "collection", value: "Collection", want: descriptor.KindCollection},
		{name: "missing", value: nil, want: descriptor.KindUnrecognized},
		{name: "unknown name", value: "Unknown", want: descriptor.KindUnrecognized},
		{name: "wrong case", value: "module", want: descriptor.KindUnrecognized},
		{name: "padded", value: " Module", want: descriptor.KindUnrecognized},
		{name: "empty string", value: "", want: descriptor.KindUnrecognized},
		{name: "number", value: json.Number("1"), want: descriptor.KindUnrecognized},
		{name: "list", value: []any{"Module"}, want: descriptor.KindUnrecognized},
		{name: "fallback label", value: "Unrecognized", want: descriptor.KindUnrecognized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := descriptor.ParseKind(tt.value); got != tt.want {
				t.Errorf("ParseKind(%#v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestKind_StringRoundTrip(t *testing.T) {
	t.Parallel()

	for _, k := range descriptor.Kinds() {
		if got := descriptor.ParseKind(k.String()); got != k {
			t.Errorf("ParseKind(%q) = %v, want %v", k.String(), got, k)
		}
		if err := k.Validate(); err != nil {
			t.Errorf("%v.Validate() = %v, want nil", k, err)
		}
	}
}

func TestKind_Unrecognized(t *testing.T) {
	t.Parallel()

	for _, k := range []descriptor.Kind{descriptor.KindUnrecognized, descriptor.Kind(42), descriptor.Kind(-1)} {
		if k.IsKnown() {
			t.Errorf("Kind(%d).IsKnown() = true, want false", int(k))
		}
		if k.String() != "Unrecognized" {
			t.Errorf("Kind(%d).String() = %q, want Unrecognized", int(k), k.String())
		}
		if err := k.Validate(); !errors.Is(err, descriptor.ErrUnrecognizedKind) {
			t.Errorf("Kind(%d).Validate() = %v, want ErrUnrecognizedKind", int(k), err)
		}
	}
}
