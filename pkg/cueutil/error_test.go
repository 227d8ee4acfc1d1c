// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"
)

func TestFormatError(t *testing.T) {
	t.Parallel()

	t.Run("nil error returns nil", func(t *testing.T) {
		t.Parallel()

		if err := FormatError(nil, "module.json"); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})

	t.Run("non-CUE error keeps the cause", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("disk on fire")
		err := FormatError(cause, "module.json")
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.HasPrefix(err.Error(), "module.json: ") {
			t.Errorf("error should start with the file path, got: %v", err)
		}
		if !errors.Is(err, cause) {
			t.Errorf("errors.Is(err, cause) = false, want true")
		}
	})
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path []string
		want string
	}{
		{name: "empty path", path: nil, want: ""},
		{name: "single element", path: []string{"name"}, want: "name"},
		{name: "nested field", path: []string{"ui", "verbose"}, want: "ui.verbose"},
		{name: "list index", path: []string{"modules", "0"}, want: "modules[0]"},
		{name: "index then field", path: []string{"items", "2", "name"}, want: "items[2].name"},
		{name: "leading numeric stays bare", path: []string{"0", "name"}, want: "0.name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := formatPath(tt.path); got != tt.want {
				t.Errorf("formatPath(%v) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestCheckFileSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		size    int
		max     int64
		wantErr bool
	}{
		{name: "empty", size: 0, max: 100},
		{name: "within limit", size: 11, max: 100},
		{name: "exact limit", size: 100, max: 100},
		{name: "over limit", size: 101, max: 100, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := CheckFileSize(make([]byte, tt.size), tt.max, "module.json")
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckFileSize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if !errors.Is(err, ErrFileTooLarge) {
				t.Errorf("error does not wrap ErrFileTooLarge: %v", err)
			}
			if !strings.Contains(err.Error(), "101") || !strings.Contains(err.Error(), "module.json") {
				t.Errorf("error should mention size and file, got: %v", err)
			}
		})
	}
}
