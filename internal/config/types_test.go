// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"

	"github.com/invowk/modreader/pkg/locator"
)

func TestConfig_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mutate   func(*Config)
		wantErrs []error
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{
			name:     "blank descriptor file",
			mutate:   func(c *Config) { c.DescriptorFile = "/" },
			wantErrs: []error{ErrInvalidConfig, ErrInvalidDescriptorFileName},
		},
		{
			name:     "unknown missing mode",
			mutate:   func(c *Config) { c.MissingDescriptor = "Error" },
			wantErrs: []error{ErrInvalidMissingDescriptorMode},
		},
		{
			name:     "unknown color scheme",
			mutate:   func(c *Config) { c.UI.ColorScheme = "sepia" },
			wantErrs: []error{ErrInvalidColorScheme},
		},
		{
			name:     "blank skip dir",
			mutate:   func(c *Config) { c.Scan.SkipDirs = []string{".git", " "} },
			wantErrs: []error{ErrInvalidScanConfig},
		},
		{
			name: "several problems",
			mutate: func(c *Config) {
				c.MaxFileSize = 0
				c.Scan.MaxDepth = -2
				c.UI.ColorScheme = ""
			},
			wantErrs: []error{ErrInvalidConfig, ErrInvalidScanConfig, ErrInvalidColorScheme},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			valid, errs := cfg.IsValid()
			if valid != (len(tt.wantErrs) == 0) {
				t.Fatalf("IsValid() = %v, %v", valid, errs)
			}
			if valid {
				return
			}
			if len(errs) != 1 {
				t.Fatalf("IsValid() returned %d errors, want one InvalidConfigError", len(errs))
			}
			for _, want := range tt.wantErrs {
				if !errors.Is(errs[0], want) {
					t.Errorf("error %v does not match %v", errs[0], want)
				}
			}
		})
	}
}

func TestMissingDescriptorMode_Policy(t *testing.T) {
	t.Parallel()

	if MissingDescriptorError.Policy() != locator.MissingFileError {
		t.Error("error mode should map to MissingFileError")
	}
	if MissingDescriptorAbsent.Policy() != locator.MissingFileAbsent {
		t.Error("absent mode should map to MissingFileAbsent")
	}
	if MissingDescriptorMode("bogus").Policy() != locator.MissingFileError {
		t.Error("unknown modes should map to MissingFileError")
	}
}

func TestEnvName(t *testing.T) {
	t.Parallel()

	for key, want := range map[string]string{
		"descriptor_file":         "MODREADER_DESCRIPTOR_FILE",
		"scan.max_depth":          "MODREADER_SCAN_MAX_DEPTH",
		"scan.include_json_files": "MODREADER_SCAN_INCLUDE_JSON_FILES",
	} {
		if got := EnvName(key); got != want {
			t.Errorf("EnvName(%q) = %q, want %q", key, got, want)
		}
	}
}
