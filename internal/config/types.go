// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/invowk/modreader/pkg/cueutil"
	"github.com/invowk/modreader/pkg/locator"
)

const (
	// MissingDescriptorError fails calls on a directory without a descriptor file.
	MissingDescriptorError MissingDescriptorMode = "error"
	// MissingDescriptorAbsent reports such directories and resolves them to nothing.
	MissingDescriptorAbsent MissingDescriptorMode = "absent"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidMissingDescriptorMode is returned when a MissingDescriptorMode value is not recognized.
	ErrInvalidMissingDescriptorMode = errors.New("invalid missing descriptor mode")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidDescriptorFileName is returned when a DescriptorFileName is blank.
	ErrInvalidDescriptorFileName = errors.New("invalid descriptor file name")
	// ErrInvalidScanConfig is the sentinel error wrapped by InvalidScanConfigError.
	ErrInvalidScanConfig = errors.New("invalid scan config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// DescriptorFileName is the conventional descriptor file inside a module directory.
	DescriptorFileName string

	// MissingDescriptorMode selects how a directory without a descriptor file resolves.
	MissingDescriptorMode string

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidValueError is returned when an enumerated or constrained value is
	// not acceptable. It wraps Sentinel for errors.Is() compatibility.
	InvalidValueError struct {
		Sentinel error
		Value    string
		Valid    string
	}

	// InvalidScanConfigError is returned when a ScanConfig has invalid fields.
	InvalidScanConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It collects field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// DescriptorFile is the descriptor file name looked up inside directories.
		DescriptorFile DescriptorFileName `json:"descriptor_file" mapstructure:"descriptor_file"`
		// MaxFileSize bounds the size of descriptor files, in bytes.
		MaxFileSize int64 `json:"max_file_size" mapstructure:"max_file_size"`
		// MissingDescriptor is "error" or "absent".
		MissingDescriptor MissingDescriptorMode `json:"missing_descriptor" mapstructure:"missing_descriptor"`
		// Scan configures directory tree scans.
		Scan ScanConfig `json:"scan" mapstructure:"scan"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// ScanConfig configures directory tree scans.
	ScanConfig struct {
		// MaxDepth limits recursion below the root; 0 means unlimited.
		MaxDepth int `json:"max_depth" mapstructure:"max_depth"`
		// SkipDirs lists directory names that are never entered.
		SkipDirs []string `json:"skip_dirs" mapstructure:"skip_dirs"`
		// IncludeJSONFiles also classifies standalone *.json files.
		IncludeJSONFiles bool `json:"include_json_files" mapstructure:"include_json_files"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables debug logging
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// Error implements the error interface for InvalidValueError.
func (e *InvalidValueError) Error() string {
	if e.Valid == "" {
		return fmt.Sprintf("%s %q", e.Sentinel, e.Value)
	}
	return fmt.Sprintf("%s %q (valid: %s)", e.Sentinel, e.Value, e.Valid)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidValueError) Unwrap() error { return e.Sentinel }

// String returns the string representation of the DescriptorFileName.
func (n DescriptorFileName) String() string { return string(n) }

// IsValid returns whether the name contains something other than separators and spaces.
func (n DescriptorFileName) IsValid() (bool, []error) {
	if strings.Trim(string(n), `/\ `) == "" {
		return false, []error{&InvalidValueError{Sentinel: ErrInvalidDescriptorFileName, Value: string(n)}}
	}
	return true, nil
}

// String returns the string representation of the MissingDescriptorMode.
func (m MissingDescriptorMode) String() string { return string(m) }

// IsValid returns whether the mode is "error" or "absent".
func (m MissingDescriptorMode) IsValid() (bool, []error) {
	switch m {
	case MissingDescriptorError, MissingDescriptorAbsent:
		return true, nil
	default:
		return false, []error{&InvalidValueError{Sentinel: ErrInvalidMissingDescriptorMode, Value: string(m), Valid: "error, absent"}}
	}
}

// Policy converts the mode to the locator policy. Unknown modes map to MissingFileError.
func (m MissingDescriptorMode) Policy() locator.MissingFilePolicy {
	if m == MissingDescriptorAbsent {
		return locator.MissingFileAbsent
	}
	return locator.MissingFileError
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidValueError{Sentinel: ErrInvalidColorScheme, Value: string(cs), Valid: "auto, dark, light"}}
	}
}

// IsValid returns whether the ScanConfig has valid fields.
func (c ScanConfig) IsValid() (bool, []error) {
	var errs []error
	if c.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("scan.max_depth must not be negative, got %d", c.MaxDepth))
	}
	for i, dir := range c.SkipDirs {
		if strings.TrimSpace(dir) == "" {
			errs = append(errs, fmt.Errorf("scan.skip_dirs[%d] must not be blank", i))
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidScanConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidScanConfigError.
func (e *InvalidScanConfigError) Error() string {
	return fmt.Sprintf("invalid scan config: %v", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidScanConfig for errors.Is() compatibility.
func (e *InvalidScanConfigError) Unwrap() error { return ErrInvalidScanConfig }

// IsValid returns whether the Config has valid fields.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.DescriptorFile.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if c.MaxFileSize <= 0 {
		errs = append(errs, fmt.Errorf("max_file_size must be positive, got %d", c.MaxFileSize))
	}
	if valid, fieldErrs := c.MissingDescriptor.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Scan.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %v", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidConfig and the field errors for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		DescriptorFile:    locator.DefaultFileName,
		MaxFileSize:       cueutil.DefaultMaxFileSize,
		MissingDescriptor: MissingDescriptorError,
		Scan: ScanConfig{
			MaxDepth: 0,
			SkipDirs: []string{".git", "node_modules"},
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}
