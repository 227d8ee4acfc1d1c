// SPDX-License-Identifier: MPL-2.0

package locator

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means nothing exists at the requested location.
	ErrNotFound = errors.New("nothing found at location")
	// ErrMissingDescriptorFile means the location is a directory without the
	// conventional descriptor file.
	ErrMissingDescriptorFile = errors.New("directory does not contain a module descriptor file")
	// ErrMalformedDescriptor means the descriptor could be read but is not a JSON object.
	ErrMalformedDescriptor = errors.New("malformed module descriptor")
	// ErrReadDescriptor means the location could not be inspected or read.
	ErrReadDescriptor = errors.New("failed to read module descriptor")
	// ErrInvalidFileName is returned by New for a blank descriptor file name.
	ErrInvalidFileName = errors.New("invalid descriptor file name")
)

// DescriptorError reports which resolution step failed for a path.
// It matches its Kind sentinel and its Cause with errors.Is.
type DescriptorError struct {
	Kind  error
	Path  string
	Cause error
}

// Error implements the error interface.
func (e *DescriptorError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Path)
}

// Unwrap returns the sentinel kind and the cause.
func (e *DescriptorError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func newDescriptorError(kind error, path string, cause error) *DescriptorError {
	return &DescriptorError{Kind: kind, Path: path, Cause: cause}
}
