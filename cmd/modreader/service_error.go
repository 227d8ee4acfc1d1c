// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/invowk/modreader/internal/issue"
	"github.com/invowk/modreader/pkg/locator"
)

// ServiceError is an error that carries optional rendering information for
// the CLI layer. When the CLI layer receives a ServiceError, it renders the
// styled error message (if present) before formatting the underlying error.
// Always create via newServiceError to enforce the Err-must-be-non-nil invariant.
type ServiceError struct {
	// Err is the underlying error (must not be nil).
	Err error
	// IssueID is the optional issue catalog ID for rendering help text.
	IssueID issue.Id
	// StyledMessage is the optional pre-rendered styled error text.
	StyledMessage string
}

// newServiceError creates a ServiceError with a nil-Err panic guard.
func newServiceError(err error, issueID issue.Id, styledMessage string) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{
		Err:           err,
		IssueID:       issueID,
		StyledMessage: styledMessage,
	}
}

// Error implements the error interface.
func (e *ServiceError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ServiceError) Unwrap() error { return e.Err }

// renderServiceError renders a ServiceError in the CLI layer.
// It prints any styled message first, then the optional issue help section.
func renderServiceError(stderr io.Writer, svcErr *ServiceError, style string) {
	if svcErr == nil {
		return
	}

	if svcErr.StyledMessage != "" {
		fmt.Fprint(stderr, svcErr.StyledMessage)
	}

	if svcErr.IssueID == 0 {
		return
	}

	if catalogEntry := issue.Get(svcErr.IssueID); catalogEntry != nil {
		rendered, renderErr := catalogEntry.Render(style)
		if renderErr != nil {
			slog.Warn("failed to render issue catalog entry", "issueID", svcErr.IssueID, "error", renderErr)
		} else {
			fmt.Fprint(stderr, rendered)
		}
	}
}

// issueForLoadError maps a locator load error to its catalog entry.
func issueForLoadError(err error) issue.Id {
	switch {
	case errors.Is(err, locator.ErrNotFound):
		return issue.DescriptorNotFoundId
	case errors.Is(err, locator.ErrMissingDescriptorFile):
		return issue.MissingDescriptorFileId
	case errors.Is(err, locator.ErrMalformedDescriptor):
		return issue.MalformedDescriptorId
	case errors.Is(err, locator.ErrReadDescriptor):
		return issue.DescriptorReadFailedId
	default:
		return 0
	}
}

// descriptorError converts an error returned by the reader into an
// ActionableError wrapped in a ServiceError pointing at the issue catalog.
func descriptorError(err error, location string) error {
	id := issueForLoadError(err)
	ae := issue.NewErrorContext().
		WithOperation("read descriptor").
		WithResource(location).
		WithIssue(id).
		Wrap(err)
	if id == issue.MissingDescriptorFileId {
		ae.WithSuggestion("Create the descriptor file or pass --descriptor-file")
	}
	return newServiceError(ae.BuildError(), id, "")
}
