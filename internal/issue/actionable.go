// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

type (
	// ActionableError is a user-facing failure. It names the operation that
	// failed and the path or entity it concerned, carries hints for fixing it,
	// and may point at a catalog entry with the long explanation.
	//
	// Build it with an ErrorContext:
	//
	//	err := issue.NewErrorContext().
	//		WithOperation("read descriptor").
	//		WithResource("./modules/core").
	//		WithIssue(issue.MissingDescriptorFileId).
	//		WithSuggestion("Create module.json in the directory").
	//		Wrap(cause).
	//		BuildError()
	ActionableError struct {
		// Operation is a verb phrase, rendered after "failed to".
		Operation string
		// Resource is the path or entity involved, if any.
		Resource string
		// Suggestions are one-line fixes shown under the message.
		Suggestions []string
		// IssueId is the catalog entry for this failure, zero if none.
		IssueId Id
		// Cause is the wrapped error.
		Cause error
	}

	// ErrorContext accumulates the parts of an ActionableError. A context can
	// be built more than once; each build gets its own suggestion slice.
	ErrorContext struct {
		draft ActionableError
	}
)

// NewErrorContext returns an empty builder.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// Error renders "failed to <operation>[: <resource>][: <cause>]".
func (e *ActionableError) Error() string {
	parts := []string{"failed to " + e.Operation}
	if e.Resource != "" {
		parts = append(parts, e.Resource)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

// Unwrap exposes Cause to errors.Is and errors.As.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Issue returns the catalog entry for this error, or nil.
func (e *ActionableError) Issue() *Issue {
	if e.IssueId == 0 {
		return nil
	}
	return Get(e.IssueId)
}

// Format renders Error followed by the suggestions as a bullet list. Verbose
// output also lists every error in the Cause chain, outermost first.
func (e *ActionableError) Format(verbose bool) string {
	var sb strings.Builder
	sb.WriteString(e.Error())

	if len(e.Suggestions) > 0 {
		sb.WriteString("\n")
		for _, s := range e.Suggestions {
			sb.WriteString("\n  • " + s)
		}
	}

	if verbose && e.Cause != nil {
		sb.WriteString("\n\nError chain:")
		n := 0
		for err := e.Cause; err != nil; err = errors.Unwrap(err) {
			n++
			sb.WriteString("\n  " + strconv.Itoa(n) + ". " + err.Error())
		}
	}

	return sb.String()
}

// WithOperation sets the failed operation.
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.draft.Operation = op
	return c
}

// WithResource sets the path or entity involved.
func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.draft.Resource = res
	return c
}

// WithSuggestion appends one hint.
func (c *ErrorContext) WithSuggestion(sug string) *ErrorContext {
	c.draft.Suggestions = append(c.draft.Suggestions, sug)
	return c
}

// WithSuggestions appends several hints in order.
func (c *ErrorContext) WithSuggestions(sugs ...string) *ErrorContext {
	c.draft.Suggestions = append(c.draft.Suggestions, sugs...)
	return c
}

// WithIssue links the error to a catalog entry.
func (c *ErrorContext) WithIssue(id Id) *ErrorContext {
	c.draft.IssueId = id
	return c
}

// Wrap sets the underlying cause.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.draft.Cause = err
	return c
}

// Build returns the ActionableError, or nil when no operation was set.
func (c *ErrorContext) Build() *ActionableError {
	if c.draft.Operation == "" {
		return nil
	}
	ae := c.draft
	ae.Suggestions = slices.Clone(c.draft.Suggestions)
	return &ae
}

// BuildError is Build typed as error; it returns a nil interface, never a
// typed nil, when no operation was set.
func (c *ErrorContext) BuildError() error {
	if ae := c.Build(); ae != nil {
		return ae
	}
	return nil
}
