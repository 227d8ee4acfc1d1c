// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/invowk/modreader/internal/issue"
	"github.com/invowk/modreader/pkg/locator"
)

func TestNewServiceError_PanicsOnNilErr(t *testing.T) {
	t.Parallel()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on nil Err, got none")
		}
		if msg, ok := r.(string); !ok || msg != "ServiceError: Err must not be nil" {
			t.Fatalf("unexpected panic value: %v", r)
		}
	}()

	newServiceError(nil, 0, "")
}

func TestServiceError_ErrorAndUnwrap(t *testing.T) {
	t.Parallel()

	underlying := errors.New("underlying error")
	svcErr := newServiceError(underlying, issue.ValidationRejectedId, "")

	if svcErr.Error() != "underlying error" {
		t.Errorf("Error() = %q, want %q", svcErr.Error(), "underlying error")
	}
	if !errors.Is(svcErr, underlying) {
		t.Error("errors.Is should find underlying error via Unwrap")
	}
}

func TestRenderServiceError_NilServiceError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	renderServiceError(&buf, nil, "dark")

	if buf.Len() != 0 {
		t.Errorf("expected no output for nil ServiceError, got %q", buf.String())
	}
}

func TestRenderServiceError_StyledMessageOnly(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	renderServiceError(&buf, newServiceError(errors.New("test"), 0, "styled output\n"), "dark")

	if got := buf.String(); got != "styled output\n" {
		t.Errorf("output = %q, want %q", got, "styled output\n")
	}
}

func TestRenderServiceError_WithIssue(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	renderServiceError(&buf, newServiceError(errors.New("test"), issue.MissingDescriptorFileId, ""), "notty")

	if buf.Len() == 0 {
		t.Fatal("expected the catalog entry to be rendered")
	}
}

func TestIssueForLoadError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want issue.Id
	}{
		{fmt.Errorf("wrapped: %w", locator.ErrNotFound), issue.DescriptorNotFoundId},
		{&locator.DescriptorError{Kind: locator.ErrMissingDescriptorFile, Path: "/m"}, issue.MissingDescriptorFileId},
		{&locator.DescriptorError{Kind: locator.ErrMalformedDescriptor, Path: "/m", Cause: errors.New("eof")}, issue.MalformedDescriptorId},
		{locator.ErrReadDescriptor, issue.DescriptorReadFailedId},
		{errors.New("other"), 0},
	}

	for _, tt := range tests {
		if got := issueForLoadError(tt.err); got != tt.want {
			t.Errorf("issueForLoadError(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestDescriptorError(t *testing.T) {
	t.Parallel()

	cause := &locator.DescriptorError{Kind: locator.ErrMissingDescriptorFile, Path: "/mods/core/module.json"}
	err := descriptorError(cause, "/mods/core")

	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("descriptorError() = %T, want *ServiceError", err)
	}
	if svcErr.IssueID != issue.MissingDescriptorFileId {
		t.Errorf("IssueID = %d, want %d", svcErr.IssueID, issue.MissingDescriptorFileId)
	}
	if !errors.Is(err, locator.ErrMissingDescriptorFile) {
		t.Error("descriptorError() should keep the locator sentinel in the chain")
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) || len(ae.Suggestions) == 0 {
		t.Errorf("descriptorError() should carry a suggestion for missing files")
	}
	if !strings.Contains(err.Error(), "/mods/core") {
		t.Errorf("Error() = %q, want the location", err.Error())
	}
}
