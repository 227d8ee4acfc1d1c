// SPDX-License-Identifier: MPL-2.0

package locator

import (
	"context"
	"log/slog"
	"slices"
	"sync"
)

const (
	// SeverityWarning indicates a recoverable problem with one candidate.
	SeverityWarning Severity = "warning"
	// SeverityError indicates a candidate that exists but could not be used.
	SeverityError Severity = "error"

	// CodeDescriptorMalformed is reported when a descriptor fails to parse.
	CodeDescriptorMalformed = "descriptor_malformed"
	// CodeDescriptorReadFailed is reported on stat, permission, size or I/O failures.
	CodeDescriptorReadFailed = "descriptor_read_failed"
	// CodeDescriptorMissing is reported for a directory without a descriptor file
	// under the MissingFileAbsent policy.
	CodeDescriptorMissing = "descriptor_missing"
)

type (
	// Severity is the diagnostic level.
	Severity string

	// Diagnostic describes a failure that was absorbed instead of returned.
	Diagnostic struct {
		// Severity is the diagnostic level (warning or error).
		Severity Severity
		// Code is a machine-readable identifier (e.g., "descriptor_malformed").
		Code string
		// Message is the human-readable description.
		Message string
		// Path is the file or directory the diagnostic is about.
		Path string
		// Cause is the underlying error, for programmatic inspection.
		Cause error
	}

	// Sink receives diagnostics. Report must not block for long and must not panic.
	Sink interface {
		Report(d Diagnostic)
	}

	// SinkFunc adapts a function to the Sink interface.
	SinkFunc func(d Diagnostic)

	// Collector is a Sink that keeps every reported diagnostic in order.
	// It is safe for concurrent use.
	Collector struct {
		mu    sync.Mutex
		diags []Diagnostic
	}

	// LogSink writes diagnostics to a structured logger.
	LogSink struct {
		logger *slog.Logger
	}

	discardSink struct{}
)

// Discard is a Sink that drops every diagnostic.
var Discard Sink = discardSink{}

// Report implements Sink.
func (f SinkFunc) Report(d Diagnostic) { f(d) }

func (discardSink) Report(Diagnostic) {}

// Report implements Sink.
func (c *Collector) Report(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diags = append(c.diags, d)
}

// Diagnostics returns a copy of the collected diagnostics.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.diags)
}

// Len returns the number of collected diagnostics.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.diags)
}

// NewLogSink returns a Sink logging through logger; a nil logger uses slog.Default().
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

// Report implements Sink.
func (s *LogSink) Report(d Diagnostic) {
	level := slog.LevelWarn
	if d.Severity == SeverityError {
		level = slog.LevelError
	}
	attrs := []any{"code", d.Code}
	if d.Path != "" {
		attrs = append(attrs, "path", d.Path)
	}
	s.logger.Log(context.Background(), level, d.Message, attrs...)
}
