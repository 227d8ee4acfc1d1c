// SPDX-License-Identifier: MPL-2.0

package locator

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/invowk/modreader/pkg/cueutil"
	"github.com/invowk/modreader/pkg/descriptor"
)

const (
	// MissingFileError returns ErrMissingDescriptorFile from Resolve.
	MissingFileError MissingFilePolicy = iota
	// MissingFileAbsent reports a diagnostic and resolves to absent.
	MissingFileAbsent
)

// DefaultFileName is the conventional descriptor file name inside a module directory.
const DefaultFileName = "module.json"

type (
	// MissingFilePolicy selects how Resolve treats a directory without a descriptor file.
	MissingFilePolicy int

	// Result is the full outcome of a Load. Exactly one of Descriptor and Err is set.
	Result struct {
		// Descriptor is the parsed document (nil on failure).
		Descriptor descriptor.Descriptor
		// Path is the file that was read, or the location if no file was selected.
		Path string
		// Err wraps one of ErrNotFound, ErrMissingDescriptorFile,
		// ErrMalformedDescriptor or ErrReadDescriptor.
		Err error
	}

	// Locator resolves locations to descriptors. It holds no per-call state and
	// is safe for concurrent use when its Storage and Sink are.
	Locator struct {
		storage     Storage
		fileName    string
		sink        Sink
		policy      MissingFilePolicy
		maxFileSize int64
	}

	// Option configures a Locator.
	Option func(*Locator)
)

// WithSink sets the diagnostic sink. Default is Discard.
func WithSink(sink Sink) Option {
	return func(l *Locator) {
		if sink != nil {
			l.sink = sink
		}
	}
}

// WithMissingFilePolicy sets the policy for directories without a descriptor file.
func WithMissingFilePolicy(p MissingFilePolicy) Option {
	return func(l *Locator) {
		l.policy = p
	}
}

// WithMaxFileSize bounds the size of descriptor files. Default is cueutil.DefaultMaxFileSize.
func WithMaxFileSize(size int64) Option {
	return func(l *Locator) {
		if size > 0 {
			l.maxFileSize = size
		}
	}
}

// New creates a Locator reading through storage. fileName is joined to a
// directory location to find its descriptor; a leading separator is allowed.
func New(storage Storage, fileName string, opts ...Option) (*Locator, error) {
	if strings.Trim(fileName, `/\ `) == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFileName, fileName)
	}
	if storage == nil {
		storage = NewOSStorage()
	}
	l := &Locator{
		storage:     storage,
		fileName:    fileName,
		sink:        Discard,
		maxFileSize: cueutil.DefaultMaxFileSize,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// FileName returns the conventional descriptor file name.
func (l *Locator) FileName() string { return l.fileName }

// DescriptorPath returns the path of the descriptor file for a directory location.
func (l *Locator) DescriptorPath(dir string) string {
	return filepath.Join(dir, l.fileName)
}

// Load resolves location and reports exactly what happened. It never emits diagnostics.
func (l *Locator) Load(location string) Result {
	res := Result{Path: location}

	exists, err := l.storage.Exists(location)
	if err != nil {
		res.Err = newDescriptorError(ErrReadDescriptor, location, err)
		return res
	}
	if !exists {
		res.Err = newDescriptorError(ErrNotFound, location, nil)
		return res
	}

	isDir, err := l.storage.IsDir(location)
	if err != nil {
		res.Err = newDescriptorError(ErrReadDescriptor, location, err)
		return res
	}
	if isDir {
		res.Path = l.DescriptorPath(location)
		found, err := l.storage.Exists(res.Path)
		if err != nil {
			res.Err = newDescriptorError(ErrReadDescriptor, res.Path, err)
			return res
		}
		if !found {
			res.Err = newDescriptorError(ErrMissingDescriptorFile, res.Path, nil)
			return res
		}
	}

	data, err := l.storage.ReadAll(res.Path)
	if err != nil {
		res.Err = newDescriptorError(ErrReadDescriptor, res.Path, err)
		return res
	}
	if err := cueutil.CheckFileSize(data, l.maxFileSize, res.Path); err != nil {
		res.Err = newDescriptorError(ErrReadDescriptor, res.Path, err)
		return res
	}

	d, err := descriptor.Parse(data)
	if err != nil {
		res.Err = newDescriptorError(ErrMalformedDescriptor, res.Path, err)
		return res
	}
	res.Descriptor = d
	return res
}

// Resolve returns the descriptor at location, or nil when there is none.
// Read and parse failures are reported to the sink and resolve to nil.
// The only error returned is ErrMissingDescriptorFile, under MissingFileError.
func (l *Locator) Resolve(location string) (descriptor.Descriptor, error) {
	res := l.Load(location)
	if res.Err == nil {
		return res.Descriptor, nil
	}

	switch {
	case errors.Is(res.Err, ErrNotFound):
		return nil, nil
	case errors.Is(res.Err, ErrMissingDescriptorFile):
		if l.policy == MissingFileError {
			return nil, res.Err
		}
		l.report(SeverityWarning, CodeDescriptorMissing, res)
	case errors.Is(res.Err, ErrMalformedDescriptor):
		l.report(SeverityError, CodeDescriptorMalformed, res)
	default:
		l.report(SeverityError, CodeDescriptorReadFailed, res)
	}
	return nil, nil
}

// Report forwards a diagnostic to the Locator's sink.
func (l *Locator) Report(d Diagnostic) {
	l.sink.Report(d)
}

func (l *Locator) report(sev Severity, code string, res Result) {
	var cause error
	var de *DescriptorError
	if errors.As(res.Err, &de) {
		cause = de.Cause
	}
	l.sink.Report(Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  res.Err.Error(),
		Path:     res.Path,
		Cause:    cause,
	})
}

// String returns the configuration spelling of the policy.
func (p MissingFilePolicy) String() string {
	switch p {
	case MissingFileError:
		return "error"
	case MissingFileAbsent:
		return "absent"
	default:
		return "unknown"
	}
}

// ParseMissingFilePolicy parses "error" or "absent".
func ParseMissingFilePolicy(s string) (MissingFilePolicy, error) {
	switch s {
	case "error", "":
		return MissingFileError, nil
	case "absent":
		return MissingFileAbsent, nil
	default:
		return MissingFileError, fmt.Errorf("invalid missing descriptor policy %q: want \"error\" or \"absent\"", s)
	}
}
