// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/invowk/modreader/pkg/descriptor"
	"github.com/invowk/modreader/pkg/locator"
	"github.com/invowk/modreader/pkg/reader"

	"github.com/spf13/afero"
)

// CodeDescriptorRejected is reported for a well-formed descriptor that is not a valid module.
const CodeDescriptorRejected = "descriptor_rejected"

type (
	// Options controls which parts of the tree are scanned.
	Options struct {
		// MaxDepth limits how many directory levels below the root are entered; 0 means unlimited.
		MaxDepth int
		// SkipDirs lists directory names that are never entered. The root is always scanned.
		SkipDirs []string
		// IncludeJSONFiles also classifies *.json files other than the descriptor file.
		IncludeJSONFiles bool
	}

	// Found is a valid module discovered during a scan.
	Found struct {
		// Path is the module directory, or the file for standalone descriptors.
		Path string
		// Kind is the accepted module kind.
		Kind descriptor.Kind
		// Descriptor is the parsed document.
		Descriptor descriptor.Descriptor
	}

	// Result bundles the modules found with the diagnostics produced while
	// scanning, for the CLI layer to render.
	Result struct {
		Modules     []Found
		Diagnostics []locator.Diagnostic
		// Candidates counts the locations that were loaded.
		Candidates int
	}

	// Scanner walks a filesystem and classifies every candidate it finds.
	Scanner struct {
		fs         afero.Fs
		opts       Options
		readerOpts []reader.Option
	}
)

// DefaultSkipDirs are skipped when Options.SkipDirs is nil.
func DefaultSkipDirs() []string {
	return []string{".git", "node_modules"}
}

// NewScanner creates a Scanner over fs. readerOpts configure the reader used for
// each candidate (file name, size limit, predicates); storage, sink and the
// missing-file policy are always set by the scanner.
func NewScanner(fs afero.Fs, opts Options, readerOpts ...reader.Option) *Scanner {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if opts.SkipDirs == nil {
		opts.SkipDirs = DefaultSkipDirs()
	}
	return &Scanner{fs: fs, opts: opts, readerOpts: slices.Clone(readerOpts)}
}

// Scan walks root and returns the modules found, sorted by path. It fails only
// when root cannot be read, the reader cannot be built or ctx is done.
func (s *Scanner) Scan(ctx context.Context, root string) (Result, error) {
	var res Result

	collector := &locator.Collector{}
	opts := append(slices.Clone(s.readerOpts),
		reader.WithStorage(locator.NewFSStorage(s.fs)),
		reader.WithSink(collector),
		reader.WithMissingFilePolicy(locator.MissingFileAbsent),
	)
	r, err := reader.New(opts...)
	if err != nil {
		return res, err
	}
	descriptorName := filepath.Base(r.Locator().FileName())

	walkErr := afero.Walk(s.fs, root, func(path string, info os.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root {
				return err
			}
			collector.Report(locator.Diagnostic{
				Severity: locator.SeverityWarning,
				Code:     locator.CodeDescriptorReadFailed,
				Message:  fmt.Sprintf("cannot read %s: %v", path, err),
				Path:     path,
				Cause:    err,
			})
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			if path != root && slices.Contains(s.opts.SkipDirs, info.Name()) {
				slog.Debug("skipping directory", "path", path)
				return filepath.SkipDir
			}
			if s.opts.MaxDepth > 0 && depth(root, path) > s.opts.MaxDepth {
				return filepath.SkipDir
			}
			found, err := afero.Exists(s.fs, r.Locator().DescriptorPath(path))
			if err != nil || !found {
				return nil
			}
			s.visit(r, path, &res)
			return nil
		}

		if s.opts.IncludeJSONFiles && info.Name() != descriptorName && strings.EqualFold(filepath.Ext(path), ".json") {
			s.visit(r, path, &res)
		}
		return nil
	})
	if walkErr != nil {
		return res, fmt.Errorf("scan %s: %w", root, walkErr)
	}

	slices.SortFunc(res.Modules, func(a, b Found) int {
		return strings.Compare(a.Path, b.Path)
	})
	res.Diagnostics = append(collector.Diagnostics(), res.Diagnostics...)
	slices.SortStableFunc(res.Diagnostics, func(a, b locator.Diagnostic) int {
		return strings.Compare(a.Path, b.Path)
	})
	return res, nil
}

func (s *Scanner) visit(r *reader.Reader, path string, res *Result) {
	res.Candidates++

	d, err := r.Raw(path)
	if err != nil || d == nil {
		// Already reported to the collector.
		return
	}

	kind, ok := r.AcceptsAt(path, d)
	if !ok {
		res.Diagnostics = append(res.Diagnostics, locator.Diagnostic{
			Severity: locator.SeverityWarning,
			Code:     CodeDescriptorRejected,
			Message:  rejectionMessage(d, kind),
			Path:     path,
		})
		return
	}
	res.Modules = append(res.Modules, Found{Path: path, Kind: kind, Descriptor: d})
}

func rejectionMessage(d descriptor.Descriptor, kind descriptor.Kind) string {
	if !kind.IsKnown() {
		if v, ok := d.Lookup(descriptor.DiscriminatorField); ok {
			return fmt.Sprintf("unrecognized module kind %v", v)
		}
		return fmt.Sprintf("descriptor has no %q field", descriptor.DiscriminatorField)
	}
	return fmt.Sprintf("not a valid %s descriptor", kind)
}

// depth returns how many directory levels path is below root.
func depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}

// CountByKind returns how many modules of each kind were found.
func (r Result) CountByKind() map[descriptor.Kind]int {
	counts := make(map[descriptor.Kind]int, len(descriptor.Kinds()))
	for _, m := range r.Modules {
		counts[m.Kind]++
	}
	return counts
}

// Paths returns the path of every module found.
func (r Result) Paths() []string {
	paths := make([]string, 0, len(r.Modules))
	for _, m := range r.Modules {
		paths = append(paths, m.Path)
	}
	return paths
}
