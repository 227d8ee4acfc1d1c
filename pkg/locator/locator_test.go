// SPDX-License-Identifier: MPL-2.0

package locator_test

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/invowk/modreader/internal/testutil"
	"github.com/invowk/modreader/pkg/cueutil"
	"github.com/invowk/modreader/pkg/descriptor"
	"github.com/invowk/modreader/pkg/locator"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

// failingStorage fails every operation on paths listed in failOn.
type failingStorage struct {
	locator.Storage
	failOn map[string]string // path -> operation
}

func (s failingStorage) Exists(path string) (bool, error) {
	if s.failOn[path] == "exists" {
		return false, fs.ErrPermission
	}
	return s.Storage.Exists(path)
}

func (s failingStorage) ReadAll(path string) ([]byte, error) {
	if s.failOn[path] == "read" {
		return nil, fs.ErrPermission
	}
	return s.Storage.ReadAll(path)
}

func newLocator(t *testing.T, storage locator.Storage, opts ...locator.Option) (*locator.Locator, *locator.Collector) {
	t.Helper()
	collector := &locator.Collector{}
	opts = append([]locator.Option{locator.WithSink(collector)}, opts...)
	loc, err := locator.New(storage, locator.DefaultFileName, opts...)
	if err != nil {
		t.Fatalf("locator.New() error: %v", err)
	}
	return loc, collector
}

func TestResolve(t *testing.T) {
	t.Parallel()

	memFS := testutil.NewMemFs(t, map[string]string{
		"/mods/core/module.json":   `{"type": "Module", "name": "core", "version": "1.0.0"}`,
		"/mods/core/other.json":    `{"type": "Scenario"}`,
		"/mods/single.json":        `{"type": "Submodule", "name": "single"}`,
		"/mods/broken.json":        `{"type":`,
		"/mods/list.json":          `[1, 2, 3]`,
		"/mods/bad/module.json":    `{"name": }`,
		"/mods/nested/module.json": `{"type": "Collection", "name": "n"}`,
	})
	if err := memFS.MkdirAll("/mods/empty", 0o755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		location  string
		want      descriptor.Descriptor
		wantErr   error
		wantCodes []string
	}{
		{
			name:     "missing location is silently absent",
			location: "/mods/nope",
		},
		{
			name:     "file is parsed",
			location: "/mods/single.json",
			want:     descriptor.Descriptor{"type": "Submodule", "name": "single"},
		},
		{
			name:     "directory resolves to its descriptor file",
			location: "/mods/core",
			want:     descriptor.Descriptor{"type": "Module", "name": "core", "version": "1.0.0"},
		},
		{
			name:     "directory with trailing slash",
			location: "/mods/nested/",
			want:     descriptor.Descriptor{"type": "Collection", "name": "n"},
		},
		{
			name:     "directory without descriptor file fails",
			location: "/mods/empty",
			wantErr:  locator.ErrMissingDescriptorFile,
		},
		{
			name:      "truncated JSON is absent with one diagnostic",
			location:  "/mods/broken.json",
			wantCodes: []string{locator.CodeDescriptorMalformed},
		},
		{
			name:      "non-object JSON is malformed",
			location:  "/mods/list.json",
			wantCodes: []string{locator.CodeDescriptorMalformed},
		},
		{
			name:      "malformed descriptor inside directory",
			location:  "/mods/bad",
			wantCodes: []string{locator.CodeDescriptorMalformed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			loc, collector := newLocator(t, locator.NewFSStorage(memFS))
			got, err := loc.Resolve(tt.location)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Resolve(%q) error = %v, want %v", tt.location, err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("Resolve(%q) unexpected error: %v", tt.location, err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Resolve(%q) mismatch (-want +got):\n%s", tt.location, diff)
			}

			var codes []string
			for _, d := range collector.Diagnostics() {
				codes = append(codes, d.Code)
			}
			if diff := cmp.Diff(tt.wantCodes, codes); diff != "" {
				t.Errorf("diagnostic codes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolve_MalformedDiagnostic(t *testing.T) {
	t.Parallel()

	memFS := testutil.NewMemFs(t, map[string]string{"/m/broken.json": `{"type":`})
	loc, collector := newLocator(t, locator.NewFSStorage(memFS))

	if d, err := loc.Resolve("/m/broken.json"); d != nil || err != nil {
		t.Fatalf("Resolve() = (%v, %v), want (nil, nil)", d, err)
	}

	diags := collector.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want exactly 1", len(diags))
	}
	diag := diags[0]
	if diag.Severity != locator.SeverityError {
		t.Errorf("Severity = %q, want %q", diag.Severity, locator.SeverityError)
	}
	if diag.Path != "/m/broken.json" {
		t.Errorf("Path = %q, want /m/broken.json", diag.Path)
	}
	if diag.Cause == nil || diag.Message == "" {
		t.Errorf("diagnostic should carry cause and message: %+v", diag)
	}
}

func TestResolve_MissingFileAbsentPolicy(t *testing.T) {
	t.Parallel()

	memFS := afero.NewMemMapFs()
	if err := memFS.MkdirAll("/mods/empty", 0o755); err != nil {
		t.Fatal(err)
	}
	loc, collector := newLocator(t, locator.NewFSStorage(memFS), locator.WithMissingFilePolicy(locator.MissingFileAbsent))

	d, err := loc.Resolve("/mods/empty")
	if d != nil || err != nil {
		t.Fatalf("Resolve() = (%v, %v), want (nil, nil)", d, err)
	}
	diags := collector.Diagnostics()
	if len(diags) != 1 || diags[0].Code != locator.CodeDescriptorMissing {
		t.Fatalf("diagnostics = %+v, want one %s", diags, locator.CodeDescriptorMissing)
	}
	if want := filepath.Join("/mods/empty", locator.DefaultFileName); diags[0].Path != want {
		t.Errorf("Path = %q, want %q", diags[0].Path, want)
	}
}

func TestResolve_StorageFailures(t *testing.T) {
	t.Parallel()

	memFS := testutil.NewMemFs(t, map[string]string{
		"/m/locked.json":      `{"type": "Module"}`,
		"/m/dir/module.json":  `{"type": "Module"}`,
		"/m/dir2/module.json": `{"type": "Module"}`,
	})
	storage := failingStorage{
		Storage: locator.NewFSStorage(memFS),
		failOn: map[string]string{
			"/m/locked.json":      "read",
			"/m/hidden.json":      "exists",
			"/m/dir/module.json":  "exists",
			"/m/dir2/module.json": "read",
		},
	}

	for _, location := range []string{"/m/locked.json", "/m/hidden.json", "/m/dir", "/m/dir2"} {
		t.Run(location, func(t *testing.T) {
			t.Parallel()

			loc, collector := newLocator(t, storage)
			d, err := loc.Resolve(location)
			if d != nil || err != nil {
				t.Fatalf("Resolve(%q) = (%v, %v), want (nil, nil)", location, d, err)
			}
			diags := collector.Diagnostics()
			if len(diags) != 1 || diags[0].Code != locator.CodeDescriptorReadFailed {
				t.Fatalf("diagnostics = %+v, want one %s", diags, locator.CodeDescriptorReadFailed)
			}
			if !errors.Is(diags[0].Cause, fs.ErrPermission) {
				t.Errorf("Cause = %v, want fs.ErrPermission", diags[0].Cause)
			}
		})
	}
}

func TestResolve_MaxFileSize(t *testing.T) {
	t.Parallel()

	memFS := testutil.NewMemFs(t, map[string]string{"/m/big.json": `{"type": "Module", "name": "` + strings.Repeat("x", 64) + `"}`})
	loc, collector := newLocator(t, locator.NewFSStorage(memFS), locator.WithMaxFileSize(32))

	if d, err := loc.Resolve("/m/big.json"); d != nil || err != nil {
		t.Fatalf("Resolve() = (%v, %v), want (nil, nil)", d, err)
	}
	diags := collector.Diagnostics()
	if len(diags) != 1 || !errors.Is(diags[0].Cause, cueutil.ErrFileTooLarge) {
		t.Fatalf("diagnostics = %+v, want one wrapping ErrFileTooLarge", diags)
	}
}

func TestLoad_ReportsKind(t *testing.T) {
	t.Parallel()

	memFS := testutil.NewMemFs(t, map[string]string{
		"/m/ok/module.json": `{"type": "Module"}`,
		"/m/broken.json":    `nope`,
	})
	if err := memFS.MkdirAll("/m/empty", 0o755); err != nil {
		t.Fatal(err)
	}
	loc, collector := newLocator(t, locator.NewFSStorage(memFS))

	tests := []struct {
		location string
		wantPath string
		wantErr  error
	}{
		{location: "/m/ok", wantPath: filepath.Join("/m/ok", "module.json")},
		{location: "/m/none", wantPath: "/m/none", wantErr: locator.ErrNotFound},
		{location: "/m/empty", wantPath: filepath.Join("/m/empty", "module.json"), wantErr: locator.ErrMissingDescriptorFile},
		{location: "/m/broken.json", wantPath: "/m/broken.json", wantErr: locator.ErrMalformedDescriptor},
	}

	for _, tt := range tests {
		res := loc.Load(tt.location)
		if res.Path != tt.wantPath {
			t.Errorf("Load(%q).Path = %q, want %q", tt.location, res.Path, tt.wantPath)
		}
		if tt.wantErr == nil {
			if res.Err != nil || res.Descriptor == nil {
				t.Errorf("Load(%q) = %+v, want descriptor", tt.location, res)
			}
			continue
		}
		if !errors.Is(res.Err, tt.wantErr) {
			t.Errorf("Load(%q).Err = %v, want %v", tt.location, res.Err, tt.wantErr)
		}
		if res.Descriptor != nil {
			t.Errorf("Load(%q).Descriptor = %v, want nil", tt.location, res.Descriptor)
		}
	}

	if collector.Len() != 0 {
		t.Errorf("Load emitted %d diagnostics, want 0", collector.Len())
	}
}

func TestNew_FileName(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "  ", "/", `\`} {
		if _, err := locator.New(nil, name); !errors.Is(err, locator.ErrInvalidFileName) {
			t.Errorf("New(nil, %q) error = %v, want ErrInvalidFileName", name, err)
		}
	}

	memFS := testutil.NewMemFs(t, map[string]string{"/m/core/module.json": `{"type": "Module"}`})
	loc, err := locator.New(locator.NewFSStorage(memFS), "/module.json")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	d, err := loc.Resolve("/m/core")
	if err != nil || d == nil {
		t.Fatalf("Resolve() with leading-separator file name = (%v, %v)", d, err)
	}
}

func TestResolve_OSStorage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	modDir := filepath.Join(dir, "core")
	if err := os.Mkdir(modDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(modDir, "module.json"), []byte(`{"type": "Module", "name": "core"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	loc, collector := newLocator(t, locator.NewOSStorage())
	d, err := loc.Resolve(modDir)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if d.Kind() != descriptor.KindModule {
		t.Errorf("Kind() = %v, want Module", d.Kind())
	}
	if d, err := loc.Resolve(filepath.Join(dir, "missing")); d != nil || err != nil {
		t.Errorf("Resolve(missing) = (%v, %v), want (nil, nil)", d, err)
	}
	if collector.Len() != 0 {
		t.Errorf("unexpected diagnostics: %+v", collector.Diagnostics())
	}
}

func TestLogSink(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	sink := locator.NewLogSink(slog.New(slog.NewTextHandler(&buf, nil)))
	sink.Report(locator.Diagnostic{
		Severity: locator.SeverityError,
		Code:     locator.CodeDescriptorMalformed,
		Message:  "bad json",
		Path:     "/m/x.json",
	})

	out := buf.String()
	for _, want := range []string{"level=ERROR", "bad json", "code=descriptor_malformed", "path=/m/x.json"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %q", out, want)
		}
	}
}

func TestParseMissingFilePolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    locator.MissingFilePolicy
		wantErr bool
	}{
		{in: "", want: locator.MissingFileError},
		{in: "error", want: locator.MissingFileError},
		{in: "absent", want: locator.MissingFileAbsent},
		{in: "ignore", wantErr: true},
	}
	for _, tt := range tests {
		got, err := locator.ParseMissingFilePolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMissingFilePolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseMissingFilePolicy(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if tt.wantErr {
			continue
		}
		if again, err := locator.ParseMissingFilePolicy(got.String()); err != nil || again != got {
			t.Errorf("ParseMissingFilePolicy(%q) = (%v, %v), want %v", got.String(), again, err, got)
		}
	}
}
