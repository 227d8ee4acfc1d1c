// SPDX-License-Identifier: MPL-2.0

package locator

import "github.com/spf13/afero"

type (
	// Storage is the filesystem capability the Locator needs.
	// Exists reports false with a nil error when nothing is at path; any other
	// failure to determine existence is returned as an error.
	Storage interface {
		Exists(path string) (bool, error)
		IsDir(path string) (bool, error)
		ReadAll(path string) ([]byte, error)
	}

	// FSStorage implements Storage on top of an afero filesystem.
	FSStorage struct {
		fs afero.Fs
	}
)

// NewFSStorage returns a Storage backed by fs.
func NewFSStorage(fs afero.Fs) *FSStorage {
	return &FSStorage{fs: fs}
}

// NewOSStorage returns a Storage backed by the host filesystem.
func NewOSStorage() *FSStorage {
	return NewFSStorage(afero.NewOsFs())
}

// Fs returns the underlying afero filesystem.
func (s *FSStorage) Fs() afero.Fs { return s.fs }

// Exists implements Storage.
func (s *FSStorage) Exists(path string) (bool, error) {
	return afero.Exists(s.fs, path)
}

// IsDir implements Storage.
func (s *FSStorage) IsDir(path string) (bool, error) {
	return afero.IsDir(s.fs, path)
}

// ReadAll implements Storage.
func (s *FSStorage) ReadAll(path string) ([]byte, error) {
	return afero.ReadFile(s.fs, path)
}
