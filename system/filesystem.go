// Package system abstracts the host resources used when loading and writing
// documents so that callers can substitute in-memory or remote implementations.
package system

import (
	"io/fs"
	"os"
	"path/filepath"
)

// VirtualFS is used to read documents and the files they reference.
type VirtualFS interface {
	fs.FS
}

// WritableVirtualFS is a VirtualFS that can also persist documents.
type WritableVirtualFS interface {
	VirtualFS
	WriteFile(name string, data []byte, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
}

// FileSystem is a WritableVirtualFS backed by the host operating system.
// Names are host paths rather than the slash separated paths of io/fs.
type FileSystem struct{}

var _ WritableVirtualFS = (*FileSystem)(nil)

func (fs *FileSystem) Open(name string) (fs.File, error) {
	return os.Open(name) //nolint:gosec
}

// WriteFile writes data to the named file, creating any missing parent directories.
func (fs *FileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	if err := fs.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return err
	}
	return os.WriteFile(name, data, perm)
}

func (fs *FileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}
