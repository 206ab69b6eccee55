package vfs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio"
)

// Accessor reads and writes file contents at resolved paths.
type Accessor struct{}

// NewAccessor creates a content accessor.
func NewAccessor() *Accessor {
	return &Accessor{}
}

// ReadText returns file contents as a string. Files whose extension maps
// to a binary type fail with ErrNotText before any read; callers wanting
// raw bytes use ReadBinary, which never applies a text decode.
func (a *Accessor) ReadText(path string) (string, error) {
	if BinaryByExtension(path) {
		return "", fmt.Errorf("%s: %w", filepath.Base(path), ErrNotText)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%s: %w", filepath.Base(path), ErrNotFound)
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// ReadBinary returns raw bytes with the inferred MIME type and size.
func (a *Accessor) ReadBinary(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrNotFound)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &Content{
		Data:     data,
		MIMEType: detectType(path, data),
		Size:     int64(len(data)),
	}, nil
}

// Write stores data at path, creating any missing parent directories so
// uploads to nested paths that do not exist yet succeed. The write is
// atomic: data lands in a temp file that is renamed into place.
func (a *Accessor) Write(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent directories for %s: %w", path, err)
	}
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
