package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// Package storage holds the conversion workspace: a process-local directory
// where each request keeps its uploaded PDF and the DOCX produced from it.

// ErrNameRequired is returned when an object name is empty.
var ErrNameRequired = errors.New("object name is required")

// ObjectInfo contains basic information about a file in the workspace.
type ObjectInfo struct {
	Name         string
	Path         string
	Size         int64
	LastModified time.Time
}

// Storage is the workspace abstraction used by the conversion service.
// Names are flat file names inside the workspace root.
type Storage interface {
	// Put writes the reader's bytes verbatim under name, replacing any existing file.
	Put(ctx context.Context, name string, r io.Reader) (ObjectInfo, error)
	// Open returns a streaming reader for name alongside its info.
	Open(name string) (io.ReadCloser, ObjectInfo, error)
	// Path returns the filesystem path backing name.
	Path(name string) string
	// Delete removes every named file. Missing files are not an error.
	Delete(ctx context.Context, names ...string) error
	// Check reports whether the workspace exists and is writable.
	Check(ctx context.Context) error
}
