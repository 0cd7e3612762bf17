package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// localStorage implements Storage on a directory of the local filesystem.
// It keeps no state besides the root, so it is safe for concurrent use; two
// requests writing the same name do race on the same file.
type localStorage struct {
	root string
}

// NewLocal creates the workspace directory if missing and returns a Storage rooted at it.
func NewLocal(root string) (Storage, error) {
	if root == "" {
		return nil, fmt.Errorf("workspace directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return &localStorage{root: root}, nil
}

func (l *localStorage) Path(name string) string {
	return filepath.Join(l.root, name)
}

// Put copies r into the named file using streaming I/O.
func (l *localStorage) Put(ctx context.Context, name string, r io.Reader) (ObjectInfo, error) {
	if name == "" {
		return ObjectInfo{}, ErrNameRequired
	}
	if err := ctx.Err(); err != nil {
		return ObjectInfo{}, err
	}

	path := l.Path(name)
	f, err := os.Create(path)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("create %s: %w", name, err)
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return ObjectInfo{}, fmt.Errorf("write %s: %w", name, err)
	}
	return l.stat(name, n)
}

func (l *localStorage) Open(name string) (io.ReadCloser, ObjectInfo, error) {
	if name == "" {
		return nil, ObjectInfo{}, ErrNameRequired
	}
	f, err := os.Open(l.Path(name))
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, ObjectInfo{}, err
	}
	return f, ObjectInfo{
		Name:         name,
		Path:         l.Path(name),
		Size:         st.Size(),
		LastModified: st.ModTime(),
	}, nil
}

// Delete removes each named file if it exists. All names are attempted; the
// returned error joins every failure other than "not exist".
func (l *localStorage) Delete(_ context.Context, names ...string) error {
	var errs []error
	for _, name := range names {
		if name == "" {
			continue
		}
		if err := os.Remove(l.Path(name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Check verifies the root is a directory by creating and removing a probe file.
func (l *localStorage) Check(_ context.Context) error {
	st, err := os.Stat(l.root)
	if err != nil {
		return fmt.Errorf("workspace unavailable: %w", err)
	}
	if !st.IsDir() {
		return fmt.Errorf("workspace %s is not a directory", l.root)
	}
	probe, err := os.CreateTemp(l.root, ".probe-*")
	if err != nil {
		return fmt.Errorf("workspace not writable: %w", err)
	}
	name := probe.Name()
	probe.Close()
	return os.Remove(name)
}

func (l *localStorage) stat(name string, written int64) (ObjectInfo, error) {
	st, err := os.Stat(l.Path(name))
	if err != nil {
		return ObjectInfo{}, err
	}
	return ObjectInfo{
		Name:         name,
		Path:         l.Path(name),
		Size:         written,
		LastModified: st.ModTime(),
	}, nil
}
