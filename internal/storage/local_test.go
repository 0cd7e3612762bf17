package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("read fail") }

func TestNewLocal(t *testing.T) {
	t.Run("creates missing directory", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "nested", "temp")
		store, err := NewLocal(root)
		require.NoError(t, err)
		require.NotNil(t, store)

		st, err := os.Stat(root)
		require.NoError(t, err)
		assert.True(t, st.IsDir())
	})

	t.Run("empty root", func(t *testing.T) {
		_, err := NewLocal("")
		assert.Error(t, err)
	})
}

func TestLocalStorage_PutOpen(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	info, err := store.Put(ctx, "report.pdf", strings.NewReader("%PDF-1.4 body"))
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", info.Name)
	assert.Equal(t, int64(13), info.Size)
	assert.Equal(t, store.Path("report.pdf"), info.Path)

	rc, got, err := store.Open("report.pdf")
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 body", string(b))
	assert.Equal(t, int64(13), got.Size)
}

func TestLocalStorage_PutOverwrites(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	_, err = store.Put(ctx, "same.pdf", strings.NewReader("first version"))
	require.NoError(t, err)
	_, err = store.Put(ctx, "same.pdf", strings.NewReader("second"))
	require.NoError(t, err)

	b, err := os.ReadFile(store.Path("same.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(b))
}

func TestLocalStorage_PutErrors(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	t.Run("empty name", func(t *testing.T) {
		_, err := store.Put(context.Background(), "", strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrNameRequired)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := store.Put(ctx, "a.pdf", strings.NewReader("x"))
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("reader failure removes partial file", func(t *testing.T) {
		_, err := store.Put(context.Background(), "broken.pdf", failingReader{})
		assert.ErrorContains(t, err, "read fail")
		assert.NoFileExists(t, store.Path("broken.pdf"))
	})
}

func TestLocalStorage_OpenMissing(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	_, _, err = store.Open("missing.docx")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, _, err = store.Open("")
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestLocalStorage_Delete(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	_, err = store.Put(ctx, "a.pdf", strings.NewReader("a"))
	require.NoError(t, err)
	_, err = store.Put(ctx, "a.docx", strings.NewReader("b"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "a.pdf", "a.docx"))
	assert.NoFileExists(t, store.Path("a.pdf"))
	assert.NoFileExists(t, store.Path("a.docx"))

	// idempotent
	assert.NoError(t, store.Delete(ctx, "a.pdf", "a.docx", ""))
}

func TestLocalStorage_Check(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocal(root)
	require.NoError(t, err)

	assert.NoError(t, store.Check(context.Background()))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, os.RemoveAll(root))
	assert.Error(t, store.Check(context.Background()))
}
