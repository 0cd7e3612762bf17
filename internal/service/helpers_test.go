package service

import (
	"os"
	"path/filepath"
	"testing"

	"convertapi/internal/converter/convertertest"

	"github.com/stretchr/testify/require"
)

// writeFixture writes a small valid PDF outside the workspace and returns its path.
func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.pdf")
	require.NoError(t, os.WriteFile(path, convertertest.MinimalPDF([]string{"Dear reader"}), 0o600))
	return path
}
