package app

import (
	"archive/zip"
	"bytes"
	"io"
	"mime/multipart"
	"os"
	"testing"
	"time"

	"convertapi/internal/converter/convertertest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pdfUpload builds a multipart body carrying a one-page PDF as "file".
func pdfUpload(t *testing.T, filename, text string) ([]byte, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(convertertest.MinimalPDF([]string{text}))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body.Bytes(), writer.FormDataContentType()
}

// documentXML returns word/document.xml from a DOCX held in memory.
func documentXML(t *testing.T, data []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(b)
	}
	t.Fatal("word/document.xml missing")
	return ""
}

func workspaceEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func assertWorkspaceEmpty(t *testing.T, dir string) {
	t.Helper()
	assert.Eventually(t, func() bool {
		return len(workspaceEntries(t, dir)) == 0
	}, time.Second, 10*time.Millisecond)
}
