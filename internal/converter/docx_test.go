package converter

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentXML_EscapesText(t *testing.T) {
	doc := documentXML([][]string{{`Tom & Jerry <"quoted">`}})

	assert.Contains(t, doc, "Tom &amp; Jerry &lt;&#34;quoted&#34;&gt;")
	assert.NotContains(t, doc, "<\"quoted\">")
}

func TestDocumentXML_EmptyDocument(t *testing.T) {
	doc := documentXML(nil)
	assert.Contains(t, doc, "<w:body><w:p/>")
}

func TestWriteDocx_Parts(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeDocx(&buf, [][]string{{"first"}, {"second"}}))

	path := filepath.Join(t.TempDir(), "out.docx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	for _, part := range []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml", "word/_rels/document.xml.rels"} {
		assert.NotEmpty(t, readDocxPart(t, path, part), part)
	}
	doc := readDocxPart(t, path, "word/document.xml")
	assert.Contains(t, doc, "first")
	assert.Contains(t, doc, `<w:br w:type="page"/>`)
	assert.Contains(t, doc, "second")
}
