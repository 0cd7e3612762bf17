package model

import "time"

// DocxContentType is the Office Open XML word-processing MIME type.
const DocxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Conversion describes the two transient files owned by a single conversion
// request: the uploaded PDF and the DOCX produced from it. It is never
// persisted; its lifetime ends when both files are deleted.
type Conversion struct {
	ID         string    `json:"id"`
	SourceName string    `json:"source_name"`
	PDFPath    string    `json:"pdf_path"`
	DocxName   string    `json:"docx_name"`
	DocxPath   string    `json:"docx_path"`
	Size       int64     `json:"size"`
	CreatedAt  time.Time `json:"created_at"`
}

// Artifacts returns the workspace names of both files, PDF first.
func (c *Conversion) Artifacts() []string {
	return []string{c.SourceName, c.DocxName}
}
