// Package converter turns a PDF file into a DOCX file. Backends are pluggable:
// an in-process text-layer converter and wrappers around external tools.
package converter

import (
	"context"
	"errors"
	"fmt"

	"convertapi/internal/config"
)

// Backend names accepted by New.
const (
	BackendNative      = "native"
	BackendPDF2Docx    = "pdf2docx"
	BackendLibreOffice = "libreoffice"
)

var (
	// ErrUnknownBackend is returned by New for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown converter backend")
	// ErrNoOutput is returned when a backend finished without writing the DOCX.
	ErrNoOutput = errors.New("converter produced no output")
)

// Options selects the page range to convert. Start is 0-based; End <= 0 means
// through the last page.
type Options struct {
	Start int
	End   int
}

// FullRange converts every page.
var FullRange = Options{Start: 0, End: 0}

// Converter writes a DOCX rendition of the PDF at pdfPath to docxPath.
type Converter interface {
	// Name identifies the backend in logs and metrics.
	Name() string
	// Convert performs the conversion. Any error means no usable DOCX was produced.
	Convert(ctx context.Context, pdfPath, docxPath string, opts Options) error
	// Ready reports whether the backend can currently run.
	Ready(ctx context.Context) error
}

// New builds the converter selected by cfg.Backend.
func New(cfg config.ConverterConfig) (Converter, error) {
	switch cfg.Backend {
	case "", BackendNative:
		return NewNative(), nil
	case BackendPDF2Docx:
		return NewPDF2Docx(cfg.Binary), nil
	case BackendLibreOffice:
		return NewLibreOffice(cfg.Binary), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

func (o Options) validate() error {
	if o.Start < 0 {
		return fmt.Errorf("invalid start page %d", o.Start)
	}
	if o.End > 0 && o.End <= o.Start {
		return fmt.Errorf("invalid page range [%d, %d)", o.Start, o.End)
	}
	return nil
}
