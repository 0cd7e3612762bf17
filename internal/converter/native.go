package converter

// Native converter: the PDF text layer is read with github.com/ledongthuc/pdf
// and every text row becomes one paragraph of the DOCX. Images, tables and
// positioning are not reconstructed; scanned PDFs yield empty pages.

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Native converts in-process without external tools.
type Native struct{}

// NewNative returns the in-process converter.
func NewNative() *Native {
	return &Native{}
}

func (n *Native) Name() string { return BackendNative }

func (n *Native) Ready(context.Context) error { return nil }

func (n *Native) Convert(ctx context.Context, pdfPath, docxPath string, opts Options) error {
	if err := opts.validate(); err != nil {
		return err
	}
	pages, err := readPages(ctx, pdfPath, opts)
	if err != nil {
		return err
	}

	out, err := os.Create(docxPath)
	if err != nil {
		return fmt.Errorf("create docx: %w", err)
	}
	if err := writeDocx(out, pages); err != nil {
		out.Close()
		_ = os.Remove(docxPath)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(docxPath)
		return fmt.Errorf("close docx: %w", err)
	}
	return nil
}

// readPages returns the text rows of each page in opts' range, top to bottom.
func readPages(ctx context.Context, pdfPath string, opts Options) (pages [][]string, err error) {
	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			pages, err = nil, fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		if f != nil {
			_ = f.Close()
		}
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer func() { _ = f.Close() }()

	total := r.NumPage()
	if total == 0 {
		return nil, fmt.Errorf("pdf has no pages")
	}
	end := total
	if opts.End > 0 && opts.End < total {
		end = opts.End
	}
	if opts.Start >= end {
		return nil, fmt.Errorf("start page %d out of range (%d pages)", opts.Start, total)
	}

	for i := opts.Start + 1; i <= end; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, nil)
			continue
		}
		rows, rowErr := p.GetTextByRow()
		if rowErr != nil {
			return nil, fmt.Errorf("read pdf page %d: %w", i, rowErr)
		}
		var lines []string
		for _, row := range rows {
			var b strings.Builder
			for _, t := range row.Content {
				b.WriteString(t.S)
			}
			if line := strings.TrimSpace(b.String()); line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, lines)
	}
	return pages, nil
}
