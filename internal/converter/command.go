package converter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// executor abstracts process execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	// Run executes name and returns its combined stdout and stderr.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.Bytes(), err
}

// Command converts by running an external tool. Both supported tools share
// the same flow; they differ in binary name and argument layout.
type Command struct {
	name string
	bin  string
	args func(pdfPath, docxPath string, opts Options) []string
	exec executor
}

// NewPDF2Docx runs the pdf2docx command line tool. bin overrides the
// executable, defaulting to "pdf2docx" on PATH.
func NewPDF2Docx(bin string) *Command {
	if bin == "" {
		bin = "pdf2docx"
	}
	return &Command{name: BackendPDF2Docx, bin: bin, args: pdf2docxArgs, exec: osExecutor{}}
}

// NewLibreOffice runs a headless LibreOffice import of the PDF into Writer.
// bin overrides the executable, defaulting to "soffice" on PATH.
func NewLibreOffice(bin string) *Command {
	if bin == "" {
		bin = "soffice"
	}
	return &Command{name: BackendLibreOffice, bin: bin, args: libreOfficeArgs, exec: osExecutor{}}
}

func (c *Command) Name() string { return c.name }

func (c *Command) Ready(context.Context) error {
	if _, err := c.exec.LookPath(c.bin); err != nil {
		return fmt.Errorf("%s backend unavailable: %w", c.name, err)
	}
	return nil
}

func (c *Command) Convert(ctx context.Context, pdfPath, docxPath string, opts Options) error {
	if err := opts.validate(); err != nil {
		return err
	}
	out, err := c.exec.Run(ctx, c.bin, c.args(pdfPath, docxPath, opts)...)
	if err != nil {
		// Tools may leave a truncated document behind.
		_ = os.Remove(docxPath)
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			return fmt.Errorf("%s: %w", c.name, err)
		}
		return fmt.Errorf("%s: %w: %s", c.name, err, lastLine(msg))
	}
	if st, err := os.Stat(docxPath); err != nil || st.Size() == 0 {
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", c.name, err)
		}
		_ = os.Remove(docxPath)
		return fmt.Errorf("%s: %w", c.name, ErrNoOutput)
	}
	return nil
}

func pdf2docxArgs(pdfPath, docxPath string, opts Options) []string {
	args := []string{"convert", pdfPath, docxPath, "--start=" + strconv.Itoa(opts.Start)}
	if opts.End > 0 {
		args = append(args, "--end="+strconv.Itoa(opts.End))
	}
	return args
}

// libreOfficeArgs relies on soffice naming its output after the input file,
// which matches docxPath as long as both share a directory and base name.
// LibreOffice always imports the whole document, so opts is ignored.
func libreOfficeArgs(pdfPath, docxPath string, _ Options) []string {
	return []string{
		"--headless",
		"--infilter=writer_pdf_import",
		"--convert-to", "docx:MS Word 2007 XML",
		"--outdir", filepath.Dir(docxPath),
		pdfPath,
	}
}

// lastLine keeps the final line of tool output, where both tools print the error.
func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[i+1:])
	}
	return s
}
