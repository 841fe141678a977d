package ocr

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/rotisserie/eris"
)

// PdfToText extracts text from PDFs using the pdftotext CLI tool.
type PdfToText struct {
	binPath string
}

// NewPdfToText creates a PdfToText extractor. If binPath is empty, "pdftotext" is used.
func NewPdfToText(binPath string) *PdfToText {
	if binPath == "" {
		binPath = "pdftotext"
	}
	return &PdfToText{binPath: binPath}
}

// ExtractPages runs pdftotext -layout on the given PDF and splits stdout
// into pages on the form-feed markers pdftotext emits after each page.
func (p *PdfToText) ExtractPages(ctx context.Context, pdfPath string) ([]string, error) {
	cmd := exec.CommandContext(ctx, p.binPath, "-layout", pdfPath, "-")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, eris.Wrapf(err, "ocr: pdftotext failed for %s: %s", pdfPath, stderr.String())
	}

	pages := strings.Split(stdout.String(), "\f")
	// The last page is also terminated by \f, leaving one empty element.
	if n := len(pages); n > 0 && pages[n-1] == "" {
		pages = pages[:n-1]
	}

	return pages, nil
}
