package ocr

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/tn-afk/cme-event-contracts-scraper/internal/config"
)

// Extractor extracts text content from PDF files, one string per page in
// document order.
type Extractor interface {
	ExtractPages(ctx context.Context, pdfPath string) ([]string, error)
}

// NewExtractor creates an Extractor based on config.
func NewExtractor(cfg config.OCRConfig) (Extractor, error) {
	switch cfg.Provider {
	case "local", "":
		return NewPdfToText(cfg.PdfToTextPath), nil
	case "mistral":
		if cfg.MistralKey == "" {
			return nil, eris.New("ocr: mistral provider requires mistral_api_key")
		}
		return NewMistralOCR(cfg.MistralKey, cfg.MistralModel), nil
	default:
		return nil, eris.Errorf("ocr: unknown provider %q", cfg.Provider)
	}
}
