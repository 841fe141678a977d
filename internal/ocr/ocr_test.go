package ocr

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tn-afk/cme-event-contracts-scraper/internal/config"
)

func TestNewExtractor_Local(t *testing.T) {
	ext, err := NewExtractor(config.OCRConfig{Provider: "local", PdfToTextPath: "/usr/bin/pdftotext"})
	require.NoError(t, err)
	assert.IsType(t, &PdfToText{}, ext)
}

func TestNewExtractor_LocalDefault(t *testing.T) {
	ext, err := NewExtractor(config.OCRConfig{Provider: ""})
	require.NoError(t, err)
	assert.IsType(t, &PdfToText{}, ext)
}

func TestNewExtractor_MistralMissingKey(t *testing.T) {
	_, err := NewExtractor(config.OCRConfig{Provider: "mistral"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mistral provider requires mistral_api_key")
}

func TestNewExtractor_MistralWithKey(t *testing.T) {
	ext, err := NewExtractor(config.OCRConfig{Provider: "mistral", MistralKey: "test-key"})
	require.NoError(t, err)
	assert.IsType(t, &MistralOCR{}, ext)
}

func TestNewExtractor_UnknownProvider(t *testing.T) {
	_, err := NewExtractor(config.OCRConfig{Provider: "unknown"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown provider "unknown"`)
}

func TestPdfToText_BinPath(t *testing.T) {
	p := NewPdfToText("")
	assert.Equal(t, "pdftotext", p.binPath)

	p = NewPdfToText("/custom/pdftotext")
	assert.Equal(t, "/custom/pdftotext", p.binPath)
}

func TestPdfToText_ExtractPages_SplitsOnFormFeed(t *testing.T) {
	// Fake pdftotext that emits two pages, each terminated by \f as the
	// real tool does.
	tmpDir := t.TempDir()
	fakeBin := filepath.Join(tmpDir, "pdftotext")
	script := "#!/bin/sh\nprintf 'EVENT CONTRACTS\\nTOTAL 100\\n\\fSecond page\\n\\f'\n"
	require.NoError(t, os.WriteFile(fakeBin, []byte(script), 0755))

	p := NewPdfToText(fakeBin)
	pages, err := p.ExtractPages(context.Background(), "/tmp/dummy.pdf")
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "EVENT CONTRACTS\nTOTAL 100\n", pages[0])
	assert.Equal(t, "Second page\n", pages[1])
}

func TestPdfToText_ExtractPages_KeepsBlankInteriorPage(t *testing.T) {
	tmpDir := t.TempDir()
	fakeBin := filepath.Join(tmpDir, "pdftotext")
	script := "#!/bin/sh\nprintf 'first\\n\\f\\fthird\\n\\f'\n"
	require.NoError(t, os.WriteFile(fakeBin, []byte(script), 0755))

	p := NewPdfToText(fakeBin)
	pages, err := p.ExtractPages(context.Background(), "/tmp/dummy.pdf")
	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.Equal(t, "", pages[1])
	assert.Equal(t, "third\n", pages[2])
}

func TestPdfToText_ExtractPages_BinaryNotFound(t *testing.T) {
	p := NewPdfToText("/nonexistent/pdftotext")
	_, err := p.ExtractPages(context.Background(), "/tmp/test.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdftotext failed")
}

func TestPdfToText_ExtractPages_CapturesStderr(t *testing.T) {
	tmpDir := t.TempDir()
	fakeBin := filepath.Join(tmpDir, "pdftotext")
	script := "#!/bin/sh\necho 'Syntax Error: broken xref' >&2\nexit 1\n"
	require.NoError(t, os.WriteFile(fakeBin, []byte(script), 0755))

	p := NewPdfToText(fakeBin)
	_, err := p.ExtractPages(context.Background(), "/tmp/dummy.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Syntax Error: broken xref")
}

func TestMistralOCR_DefaultModel(t *testing.T) {
	m := NewMistralOCR("key", "")
	assert.Equal(t, defaultMistralModel, m.model)
	assert.Equal(t, mistralOCREndpoint, m.endpoint)
}

func TestMistralOCR_CustomModel(t *testing.T) {
	m := NewMistralOCR("key", "custom-model")
	assert.Equal(t, "custom-model", m.model)
}

func TestMistralOCR_ExtractPages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req mistralOCRRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.Equal(t, "document_url", req.Document.Type)
		assert.Contains(t, req.Document.DocumentURL, "data:application/pdf;base64,")

		resp := mistralOCRResponse{
			Pages: []mistralOCRPage{
				{Index: 0, Markdown: "Page one content"},
				{Index: 1, Markdown: "Page two content"},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp) //nolint:errcheck
	}))
	defer srv.Close()

	tmpDir := t.TempDir()
	pdfPath := filepath.Join(tmpDir, "test.pdf")
	require.NoError(t, os.WriteFile(pdfPath, []byte("%PDF-1.4 test content"), 0644))

	m := &MistralOCR{
		apiKey:   "test-key",
		model:    "test-model",
		endpoint: srv.URL,
		client:   &http.Client{},
	}

	pages, err := m.ExtractPages(context.Background(), pdfPath)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "Page one content", pages[0])
	assert.Equal(t, "Page two content", pages[1])
}

func TestMistralOCR_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid api key"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	tmpDir := t.TempDir()
	pdfPath := filepath.Join(tmpDir, "test.pdf")
	require.NoError(t, os.WriteFile(pdfPath, []byte("%PDF-1.4 test"), 0644))

	m := &MistralOCR{
		apiKey:   "bad-key",
		model:    "test-model",
		endpoint: srv.URL,
		client:   &http.Client{},
	}

	_, err := m.ExtractPages(context.Background(), pdfPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mistral API returned 401")
}

func TestMistralOCR_FileNotFound(t *testing.T) {
	m := NewMistralOCR("key", "model")
	_, err := m.ExtractPages(context.Background(), "/nonexistent/file.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read PDF")
}

func TestMistralOCR_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{invalid json`)) //nolint:errcheck
	}))
	defer srv.Close()

	tmpDir := t.TempDir()
	pdfPath := filepath.Join(tmpDir, "test.pdf")
	require.NoError(t, os.WriteFile(pdfPath, []byte("%PDF-1.4 test"), 0644))

	m := &MistralOCR{
		apiKey:   "test-key",
		model:    "test-model",
		endpoint: srv.URL,
		client:   &http.Client{},
	}

	_, err := m.ExtractPages(context.Background(), pdfPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal mistral response")
}

func TestMistralOCR_EmptyPages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		resp := mistralOCRResponse{Pages: []mistralOCRPage{}}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp) //nolint:errcheck
	}))
	defer srv.Close()

	tmpDir := t.TempDir()
	pdfPath := filepath.Join(tmpDir, "test.pdf")
	require.NoError(t, os.WriteFile(pdfPath, []byte("%PDF-1.4 test"), 0644))

	m := &MistralOCR{
		apiKey:   "test-key",
		model:    "test-model",
		endpoint: srv.URL,
		client:   &http.Client{},
	}

	pages, err := m.ExtractPages(context.Background(), pdfPath)
	require.NoError(t, err)
	assert.Empty(t, pages)
}
