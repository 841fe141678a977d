//go:build !integration

package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tn-afk/cme-event-contracts-scraper/internal/config"
	"github.com/tn-afk/cme-event-contracts-scraper/pkg/sheets"
)

func TestResolveSpreadsheetID_ArgWins(t *testing.T) {
	cfg = &config.Config{}
	cfg.Sheet.SpreadsheetID = "from-config"

	id, err := resolveSpreadsheetID([]string{"from-arg"})
	require.NoError(t, err)
	assert.Equal(t, "from-arg", id)
}

func TestResolveSpreadsheetID_ConfigFallback(t *testing.T) {
	cfg = &config.Config{}
	cfg.Sheet.SpreadsheetID = "from-config"

	id, err := resolveSpreadsheetID(nil)
	require.NoError(t, err)
	assert.Equal(t, "from-config", id)
}

func TestResolveSpreadsheetID_EmptyArgFallsThrough(t *testing.T) {
	cfg = &config.Config{}
	cfg.Sheet.SpreadsheetID = "from-config"

	id, err := resolveSpreadsheetID([]string{""})
	require.NoError(t, err)
	assert.Equal(t, "from-config", id)
}

func TestResolveSpreadsheetID_Missing(t *testing.T) {
	cfg = &config.Config{}

	_, err := resolveSpreadsheetID(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CME_SPREADSHEET_ID")
}

func TestInitSheetsClient_NoCredentials(t *testing.T) {
	cfg = &config.Config{}
	cfg.Google.TokensFile = filepath.Join(t.TempDir(), "missing.json")

	_, err := initSheetsClient(context.Background(), "sheet-1")
	require.Error(t, err)
	assert.True(t, sheets.IsCredentialError(err))
}

func TestRunCommand_NotifiesOnCredentialFailure(t *testing.T) {
	var posts int
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		posts++
	}))
	defer srv.Close()

	cfg = &config.Config{}
	cfg.Sheet.SpreadsheetID = "sheet-1"
	cfg.Google.TokensFile = filepath.Join(t.TempDir(), "missing.json")
	cfg.Notify.TopicURL = srv.URL

	err := runCmd.RunE(runCmd, nil)
	require.Error(t, err)
	assert.True(t, sheets.IsCredentialError(err))
	assert.Equal(t, 1, posts)
	assert.Contains(t, gotBody, "Scrape pass failed")
}
