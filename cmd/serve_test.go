//go:build !integration

package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tn-afk/cme-event-contracts-scraper/internal/config"
	"github.com/tn-afk/cme-event-contracts-scraper/pkg/sheets"
)

func TestBuildMux_HealthEndpoint(t *testing.T) {
	mux := buildMux(context.Background(), nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var body map[string]string
	err := json.Unmarshal(rr.Body.Bytes(), &body)
	require.NoError(t, err)
	assert.Equal(t, "ok", body["status"])
}

func TestBuildMux_TriggerAccepted_NilPipeline(t *testing.T) {
	// With a nil env, the goroutine skips the pass gracefully.
	mux := buildMux(context.Background(), nil)

	req := httptest.NewRequest(http.MethodPost, "/run", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var resp map[string]string
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "accepted", resp["status"])

	// Give the goroutine time to execute the nil check path.
	time.Sleep(10 * time.Millisecond)
}

func TestBuildMux_TriggerRejectsGet(t *testing.T) {
	mux := buildMux(context.Background(), nil)

	req := httptest.NewRequest(http.MethodGet, "/run", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestBuildMux_UnknownRoute(t *testing.T) {
	mux := buildMux(context.Background(), nil)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestServeCommand_NotifiesOnCredentialFailure(t *testing.T) {
	var posts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		posts++
	}))
	defer srv.Close()

	cfg = &config.Config{}
	cfg.Sheet.SpreadsheetID = "sheet-1"
	cfg.Google.TokensFile = filepath.Join(t.TempDir(), "missing.json")
	cfg.Notify.TopicURL = srv.URL

	err := serveCmd.RunE(serveCmd, nil)
	require.Error(t, err)
	assert.True(t, sheets.IsCredentialError(err))
	assert.Equal(t, 1, posts)
}
