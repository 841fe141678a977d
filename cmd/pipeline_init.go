package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/tn-afk/cme-event-contracts-scraper/internal/fetcher"
	"github.com/tn-afk/cme-event-contracts-scraper/internal/notify"
	"github.com/tn-afk/cme-event-contracts-scraper/internal/ocr"
	"github.com/tn-afk/cme-event-contracts-scraper/internal/pipeline"
	"github.com/tn-afk/cme-event-contracts-scraper/internal/reconcile"
	"github.com/tn-afk/cme-event-contracts-scraper/pkg/sheets"
)

// pipelineEnv holds the initialized clients and the pipeline shared by the
// run and serve commands.
type pipelineEnv struct {
	Pipeline *pipeline.Pipeline
	Notifier *notify.Notifier
	Sheets   sheets.Client
}

// resolveSpreadsheetID prefers a positional argument over configuration.
func resolveSpreadsheetID(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if cfg.Sheet.SpreadsheetID != "" {
		return cfg.Sheet.SpreadsheetID, nil
	}
	return "", eris.New("spreadsheet ID required: pass it as an argument or set CME_SPREADSHEET_ID")
}

// initSheetsClient resolves Google credentials and builds a values client
// for the given spreadsheet.
func initSheetsClient(ctx context.Context, spreadsheetID string) (sheets.Client, error) {
	src, err := sheets.ResolveSource(sheets.Credentials{
		RefreshToken: cfg.Google.RefreshToken,
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
	}, cfg.Google.TokensFile)
	if err != nil {
		return nil, err
	}
	return sheets.NewClient(ctx, spreadsheetID, src)
}

// failPass logs a failed pass, sends the best-effort notification, and
// hands the error back for a non-zero exit. Credential and store failures
// during wiring take this path too.
func failPass(ctx context.Context, n *notify.Notifier, err error) error {
	zap.L().Error("scrape pass failed", zap.Error(err))
	n.Failure(ctx, fmt.Sprintf("Scrape pass failed: %v", err))
	return err
}

// initPipeline wires the report fetcher, the PDF text extractor, and the
// sheet reconciler into a Pipeline. The notifier is built by the caller
// beforehand so wiring failures can still be reported.
func initPipeline(ctx context.Context, spreadsheetID string, n *notify.Notifier) (*pipelineEnv, error) {
	client, err := initSheetsClient(ctx, spreadsheetID)
	if err != nil {
		return nil, err
	}

	header := cfg.Sheet.Header()
	rec := reconcile.New(sheets.NewTable(client, len(header)), header)

	f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent: cfg.Fetch.UserAgent,
		Timeout:   time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
	})

	ext, err := ocr.NewExtractor(cfg.OCR)
	if err != nil {
		return nil, err
	}

	zap.L().Info("pipeline initialized",
		zap.String("spreadsheet_id", spreadsheetID),
		zap.String("ocr_provider", cfg.OCR.Provider),
	)

	return &pipelineEnv{
		Pipeline: pipeline.New(cfg, f, ext, rec),
		Notifier: n,
		Sheets:   client,
	}, nil
}
