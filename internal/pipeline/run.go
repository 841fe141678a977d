// Package pipeline runs one fetch, extract and reconcile pass over the
// two CME event contracts reports.
package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/tn-afk/cme-event-contracts-scraper/internal/config"
	"github.com/tn-afk/cme-event-contracts-scraper/internal/fetcher"
	"github.com/tn-afk/cme-event-contracts-scraper/internal/model"
	"github.com/tn-afk/cme-event-contracts-scraper/internal/ocr"
	"github.com/tn-afk/cme-event-contracts-scraper/internal/reconcile"
	"github.com/tn-afk/cme-event-contracts-scraper/internal/report"
)

const (
	section73File = "section73.pdf"
	swapsFile     = "swaps.pdf"
)

// Pipeline downloads the two daily reports, extracts their volume
// figures and reconciles one dated row into the tracking sheet.
type Pipeline struct {
	cfg     *config.Config
	fetcher fetcher.Fetcher
	extract ocr.Extractor
	rec     *reconcile.Reconciler
	now     func() time.Time
}

// New creates a Pipeline with all dependencies.
func New(cfg *config.Config, f fetcher.Fetcher, ext ocr.Extractor, rec *reconcile.Reconciler) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		fetcher: f,
		extract: ext,
		rec:     rec,
		now:     time.Now,
	}
}

// Run executes one scrape pass. Download and sheet failures abort the
// pass; unreadable report content degrades to zero volumes so a thin
// or malformed bulletin still lands a row.
func (p *Pipeline) Run(ctx context.Context) (*model.RunResult, error) {
	runID := uuid.NewString()
	start := p.now()
	log := zap.L().With(zap.String("run_id", runID))
	log.Info("pipeline: starting pass")

	if err := os.MkdirAll(p.cfg.Fetch.TempDir, 0o755); err != nil {
		return nil, eris.Wrap(err, "pipeline: create temp dir")
	}

	sec73, err := p.download(ctx, model.ReportSection73, p.cfg.Sources.Section73URL, section73File, log)
	if err != nil {
		return nil, err
	}
	swaps, err := p.download(ctx, model.ReportSwaps, p.cfg.Sources.SwapsURL, swapsFile, log)
	if err != nil {
		return nil, err
	}

	p.extractPages(ctx, sec73, log)
	p.extractPages(ctx, swaps, log)

	row := model.SheetRow{
		Section73: report.Section73Volume(sec73.Pages),
		Swaps:     report.SwapsVolume(swaps.Pages),
	}

	var firstPage string
	if len(sec73.Pages) > 0 {
		firstPage = sec73.Pages[0]
	}
	date, found := report.ResolveDate(firstPage, start)
	row.Date = date
	if found {
		log.Info("report date resolved", zap.String("date", date))
	} else {
		log.Warn("report date not found, using current date", zap.String("date", date))
	}

	log.Info("volumes extracted",
		zap.Int64("section73", row.Section73),
		zap.Int64("swaps", row.Swaps),
	)

	outcome, err := p.rec.Upsert(ctx, row)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: reconcile row")
	}

	result := &model.RunResult{
		RunID:         runID,
		Row:           row,
		Action:        outcome.Action,
		RowIndex:      outcome.RowIndex,
		HeaderWritten: outcome.HeaderWritten,
		DateFallback:  !found,
		ElapsedMS:     p.now().Sub(start).Milliseconds(),
	}

	log.Info("pass complete", zap.String("summary", result.Summary()))

	return result, nil
}

func (p *Pipeline) download(ctx context.Context, kind model.ReportKind, url, filename string, log *zap.Logger) (*model.ReportDocument, error) {
	path := filepath.Join(p.cfg.Fetch.TempDir, filename)
	n, err := p.fetcher.DownloadToFile(ctx, url, path)
	if err != nil {
		return nil, eris.Wrapf(err, "pipeline: download %s report", kind)
	}
	log.Info("report downloaded",
		zap.String("report", string(kind)),
		zap.Int64("bytes", n),
	)
	return &model.ReportDocument{Kind: kind, URL: url, Path: path, Bytes: n}, nil
}

// extractPages fills doc.Pages. Extraction failures downgrade to a
// warning and leave the document empty, which scores zero volume.
func (p *Pipeline) extractPages(ctx context.Context, doc *model.ReportDocument, log *zap.Logger) {
	pages, err := p.extract.ExtractPages(ctx, doc.Path)
	if err != nil {
		log.Warn("report text extraction failed",
			zap.String("report", string(doc.Kind)),
			zap.Error(err),
		)
		return
	}
	doc.Pages = pages
}
