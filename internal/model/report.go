package model

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ReportKind identifies one of the two CME daily bulletin reports.
type ReportKind string

const (
	// ReportSection73 is the Section 73 page of the daily bulletin,
	// covering exchange-listed event contracts.
	ReportSection73 ReportKind = "section73"
	// ReportSwaps is the preliminary volume report for swap-based
	// event contracts.
	ReportSwaps ReportKind = "swaps"
)

// ReportDocument is a downloaded bulletin PDF plus its extracted page
// texts. Pages preserve PDF page order; a page with no extractable text
// is present as an empty string.
type ReportDocument struct {
	Kind  ReportKind `json:"kind"`
	URL   string     `json:"url"`
	Path  string     `json:"path"`
	Bytes int64      `json:"bytes"`
	Pages []string   `json:"-"`
}

// SheetRow is one dated volume row destined for the tracking sheet.
type SheetRow struct {
	Date      string `json:"date"`
	Section73 int64  `json:"section73"`
	Swaps     int64  `json:"swaps"`
}

// Values returns the row in sheet column order: date, section 73
// volume, swaps volume.
func (r SheetRow) Values() []any {
	return []any{r.Date, r.Section73, r.Swaps}
}

// RowAction describes how a reconcile pass landed a row in the sheet.
type RowAction string

const (
	RowUpdated  RowAction = "updated"
	RowAppended RowAction = "appended"
)

// RunResult holds the final outcome of a single scrape pass.
type RunResult struct {
	RunID         string    `json:"run_id"`
	Row           SheetRow  `json:"row"`
	Action        RowAction `json:"action"`
	RowIndex      int       `json:"row_index"`
	HeaderWritten bool      `json:"header_written,omitempty"`
	DateFallback  bool      `json:"date_fallback,omitempty"`
	ElapsedMS     int64     `json:"elapsed_ms"`
}

var summaryPrinter = message.NewPrinter(language.English)

// Summary renders a one-line account of the pass with comma-grouped
// volume figures.
func (r *RunResult) Summary() string {
	return summaryPrinter.Sprintf("%s: section 73 volume %d, swaps volume %d (%s row %d)",
		r.Row.Date, r.Row.Section73, r.Row.Swaps, string(r.Action), r.RowIndex)
}
