// Package reconcile lands a dated volume row in the tracking sheet,
// keeping one row per report date.
package reconcile

import (
	"context"
	"slices"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/tn-afk/cme-event-contracts-scraper/internal/model"
)

// RowStore is the slice of spreadsheet access the reconciler needs. Row
// indices are 1-based and include the header row, matching the sheet's
// own numbering.
type RowStore interface {
	// Header returns the first row of the sheet, or an empty slice when
	// the sheet has no content yet.
	Header(ctx context.Context) ([]string, error)

	// WriteHeader replaces the first row with the given labels.
	WriteHeader(ctx context.Context, labels []string) error

	// Keys returns the first cell of every row in the key column from
	// the top of the sheet down, header included. Rows with an empty
	// key cell come back as "".
	Keys(ctx context.Context) ([]string, error)

	// UpdateRow overwrites the values of the given 1-based row.
	UpdateRow(ctx context.Context, row int, values []any) error

	// AppendRow appends the values after the last populated row.
	AppendRow(ctx context.Context, values []any) error
}

// DefaultHeader holds the column labels of the volume sheet.
var DefaultHeader = []string{"Date", "Event Contracts (PG 73)", "Event Contracts (Swaps)"}

// Outcome reports where a row landed.
type Outcome struct {
	Action        model.RowAction
	RowIndex      int
	HeaderWritten bool
}

// Reconciler upserts dated rows into a RowStore.
type Reconciler struct {
	store  RowStore
	header []string
}

// New creates a Reconciler writing rows under the given header labels.
// Empty labels fall back to DefaultHeader.
func New(store RowStore, header []string) *Reconciler {
	if len(header) == 0 {
		header = DefaultHeader
	}
	return &Reconciler{store: store, header: header}
}

// Upsert writes the row under its date key: the first row whose key
// matches the date is overwritten in place, otherwise the row is
// appended. The header row is put in place first when missing or
// different, so repeated passes for one date keep the sheet at a single
// row for that date.
func (r *Reconciler) Upsert(ctx context.Context, row model.SheetRow) (*Outcome, error) {
	outcome := &Outcome{}

	header, err := r.store.Header(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "reconcile: read header")
	}
	if !slices.Equal(header, r.header) {
		if err := r.store.WriteHeader(ctx, r.header); err != nil {
			return nil, eris.Wrap(err, "reconcile: write header")
		}
		outcome.HeaderWritten = true
		zap.L().Info("header row written", zap.Strings("labels", r.header))
	}

	keys, err := r.store.Keys(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "reconcile: read date column")
	}

	idx := 0
	for i, key := range keys {
		if key == row.Date {
			idx = i + 1
			break
		}
	}

	if idx > 0 {
		if err := r.store.UpdateRow(ctx, idx, row.Values()); err != nil {
			return nil, eris.Wrap(err, "reconcile: update row")
		}
		outcome.Action = model.RowUpdated
		outcome.RowIndex = idx
		return outcome, nil
	}

	if err := r.store.AppendRow(ctx, row.Values()); err != nil {
		return nil, eris.Wrap(err, "reconcile: append row")
	}
	outcome.Action = model.RowAppended
	outcome.RowIndex = len(keys) + 1
	return outcome, nil
}
