package sheets

import (
	"context"
	"fmt"
)

// Table is a fixed-width view over the first columns of the sheet, with
// the first column as row key. It satisfies the reconciler's row-store
// interface.
type Table struct {
	client  Client
	lastCol string
}

// NewTable creates a Table over the first width columns, capped at 26.
func NewTable(client Client, width int) *Table {
	if width < 1 {
		width = 1
	}
	if width > 26 {
		width = 26
	}
	return &Table{client: client, lastCol: string(rune('A' + width - 1))}
}

// Header returns the first row, or an empty slice for a blank sheet.
func (t *Table) Header(ctx context.Context) ([]string, error) {
	rows, err := t.client.Get(ctx, "A1:"+t.lastCol+"1")
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []string{}, nil
	}
	return stringCells(rows[0]), nil
}

// WriteHeader replaces the first row with the given labels.
func (t *Table) WriteHeader(ctx context.Context, labels []string) error {
	vals := make([]any, len(labels))
	for i, l := range labels {
		vals[i] = l
	}
	return t.client.Update(ctx, "A1:"+t.lastCol+"1", [][]any{vals})
}

// Keys returns the first cell of every row of the key column, top down,
// with empty cells as "".
func (t *Table) Keys(ctx context.Context) ([]string, error) {
	rows, err := t.client.Get(ctx, "A:A")
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(rows))
	for i, row := range rows {
		if len(row) > 0 {
			keys[i] = fmt.Sprint(row[0])
		}
	}
	return keys, nil
}

// UpdateRow overwrites the given 1-based row across the table width.
func (t *Table) UpdateRow(ctx context.Context, row int, values []any) error {
	rng := fmt.Sprintf("A%d:%s%d", row, t.lastCol, row)
	return t.client.Update(ctx, rng, [][]any{values})
}

// AppendRow appends the values after the last populated row.
func (t *Table) AppendRow(ctx context.Context, values []any) error {
	return t.client.Append(ctx, "A:"+t.lastCol, [][]any{values})
}

func stringCells(row []any) []string {
	out := make([]string, len(row))
	for i, v := range row {
		if s, ok := v.(string); ok {
			out[i] = s
		} else {
			out[i] = fmt.Sprint(v)
		}
	}
	return out
}
