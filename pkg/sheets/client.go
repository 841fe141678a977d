// Package sheets wraps the Google Sheets values API for the volume
// tracking sheet.
package sheets

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Client defines the spreadsheet values operations used by this
// application. Ranges use A1 notation.
type Client interface {
	// Get reads a range and returns its rows. Trailing empty cells are
	// absent, the way the API reports them.
	Get(ctx context.Context, readRange string) ([][]any, error)

	// Update overwrites a range with the given rows, uninterpreted
	// (RAW input option).
	Update(ctx context.Context, writeRange string, values [][]any) error

	// Append adds rows after the last populated row of the range's
	// table, inserting new sheet rows.
	Append(ctx context.Context, appendRange string, values [][]any) error
}

// ClientOption configures the sheets client.
type ClientOption func(*valuesClient)

// WithRateLimit overrides the default request throttle (1 req/s, under
// the Sheets per-user quota of 60 requests per minute). Zero disables
// throttling.
func WithRateLimit(rps float64) ClientOption {
	return func(c *valuesClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		} else {
			c.limiter = nil
		}
	}
}

// valuesClient implements Client against one spreadsheet.
type valuesClient struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	limiter       *rate.Limiter
}

// NewClient resolves credentials from the given source and returns a
// Client for the spreadsheet. Credential problems surface here, before
// any sheet traffic.
func NewClient(ctx context.Context, spreadsheetID string, src CredentialSource, opts ...ClientOption) (Client, error) {
	creds, err := src.Load()
	if err != nil {
		return nil, err
	}
	zap.L().Info("google credentials loaded", zap.String("source", src.Name()))

	ts, err := TokenSource(ctx, creds)
	if err != nil {
		return nil, err
	}

	svc, err := sheetsapi.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, eris.Wrap(err, "sheets: init service")
	}

	return NewWithService(svc, spreadsheetID, opts...), nil
}

// NewWithService wraps an already-built API service.
func NewWithService(svc *sheetsapi.Service, spreadsheetID string, opts ...ClientOption) Client {
	c := &valuesClient{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		limiter:       rate.NewLimiter(1, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *valuesClient) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

func (c *valuesClient) Get(ctx context.Context, readRange string) ([][]any, error) {
	if err := c.wait(ctx); err != nil {
		return nil, eris.Wrap(err, "sheets: rate limit")
	}
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, NewStoreError("get "+readRange, err)
	}
	return resp.Values, nil
}

func (c *valuesClient) Update(ctx context.Context, writeRange string, values [][]any) error {
	if err := c.wait(ctx); err != nil {
		return eris.Wrap(err, "sheets: rate limit")
	}
	body := &sheetsapi.ValueRange{Values: values}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, writeRange, body).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return NewStoreError("update "+writeRange, err)
	}
	return nil
}

func (c *valuesClient) Append(ctx context.Context, appendRange string, values [][]any) error {
	if err := c.wait(ctx); err != nil {
		return eris.Wrap(err, "sheets: rate limit")
	}
	body := &sheetsapi.ValueRange{Values: values}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, appendRange, body).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return NewStoreError("append "+appendRange, err)
	}
	return nil
}
