package gapi

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/sakuffo/event-automation/core/utils"
)

// SheetsClient reads tabular data from Google Sheets using read-only
// service-account credentials.
type SheetsClient struct {
	svc *sheets.Service
	log *zap.Logger
}

// NewSheetsClient builds a Sheets client from a service-account JSON blob.
func NewSheetsClient(ctx context.Context, credentialsJSON []byte, log *zap.Logger) (*SheetsClient, error) {
	creds, err := google.CredentialsFromJSON(ctx, credentialsJSON, sheets.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parse google credentials: %w", err)
	}
	svc, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &SheetsClient{svc: svc, log: log}, nil
}

// ReadRange fetches the given A1 range and returns every row as strings.
// Cells arrive from the API as any, so each is stringified.
func (c *SheetsClient) ReadRange(ctx context.Context, spreadsheetID, readRange string) ([][]string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read range %q: %w", readRange, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, 0, len(raw))
		for _, cell := range raw {
			row = append(row, utils.ToString(cell))
		}
		rows = append(rows, row)
	}

	c.log.Debug("Fetched spreadsheet rows", zap.Int("count", len(rows)))
	return rows, nil
}
