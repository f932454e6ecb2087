package sheets

import (
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"intakeapi/internal/config"
	"intakeapi/internal/model"
)

// GoogleLedger implements Ledger against the Google Sheets API using a
// service account. The spreadsheet's fixed column order is: date, time,
// document, full name, reason, password, filename, channel, session label,
// professional, status.
type GoogleLedger struct {
	svc           *sheetsv4.Service
	spreadsheetID string
	readRange     string
}

// Column positions within the read range.
const (
	colDate     = 0
	colDocument = 2
)

// NewGoogleLedger decodes the base64 service-account JSON and builds the
// Sheets client.
func NewGoogleLedger(ctx context.Context, cfg config.SheetsConfig) (*GoogleLedger, error) {
	creds, err := base64.StdEncoding.DecodeString(cfg.CredentialsB64)
	if err != nil {
		return nil, fmt.Errorf("credenciales de la hoja no son base64 válido: %w", err)
	}
	svc, err := sheetsv4.NewService(ctx,
		option.WithCredentialsJSON(creds),
		option.WithScopes(sheetsv4.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("cliente de hoja de cálculo: %w", err)
	}
	return &GoogleLedger{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		readRange:     cfg.SheetRange,
	}, nil
}

// CountSessions reads all existing rows and counts those matching the same
// document number and session date.
func (g *GoogleLedger) CountSessions(ctx context.Context, document, date string) (int, error) {
	resp, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, g.readRange).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("%w: lectura: %v", model.ErrRecording, err)
	}
	return countMatches(resp.Values, document, date), nil
}

// Append adds the row with USER_ENTERED semantics so dates and numbers keep
// the sheet's formatting.
func (g *GoogleLedger) Append(ctx context.Context, row model.SpreadsheetRow) error {
	vr := &sheetsv4.ValueRange{Values: [][]interface{}{row.Values()}}
	_, err := g.svc.Spreadsheets.Values.Append(g.spreadsheetID, g.readRange, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("%w: escritura: %v", model.ErrRecording, err)
	}
	return nil
}

// countMatches counts rows whose date and document columns equal the given
// values. Short or malformed rows are skipped, not failed.
func countMatches(values [][]interface{}, document, date string) int {
	n := 0
	for _, row := range values {
		if len(row) <= colDocument {
			continue
		}
		d, ok := row[colDate].(string)
		if !ok {
			continue
		}
		doc, ok := row[colDocument].(string)
		if !ok {
			continue
		}
		if d == date && doc == document {
			n++
		}
	}
	return n
}
