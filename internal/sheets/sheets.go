package sheets

import (
	"context"

	"intakeapi/internal/model"
)

// Package sheets appends intake records to the practice's record-keeping
// spreadsheet. The sheet is append-only: rows are never updated or deleted.

// Ledger is the record-keeping abstraction over the remote spreadsheet.
//
// CountSessions followed by Append is a read-then-append without locking:
// two concurrent submissions for the same patient on the same day can both
// read the same prior count and record duplicate session numbers. That race
// is accepted; neither call may fail because of it.
type Ledger interface {
	// CountSessions returns how many rows already match the given document
	// number and session date.
	CountSessions(ctx context.Context, document, date string) (int, error)
	// Append adds one row at the end of the sheet.
	Append(ctx context.Context, row model.SpreadsheetRow) error
}
