package model

// SpreadsheetRow mirrors one appended line of the record-keeping sheet.
// Column order is fixed and positional; rows are appended, never updated.
type SpreadsheetRow struct {
	Date         string
	Time         string
	Document     string
	FullName     string
	Reason       string
	Password     string
	Filename     string
	Channel      string
	SessionLabel string
	Professional string
	Status       string
}

// Values returns the row in sheet column order.
func (r SpreadsheetRow) Values() []interface{} {
	return []interface{}{
		r.Date,
		r.Time,
		r.Document,
		r.FullName,
		r.Reason,
		r.Password,
		r.Filename,
		r.Channel,
		r.SessionLabel,
		r.Professional,
		r.Status,
	}
}
