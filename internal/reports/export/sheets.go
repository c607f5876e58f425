package export

import (
	"context"
	"errors"
)

// ErrSheetsDisabled is returned when no spreadsheet backend is configured.
var ErrSheetsDisabled = errors.New("export: spreadsheet export not configured")

// SheetExporter pushes a rendered CSV report to an external spreadsheet.
// The hosted deployment plugs a Google Sheets client in here; the default
// build ships without one.
type SheetExporter interface {
	ExportSheet(ctx context.Context, title string, csvPayload []byte) (string, error)
}

// DisabledSheets is the default exporter. It always refuses.
type DisabledSheets struct{}

func (DisabledSheets) ExportSheet(context.Context, string, []byte) (string, error) {
	return "", ErrSheetsDisabled
}
