package source

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// GoogleSheets reads worksheets through the Google Sheets API. The caller
// supplies an authorized client through the options; credential handling
// is not part of this type.
type GoogleSheets struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewGoogleSheets creates a reader for one spreadsheet.
func NewGoogleSheets(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*GoogleSheets, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, fmt.Errorf("spreadsheet id is required")
	}
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, &UnavailableError{Err: fmt.Errorf("create sheets service: %w", err)}
	}
	return &GoogleSheets{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// ReadSheet implements Reader.
func (g *GoogleSheets) ReadSheet(ctx context.Context, name string) (*Sheet, error) {
	resp, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, sheetRange(name)).
		ValueRenderOption("FORMATTED_VALUE").
		MajorDimension("ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return nil, &UnavailableError{Sheet: name, Err: err}
	}

	grid := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		cells := make([]string, len(row))
		for j, v := range row {
			if v != nil {
				cells[j] = fmt.Sprint(v)
			}
		}
		grid[i] = cells
	}
	return NewSheet(name, grid)
}

// SheetNames implements Reader.
func (g *GoogleSheets) SheetNames(ctx context.Context) ([]string, error) {
	ss, err := g.svc.Spreadsheets.Get(g.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return nil, &UnavailableError{Err: err}
	}
	names := make([]string, 0, len(ss.Sheets))
	for _, s := range ss.Sheets {
		if s.Properties != nil {
			names = append(names, s.Properties.Title)
		}
	}
	return names, nil
}

// sheetRange returns the A1 range covering a whole worksheet.
func sheetRange(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
