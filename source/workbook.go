package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Workbook reads worksheets from a local .xlsx export of the spreadsheet.
type Workbook struct {
	path string
	f    *excelize.File
}

// OpenWorkbook opens a workbook file. Close it when done.
func OpenWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &UnavailableError{Err: fmt.Errorf("open workbook %s: %w", path, err)}
	}
	return &Workbook{path: path, f: f}, nil
}

// ReadSheet implements Reader.
func (w *Workbook) ReadSheet(ctx context.Context, name string) (*Sheet, error) {
	if err := ctx.Err(); err != nil {
		return nil, &UnavailableError{Sheet: name, Err: err}
	}
	rows, err := w.f.GetRows(name)
	if err != nil {
		var missing excelize.ErrSheetNotExist
		if errors.As(err, &missing) {
			err = fmt.Errorf("%w in %s", ErrSheetNotFound, w.path)
		}
		return nil, &UnavailableError{Sheet: name, Err: err}
	}
	return NewSheet(name, rows)
}

// SheetNames implements Reader.
func (w *Workbook) SheetNames(ctx context.Context) ([]string, error) {
	return w.f.GetSheetList(), nil
}

// Close releases the workbook.
func (w *Workbook) Close() error {
	return w.f.Close()
}
