// Package source reads worksheets from the spreadsheet a graph is built
// from, either through the Google Sheets API or from a local workbook.
package source

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrSheetNotFound is wrapped by UnavailableError when the worksheet does
// not exist in the source.
var ErrSheetNotFound = errors.New("worksheet not found")

// ErrDuplicateHeader is returned when two columns share a header name.
var ErrDuplicateHeader = errors.New("duplicate header")

// UnavailableError reports a worksheet that could not be read: missing,
// unreachable, or not authorized. It is fatal to a run.
type UnavailableError struct {
	Sheet string
	Err   error
}

func (e *UnavailableError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("source unavailable: %v", e.Err)
	}
	return fmt.Sprintf("worksheet %q unavailable: %v", e.Sheet, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// IsUnavailable returns true if err is or wraps an UnavailableError.
func IsUnavailable(err error) bool {
	var ue *UnavailableError
	return errors.As(err, &ue)
}

// Reader gives access to the worksheets of one spreadsheet.
type Reader interface {
	// ReadSheet returns every row of the named worksheet.
	ReadSheet(ctx context.Context, name string) (*Sheet, error)

	// SheetNames lists the worksheets of the spreadsheet.
	SheetNames(ctx context.Context) ([]string, error)
}

// Row is one data row. Values maps header names to raw cell text; blank
// cells map to "".
type Row struct {
	// Number is the 1-based row number in the worksheet. The header is row 1.
	Number int
	Values map[string]string
}

// Get returns the raw value of a column, or "" if the column is absent.
func (r Row) Get(header string) string {
	return r.Values[header]
}

// IsBlank reports whether every cell of the row is blank.
func (r Row) IsBlank() bool {
	for _, v := range r.Values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Sheet is a worksheet split into its header and data rows.
type Sheet struct {
	Name   string
	Header []string
	Rows   []Row
}

// HasColumn reports whether the header declares a column.
func (s *Sheet) HasColumn(header string) bool {
	for _, h := range s.Header {
		if h == header {
			return true
		}
	}
	return false
}

// NewSheet builds a Sheet from a grid of cells. The first row is the
// header. Rows after the last non-blank row are dropped; blank rows in
// between are kept so row numbers match the worksheet. Columns with a
// blank header are ignored.
func NewSheet(name string, grid [][]string) (*Sheet, error) {
	s := &Sheet{Name: name}
	if len(grid) == 0 {
		return s, nil
	}

	cols := make([]int, 0, len(grid[0]))
	seen := make(map[string]bool)
	for i, h := range grid[0] {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if seen[h] {
			return nil, fmt.Errorf("worksheet %q column %q: %w", name, h, ErrDuplicateHeader)
		}
		seen[h] = true
		s.Header = append(s.Header, h)
		cols = append(cols, i)
	}

	last := len(grid) - 1
	for last > 0 && isBlankCells(grid[last]) {
		last--
	}

	for r := 1; r <= last; r++ {
		cells := grid[r]
		row := Row{Number: r + 1, Values: make(map[string]string, len(cols))}
		for j, c := range cols {
			v := ""
			if c < len(cells) {
				v = cells[c]
			}
			row.Values[s.Header[j]] = v
		}
		s.Rows = append(s.Rows, row)
	}
	return s, nil
}

func isBlankCells(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Static is an in-memory Reader keyed by worksheet name.
type Static map[string][][]string

// ReadSheet implements Reader.
func (s Static) ReadSheet(ctx context.Context, name string) (*Sheet, error) {
	if err := ctx.Err(); err != nil {
		return nil, &UnavailableError{Sheet: name, Err: err}
	}
	grid, ok := s[name]
	if !ok {
		return nil, &UnavailableError{Sheet: name, Err: ErrSheetNotFound}
	}
	return NewSheet(name, grid)
}

// SheetNames implements Reader.
func (s Static) SheetNames(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	return names, nil
}
