package lookup

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/c360studio/ppodgraph/vocabulary/ppod"
)

// Table names with special meaning to the mapper.
const (
	CountyTable    = "county"
	HabitatTable   = "habitat"
	EcoregionTable = "ecoregion"
	IssueTable     = "issue"
)

// LoadCountyTable loads a (county name, identifier) table. Bare identifiers
// such as Wikidata Q-numbers are placed under base; absolute IRIs are kept.
// Labels read "<name> County".
func LoadCountyTable(path, base string) (*Table, error) {
	return loadCSV(CountyTable, path, func(code, value string) (Entry, error) {
		iri := value
		if !isAbsoluteIRI(iri) {
			if base == "" {
				return Entry{}, fmt.Errorf("county %q has bare identifier %q and no base IRI", code, value)
			}
			iri = base + value
		}
		return Entry{Code: code, Value: iri, Label: code + " County"}, nil
	})
}

// LoadHabitatTable loads a (CWHR code, full name) table. Each code becomes
// a term in the PPOD terms namespace labelled with its full name.
func LoadHabitatTable(path string) (*Table, error) {
	return loadCSV(HabitatTable, path, func(code, value string) (Entry, error) {
		return Entry{Code: code, Value: ppod.TermsNamespace + "whr_" + code, Label: value}, nil
	})
}

// LoadCodeTable loads a generic (code, IRI) table. The code doubles as the
// label of the term.
func LoadCodeTable(name, path string) (*Table, error) {
	return loadCSV(name, path, func(code, value string) (Entry, error) {
		if !isAbsoluteIRI(value) {
			return Entry{}, fmt.Errorf("code %q: value %q is not an IRI", code, value)
		}
		return Entry{Code: code, Value: value, Label: code}, nil
	})
}

// LoadExtraTables loads every CSV file matching a doublestar pattern as a
// code table named after the file stem (commodity.csv → "commodity").
func LoadExtraTables(pattern string) ([]*Table, error) {
	if pattern == "" {
		return nil, nil
	}
	paths, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, &LoadError{Path: pattern, Err: err}
	}
	tables := make([]*Table, 0, len(paths))
	for _, p := range paths {
		name := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		t, err := LoadCodeTable(name, p)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func loadCSV(name, path string, build func(code, value string) (Entry, error)) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(stripUTF8BOM(bufio.NewReader(f)))
	r.FieldsPerRecord = -1

	if _, err := readHeader(r); err != nil {
		return nil, &LoadError{Path: path, Line: 1, Err: err}
	}

	t := NewTable(name)
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &LoadError{Path: path, Err: err}
		}
		line, _ := r.FieldPos(0)
		if isBlankRecord(rec) {
			continue
		}
		if len(rec) != 2 {
			return nil, &LoadError{Path: path, Line: line, Err: fmt.Errorf("expected 2 columns, got %d", len(rec))}
		}
		code, value := strings.TrimSpace(rec[0]), strings.TrimSpace(rec[1])
		if code == "" {
			return nil, &LoadError{Path: path, Line: line, Err: errors.New("blank code")}
		}
		if !utf8.ValidString(code) || !utf8.ValidString(value) {
			return nil, &LoadError{Path: path, Line: line, Err: errors.New("invalid UTF-8")}
		}
		e, err := build(code, value)
		if err != nil {
			return nil, &LoadError{Path: path, Line: line, Err: err}
		}
		if err := t.add(e); err != nil {
			return nil, &LoadError{Path: path, Line: line, Err: err}
		}
	}
	return t, nil
}

func stripUTF8BOM(r *bufio.Reader) *bufio.Reader {
	b, err := r.Peek(3)
	if err == nil && len(b) == 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		_, _ = r.Discard(3)
	}
	return r
}

func readHeader(r *csv.Reader) ([]string, error) {
	h, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("missing header")
		}
		return nil, err
	}
	if len(h) != 2 {
		return nil, fmt.Errorf("expected 2 header columns, got %d", len(h))
	}
	for i := range h {
		h[i] = strings.TrimSpace(h[i])
		if !utf8.ValidString(h[i]) {
			return nil, errors.New("invalid header encoding")
		}
	}
	return h, nil
}

func isBlankRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
