package lookup

import (
	"fmt"
	"strings"
)

// AllCode in a county or ecoregion cell stands for every term of the table.
const AllCode = "All"

// expandable lists the tables for which AllCode expands.
var expandable = map[string]bool{
	CountyTable:    true,
	EcoregionTable: true,
}

// Set holds the reference tables available to the mapper for one run.
type Set struct {
	tables map[string]*Table
	order  []string
}

// NewSet creates a set from tables. Table names must be unique.
func NewSet(tables ...*Table) (*Set, error) {
	s := &Set{tables: make(map[string]*Table)}
	for _, t := range tables {
		if err := s.Add(t); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add registers a table.
func (s *Set) Add(t *Table) error {
	if t == nil {
		return nil
	}
	if _, ok := s.tables[t.Name]; ok {
		return fmt.Errorf("duplicate lookup table %q", t.Name)
	}
	s.tables[t.Name] = t
	s.order = append(s.order, t.Name)
	return nil
}

// Table returns a table by name.
func (s *Set) Table(name string) (*Table, bool) {
	t, ok := s.tables[name]
	return t, ok
}

// Tables returns all tables in the order they were added.
func (s *Set) Tables() []*Table {
	out := make([]*Table, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.tables[name])
	}
	return out
}

// Resolve returns the entries a cell token stands for. AllCode expands to
// every entry of the county and ecoregion tables.
func (s *Set) Resolve(name, code string) ([]Entry, error) {
	t, ok := s.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, name)
	}
	code = strings.TrimSpace(code)
	if code == AllCode && expandable[name] {
		return t.Entries(), nil
	}
	e, ok := t.Lookup(code)
	if !ok {
		return nil, fmt.Errorf("%w: %q not in %s", ErrUnknownCode, code, name)
	}
	return []Entry{e}, nil
}
