// Package lookup loads the reference tables that translate codes found in
// spreadsheet cells into vocabulary terms.
package lookup

import (
	"fmt"
	"strings"
)

// Entry is one code of a reference table. Value is the IRI the code
// resolves to; Label is the display name emitted for that IRI.
type Entry struct {
	Code  string
	Value string
	Label string
}

// Table is an immutable code → entry mapping. Codes are matched exactly as
// they appear in source rows.
type Table struct {
	Name    string
	entries map[string]Entry
	order   []string
}

// NewTable creates an empty table.
func NewTable(name string) *Table {
	return &Table{Name: name, entries: make(map[string]Entry)}
}

// add inserts an entry. Re-adding a code with the same value and label is a
// no-op; a different value or label is an error.
func (t *Table) add(e Entry) error {
	if prev, ok := t.entries[e.Code]; ok {
		if prev.Value != e.Value {
			return fmt.Errorf("code %q maps to both %q and %q", e.Code, prev.Value, e.Value)
		}
		if prev.Label != e.Label {
			return fmt.Errorf("code %q is labelled both %q and %q", e.Code, prev.Label, e.Label)
		}
		return nil
	}
	t.entries[e.Code] = e
	t.order = append(t.order, e.Code)
	return nil
}

// Lookup returns the entry for a code.
func (t *Table) Lookup(code string) (Entry, bool) {
	e, ok := t.entries[code]
	return e, ok
}

// Entries returns all entries in load order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.order))
	for _, code := range t.order {
		out = append(out, t.entries[code])
	}
	return out
}

// Len returns the number of distinct codes.
func (t *Table) Len() int {
	return len(t.order)
}

// isAbsoluteIRI reports whether v already is an IRI rather than a bare
// identifier to be placed under a namespace.
func isAbsoluteIRI(v string) bool {
	return strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") || strings.HasPrefix(v, "urn:")
}
