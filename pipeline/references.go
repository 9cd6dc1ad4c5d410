package pipeline

import (
	"context"
	"fmt"

	"github.com/c360studio/ppodgraph/identity"
	"github.com/c360studio/ppodgraph/lookup"
	"github.com/c360studio/ppodgraph/vocabulary/ppod"
)

// loadReferences builds the lookup set: CSV tables first, then the
// vocabulary and issue worksheets for tables no file provided.
func (d *Driver) loadReferences(ctx context.Context) (*lookup.Set, error) {
	set, _ := lookup.NewSet()
	refs := d.opts.References

	if refs.CountyFile != "" {
		t, err := lookup.LoadCountyTable(refs.CountyFile, refs.CountyBase)
		if err != nil {
			return nil, err
		}
		d.addTable(set, t, refs.CountyFile)
	}
	if refs.HabitatFile != "" {
		t, err := lookup.LoadHabitatTable(refs.HabitatFile)
		if err != nil {
			return nil, err
		}
		d.addTable(set, t, refs.HabitatFile)
	}
	extra, err := lookup.LoadExtraTables(refs.Extra)
	if err != nil {
		return nil, err
	}
	for _, t := range extra {
		if _, ok := set.Table(t.Name); ok {
			return nil, &lookup.LoadError{Path: refs.Extra, Err: fmt.Errorf("table %q loaded twice", t.Name)}
		}
		d.addTable(set, t, refs.Extra)
	}

	if err := d.loadVocabularySheet(ctx, set); err != nil {
		return nil, err
	}
	if err := d.loadIssueSheets(ctx, set); err != nil {
		return nil, err
	}
	return set, nil
}

func (d *Driver) addTable(set *lookup.Set, t *lookup.Table, from string) {
	// Names are checked by the callers.
	_ = set.Add(t)
	d.logger.Debug("Lookup table loaded", "table", t.Name, "entries", t.Len(), "path", from)
}

func (d *Driver) loadVocabularySheet(ctx context.Context, set *lookup.Set) error {
	name := d.opts.Sheets[SheetVocabularies]
	if name == "" {
		return nil
	}
	sheet, err := d.reader.ReadSheet(ctx, name)
	if err != nil {
		return err
	}
	token := identity.Encode
	if d.ids.Scheme() == identity.SchemeCRC24 {
		token = identity.ShortHash
	}
	for _, v := range lookup.SheetVocabularies {
		if _, ok := set.Table(v.Name); ok {
			d.logger.Debug("Vocabulary column superseded by file", "table", v.Name)
			continue
		}
		if !sheet.HasColumn(v.Column) {
			d.logger.Debug("Vocabulary column absent", "sheet", SheetVocabularies, "column", v.Column)
			continue
		}
		terms := make([]string, 0, len(sheet.Rows))
		for _, r := range sheet.Rows {
			terms = append(terms, r.Get(v.Column))
		}
		t, err := lookup.VocabularyFromTerms(v.Name, v.Code, terms, token)
		if err != nil {
			return &lookup.LoadError{Path: name, Err: err}
		}
		d.addTable(set, t, name)
	}
	return nil
}

// loadIssueSheets merges the issue worksheets into the issue table. Both
// hold (suffix, label) pairs in their first two columns; integrated issues
// win over component issues with the same label.
func (d *Driver) loadIssueSheets(ctx context.Context, set *lookup.Set) error {
	if _, ok := set.Table(lookup.IssueTable); ok {
		return nil
	}
	var sources []lookup.IssueSource
	for _, s := range []struct {
		logical   string
		namespace string
	}{
		{SheetIssuesIntegrated, ppod.IntegratedIssueNamespace},
		{SheetIssuesComponent, ppod.ComponentIssueNamespace},
	} {
		name := d.opts.Sheets[s.logical]
		if name == "" {
			continue
		}
		sheet, err := d.reader.ReadSheet(ctx, name)
		if err != nil {
			return err
		}
		if len(sheet.Header) < 2 {
			return &lookup.LoadError{Path: name, Err: fmt.Errorf("issue sheet needs suffix and label columns")}
		}
		src := lookup.IssueSource{Namespace: s.namespace}
		for _, r := range sheet.Rows {
			src.Rows = append(src.Rows, [2]string{r.Get(sheet.Header[0]), r.Get(sheet.Header[1])})
		}
		sources = append(sources, src)
	}
	if len(sources) > 0 {
		d.addTable(set, lookup.IssueTableFrom(sources...), "issue sheets")
	}
	return nil
}

// ensureVocabularies adds an empty table for every vocabulary the field
// tables use but no source provided, so its codes are reported as unknown.
func (d *Driver) ensureVocabularies(set *lookup.Set) {
	for _, name := range d.opts.Tables.Vocabularies() {
		if _, ok := set.Table(name); ok {
			continue
		}
		d.logger.Warn("Lookup table unavailable; its codes will be reported as unknown", "table", name)
		_ = set.Add(lookup.NewTable(name))
	}
}
