package lookup

import (
	"fmt"
	"strings"

	"github.com/c360studio/ppodgraph/vocabulary/ppod"
)

// SheetVocabulary describes one column of the Vocabularies sheet.
type SheetVocabulary struct {
	// Column is the header of the column in the Vocabularies sheet.
	Column string
	// Name is the lookup table the column becomes.
	Name string
	// Code prefixes the minted term identifiers.
	Code string
}

// SheetVocabularies lists the columns of the Vocabularies sheet that are
// turned into lookup tables.
var SheetVocabularies = []SheetVocabulary{
	{Column: "Ecoregion_USDA", Name: EcoregionTable, Code: "eco"},
	{Column: "OrgType", Name: "orgtype", Code: "oty"},
	{Column: "OrgActivity", Name: "orgactivity", Code: "oac"},
	{Column: "ProjType", Name: "projtype", Code: "pjt"},
	{Column: "ProgType", Name: "progtype", Code: "pgt"},
	{Column: "GMType", Name: "gmtype", Code: "gmn"},
	{Column: "GovLevel", Name: "govlevel", Code: "gvl"},
	{Column: "PositionType", Name: "positiontype", Code: "pst"},
	{Column: "PeopleProjRole", Name: "projrole", Code: "prl"},
	{Column: "orgProjRelation", Name: "orgprojrelation", Code: "prl"},
	{Column: "GeoFeature", Name: "geofeature", Code: "geo"},
}

// VocabularyFromTerms builds a table from the terms of one vocabulary
// column. Each distinct term becomes ppod.TermsNamespace + code + "_" +
// token(term) and is labelled with itself. AllCode is skipped, as are
// blank cells. Two terms with the same token are an error.
func VocabularyFromTerms(name, code string, terms []string, token func(string) string) (*Table, error) {
	t := NewTable(name)
	minted := make(map[string]string)
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" || term == AllCode {
			continue
		}
		iri := ppod.TermsNamespace + code + "_" + token(term)
		if prev, ok := minted[iri]; ok && prev != term {
			return nil, fmt.Errorf("vocabulary %s: terms %q and %q share identifier %s", name, prev, term, iri)
		}
		minted[iri] = term
		if err := t.add(Entry{Code: term, Value: iri, Label: term}); err != nil {
			return nil, fmt.Errorf("vocabulary %s: %w", name, err)
		}
	}
	return t, nil
}

// IssueSource is one of the issue sheets: rows of (suffix, label) placed
// under a fixed namespace.
type IssueSource struct {
	Namespace string
	Rows      [][2]string
}

// IssueTableFrom merges issue sheets into the issue table. Issues are
// referenced by label; when two sheets use the same label the earlier
// source wins.
func IssueTableFrom(sources ...IssueSource) *Table {
	t := NewTable(IssueTable)
	for _, src := range sources {
		for _, row := range src.Rows {
			suffix, label := strings.TrimSpace(row[0]), strings.TrimSpace(row[1])
			if suffix == "" || label == "" {
				continue
			}
			if _, ok := t.Lookup(label); ok {
				continue
			}
			t.entries[label] = Entry{Code: label, Value: src.Namespace + suffix, Label: label}
			t.order = append(t.order, label)
		}
	}
	return t
}
