package pipeline

import (
	"sort"

	"github.com/c360studio/ppodgraph/graph"
	"github.com/c360studio/ppodgraph/lookup"
	"github.com/c360studio/ppodgraph/vocabulary/ppod"
)

// metaPredicates are described by RDF and RDFS themselves.
var metaPredicates = map[string]bool{
	ppod.MetaType:       true,
	ppod.MetaLabel:      true,
	ppod.MetaSubClassOf: true,
}

// addLabels emits the label statements enabled by the options.
func (d *Driver) addLabels(set *lookup.Set) {
	before := d.graph.Len()
	if d.opts.Labels {
		d.addEntityLabels()
	}
	if d.opts.VocabularyLabels {
		d.addVocabularyLabels(set)
	}
	d.logger.Debug("Labels added", "statements", d.graph.Len()-before)
}

// addEntityLabels labels every entity defined by a row with its key, and
// repeats the key under the sheet's key predicate.
func (d *Driver) addEntityLabels() {
	for _, e := range d.index.Entities() {
		if !e.Defined || e.Label == "" {
			continue
		}
		d.graph.Add(graph.LabelTriple(e.IRI, e.Label))
		if p := d.keys[e.Ref.Type]; p != "" {
			d.graph.Add(graph.Triple{Subject: e.IRI, Predicate: p, Object: graph.Literal(e.Label)})
		}
	}
}

// addVocabularyLabels labels lookup terms, use cases, locally described
// classes and predicates. Each IRI is labelled once.
func (d *Driver) addVocabularyLabels(set *lookup.Set) {
	seen := make(map[string]bool)
	label := func(iri, text string) {
		if iri == "" || text == "" || seen[iri] {
			return
		}
		seen[iri] = true
		d.graph.Add(graph.LabelTriple(iri, text))
	}

	for _, t := range set.Tables() {
		for _, e := range t.Entries() {
			label(e.Value, e.Label)
		}
	}

	headers := make([]string, 0, len(ppod.UseCases))
	for h := range ppod.UseCases {
		headers = append(headers, h)
	}
	sort.Strings(headers)
	for _, h := range headers {
		uc := ppod.UseCases[h]
		label(uc.IRI, uc.Label)
	}

	classes := make([]string, 0, len(ppod.ClassLabels))
	for c := range ppod.ClassLabels {
		classes = append(classes, c)
	}
	sort.Strings(classes)
	for _, c := range classes {
		label(c, ppod.ClassLabels[c])
	}

	for _, p := range ppod.Predicates() {
		if metaPredicates[p] {
			continue
		}
		if iri, ok := ppod.PredicateIRI(p); ok {
			label(iri, ppod.PredicateLabel(p))
		}
	}
}
