// Package graph holds the statements produced during a run, in the order
// they were produced.
package graph

import (
	"fmt"

	"github.com/c360studio/ppodgraph/vocabulary/ppod"
)

// TermKind distinguishes IRIs from literals in object position.
type TermKind int

const (
	// KindIRI is a resource reference.
	KindIRI TermKind = iota
	// KindLiteral is a plain or typed literal.
	KindLiteral
)

// Term is the object of a statement.
type Term struct {
	Kind     TermKind
	Value    string
	Datatype string
}

// IRI returns a resource term.
func IRI(v string) Term {
	return Term{Kind: KindIRI, Value: v}
}

// Literal returns a plain literal term.
func Literal(v string) Term {
	return Term{Kind: KindLiteral, Value: v}
}

// TypedLiteral returns a literal term with an XSD datatype.
func TypedLiteral(v, datatype string) Term {
	return Term{Kind: KindLiteral, Value: v, Datatype: datatype}
}

// IsIRI reports whether the term is a resource reference.
func (t Term) IsIRI() bool {
	return t.Kind == KindIRI
}

func (t Term) String() string {
	if t.IsIRI() {
		return "<" + t.Value + ">"
	}
	if t.Datatype != "" {
		return fmt.Sprintf("%q^^<%s>", t.Value, t.Datatype)
	}
	return fmt.Sprintf("%q", t.Value)
}

// Triple is a single statement. Predicate is a registered vocabulary name
// such as ppod.desc.title, resolved to an IRI only when serialized.
type Triple struct {
	Subject   string
	Predicate string
	Object    Term
}

// TypeTriple declares the class of a subject.
func TypeTriple(subject, classIRI string) Triple {
	return Triple{Subject: subject, Predicate: ppod.MetaType, Object: IRI(classIRI)}
}

// LabelTriple gives a subject a human readable label.
func LabelTriple(subject, label string) Triple {
	return Triple{Subject: subject, Predicate: ppod.MetaLabel, Object: Literal(label)}
}

func (t Triple) String() string {
	return fmt.Sprintf("<%s> %s %s", t.Subject, t.Predicate, t.Object)
}

// Graph is an append-only list of statements. Duplicates are kept; the
// serialized formats have set semantics so they are harmless.
type Graph struct {
	triples []Triple
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{}
}

// Add appends one statement.
func (g *Graph) Add(t Triple) {
	g.triples = append(g.triples, t)
}

// AddAll appends statements in order.
func (g *Graph) AddAll(ts []Triple) {
	g.triples = append(g.triples, ts...)
}

// Len returns the number of statements, duplicates included.
func (g *Graph) Len() int {
	return len(g.triples)
}

// Triples returns the statements in insertion order. The slice must not be
// modified.
func (g *Graph) Triples() []Triple {
	return g.triples
}

// Subjects returns each distinct subject once, in order of first appearance.
func (g *Graph) Subjects() []string {
	seen := make(map[string]bool)
	var subjects []string
	for _, t := range g.triples {
		if !seen[t.Subject] {
			seen[t.Subject] = true
			subjects = append(subjects, t.Subject)
		}
	}
	return subjects
}

// BySubject groups statements per subject, preserving insertion order
// within each group.
func (g *Graph) BySubject() map[string][]Triple {
	groups := make(map[string][]Triple)
	for _, t := range g.triples {
		groups[t.Subject] = append(groups[t.Subject], t)
	}
	return groups
}
