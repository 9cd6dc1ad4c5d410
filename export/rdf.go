// Package export serializes a run's graph as Turtle, N-Triples or JSON-LD
// and writes it to disk atomically.
package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/c360studio/ppodgraph/graph"
	"github.com/c360studio/ppodgraph/vocabulary/ppod"
)

const rdfType = ppod.RDFNamespace + "type"

// DefaultPrefixes returns the prefix table used for serialization: the
// PPOD namespaces plus the upper ontologies used for class alignment.
func DefaultPrefixes() map[string]string {
	p := ppod.Prefixes()
	p["owl"] = "http://www.w3.org/2002/07/owl#"
	p["prov"] = "http://www.w3.org/ns/prov#"
	p["cco"] = "http://www.ontologyrepository.com/CommonCoreOntologies/"
	return p
}

// statement is a triple with its predicate resolved to an IRI.
type statement struct {
	subject   string
	predicate string
	object    graph.Term
}

// Serializer writes graphs in one format.
type Serializer struct {
	format   Format
	prefixes map[string]string
}

// NewSerializer creates a serializer. A nil prefix table uses
// DefaultPrefixes.
func NewSerializer(format Format, prefixes map[string]string) (*Serializer, error) {
	if _, ok := FormatRegistry[format]; !ok {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	if prefixes == nil {
		prefixes = DefaultPrefixes()
	}
	return &Serializer{format: format, prefixes: prefixes}, nil
}

// Format returns the serializer's format.
func (s *Serializer) Format() Format {
	return s.format
}

// Serialize writes the graph to w. Every predicate must be registered in
// the vocabulary; nothing is written otherwise.
func (s *Serializer) Serialize(g *graph.Graph, w io.Writer) error {
	stmts, order, err := resolve(g)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	switch s.format {
	case FormatTurtle:
		tw := NewTurtleWriter(bw, s.prefixes)
		tw.WritePrefixes()
		for _, subject := range order {
			tw.WriteSubject(subject, stmts[subject])
		}
	case FormatNTriples:
		nw := NewNTriplesWriter(bw)
		for _, st := range g.Triples() {
			iri, _ := ppod.PredicateIRI(st.Predicate)
			nw.WriteTriple(st.Subject, iri, st.Object)
		}
	case FormatJSONLD:
		doc := newJSONLDDocument(s.prefixes, order, stmts)
		enc := json.NewEncoder(bw)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode json-ld: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format: %s", s.format)
	}
	return bw.Flush()
}

// resolve groups statements by subject in first-appearance order.
func resolve(g *graph.Graph) (map[string][]statement, []string, error) {
	bySubject := make(map[string][]statement)
	var order []string
	for _, t := range g.Triples() {
		iri, ok := ppod.PredicateIRI(t.Predicate)
		if !ok {
			return nil, nil, fmt.Errorf("predicate %q is not registered", t.Predicate)
		}
		if _, seen := bySubject[t.Subject]; !seen {
			order = append(order, t.Subject)
		}
		bySubject[t.Subject] = append(bySubject[t.Subject], statement{t.Subject, iri, t.Object})
	}
	return bySubject, order, nil
}

// localName matches local parts that can be written as prefixed names.
var localName = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_-]*$`)

type namespace struct {
	prefix string
	iri    string
}

// TurtleWriter writes Turtle, one block per subject.
type TurtleWriter struct {
	w          *bufio.Writer
	prefixes   map[string]string
	namespaces []namespace
}

// NewTurtleWriter creates a Turtle writer.
func NewTurtleWriter(w *bufio.Writer, prefixes map[string]string) *TurtleWriter {
	ns := make([]namespace, 0, len(prefixes))
	for p, iri := range prefixes {
		ns = append(ns, namespace{prefix: p, iri: iri})
	}
	// Longest namespace first so the most specific prefix wins.
	sort.Slice(ns, func(i, j int) bool {
		if len(ns[i].iri) != len(ns[j].iri) {
			return len(ns[i].iri) > len(ns[j].iri)
		}
		return ns[i].prefix < ns[j].prefix
	})
	return &TurtleWriter{w: w, prefixes: prefixes, namespaces: ns}
}

// WritePrefixes writes prefix declarations.
func (w *TurtleWriter) WritePrefixes() {
	// Sort prefixes for consistent output
	keys := make([]string, 0, len(w.prefixes))
	for k := range w.prefixes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, prefix := range keys {
		fmt.Fprintf(w.w, "@prefix %s: <%s> .\n", prefix, w.prefixes[prefix])
	}
	w.w.WriteString("\n")
}

// WriteSubject writes all statements about one subject as a block.
func (w *TurtleWriter) WriteSubject(subject string, stmts []statement) {
	if len(stmts) == 0 {
		return
	}
	w.w.WriteString(w.compact(subject))
	w.w.WriteString("\n")
	for i, st := range stmts {
		terminator := " ;"
		if i == len(stmts)-1 {
			terminator = " ."
		}
		predicate := "a"
		if st.predicate != rdfType {
			predicate = w.compact(st.predicate)
		}
		fmt.Fprintf(w.w, "    %s %s%s\n", predicate, w.object(st.object), terminator)
	}
	w.w.WriteString("\n")
}

func (w *TurtleWriter) object(t graph.Term) string {
	if t.IsIRI() {
		return w.compact(t.Value)
	}
	lit := `"` + escapeString(t.Value) + `"`
	if t.Datatype != "" {
		lit += "^^" + w.compact(t.Datatype)
	}
	return lit
}

// compact writes an IRI as a prefixed name when a namespace matches and
// the local part is safe, and in angle brackets otherwise.
func (w *TurtleWriter) compact(iri string) string {
	for _, ns := range w.namespaces {
		if strings.HasPrefix(iri, ns.iri) {
			if local := iri[len(ns.iri):]; localName.MatchString(local) {
				return ns.prefix + ":" + local
			}
		}
	}
	return "<" + escapeIRI(iri) + ">"
}

// NTriplesWriter writes RDF in N-Triples format.
type NTriplesWriter struct {
	w *bufio.Writer
}

// NewNTriplesWriter creates a new N-Triples writer.
func NewNTriplesWriter(w *bufio.Writer) *NTriplesWriter {
	return &NTriplesWriter{w: w}
}

// WriteTriple writes a single triple.
func (w *NTriplesWriter) WriteTriple(subject, predicate string, object graph.Term) {
	fmt.Fprintf(w.w, "<%s> <%s> %s .\n", escapeIRI(subject), escapeIRI(predicate), formatObjectNTriples(object))
}

func formatObjectNTriples(t graph.Term) string {
	if t.IsIRI() {
		return "<" + escapeIRI(t.Value) + ">"
	}
	if t.Datatype != "" {
		return fmt.Sprintf("\"%s\"^^<%s>", escapeString(t.Value), escapeIRI(t.Datatype))
	}
	return fmt.Sprintf("\"%s\"", escapeString(t.Value))
}

// JSONLDDocument represents a JSON-LD document structure.
type JSONLDDocument struct {
	Context map[string]string `json:"@context"`
	Graph   []JSONLDNode      `json:"@graph"`
}

// JSONLDNode represents a node in a JSON-LD graph.
type JSONLDNode struct {
	ID         string           `json:"@id"`
	Type       []string         `json:"@type,omitempty"`
	Properties map[string][]any `json:"-"`
}

// MarshalJSON implements custom JSON marshaling for JSONLDNode.
func (n JSONLDNode) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(n.Properties)+2)
	m["@id"] = n.ID
	if len(n.Type) > 0 {
		m["@type"] = n.Type
	}
	for k, v := range n.Properties {
		m[k] = v
	}
	return json.Marshal(m)
}

func newJSONLDDocument(prefixes map[string]string, order []string, stmts map[string][]statement) JSONLDDocument {
	doc := JSONLDDocument{Context: prefixes, Graph: make([]JSONLDNode, 0, len(order))}
	for _, subject := range order {
		node := JSONLDNode{ID: subject, Properties: make(map[string][]any)}
		for _, st := range stmts[subject] {
			if st.predicate == rdfType && st.object.IsIRI() {
				node.Type = append(node.Type, st.object.Value)
				continue
			}
			node.Properties[st.predicate] = append(node.Properties[st.predicate], formatObjectJSONLD(st.object))
		}
		doc.Graph = append(doc.Graph, node)
	}
	return doc
}

func formatObjectJSONLD(t graph.Term) any {
	switch {
	case t.IsIRI():
		return map[string]string{"@id": t.Value}
	case t.Datatype != "":
		return map[string]string{"@value": t.Value, "@type": t.Datatype}
	default:
		return t.Value
	}
}

// escapeString escapes special characters in strings for RDF serialization.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}

// escapeIRI percent-encodes characters that may not appear in an IRIREF.
func escapeIRI(s string) string {
	if !strings.ContainsAny(s, " <>\"{}|^`\\") && !hasControl(s) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c <= 0x20 || strings.IndexByte("<>\"{}|^`\\", c) >= 0 {
			fmt.Fprintf(&sb, "%%%02X", c)
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

func hasControl(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 {
			return true
		}
	}
	return false
}
