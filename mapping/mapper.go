// Package mapping turns spreadsheet rows into statements using explicit,
// versioned field tables.
package mapping

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/c360studio/ppodgraph/graph"
	"github.com/c360studio/ppodgraph/identity"
	"github.com/c360studio/ppodgraph/lookup"
	"github.com/c360studio/ppodgraph/source"
	"github.com/c360studio/ppodgraph/vocabulary/ppod"
)

// ObjectRef is an identifier a row used in object position.
type ObjectRef struct {
	IRI string
	Ref graph.EntityRef
}

// Result is the outcome of mapping one row.
type Result struct {
	// Subject is the identifier of the entity the row describes.
	Subject    string
	EntityType ppod.EntityType
	// Key is the normalized natural key of the subject.
	Key   string
	Label string
	// Defines is false for relation rows, whose subject is only referenced.
	Defines bool

	Triples    []graph.Triple
	References []ObjectRef
	Problems   []*UnknownCodeError
}

// Ref returns the subject's (type, key) pair.
func (r *Result) Ref() graph.EntityRef {
	return graph.EntityRef{Type: r.EntityType, Key: r.Key}
}

func (r *Result) add(predicate string, object graph.Term) {
	r.Triples = append(r.Triples, graph.Triple{Subject: r.Subject, Predicate: predicate, Object: object})
}

// Mapper maps rows. It holds no per-run state; callers accumulate results.
type Mapper struct {
	ids     *identity.Builder
	lookups *lookup.Set
	logger  *slog.Logger
}

// NewMapper creates a mapper. A nil lookup set resolves no codes.
func NewMapper(ids *identity.Builder, lookups *lookup.Set, logger *slog.Logger) *Mapper {
	if logger == nil {
		logger = slog.Default()
	}
	if lookups == nil {
		lookups, _ = lookup.NewSet()
	}
	return &Mapper{ids: ids, lookups: lookups, logger: logger}
}

// MapRow maps a row of an entity sheet. It returns an error wrapping
// identity.ErrEmptyKey when the key cell is blank; such rows produce no
// statements. The type declaration is always the first statement.
func (m *Mapper) MapRow(spec *SheetSpec, row source.Row) (*Result, error) {
	res, err := m.subject(spec.EntityType, row.Get(spec.KeyHeader))
	if err != nil {
		return nil, err
	}
	res.Label = res.Key
	res.add(ppod.MetaType, graph.IRI(spec.EntityType.ClassIRI()))
	for i := range spec.Fields {
		if err := m.mapField(res, spec.Sheet, row, &spec.Fields[i]); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// MapRoleRow maps a row of a join sheet into a role entity. The role's key
// is built from the key columns and the effective label, so the same
// person holding two positions in one organization yields two roles.
func (m *Mapper) MapRoleRow(spec *RoleSpec, row source.Row) (*Result, error) {
	label := m.roleLabel(spec, row)
	parts := make([]string, 0, len(spec.KeyHeaders)+1)
	for _, h := range spec.KeyHeaders {
		parts = append(parts, row.Get(h))
	}
	parts = append(parts, label)

	res, err := m.subject(ppod.EntityTypeRole, identity.RoleKey(parts...))
	if err != nil {
		return nil, err
	}
	res.Label = label
	res.add(ppod.MetaType, graph.IRI(ppod.EntityTypeRole.ClassIRI()))
	for i := range spec.Fields {
		if err := m.mapField(res, spec.Sheet, row, &spec.Fields[i]); err != nil {
			return nil, err
		}
	}
	if spec.Owner != nil {
		m.mapOwner(res, spec, row)
	}
	return res, nil
}

// MapRelationRow maps a row naming a subject, a relation and an object.
// Both ends are references; the row defines neither.
func (m *Mapper) MapRelationRow(spec *RelationSpec, row source.Row) (*Result, error) {
	res, err := m.subject(spec.SubjectType, row.Get(spec.SubjectHeader))
	if err != nil {
		return nil, err
	}
	res.Defines = false
	res.References = append(res.References, ObjectRef{IRI: res.Subject, Ref: res.Ref()})

	object, ref, err := m.reference(spec.ObjectType, row.Get(spec.ObjectHeader))
	if err != nil {
		return nil, err
	}
	predicate, ok := m.relation(res, spec.Sheet, row, spec.RelationHeader)
	if !ok {
		return res, nil
	}
	res.References = append(res.References, ref)
	res.add(predicate, graph.IRI(object))
	return res, nil
}

func (m *Mapper) subject(t ppod.EntityType, key string) (*Result, error) {
	iri, err := m.ids.IdentifierFor(t, key)
	if err != nil {
		return nil, err
	}
	return &Result{
		Subject:    iri,
		EntityType: t,
		Key:        m.ids.Normalize(t, key),
		Defines:    true,
	}, nil
}

func (m *Mapper) reference(t ppod.EntityType, key string) (string, ObjectRef, error) {
	iri, err := m.ids.IdentifierFor(t, key)
	if err != nil {
		return "", ObjectRef{}, err
	}
	return iri, ObjectRef{IRI: iri, Ref: graph.EntityRef{Type: t, Key: m.ids.Normalize(t, key)}}, nil
}

func (m *Mapper) roleLabel(spec *RoleSpec, row source.Row) string {
	for _, h := range spec.LabelHeaders {
		if v := strings.TrimSpace(row.Get(h)); v != "" {
			return v
		}
	}
	return spec.LabelDefault
}

// relation resolves the relation named in a cell. Blank cells yield no
// statement; unknown names are collected as problems.
func (m *Mapper) relation(res *Result, sheet string, row source.Row, header string) (string, bool) {
	name := strings.TrimSpace(row.Get(header))
	if name == "" {
		return "", false
	}
	predicate, ok := ppod.Relations[name]
	if !ok {
		res.Problems = append(res.Problems, &UnknownCodeError{
			Sheet: sheet, Row: row.Number, Field: header, Vocabulary: RelationVocabulary, Code: name,
		})
		return "", false
	}
	return predicate, true
}

// mapOwner links the role to the entity named in the owner columns, for
// example a guideline that an organization's project role implements.
func (m *Mapper) mapOwner(res *Result, spec *RoleSpec, row source.Row) {
	owner, ref, err := m.reference(spec.Owner.SubjectType, row.Get(spec.Owner.SubjectHeader))
	if err != nil {
		return
	}
	predicate, ok := m.relation(res, spec.Sheet, row, spec.Owner.RelationHeader)
	if !ok {
		return
	}
	res.References = append(res.References, ref)
	res.Triples = append(res.Triples, graph.Triple{Subject: owner, Predicate: predicate, Object: graph.IRI(res.Subject)})
}

// cell returns the trimmed value of a field, consulting fallback columns
// and the default in order.
func cell(row source.Row, f *FieldSpec) string {
	if v := strings.TrimSpace(row.Get(f.Header)); v != "" {
		return v
	}
	for _, h := range f.Fallback {
		if v := strings.TrimSpace(row.Get(h)); v != "" {
			return v
		}
	}
	return f.Default
}

// tokens splits a multi-valued cell and drops blank tokens.
func tokens(v, delimiter string) []string {
	if delimiter == "" {
		return []string{v}
	}
	parts := strings.Split(v, delimiter)
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (m *Mapper) mapField(res *Result, sheet string, row source.Row, f *FieldSpec) error {
	v := cell(row, f)
	if v == "" {
		return nil
	}
	if f.Kind == Flag {
		if strings.EqualFold(v, "x") {
			res.add(f.Predicate, graph.IRI(f.Object))
		}
		return nil
	}
	for _, tok := range tokens(v, f.Delimiter) {
		switch f.Kind {
		case Literal:
			res.add(f.Predicate, literalTerm(tok, f.Datatype))
		case Link:
			if isHTTPURL(tok) {
				res.add(f.Predicate, graph.IRI(tok))
			} else {
				res.add(f.Predicate, graph.Literal(tok))
			}
		case Reference:
			iri, ref, err := m.reference(f.Target, tok)
			if err != nil {
				return &ConfigError{Sheet: sheet, Field: f.Header, Err: err}
			}
			res.References = append(res.References, ref)
			res.add(f.Predicate, graph.IRI(iri))
		case Lookup:
			entries, err := m.lookups.Resolve(f.Vocabulary, tok)
			switch {
			case errors.Is(err, lookup.ErrUnknownCode):
				m.logger.Warn("Unknown lookup code",
					"sheet", sheet, "row", row.Number, "field", f.Header, "vocabulary", f.Vocabulary, "code", tok)
				res.Problems = append(res.Problems, &UnknownCodeError{
					Sheet: sheet, Row: row.Number, Field: f.Header, Vocabulary: f.Vocabulary, Code: tok,
				})
				continue
			case err != nil:
				return &ConfigError{Sheet: sheet, Field: f.Header, Err: err}
			}
			for _, e := range entries {
				res.add(f.Predicate, graph.IRI(e.Value))
			}
		default:
			return &ConfigError{Sheet: sheet, Field: f.Header, Err: fmt.Errorf("unknown field kind %v", f.Kind)}
		}
	}
	return nil
}

var yearPattern = regexp.MustCompile(`^\d{4}$`)

// literalTerm applies the datatype only when the value parses as one.
func literalTerm(v, datatype string) graph.Term {
	switch datatype {
	case ppod.XSDGYear:
		if yearPattern.MatchString(v) {
			return graph.TypedLiteral(v, datatype)
		}
	case ppod.XSDInteger:
		if _, err := strconv.ParseInt(v, 10, 64); err == nil {
			return graph.TypedLiteral(v, datatype)
		}
	case ppod.XSDDecimal:
		if _, err := strconv.ParseFloat(v, 64); err == nil && !strings.ContainsAny(v, "eEnN") {
			return graph.TypedLiteral(v, datatype)
		}
	}
	return graph.Literal(v)
}

func isHTTPURL(v string) bool {
	return (strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://")) && !strings.ContainsAny(v, " <>\"{}|\\^`")
}
