package mapping

import (
	"fmt"

	"github.com/c360studio/ppodgraph/vocabulary/ppod"
)

// FieldKind says how a cell value becomes the object of a statement.
type FieldKind int

const (
	// Literal cells become plain or typed literals.
	Literal FieldKind = iota
	// Reference cells name another entity by its natural key.
	Reference
	// Lookup cells hold codes resolved through a lookup table.
	Lookup
	// Link cells hold URLs. Anything that is not an absolute http(s) URL
	// is kept as a literal.
	Link
	// Flag cells mark membership with an "X"; the object is fixed.
	Flag
)

func (k FieldKind) String() string {
	switch k {
	case Literal:
		return "literal"
	case Reference:
		return "reference"
	case Lookup:
		return "lookup"
	case Link:
		return "link"
	case Flag:
		return "flag"
	default:
		return fmt.Sprintf("FieldKind(%d)", int(k))
	}
}

// ListDelimiter separates the values of multi-valued cells.
const ListDelimiter = ","

// FieldSpec maps one column to a predicate.
type FieldSpec struct {
	Header    string
	Predicate string
	Kind      FieldKind

	// Target is the entity type named by Reference cells.
	Target ppod.EntityType

	// Vocabulary is the lookup table used by Lookup cells.
	Vocabulary string

	// Delimiter splits multi-valued cells. Empty means single-valued.
	Delimiter string

	// Datatype types Literal values that parse as that datatype.
	Datatype string

	// Object is the fixed IRI emitted by Flag cells.
	Object string

	// Fallback lists columns consulted, in order, when the cell is blank.
	Fallback []string

	// Default is used when the cell and every fallback are blank.
	Default string

	// Required columns must be present in the worksheet header.
	Required bool
}

// Multi returns a copy of the field that splits on ListDelimiter.
func (f FieldSpec) Multi() FieldSpec {
	f.Delimiter = ListDelimiter
	return f
}

// Require returns a copy of the field that must be present in the header.
func (f FieldSpec) Require() FieldSpec {
	f.Required = true
	return f
}

func literal(header, predicate string) FieldSpec {
	return FieldSpec{Header: header, Predicate: predicate, Kind: Literal}
}

func typed(header, predicate, datatype string) FieldSpec {
	return FieldSpec{Header: header, Predicate: predicate, Kind: Literal, Datatype: datatype}
}

func ref(header, predicate string, target ppod.EntityType) FieldSpec {
	return FieldSpec{Header: header, Predicate: predicate, Kind: Reference, Target: target}
}

func lookupField(header, predicate, vocabulary string) FieldSpec {
	return FieldSpec{Header: header, Predicate: predicate, Kind: Lookup, Vocabulary: vocabulary}
}

func link(header, predicate string) FieldSpec {
	return FieldSpec{Header: header, Predicate: predicate, Kind: Link}
}

func useCase(header string) FieldSpec {
	return FieldSpec{Header: header, Predicate: ppod.DescUseCase, Kind: Flag, Object: ppod.UseCases[header].IRI}
}

// validate checks a field against the vocabulary.
func (f FieldSpec) validate() error {
	if f.Header == "" {
		return fmt.Errorf("field has no header")
	}
	if !ppod.IsRecognized(f.Predicate) {
		return fmt.Errorf("predicate %q is not registered", f.Predicate)
	}
	switch f.Kind {
	case Literal, Link:
	case Reference:
		if !f.Target.IsValid() {
			return fmt.Errorf("reference target %q is not an entity type", f.Target)
		}
	case Lookup:
		if f.Vocabulary == "" {
			return fmt.Errorf("lookup field has no vocabulary")
		}
	case Flag:
		if f.Object == "" {
			return fmt.Errorf("flag field has no object")
		}
	default:
		return fmt.Errorf("unknown field kind %v", f.Kind)
	}
	return nil
}
