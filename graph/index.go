package graph

import (
	"fmt"

	"github.com/c360studio/ppodgraph/vocabulary/ppod"
)

// CollisionError reports two different natural keys that were given the
// same identifier. This can only happen with a hashing identifier scheme.
type CollisionError struct {
	IRI    string
	First  EntityRef
	Second EntityRef
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("identifier %s assigned to both %s %q and %s %q",
		e.IRI, e.First.Type, e.First.Key, e.Second.Type, e.Second.Key)
}

// EntityRef is the (type, normalized key) pair an identifier was minted from.
type EntityRef struct {
	Type ppod.EntityType
	Key  string
}

// Entity is what the index knows about one identifier.
type Entity struct {
	IRI   string
	Ref   EntityRef
	Label string
	// Defined is true once the entity's own row has been mapped, as
	// opposed to only being referenced from another row.
	Defined bool
}

// Index tracks every identifier minted during a run.
type Index struct {
	entities map[string]*Entity
	order    []string
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{entities: make(map[string]*Entity)}
}

// Reference records an identifier seen in object position.
func (ix *Index) Reference(iri string, ref EntityRef) error {
	_, err := ix.record(iri, ref)
	return err
}

// Define records an identifier as the subject of a mapped row. The first
// non-empty label wins.
func (ix *Index) Define(iri string, ref EntityRef, label string) error {
	e, err := ix.record(iri, ref)
	if err != nil {
		return err
	}
	e.Defined = true
	if e.Label == "" {
		e.Label = label
	}
	return nil
}

func (ix *Index) record(iri string, ref EntityRef) (*Entity, error) {
	if e, ok := ix.entities[iri]; ok {
		if e.Ref != ref {
			return nil, &CollisionError{IRI: iri, First: e.Ref, Second: ref}
		}
		return e, nil
	}
	e := &Entity{IRI: iri, Ref: ref}
	ix.entities[iri] = e
	ix.order = append(ix.order, iri)
	return e, nil
}

// Lookup returns the entity recorded for an identifier.
func (ix *Index) Lookup(iri string) (Entity, bool) {
	e, ok := ix.entities[iri]
	if !ok {
		return Entity{}, false
	}
	return *e, true
}

// Entities returns recorded entities in order of first appearance.
func (ix *Index) Entities() []Entity {
	out := make([]Entity, 0, len(ix.order))
	for _, iri := range ix.order {
		out = append(out, *ix.entities[iri])
	}
	return out
}

// Undefined returns entities that were referenced but never defined by a
// row of their own sheet.
func (ix *Index) Undefined() []Entity {
	var out []Entity
	for _, iri := range ix.order {
		if e := ix.entities[iri]; !e.Defined {
			out = append(out, *e)
		}
	}
	return out
}

// Len returns the number of distinct identifiers.
func (ix *Index) Len() int {
	return len(ix.order)
}
