// Package identity builds stable instance IRIs from an entity type and the
// natural key found in a spreadsheet row.
package identity

import (
	"errors"
	"fmt"
	"hash/crc32"
	"strings"

	"github.com/c360studio/ppodgraph/vocabulary/ppod"
)

// ErrEmptyKey is returned when a natural key is blank after normalization.
// Callers skip the row rather than minting an identifier for it.
var ErrEmptyKey = errors.New("natural key is empty")

// Scheme selects how a normalized key becomes the token of an identifier.
type Scheme string

const (
	// SchemeEncoded percent-encodes the key. Distinct keys always yield
	// distinct identifiers.
	SchemeEncoded Scheme = "encoded"

	// SchemeCRC24 uses six hex digits of the CRC-32 of the key. This keeps
	// identifiers compatible with graphs published before the encoded
	// scheme existed, at the cost of possible collisions.
	SchemeCRC24 Scheme = "crc24"
)

// IsValid returns true if the scheme is known.
func (s Scheme) IsValid() bool {
	return s == SchemeEncoded || s == SchemeCRC24
}

// Options configures a Builder.
type Options struct {
	// Base is the namespace instance identifiers are minted in.
	// Defaults to ppod.TermsNamespace.
	Base string

	// Scheme defaults to SchemeEncoded.
	Scheme Scheme

	// CaseInsensitive lists entity types whose keys are case-folded.
	CaseInsensitive []ppod.EntityType
}

// Builder mints identifiers. It holds no mutable state and is safe to share.
type Builder struct {
	base     string
	scheme   Scheme
	foldCase map[ppod.EntityType]bool
}

// NewBuilder creates a Builder.
func NewBuilder(opts Options) (*Builder, error) {
	b := &Builder{
		base:     opts.Base,
		scheme:   opts.Scheme,
		foldCase: make(map[ppod.EntityType]bool, len(opts.CaseInsensitive)),
	}
	if b.base == "" {
		b.base = ppod.TermsNamespace
	}
	if b.scheme == "" {
		b.scheme = SchemeEncoded
	}
	if !b.scheme.IsValid() {
		return nil, fmt.Errorf("unknown identifier scheme %q", opts.Scheme)
	}
	for _, t := range opts.CaseInsensitive {
		if !t.IsValid() {
			return nil, fmt.Errorf("unknown entity type %q in case-insensitive list", t)
		}
		b.foldCase[t] = true
	}
	return b, nil
}

// Scheme returns the scheme the builder uses.
func (b *Builder) Scheme() Scheme {
	return b.scheme
}

// Normalize applies the key normalization rules for an entity type: trim,
// collapse internal whitespace runs to a single space, and case-fold when
// the type is configured as case-insensitive.
func (b *Builder) Normalize(t ppod.EntityType, key string) string {
	key = strings.Join(strings.Fields(key), " ")
	if b.foldCase[t] {
		key = strings.ToLower(key)
	}
	return key
}

// IdentifierFor returns the identifier for the entity of type t with the
// given natural key. The same (type, key) pair always yields the same IRI,
// so references can be resolved before the referenced row is mapped.
func (b *Builder) IdentifierFor(t ppod.EntityType, key string) (string, error) {
	code := t.Code()
	if code == "" {
		return "", fmt.Errorf("unknown entity type %q", t)
	}
	norm := b.Normalize(t, key)
	if norm == "" {
		return "", fmt.Errorf("%s: %w", t, ErrEmptyKey)
	}
	return b.base + code + "_" + b.token(norm), nil
}

func (b *Builder) token(norm string) string {
	if b.scheme == SchemeCRC24 {
		return ShortHash(norm)
	}
	return Encode(norm)
}

// ShortHash returns the first six hex digits of the CRC-32 (IEEE) checksum
// of s, without zero padding. Checksums below 0x100000 therefore produce
// fewer digits; this matches identifiers minted by earlier conversions.
func ShortHash(s string) string {
	h := fmt.Sprintf("%x", crc32.ChecksumIEEE([]byte(s)))
	if len(h) > 6 {
		h = h[:6]
	}
	return h
}

// Encode percent-encodes every byte outside the unreserved set
// [A-Za-z0-9.~-]. The underscore is also encoded so it only ever appears
// as the separator after the type code.
func Encode(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			sb.WriteByte(c)
			continue
		}
		fmt.Fprintf(&sb, "%%%02X", c)
	}
	return sb.String()
}

func isUnreserved(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '-', c == '.', c == '~':
		return true
	}
	return false
}

// RoleKey joins the normalized parts of a composite key. It returns "" if
// any part is blank so the caller gets ErrEmptyKey from IdentifierFor.
func RoleKey(parts ...string) string {
	norm := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Join(strings.Fields(p), " ")
		if p == "" {
			return ""
		}
		norm = append(norm, p)
	}
	return strings.Join(norm, " | ")
}
