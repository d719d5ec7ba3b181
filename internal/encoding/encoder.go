// Package encoding maps native terms to the fixed-width encoded form
// used as index key components.
//
// Every term encodes to 17 bytes: a kind byte followed by a 16-byte
// payload. Blank node identifiers are already 128 bits wide and are
// stored as-is; IRIs and long literal bodies are hashed with 128-bit
// xxhash3 and their text is kept in the id2str table for decoding;
// short plain strings are inlined. Literal text is preserved verbatim
// in all cases, so a decoded term is byte-identical to the one
// encoded.
package encoding

import (
	"encoding/binary"

	"github.com/pchampin/quadbridge/pkg/native"
	"github.com/zeebo/xxh3"
)

const (
	// Maximum size for inline strings (16 bytes of UTF-8)
	MaxInlineStringSize = 16

	// Encoded term size (kind byte + 16 bytes for 128-bit hash, blank
	// node id, or inline data)
	EncodedTermSize = 17
)

// TermKind is the leading byte of an encoded term.
type TermKind byte

const (
	KindNamedNode TermKind = iota + 1
	KindBlankNode
	KindInlineString
	KindString
	KindLangString
	KindTypedLiteral
	KindDefaultGraph
)

// EncodedTerm represents a term encoded as a kind byte followed by 16
// bytes of data
type EncodedTerm [EncodedTermSize]byte

// Kind extracts the kind from an encoded term
func (e EncodedTerm) Kind() TermKind {
	return TermKind(e[0])
}

// Hash128 computes a 128-bit xxhash3 hash of the input string
func Hash128(s string) [16]byte {
	hash := xxh3.Hash128([]byte(s))
	var result [16]byte
	binary.BigEndian.PutUint64(result[0:8], hash.Hi)
	binary.BigEndian.PutUint64(result[8:16], hash.Lo)
	return result
}

// TermEncoder handles encoding of native terms
type TermEncoder struct{}

func NewTermEncoder() *TermEncoder {
	return &TermEncoder{}
}

// EncodeTerm encodes a native term into its fixed-size form.
// The second result, when non-nil, is the string to store in the
// id2str table under the encoded payload.
func (e *TermEncoder) EncodeTerm(term native.Term) (EncodedTerm, *string) {
	switch t := term.(type) {
	case *native.NamedNode:
		return e.encodeNamedNode(t)
	case *native.BlankNode:
		return e.encodeBlankNode(t)
	case *native.Literal:
		return e.encodeLiteral(t)
	default:
		panic("encoding: unknown native term type")
	}
}

// EncodeGraph encodes a graph term; nil denotes the default graph,
// which encodes as the zero payload.
func (e *TermEncoder) EncodeGraph(g native.SubjectTerm) (EncodedTerm, *string) {
	if g == nil {
		var encoded EncodedTerm
		encoded[0] = byte(KindDefaultGraph)
		return encoded, nil
	}
	return e.EncodeTerm(g)
}

func (e *TermEncoder) encodeNamedNode(node *native.NamedNode) (EncodedTerm, *string) {
	var encoded EncodedTerm
	encoded[0] = byte(KindNamedNode)

	hash := Hash128(node.IRI)
	copy(encoded[1:], hash[:])

	return encoded, &node.IRI
}

func (e *TermEncoder) encodeBlankNode(node *native.BlankNode) (EncodedTerm, *string) {
	var encoded EncodedTerm
	encoded[0] = byte(KindBlankNode)

	// The 128-bit id is the payload; no id2str row needed.
	copy(encoded[1:], node.ID[:])

	return encoded, nil
}

func (e *TermEncoder) encodeLiteral(lit *native.Literal) (EncodedTerm, *string) {
	var encoded EncodedTerm

	if lang := lit.Language(); lang != "" {
		// Language tags cannot contain spaces, so "lang value" splits
		// unambiguously at the first space when decoding.
		encoded[0] = byte(KindLangString)
		combined := lang + " " + lit.Value()
		hash := Hash128(combined)
		copy(encoded[1:], hash[:])
		return encoded, &combined
	}

	if lit.Datatype().Equals(native.XSDString) {
		value := lit.Value()
		if len(value) <= MaxInlineStringSize {
			encoded[0] = byte(KindInlineString)
			copy(encoded[1:], value)
			return encoded, nil
		}
		encoded[0] = byte(KindString)
		hash := Hash128(value)
		copy(encoded[1:], hash[:])
		return encoded, &value
	}

	// Absolute IRIs cannot contain spaces, so "dt value" splits
	// unambiguously at the first space when decoding.
	encoded[0] = byte(KindTypedLiteral)
	combined := lit.Datatype().IRI + " " + lit.Value()
	hash := Hash128(combined)
	copy(encoded[1:], hash[:])
	return encoded, &combined
}

// EncodeQuadKey concatenates encoded terms into an index key.
// Keys compare lexicographically, so a bound prefix of terms selects a
// contiguous range.
func (e *TermEncoder) EncodeQuadKey(terms ...EncodedTerm) []byte {
	result := make([]byte, 0, len(terms)*EncodedTermSize)
	for _, term := range terms {
		result = append(result, term[:]...)
	}
	return result
}

// NeedsLookup reports whether decoding this term requires its id2str
// row.
func (e EncodedTerm) NeedsLookup() bool {
	switch e.Kind() {
	case KindNamedNode, KindString, KindLangString, KindTypedLiteral:
		return true
	default:
		return false
	}
}
