package encoding

import (
	"fmt"
	"strings"

	"github.com/pchampin/quadbridge/pkg/native"
)

// StringLookup resolves hashed payloads back to their stored text.
type StringLookup interface {
	// LookupString retrieves the id2str row for a 16-byte payload.
	LookupString(hash [16]byte) (string, error)
}

// TermDecoder reconstructs native terms from their encoded form
type TermDecoder struct {
	lookup StringLookup
}

func NewTermDecoder(lookup StringLookup) *TermDecoder {
	return &TermDecoder{lookup: lookup}
}

// DecodeTerm decodes an encoded term back to its native form.
func (d *TermDecoder) DecodeTerm(encoded EncodedTerm) (native.Term, error) {
	switch encoded.Kind() {
	case KindNamedNode:
		iri, err := d.lookupPayload(encoded)
		if err != nil {
			return nil, err
		}
		return &native.NamedNode{IRI: iri}, nil

	case KindBlankNode:
		var id native.BlankNodeID
		copy(id[:], encoded[1:])
		return &native.BlankNode{ID: id}, nil

	case KindInlineString:
		value := decodeInlineString(encoded)
		return native.NewStringLiteral(value), nil

	case KindString:
		value, err := d.lookupPayload(encoded)
		if err != nil {
			return nil, err
		}
		return native.NewStringLiteral(value), nil

	case KindLangString:
		combined, err := d.lookupPayload(encoded)
		if err != nil {
			return nil, err
		}
		lang, value, ok := strings.Cut(combined, " ")
		if !ok {
			return nil, fmt.Errorf("corrupt lang string entry: %q", combined)
		}
		return native.NewLangLiteral(value, lang), nil

	case KindTypedLiteral:
		combined, err := d.lookupPayload(encoded)
		if err != nil {
			return nil, err
		}
		dt, value, ok := strings.Cut(combined, " ")
		if !ok {
			return nil, fmt.Errorf("corrupt typed literal entry: %q", combined)
		}
		return native.NewTypedLiteral(value, &native.NamedNode{IRI: dt}), nil

	default:
		return nil, fmt.Errorf("unknown term kind: %d", encoded.Kind())
	}
}

// DecodeSubject decodes an encoded term that must be a subject term.
func (d *TermDecoder) DecodeSubject(encoded EncodedTerm) (native.SubjectTerm, error) {
	term, err := d.DecodeTerm(encoded)
	if err != nil {
		return nil, err
	}
	subject, ok := term.(native.SubjectTerm)
	if !ok {
		return nil, fmt.Errorf("term %s cannot be a subject", term)
	}
	return subject, nil
}

// DecodePredicate decodes an encoded term that must be a named node.
func (d *TermDecoder) DecodePredicate(encoded EncodedTerm) (*native.NamedNode, error) {
	term, err := d.DecodeTerm(encoded)
	if err != nil {
		return nil, err
	}
	node, ok := term.(*native.NamedNode)
	if !ok {
		return nil, fmt.Errorf("term %s cannot be a predicate", term)
	}
	return node, nil
}

// DecodeGraph decodes an encoded graph term; the zero payload decodes
// to nil, denoting the default graph.
func (d *TermDecoder) DecodeGraph(encoded EncodedTerm) (native.SubjectTerm, error) {
	if encoded.Kind() == KindDefaultGraph {
		return nil, nil
	}
	return d.DecodeSubject(encoded)
}

func (d *TermDecoder) lookupPayload(encoded EncodedTerm) (string, error) {
	var hash [16]byte
	copy(hash[:], encoded[1:])
	s, err := d.lookup.LookupString(hash)
	if err != nil {
		return "", fmt.Errorf("string lookup for %s term: %w", kindName(encoded.Kind()), err)
	}
	return s, nil
}

func decodeInlineString(encoded EncodedTerm) string {
	data := encoded[1:]
	end := len(data)
	for end > 0 && data[end-1] == 0 {
		end--
	}
	return string(data[:end])
}

func kindName(k TermKind) string {
	switch k {
	case KindNamedNode:
		return "named node"
	case KindString:
		return "string"
	case KindLangString:
		return "lang string"
	case KindTypedLiteral:
		return "typed literal"
	default:
		return "unknown"
	}
}
