// Package convert maps terms between the native store model and the
// generic model.
//
// The native-to-generic direction is total. The generic-to-native
// direction is partial: variables, relative IRI refs, out-of-position
// terms and oversized blank node identifiers have no native
// representation and yield a ConversionError.
package convert

import (
	"strings"

	"github.com/pchampin/quadbridge/pkg/native"
	"github.com/pchampin/quadbridge/pkg/rdf"
)

// NativeToGeneric converts a native term to its generic form.
// It never fails.
func NativeToGeneric(t native.Term) rdf.Term {
	switch nt := t.(type) {
	case *native.NamedNode:
		return rdf.NewNamedNode(nt.IRI)
	case *native.BlankNode:
		return rdf.NewBlankNode(DecodeBlankNodeID(nt.ID))
	case *native.Literal:
		if lang := nt.Language(); lang != "" {
			return rdf.NewLiteralWithLanguage(nt.Value(), lang)
		}
		return rdf.NewLiteralWithDatatype(nt.Value(), rdf.NewNamedNode(nt.Datatype().IRI))
	default:
		panic("convert: unknown native term type")
	}
}

// ToNative converts a generic term for the given quad position.
func ToNative(t rdf.Term, pos Position) (native.Term, error) {
	switch pos {
	case PositionSubject:
		s, err := ToNativeSubject(t)
		if err != nil {
			return nil, err
		}
		return s, nil
	case PositionPredicate:
		p, err := ToNativePredicate(t)
		if err != nil {
			return nil, err
		}
		return p, nil
	case PositionObject:
		return ToNativeObject(t)
	default:
		g, err := ToNativeGraph(t)
		if err != nil || g == nil {
			return nil, err
		}
		return g, nil
	}
}

// ToNativeSubject converts a generic term for subject position:
// named nodes and blank nodes only.
func ToNativeSubject(t rdf.Term) (native.SubjectTerm, error) {
	switch gt := t.(type) {
	case *rdf.NamedNode:
		n, err := toNativeIRI(gt)
		if err != nil {
			return nil, err
		}
		return n, nil
	case *rdf.BlankNode:
		b, err := toNativeBlankNode(gt)
		if err != nil {
			return nil, err
		}
		return b, nil
	case *rdf.Literal:
		return nil, newError(ErrLiteralInSubjectOrPredicate, gt.Value)
	case *rdf.Variable:
		return nil, newError(ErrVariableUnsupported, gt.Name)
	default:
		return nil, newError(ErrVariableUnsupported, t.String())
	}
}

// ToNativePredicate converts a generic term for predicate position:
// named nodes only.
func ToNativePredicate(t rdf.Term) (*native.NamedNode, error) {
	switch gt := t.(type) {
	case *rdf.NamedNode:
		return toNativeIRI(gt)
	case *rdf.BlankNode:
		return nil, newError(ErrBlankNodeInPredicate, gt.ID)
	case *rdf.Literal:
		return nil, newError(ErrLiteralInSubjectOrPredicate, gt.Value)
	case *rdf.Variable:
		return nil, newError(ErrVariableUnsupported, gt.Name)
	default:
		return nil, newError(ErrVariableUnsupported, t.String())
	}
}

// ToNativeObject converts a generic term for object position: any term
// except variables.
func ToNativeObject(t rdf.Term) (native.Term, error) {
	switch gt := t.(type) {
	case *rdf.NamedNode:
		n, err := toNativeIRI(gt)
		if err != nil {
			return nil, err
		}
		return n, nil
	case *rdf.BlankNode:
		b, err := toNativeBlankNode(gt)
		if err != nil {
			return nil, err
		}
		return b, nil
	case *rdf.Literal:
		l, err := toNativeLiteral(gt)
		if err != nil {
			return nil, err
		}
		return l, nil
	case *rdf.Variable:
		return nil, newError(ErrVariableUnsupported, gt.Name)
	default:
		return nil, newError(ErrVariableUnsupported, t.String())
	}
}

// ToNativeGraph converts a generic graph name. A nil term denotes the
// default graph and converts to nil.
func ToNativeGraph(t rdf.Term) (native.SubjectTerm, error) {
	if t == nil {
		return nil, nil
	}
	return ToNativeSubject(t)
}

func toNativeIRI(n *rdf.NamedNode) (*native.NamedNode, error) {
	if !IsAbsoluteIRI(n.IRI) {
		return nil, newError(ErrRelativeIRIRef, n.IRI)
	}
	return native.NewNamedNode(n.IRI), nil
}

func toNativeBlankNode(b *rdf.BlankNode) (*native.BlankNode, error) {
	id, ok := EncodeBlankNodeID(b.ID)
	if !ok {
		return nil, newError(ErrIncompatibleBlankNodeID, b.ID)
	}
	return native.NewBlankNode(id), nil
}

func toNativeLiteral(l *rdf.Literal) (*native.Literal, error) {
	if l.Language != "" {
		// The datatype, if any, is dropped: the native model treats a
		// language tag and a datatype as mutually exclusive.
		return native.NewLangLiteral(l.Value, strings.ToLower(l.Language)), nil
	}
	dt := l.Datatype
	if dt == nil {
		dt = rdf.XSDString
	}
	ndt, err := toNativeIRI(dt)
	if err != nil {
		return nil, err
	}
	return native.NewTypedLiteral(l.Value, ndt), nil
}

// IsAbsoluteIRI reports whether iri starts with a scheme per RFC 3986
// (ALPHA *( ALPHA / DIGIT / "+" / "-" / "." ) ":").
func IsAbsoluteIRI(iri string) bool {
	for i := 0; i < len(iri); i++ {
		c := iri[i]
		switch {
		case c == ':':
			return i > 0
		case c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return false
}
