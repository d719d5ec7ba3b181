package convert

import (
	"fmt"
)

// Position identifies the quad position a term is being converted for.
type Position int

const (
	PositionSubject Position = iota
	PositionPredicate
	PositionObject
	PositionGraph
)

func (p Position) String() string {
	switch p {
	case PositionSubject:
		return "subject"
	case PositionPredicate:
		return "predicate"
	case PositionObject:
		return "object"
	case PositionGraph:
		return "graph"
	default:
		return "unknown"
	}
}

// ErrorKind enumerates the ways a generic term can fail to convert to
// the native model.
type ErrorKind int

const (
	// ErrVariableUnsupported: variables have no native representation.
	ErrVariableUnsupported ErrorKind = iota + 1
	// ErrBlankNodeInPredicate: the store does not allow blank nodes in
	// predicate position.
	ErrBlankNodeInPredicate
	// ErrLiteralInSubjectOrPredicate: the store only allows literals in
	// object position (covers subject, predicate and graph).
	ErrLiteralInSubjectOrPredicate
	// ErrRelativeIRIRef: the store only represents absolute IRIs.
	ErrRelativeIRIRef
	// ErrIncompatibleBlankNodeID: the blank node identifier fits neither
	// canonical encoding of the 128-bit native id.
	ErrIncompatibleBlankNodeID
)

// ConversionError is raised when a generic term cannot be represented
// in the native model.
type ConversionError struct {
	Kind ErrorKind
	Term string
}

func (e *ConversionError) Error() string {
	switch e.Kind {
	case ErrVariableUnsupported:
		return fmt.Sprintf("store does not support variables as terms '%s'", e.Term)
	case ErrBlankNodeInPredicate:
		return fmt.Sprintf("store does not support blank node in predicate position '%s'", e.Term)
	case ErrLiteralInSubjectOrPredicate:
		return fmt.Sprintf("store only supports literals in object position '%s'", e.Term)
	case ErrRelativeIRIRef:
		return fmt.Sprintf("store does not support relative IRI refs '%s'", e.Term)
	case ErrIncompatibleBlankNodeID:
		return fmt.Sprintf("store does not support this blank node id '%s'", e.Term)
	default:
		return fmt.Sprintf("cannot convert term '%s'", e.Term)
	}
}

func newError(kind ErrorKind, term string) *ConversionError {
	return &ConversionError{Kind: kind, Term: term}
}
