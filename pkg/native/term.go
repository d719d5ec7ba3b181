// Package native defines the quad store's own term and quad model.
//
// The model is narrower than the generic one in pkg/rdf: blank nodes
// carry fixed-width 128-bit identifiers, IRIs must be absolute, and
// there are no variables. Position constraints (no literal in subject
// or graph position, only IRIs in predicate position) are expressed in
// the types.
package native

import (
	"encoding/hex"
	"fmt"
)

// TermType represents the type of a native term
type TermType byte

const (
	TermTypeNamedNode TermType = iota + 1
	TermTypeBlankNode
	TermTypeLiteral
)

// Term represents a native term (IRI, blank node, or literal)
type Term interface {
	Type() TermType
	String() string
	Equals(other Term) bool
}

// SubjectTerm is the subset of terms allowed in subject and graph
// position: named nodes and blank nodes.
type SubjectTerm interface {
	Term
	subjectTerm()
}

// BlankNodeID is the store's fixed-width blank node identifier.
type BlankNodeID [16]byte

// String renders the identifier in its canonical 32-hex-digit form.
func (id BlankNodeID) String() string {
	return hex.EncodeToString(id[:])
}

// NamedNode represents an absolute IRI
type NamedNode struct {
	IRI string
}

func NewNamedNode(iri string) *NamedNode {
	return &NamedNode{IRI: iri}
}

func (n *NamedNode) Type() TermType {
	return TermTypeNamedNode
}

func (n *NamedNode) String() string {
	return fmt.Sprintf("<%s>", n.IRI)
}

func (n *NamedNode) Equals(other Term) bool {
	if on, ok := other.(*NamedNode); ok {
		return n.IRI == on.IRI
	}
	return false
}

func (n *NamedNode) subjectTerm() {}

// BlankNode represents a blank node with a 128-bit identifier
type BlankNode struct {
	ID BlankNodeID
}

func NewBlankNode(id BlankNodeID) *BlankNode {
	return &BlankNode{ID: id}
}

func (b *BlankNode) Type() TermType {
	return TermTypeBlankNode
}

func (b *BlankNode) String() string {
	return "_:" + b.ID.String()
}

func (b *BlankNode) Equals(other Term) bool {
	if ob, ok := other.(*BlankNode); ok {
		return b.ID == ob.ID
	}
	return false
}

func (b *BlankNode) subjectTerm() {}

// Literal represents a native literal. It carries either a datatype
// IRI or a language tag, never both; the constructors enforce this, so
// the fields are unexported.
type Literal struct {
	value    string
	language string
	datatype *NamedNode
}

// NewTypedLiteral creates a literal with an explicit datatype.
func NewTypedLiteral(value string, datatype *NamedNode) *Literal {
	return &Literal{value: value, datatype: datatype}
}

// NewStringLiteral creates an xsd:string literal.
func NewStringLiteral(value string) *Literal {
	return &Literal{value: value, datatype: XSDString}
}

// NewLangLiteral creates a language-tagged literal.
func NewLangLiteral(value, language string) *Literal {
	return &Literal{value: value, language: language}
}

func (l *Literal) Type() TermType {
	return TermTypeLiteral
}

func (l *Literal) Value() string {
	return l.value
}

// Language returns the language tag, or "" for typed literals.
func (l *Literal) Language() string {
	return l.language
}

// Datatype returns the datatype IRI, or nil for language-tagged literals.
func (l *Literal) Datatype() *NamedNode {
	return l.datatype
}

func (l *Literal) String() string {
	result := fmt.Sprintf(`"%s"`, l.value)
	if l.language != "" {
		result += "@" + l.language
	} else if l.datatype != nil {
		result += "^^" + l.datatype.String()
	}
	return result
}

func (l *Literal) Equals(other Term) bool {
	if ol, ok := other.(*Literal); ok {
		if l.value != ol.value || l.language != ol.language {
			return false
		}
		if l.datatype == nil && ol.datatype == nil {
			return true
		}
		if l.datatype != nil && ol.datatype != nil {
			return l.datatype.Equals(ol.datatype)
		}
		return false
	}
	return false
}

// XSDString is the implicit datatype of plain string literals.
var XSDString = NewNamedNode("http://www.w3.org/2001/XMLSchema#string")
