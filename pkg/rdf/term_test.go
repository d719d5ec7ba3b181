package rdf

import (
	"testing"
)

func TestNamedNode(t *testing.T) {
	node := NewNamedNode("http://example.org/resource")

	if node.Type() != TermTypeNamedNode {
		t.Errorf("expected type %v, got %v", TermTypeNamedNode, node.Type())
	}
	if node.String() != "<http://example.org/resource>" {
		t.Errorf("unexpected string form: %s", node.String())
	}

	same := NewNamedNode("http://example.org/resource")
	if !node.Equals(same) {
		t.Error("equal named nodes should be equal")
	}
	other := NewNamedNode("http://example.org/other")
	if node.Equals(other) {
		t.Error("different named nodes should not be equal")
	}
}

func TestBlankNode(t *testing.T) {
	node := NewBlankNode("b1")

	if node.Type() != TermTypeBlankNode {
		t.Errorf("expected type %v, got %v", TermTypeBlankNode, node.Type())
	}
	if node.String() != "_:b1" {
		t.Errorf("unexpected string form: %s", node.String())
	}
	if !node.Equals(NewBlankNode("b1")) {
		t.Error("blank nodes with same ID should be equal")
	}
	if node.Equals(NewBlankNode("b2")) {
		t.Error("blank nodes with different IDs should not be equal")
	}
	if node.Equals(NewNamedNode("b1")) {
		t.Error("blank node should not equal a named node")
	}
}

func TestLiteral(t *testing.T) {
	t.Run("Plain", func(t *testing.T) {
		lit := NewLiteral("hello")
		if lit.String() != `"hello"` {
			t.Errorf("unexpected string form: %s", lit.String())
		}
		if !lit.EffectiveDatatype().Equals(XSDString) {
			t.Errorf("plain literal should default to xsd:string, got %v", lit.EffectiveDatatype())
		}
	})

	t.Run("Language", func(t *testing.T) {
		lit := NewLiteralWithLanguage("bonjour", "fr")
		if lit.String() != `"bonjour"@fr` {
			t.Errorf("unexpected string form: %s", lit.String())
		}
		if lit.EffectiveDatatype() != nil {
			t.Errorf("language-tagged literal should have nil effective datatype, got %v", lit.EffectiveDatatype())
		}
	})

	t.Run("Typed", func(t *testing.T) {
		lit := NewLiteralWithDatatype("42", XSDInteger)
		want := `"42"^^<http://www.w3.org/2001/XMLSchema#integer>`
		if lit.String() != want {
			t.Errorf("expected %s, got %s", want, lit.String())
		}
		if !lit.EffectiveDatatype().Equals(XSDInteger) {
			t.Errorf("unexpected effective datatype: %v", lit.EffectiveDatatype())
		}
	})

	t.Run("Equality", func(t *testing.T) {
		if !NewLiteral("a").Equals(NewLiteral("a")) {
			t.Error("identical plain literals should be equal")
		}
		if NewLiteral("a").Equals(NewLiteralWithLanguage("a", "en")) {
			t.Error("plain and language-tagged literals should not be equal")
		}
		if NewLiteral("a").Equals(NewLiteralWithDatatype("a", XSDInteger)) {
			t.Error("plain and typed literals should not be equal")
		}
	})
}

func TestIntegerLiteral(t *testing.T) {
	lit := NewIntegerLiteral(42)
	if lit.Value != "42" {
		t.Errorf("expected value 42, got %s", lit.Value)
	}
	if !lit.Datatype.Equals(XSDInteger) {
		t.Errorf("expected xsd:integer, got %v", lit.Datatype)
	}
}

func TestBooleanLiteral(t *testing.T) {
	lit := NewBooleanLiteral(true)
	if lit.Value != "true" {
		t.Errorf("expected value true, got %s", lit.Value)
	}
	if !lit.Datatype.Equals(XSDBoolean) {
		t.Errorf("expected xsd:boolean, got %v", lit.Datatype)
	}
}

func TestVariable(t *testing.T) {
	v := NewVariable("x")
	if v.Type() != TermTypeVariable {
		t.Errorf("expected type %v, got %v", TermTypeVariable, v.Type())
	}
	if v.String() != "?x" {
		t.Errorf("unexpected string form: %s", v.String())
	}
	if !v.Equals(NewVariable("x")) {
		t.Error("variables with same name should be equal")
	}
	if v.Equals(NewVariable("y")) {
		t.Error("variables with different names should not be equal")
	}
}
