package dataset

import (
	"testing"

	"github.com/pchampin/quadbridge/pkg/native"
	"github.com/pchampin/quadbridge/pkg/rdf"
)

func TestBridgedQuadFields(t *testing.T) {
	var bnID native.BlankNodeID
	copy(bnID[:], "b1")

	q := native.NewQuad(
		native.NewBlankNode(bnID),
		native.NewNamedNode("http://example.org/p"),
		native.NewLangLiteral("hello", "en"),
		native.NewNamedNode("http://example.org/g"),
	)
	b := BridgeQuad(q)

	s, ok := b.S().(*rdf.BlankNode)
	if !ok {
		t.Fatalf("expected blank node subject, got %T", b.S())
	}
	if s.ID != "b1" {
		t.Errorf("unexpected blank node id: %s", s.ID)
	}

	if b.P().String() != "<http://example.org/p>" {
		t.Errorf("unexpected predicate: %v", b.P())
	}

	o, ok := b.O().(*rdf.Literal)
	if !ok {
		t.Fatalf("expected literal object, got %T", b.O())
	}
	if o.Value != "hello" || o.Language != "en" {
		t.Errorf("unexpected literal: %v", o)
	}

	if b.G().String() != "<http://example.org/g>" {
		t.Errorf("unexpected graph: %v", b.G())
	}
}

func TestBridgedQuadCachesConversion(t *testing.T) {
	q := native.NewQuad(
		native.NewNamedNode("http://example.org/s"),
		native.NewNamedNode("http://example.org/p"),
		native.NewNamedNode("http://example.org/o"),
		nil,
	)
	b := BridgeQuad(q)

	// Converted terms are cached: repeated access yields the same value.
	if b.S() != b.S() {
		t.Error("S should return the cached term")
	}
	if b.O() != b.O() {
		t.Error("O should return the cached term")
	}
	if b.G() != nil {
		t.Errorf("default-graph quad should have nil graph, got %v", b.G())
	}
}
