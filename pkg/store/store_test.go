package store

import (
	"testing"

	"github.com/pchampin/quadbridge/pkg/dataset"
	"github.com/pchampin/quadbridge/pkg/native"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return s
}

func iri(s string) *native.NamedNode {
	return native.NewNamedNode(s)
}

func bnode(id string) *native.BlankNode {
	var bid native.BlankNodeID
	copy(bid[:], id)
	return native.NewBlankNode(bid)
}

func collect(t *testing.T, it dataset.ScanIterator) []*native.Quad {
	t.Helper()
	defer func() {
		if err := it.Close(); err != nil {
			t.Errorf("failed to close iterator: %v", err)
		}
	}()

	var quads []*native.Quad
	for it.Next() {
		q, err := it.Quad()
		if err != nil {
			t.Fatalf("failed to read quad: %v", err)
		}
		quads = append(quads, q)
	}
	return quads
}

func sampleQuads() []*native.Quad {
	alice := iri("http://example.org/alice")
	bob := iri("http://example.org/bob")
	knows := iri("http://example.org/knows")
	name := iri("http://example.org/name")
	g1 := iri("http://example.org/g1")
	g2 := iri("http://example.org/g2")

	return []*native.Quad{
		native.NewQuad(alice, knows, bob, nil),
		native.NewQuad(alice, name, native.NewStringLiteral("Alice"), nil),
		native.NewQuad(bob, name, native.NewLangLiteral("Bob le bricoleur", "fr"), g1),
		native.NewQuad(bob, knows, bnode("carol"), g1),
		native.NewQuad(bnode("carol"), name, native.NewStringLiteral("Carol"), g2),
	}
}

func populate(t *testing.T, s *Store) {
	t.Helper()
	for _, q := range sampleQuads() {
		if err := s.InsertNative(q); err != nil {
			t.Fatalf("failed to insert %s: %v", q, err)
		}
	}
}

func TestInsertContainsRemove(t *testing.T) {
	s := newTestStore(t)

	q := native.NewQuad(
		iri("http://example.org/s"),
		iri("http://example.org/p"),
		native.NewStringLiteral("a value longer than sixteen bytes"),
		iri("http://example.org/g"),
	)

	ok, err := s.ContainsNative(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("quad should be absent before insert")
	}

	if err := s.InsertNative(q); err != nil {
		t.Fatalf("failed to insert: %v", err)
	}

	ok, err = s.ContainsNative(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("quad should be present after insert")
	}

	// Inserting again is a no-op.
	if err := s.InsertNative(q); err != nil {
		t.Fatalf("reinsert failed: %v", err)
	}
	count, err := s.Count()
	if err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 quad, got %d", count)
	}

	if err := s.RemoveNative(q); err != nil {
		t.Fatalf("failed to remove: %v", err)
	}
	ok, err = s.ContainsNative(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("quad should be absent after remove")
	}

	// Removing again is a no-op.
	if err := s.RemoveNative(q); err != nil {
		t.Fatalf("second remove failed: %v", err)
	}
}

func TestRangeScanRoundTrip(t *testing.T) {
	s := newTestStore(t)
	populate(t, s)

	quads := collect(t, s.RangeScan(nil, nil, nil, native.AnyGraph()))
	if len(quads) != 5 {
		t.Fatalf("expected 5 quads, got %d", len(quads))
	}

	// Every stored quad must come back byte-identical.
	got := make(map[string]bool)
	for _, q := range quads {
		got[q.String()] = true
	}
	for _, want := range sampleQuads() {
		if !got[want.String()] {
			t.Errorf("missing quad %s", want)
		}
	}
}

func TestRangeScanBoundPositions(t *testing.T) {
	s := newTestStore(t)
	populate(t, s)

	alice := iri("http://example.org/alice")
	bob := iri("http://example.org/bob")
	name := iri("http://example.org/name")
	carol := bnode("carol")
	g1 := iri("http://example.org/g1")

	tests := []struct {
		name  string
		s     native.SubjectTerm
		p     *native.NamedNode
		o     native.Term
		g     native.GraphPattern
		count int
	}{
		{"AllWildcard", nil, nil, nil, native.AnyGraph(), 5},
		{"Subject", alice, nil, nil, native.AnyGraph(), 2},
		{"BlankSubject", carol, nil, nil, native.AnyGraph(), 1},
		{"Predicate", nil, name, nil, native.AnyGraph(), 3},
		{"Object", nil, nil, bob, native.AnyGraph(), 1},
		{"BlankObject", nil, nil, carol, native.AnyGraph(), 1},
		{"SubjectPredicate", alice, name, nil, native.AnyGraph(), 1},
		{"SubjectObject", alice, nil, bob, native.AnyGraph(), 1},
		{"PredicateObject", nil, name, native.NewStringLiteral("Alice"), native.AnyGraph(), 1},
		{"FullyBound", alice, name, native.NewStringLiteral("Alice"), native.AnyGraph(), 1},
		{"DefaultGraph", nil, nil, nil, native.DefaultGraphOnly(), 2},
		{"NamedGraph", nil, nil, nil, native.NamedGraph(g1), 2},
		{"SubjectInGraph", bob, nil, nil, native.NamedGraph(g1), 2},
		{"SubjectInDefault", alice, nil, nil, native.DefaultGraphOnly(), 2},
		{"PredicateInGraph", nil, name, nil, native.NamedGraph(g1), 1},
		{"ObjectInGraph", nil, nil, carol, native.NamedGraph(g1), 1},
		{"FullyBoundInGraph", bob, name, native.NewLangLiteral("Bob le bricoleur", "fr"), native.NamedGraph(g1), 1},
		{"NoMatch", iri("http://example.org/nobody"), nil, nil, native.AnyGraph(), 0},
		{"WrongGraph", alice, nil, nil, native.NamedGraph(g1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quads := collect(t, s.RangeScan(tt.s, tt.p, tt.o, tt.g))
			if len(quads) != tt.count {
				t.Errorf("expected %d quads, got %d", tt.count, len(quads))
			}
			for _, q := range quads {
				if tt.s != nil && !q.Subject.Equals(tt.s) {
					t.Errorf("subject mismatch in %s", q)
				}
				if tt.p != nil && !q.Predicate.Equals(tt.p) {
					t.Errorf("predicate mismatch in %s", q)
				}
				if tt.o != nil && !q.Object.Equals(tt.o) {
					t.Errorf("object mismatch in %s", q)
				}
				if !tt.g.Any() {
					if tt.g.Term() == nil && q.Graph != nil {
						t.Errorf("expected default-graph quad, got %s", q)
					}
					if tt.g.Term() != nil && (q.Graph == nil || !q.Graph.Equals(tt.g.Term())) {
						t.Errorf("graph mismatch in %s", q)
					}
				}
			}
		})
	}
}

func TestPrepareAndExecute(t *testing.T) {
	s := newTestStore(t)
	populate(t, s)

	t.Run("Subjects", func(t *testing.T) {
		bindings, err := s.PrepareAndExecute(
			`SELECT DISTINCT ?s {{?s ?p ?o} UNION { GRAPH ?g {?s ?p ?o}}}`,
			dataset.QueryOptions{},
		)
		if err != nil {
			t.Fatalf("failed to execute: %v", err)
		}
		// alice, bob, _:carol
		if len(bindings.Rows) != 3 {
			t.Errorf("expected 3 subjects, got %d", len(bindings.Rows))
		}
	})

	t.Run("GraphNames", func(t *testing.T) {
		bindings, err := s.PrepareAndExecute(
			`SELECT DISTINCT ?g {GRAPH ?g {?s ?p ?o}}`,
			dataset.QueryOptions{},
		)
		if err != nil {
			t.Fatalf("failed to execute: %v", err)
		}
		if len(bindings.Rows) != 2 {
			t.Errorf("expected 2 graph names, got %d", len(bindings.Rows))
		}
	})

	t.Run("Literals", func(t *testing.T) {
		bindings, err := s.PrepareAndExecute(
			`SELECT DISTINCT ?lit {{?s ?p ?lit} UNION { GRAPH ?g {?s ?p ?lit}} FILTER isLiteral(?lit)}`,
			dataset.QueryOptions{},
		)
		if err != nil {
			t.Fatalf("failed to execute: %v", err)
		}
		if len(bindings.Rows) != 3 {
			t.Errorf("expected 3 literals, got %d", len(bindings.Rows))
		}
	})

	t.Run("ParseError", func(t *testing.T) {
		if _, err := s.PrepareAndExecute(`not a query`, dataset.QueryOptions{}); err == nil {
			t.Error("expected a parse error")
		}
	})
}

func TestDatasetOverStore(t *testing.T) {
	// The facade and the reference backend, end to end.
	s := newTestStore(t)
	populate(t, s)
	ds := dataset.New(s)

	subjects, err := ds.Subjects()
	if err != nil {
		t.Fatalf("failed to fetch subjects: %v", err)
	}
	if subjects.Len() != 3 {
		t.Errorf("expected 3 subjects, got %d", subjects.Len())
	}

	iris, err := ds.IRIs()
	if err != nil {
		t.Fatalf("failed to fetch IRIs: %v", err)
	}
	// alice, bob, knows, name, g1, g2
	if iris.Len() != 6 {
		t.Errorf("expected 6 IRIs, got %d", iris.Len())
	}

	bnodes, err := ds.BlankNodes()
	if err != nil {
		t.Fatalf("failed to fetch blank nodes: %v", err)
	}
	if bnodes.Len() != 1 {
		t.Errorf("expected 1 blank node, got %d", bnodes.Len())
	}

	it := ds.Quads()
	quadCount := 0
	for it.Next() {
		q, err := it.Quad()
		if err != nil {
			t.Fatalf("failed to read quad: %v", err)
		}
		if q.S() == nil || q.P() == nil || q.O() == nil {
			t.Errorf("quad with missing fields: %v %v %v", q.S(), q.P(), q.O())
		}
		quadCount++
	}
	if err := it.Close(); err != nil {
		t.Errorf("failed to close iterator: %v", err)
	}
	if quadCount != 5 {
		t.Errorf("expected 5 quads, got %d", quadCount)
	}
}

func TestNamedGraphs(t *testing.T) {
	s := newTestStore(t)
	populate(t, s)

	graphs, err := s.NamedGraphs()
	if err != nil {
		t.Fatalf("failed to list graphs: %v", err)
	}
	if len(graphs) != 2 {
		t.Fatalf("expected 2 graphs, got %d", len(graphs))
	}

	names := make(map[string]bool)
	for _, g := range graphs {
		names[g.String()] = true
	}
	if !names["<http://example.org/g1>"] || !names["<http://example.org/g2>"] {
		t.Errorf("unexpected graph names: %v", names)
	}
}

func TestPersistence(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	q := native.NewQuad(
		iri("http://example.org/s"),
		iri("http://example.org/p"),
		native.NewTypedLiteral("42", iri("http://www.w3.org/2001/XMLSchema#integer")),
		nil,
	)
	if err := s.InsertNative(q); err != nil {
		t.Fatalf("failed to insert: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("failed to close: %v", err)
	}

	s, err = Open(dir)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer s.Close()

	quads := collect(t, s.RangeScan(nil, nil, nil, native.AnyGraph()))
	if len(quads) != 1 {
		t.Fatalf("expected 1 quad after reopen, got %d", len(quads))
	}
	if quads[0].String() != q.String() {
		t.Errorf("expected %s, got %s", q, quads[0])
	}
}
