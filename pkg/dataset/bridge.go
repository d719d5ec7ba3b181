package dataset

import (
	"github.com/pchampin/quadbridge/internal/memo"
	"github.com/pchampin/quadbridge/pkg/convert"
	"github.com/pchampin/quadbridge/pkg/native"
	"github.com/pchampin/quadbridge/pkg/rdf"
)

// BridgedQuad wraps one native quad and exposes its fields as generic
// terms. Each field converts lazily, at most once, on first access;
// the native value is consumed by the conversion and not retained.
//
// A BridgedQuad belongs to a single caller and must not be shared
// across goroutines: the accessors mutate the per-field caches.
type BridgedQuad struct {
	s memo.Cell[native.SubjectTerm, rdf.Term]
	p memo.Cell[*native.NamedNode, rdf.Term]
	o memo.Cell[native.Term, rdf.Term]
	g *memo.Cell[native.SubjectTerm, rdf.Term]
}

// BridgeQuad wraps q. Quads in the default graph get no graph cell.
func BridgeQuad(q *native.Quad) *BridgedQuad {
	b := &BridgedQuad{
		s: memo.NewCell[native.SubjectTerm, rdf.Term](q.Subject),
		p: memo.NewCell[*native.NamedNode, rdf.Term](q.Predicate),
		o: memo.NewCell[native.Term, rdf.Term](q.Object),
	}
	if q.Graph != nil {
		g := memo.NewCell[native.SubjectTerm, rdf.Term](q.Graph)
		b.g = &g
	}
	return b
}

func (b *BridgedQuad) S() rdf.Term {
	return *b.s.GetOrToggle(subjectToGeneric)
}

func (b *BridgedQuad) P() rdf.Term {
	return *b.p.GetOrToggle(predicateToGeneric)
}

func (b *BridgedQuad) O() rdf.Term {
	return *b.o.GetOrToggle(convert.NativeToGeneric)
}

// G returns the graph name, or nil for the default graph.
func (b *BridgedQuad) G() rdf.Term {
	if b.g == nil {
		return nil
	}
	return *b.g.GetOrToggle(subjectToGeneric)
}

func subjectToGeneric(t native.SubjectTerm) rdf.Term {
	return convert.NativeToGeneric(t)
}

func predicateToGeneric(t *native.NamedNode) rdf.Term {
	return convert.NativeToGeneric(t)
}

var _ rdf.Quad = (*BridgedQuad)(nil)
