package native

import (
	"fmt"
)

// Quad represents a native quad. Graph is nil for the default graph.
type Quad struct {
	Subject   SubjectTerm
	Predicate *NamedNode
	Object    Term
	Graph     SubjectTerm
}

func NewQuad(subject SubjectTerm, predicate *NamedNode, object Term, graph SubjectTerm) *Quad {
	return &Quad{
		Subject:   subject,
		Predicate: predicate,
		Object:    object,
		Graph:     graph,
	}
}

func (q *Quad) String() string {
	if q.Graph == nil {
		return fmt.Sprintf("%s %s %s .", q.Subject, q.Predicate, q.Object)
	}
	return fmt.Sprintf("%s %s %s %s .", q.Subject, q.Predicate, q.Object, q.Graph)
}

// GraphPattern selects which graphs a scan ranges over: all graphs,
// the default graph only, or one specific named graph.
type GraphPattern struct {
	anyGraph bool
	graph    SubjectTerm
}

// AnyGraph matches quads in every graph, default and named alike.
func AnyGraph() GraphPattern {
	return GraphPattern{anyGraph: true}
}

// DefaultGraphOnly matches only quads in the default graph.
func DefaultGraphOnly() GraphPattern {
	return GraphPattern{}
}

// NamedGraph matches only quads in the given graph.
func NamedGraph(g SubjectTerm) GraphPattern {
	return GraphPattern{graph: g}
}

// Any reports whether the pattern matches every graph.
func (g GraphPattern) Any() bool {
	return g.anyGraph
}

// Term returns the selected graph term; nil means the default graph.
// Only meaningful when Any is false.
func (g GraphPattern) Term() SubjectTerm {
	return g.graph
}

func (g GraphPattern) String() string {
	switch {
	case g.anyGraph:
		return "ANY"
	case g.graph == nil:
		return "DEFAULT"
	default:
		return g.graph.String()
	}
}
