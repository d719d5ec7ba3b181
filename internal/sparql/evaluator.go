package sparql

import (
	"fmt"

	"github.com/pchampin/quadbridge/pkg/dataset"
	"github.com/pchampin/quadbridge/pkg/native"
)

// Scanner provides the quad scans the evaluator runs branches over.
type Scanner interface {
	RangeScan(s native.SubjectTerm, p *native.NamedNode, o native.Term, g native.GraphPattern) dataset.ScanIterator
}

// Evaluate runs a parsed query against a scanner and returns the
// distinct bindings of the projected variable, one per row.
func Evaluate(query *Query, scanner Scanner) (*dataset.Bindings, error) {
	bindings := &dataset.Bindings{
		Variables: []string{query.Var},
	}
	seen := make(map[string]bool)

	for _, pattern := range query.Patterns {
		if err := evaluatePattern(query, pattern, scanner, seen, bindings); err != nil {
			return nil, err
		}
	}

	return bindings, nil
}

func evaluatePattern(query *Query, pattern Pattern, scanner Scanner, seen map[string]bool, out *dataset.Bindings) error {
	// Default-graph branches scan the default graph only; GRAPH
	// branches scan everything and keep named-graph quads.
	graph := native.DefaultGraphOnly()
	if pattern.Scoped() {
		graph = native.AnyGraph()
	}

	it := scanner.RangeScan(nil, nil, nil, graph)

	for it.Next() {
		quad, err := it.Quad()
		if err != nil {
			_ = it.Close()
			return fmt.Errorf("evaluating pattern: %w", err)
		}
		if pattern.Scoped() && quad.Graph == nil {
			continue
		}

		solution := bindQuad(pattern, quad)
		if !consistent(solution) {
			continue
		}
		for _, binding := range solution {
			if binding.variable != query.Var {
				continue
			}
			if !passesFilter(query.Filter, binding.term) {
				continue
			}
			key := binding.term.String()
			if seen[key] {
				continue
			}
			seen[key] = true
			out.Rows = append(out.Rows, []native.Term{binding.term})
		}
	}

	return it.Close()
}

type varBinding struct {
	variable string
	term     native.Term
}

// bindQuad maps the pattern's variables onto the quad's terms.
func bindQuad(pattern Pattern, quad *native.Quad) []varBinding {
	solution := []varBinding{
		{pattern.S, quad.Subject},
		{pattern.P, quad.Predicate},
		{pattern.O, quad.Object},
	}
	if pattern.Scoped() {
		solution = append(solution, varBinding{pattern.Graph, quad.Graph})
	}
	return solution
}

// consistent rejects solutions where a variable appearing in several
// positions binds to unequal terms.
func consistent(solution []varBinding) bool {
	byVar := make(map[string]native.Term, len(solution))
	for _, b := range solution {
		if prev, ok := byVar[b.variable]; ok {
			if !prev.Equals(b.term) {
				return false
			}
			continue
		}
		byVar[b.variable] = b.term
	}
	return true
}

func passesFilter(filter FilterKind, term native.Term) bool {
	switch filter {
	case FilterIsIRI:
		_, ok := term.(*native.NamedNode)
		return ok
	case FilterIsBlank:
		_, ok := term.(*native.BlankNode)
		return ok
	case FilterIsLiteral:
		_, ok := term.(*native.Literal)
		return ok
	default:
		return true
	}
}
