package dataset

import (
	"github.com/pchampin/quadbridge/pkg/rdf"
)

// TermSet is a deduplicated, unordered collection of generic terms,
// keyed by the term's string form.
type TermSet map[string]rdf.Term

// NewTermSet creates an empty term set.
func NewTermSet() TermSet {
	return make(TermSet)
}

// Add inserts t, replacing any equal term already present.
func (s TermSet) Add(t rdf.Term) {
	s[t.String()] = t
}

// Contains reports whether a term equal to t is present.
func (s TermSet) Contains(t rdf.Term) bool {
	_, ok := s[t.String()]
	return ok
}

// Len returns the number of distinct terms.
func (s TermSet) Len() int {
	return len(s)
}

// Terms returns the members in unspecified order.
func (s TermSet) Terms() []rdf.Term {
	terms := make([]rdf.Term, 0, len(s))
	for _, t := range s {
		terms = append(terms, t)
	}
	return terms
}
