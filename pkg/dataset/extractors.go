package dataset

import (
	"fmt"

	"github.com/pchampin/quadbridge/pkg/convert"
)

// The aggregate extractors each run one fixed single-variable
// SELECT DISTINCT query through the session's query capability and
// fold the column into a TermSet.

const (
	subjectsQuery   = `SELECT DISTINCT ?s {{?s ?p ?o} UNION { GRAPH ?g {?s ?p ?o}}}`
	predicatesQuery = `SELECT DISTINCT ?p {{?s ?p ?o} UNION { GRAPH ?g {?s ?p ?o}}}`
	objectsQuery    = `SELECT DISTINCT ?o {{?s ?p ?o} UNION { GRAPH ?g {?s ?p ?o}}}`
	graphNamesQuery = `SELECT DISTINCT ?g {GRAPH ?g {?s ?p ?o}}`
	irisQuery       = `SELECT DISTINCT ?iri {{?iri ?p ?o} UNION {?s ?iri ?o} UNION {?s ?p ?iri} UNION {GRAPH ?iri {?s ?p ?o}} UNION {GRAPH ?s {?iri ?p ?o}} UNION {GRAPH ?g {?s ?iri ?o}} UNION {GRAPH ?g {?s ?p ?iri}} FILTER isIRI(?iri)}`
	bnodesQuery     = `SELECT DISTINCT ?bn {{?bn ?p ?o} UNION {?s ?p ?bn} UNION {GRAPH ?bn {?s ?p ?o}} UNION {GRAPH ?s {?bn ?p ?o}} UNION {GRAPH ?g {?s ?p ?bn}} FILTER isBlank(?bn)}`
	literalsQuery   = `SELECT DISTINCT ?lit {{?s ?p ?lit} UNION { GRAPH ?g {?s ?p ?lit}} FILTER isLiteral(?lit)}`
)

// Subjects returns the distinct subjects of all quads, in any graph.
func (d *Dataset) Subjects() (TermSet, error) {
	return d.termSetQuery(subjectsQuery)
}

// Predicates returns the distinct predicates of all quads, in any graph.
func (d *Dataset) Predicates() (TermSet, error) {
	return d.termSetQuery(predicatesQuery)
}

// Objects returns the distinct objects of all quads, in any graph.
func (d *Dataset) Objects() (TermSet, error) {
	return d.termSetQuery(objectsQuery)
}

// GraphNames returns the distinct names of all named graphs.
func (d *Dataset) GraphNames() (TermSet, error) {
	return d.termSetQuery(graphNamesQuery)
}

// IRIs returns the distinct IRIs occurring in any position of any quad.
func (d *Dataset) IRIs() (TermSet, error) {
	return d.termSetQuery(irisQuery)
}

// BlankNodes returns the distinct blank nodes occurring in any
// position of any quad.
func (d *Dataset) BlankNodes() (TermSet, error) {
	return d.termSetQuery(bnodesQuery)
}

// Literals returns the distinct literals occurring in any quad.
func (d *Dataset) Literals() (TermSet, error) {
	return d.termSetQuery(literalsQuery)
}

// Variables returns the empty set: stored data can never bind to a
// query variable.
func (d *Dataset) Variables() (TermSet, error) {
	return NewTermSet(), nil
}

func (d *Dataset) termSetQuery(query string) (TermSet, error) {
	bindings, err := d.session.PrepareAndExecute(query, QueryOptions{})
	if err != nil {
		return nil, err
	}
	set := NewTermSet()
	for _, row := range bindings.Rows {
		if len(row) != 1 {
			return nil, fmt.Errorf("expected single-column binding, got %d columns", len(row))
		}
		set.Add(convert.NativeToGeneric(row[0]))
	}
	return set, nil
}
