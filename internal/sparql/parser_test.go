package sparql

import (
	"testing"
)

func TestParseExtractionQueries(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		variable string
		patterns int
		filter   FilterKind
	}{
		{
			"Subjects",
			`SELECT DISTINCT ?s {{?s ?p ?o} UNION { GRAPH ?g {?s ?p ?o}}}`,
			"s", 2, FilterNone,
		},
		{
			"GraphNames",
			`SELECT DISTINCT ?g {GRAPH ?g {?s ?p ?o}}`,
			"g", 1, FilterNone,
		},
		{
			"IRIs",
			`SELECT DISTINCT ?iri {{?iri ?p ?o} UNION {?s ?iri ?o} UNION {?s ?p ?iri} UNION {GRAPH ?iri {?s ?p ?o}} UNION {GRAPH ?s {?iri ?p ?o}} UNION {GRAPH ?g {?s ?iri ?o}} UNION {GRAPH ?g {?s ?p ?iri}} FILTER isIRI(?iri)}`,
			"iri", 7, FilterIsIRI,
		},
		{
			"BlankNodes",
			`SELECT DISTINCT ?bn {{?bn ?p ?o} UNION {?s ?p ?bn} UNION {GRAPH ?bn {?s ?p ?o}} UNION {GRAPH ?s {?bn ?p ?o}} UNION {GRAPH ?g {?s ?p ?bn}} FILTER isBlank(?bn)}`,
			"bn", 5, FilterIsBlank,
		},
		{
			"Literals",
			`SELECT DISTINCT ?lit {{?s ?p ?lit} UNION { GRAPH ?g {?s ?p ?lit}} FILTER isLiteral(?lit)}`,
			"lit", 2, FilterIsLiteral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, err := Parse(tt.query)
			if err != nil {
				t.Fatalf("failed to parse: %v", err)
			}
			if query.Var != tt.variable {
				t.Errorf("expected variable %q, got %q", tt.variable, query.Var)
			}
			if len(query.Patterns) != tt.patterns {
				t.Errorf("expected %d patterns, got %d", tt.patterns, len(query.Patterns))
			}
			if query.Filter != tt.filter {
				t.Errorf("expected filter %d, got %d", tt.filter, query.Filter)
			}
		})
	}
}

func TestParseGraphScope(t *testing.T) {
	query, err := Parse(`SELECT DISTINCT ?s {{?s ?p ?o} UNION { GRAPH ?g {?s ?p ?o}}}`)
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}

	if query.Patterns[0].Scoped() {
		t.Error("first branch should match the default graph")
	}
	if !query.Patterns[1].Scoped() {
		t.Error("second branch should be graph-scoped")
	}
	if query.Patterns[1].Graph != "g" {
		t.Errorf("expected graph variable g, got %q", query.Patterns[1].Graph)
	}
}

func TestParsePatternVariables(t *testing.T) {
	query, err := Parse(`SELECT DISTINCT ?iri {GRAPH ?s {?iri ?p ?o}}`)
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}

	p := query.Patterns[0]
	if p.Graph != "s" || p.S != "iri" || p.P != "p" || p.O != "o" {
		t.Errorf("unexpected pattern: %+v", p)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"Empty", ``},
		{"NoDistinct", `SELECT ?s {?s ?p ?o}`},
		{"NoVariable", `SELECT DISTINCT {?s ?p ?o}`},
		{"UnclosedGroup", `SELECT DISTINCT ?s {{?s ?p ?o}`},
		{"MissingTripleTerm", `SELECT DISTINCT ?s {{?s ?p}}`},
		{"UnknownFilter", `SELECT DISTINCT ?s {{?s ?p ?o} FILTER isNumeric(?s)}`},
		{"FilterOnOtherVariable", `SELECT DISTINCT ?s {{?s ?p ?o} FILTER isIRI(?o)}`},
		{"TrailingGarbage", `SELECT DISTINCT ?s {{?s ?p ?o}} LIMIT 10`},
		{"NotAQuery", `INSERT DATA {}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.query); err == nil {
				t.Errorf("expected parse of %q to fail", tt.query)
			}
		})
	}
}
