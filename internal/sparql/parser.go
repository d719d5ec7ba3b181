// Package sparql implements the restricted SELECT DISTINCT subset
// needed for aggregate term extraction: a single projected variable
// over a UNION of triple patterns, optionally scoped to named graphs
// with GRAPH blocks and narrowed by an isIRI/isBlank/isLiteral filter.
package sparql

import (
	"fmt"
	"strings"
)

// FilterKind narrows the projected variable to one term category.
type FilterKind int

const (
	FilterNone FilterKind = iota
	FilterIsIRI
	FilterIsBlank
	FilterIsLiteral
)

// Pattern is one UNION branch: a triple of variables, optionally
// scoped to named graphs by a graph variable.
type Pattern struct {
	// Graph is the graph variable name when the branch is a GRAPH
	// block; empty means the branch matches the default graph only.
	Graph string

	S string
	P string
	O string
}

// Scoped reports whether the branch is a GRAPH block.
func (p Pattern) Scoped() bool {
	return p.Graph != ""
}

// Query is a parsed SELECT DISTINCT query.
type Query struct {
	// Var is the projected variable name, without the leading '?'.
	Var string

	Patterns []Pattern

	Filter FilterKind

	// FilterVar is the argument of the filter function; must equal Var.
	FilterVar string
}

// Parser parses the restricted query language
type Parser struct {
	input  string
	pos    int
	length int
}

func NewParser(input string) *Parser {
	return &Parser{
		input:  input,
		pos:    0,
		length: len(input),
	}
}

// Parse parses a query string.
func Parse(input string) (*Query, error) {
	return NewParser(input).Parse()
}

// Parse parses the parser's input.
func (p *Parser) Parse() (*Query, error) {
	p.skipWhitespace()

	if !p.matchKeyword("SELECT") {
		return nil, fmt.Errorf("expected SELECT at position %d", p.pos)
	}
	if !p.matchKeyword("DISTINCT") {
		return nil, fmt.Errorf("expected DISTINCT at position %d", p.pos)
	}

	variable, err := p.parseVariable()
	if err != nil {
		return nil, err
	}

	query := &Query{Var: variable}

	if !p.match("{") {
		return nil, fmt.Errorf("expected '{' at position %d", p.pos)
	}

	for {
		pattern, err := p.parseGroupElement()
		if err != nil {
			return nil, err
		}
		query.Patterns = append(query.Patterns, pattern)

		if !p.matchKeyword("UNION") {
			break
		}
	}

	if p.matchKeyword("FILTER") {
		if err := p.parseFilter(query); err != nil {
			return nil, err
		}
	}

	if !p.match("}") {
		return nil, fmt.Errorf("expected '}' at position %d", p.pos)
	}

	p.skipWhitespace()
	if p.pos < p.length {
		return nil, fmt.Errorf("unexpected trailing input at position %d", p.pos)
	}

	if query.Filter != FilterNone && query.FilterVar != query.Var {
		return nil, fmt.Errorf("filter variable ?%s does not match projected variable ?%s",
			query.FilterVar, query.Var)
	}

	return query, nil
}

// parseGroupElement parses one UNION branch: either a braced group
// containing a triple pattern or a GRAPH block, or a bare GRAPH block.
func (p *Parser) parseGroupElement() (Pattern, error) {
	p.skipWhitespace()

	if p.peekKeyword("GRAPH") {
		return p.parseGraphBlock()
	}

	if !p.match("{") {
		return Pattern{}, fmt.Errorf("expected '{' or GRAPH at position %d", p.pos)
	}

	var pattern Pattern
	var err error
	if p.peekKeyword("GRAPH") {
		pattern, err = p.parseGraphBlock()
	} else {
		pattern, err = p.parseTriplePattern()
	}
	if err != nil {
		return Pattern{}, err
	}

	if !p.match("}") {
		return Pattern{}, fmt.Errorf("expected '}' at position %d", p.pos)
	}

	return pattern, nil
}

func (p *Parser) parseGraphBlock() (Pattern, error) {
	if !p.matchKeyword("GRAPH") {
		return Pattern{}, fmt.Errorf("expected GRAPH at position %d", p.pos)
	}

	graphVar, err := p.parseVariable()
	if err != nil {
		return Pattern{}, err
	}

	if !p.match("{") {
		return Pattern{}, fmt.Errorf("expected '{' at position %d", p.pos)
	}

	pattern, err := p.parseTriplePattern()
	if err != nil {
		return Pattern{}, err
	}
	pattern.Graph = graphVar

	if !p.match("}") {
		return Pattern{}, fmt.Errorf("expected '}' at position %d", p.pos)
	}

	return pattern, nil
}

func (p *Parser) parseTriplePattern() (Pattern, error) {
	s, err := p.parseVariable()
	if err != nil {
		return Pattern{}, err
	}
	pred, err := p.parseVariable()
	if err != nil {
		return Pattern{}, err
	}
	o, err := p.parseVariable()
	if err != nil {
		return Pattern{}, err
	}
	// Optional trailing dot
	p.match(".")

	return Pattern{S: s, P: pred, O: o}, nil
}

func (p *Parser) parseFilter(query *Query) error {
	switch {
	case p.matchKeyword("isIRI"):
		query.Filter = FilterIsIRI
	case p.matchKeyword("isBlank"):
		query.Filter = FilterIsBlank
	case p.matchKeyword("isLiteral"):
		query.Filter = FilterIsLiteral
	default:
		return fmt.Errorf("expected isIRI, isBlank or isLiteral at position %d", p.pos)
	}

	if !p.match("(") {
		return fmt.Errorf("expected '(' at position %d", p.pos)
	}
	variable, err := p.parseVariable()
	if err != nil {
		return err
	}
	query.FilterVar = variable
	if !p.match(")") {
		return fmt.Errorf("expected ')' at position %d", p.pos)
	}

	return nil
}

func (p *Parser) parseVariable() (string, error) {
	p.skipWhitespace()

	if p.pos >= p.length || p.input[p.pos] != '?' {
		return "", fmt.Errorf("expected variable at position %d", p.pos)
	}
	p.pos++

	start := p.pos
	for p.pos < p.length && isVarChar(p.input[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return "", fmt.Errorf("empty variable name at position %d", start)
	}

	return p.input[start:p.pos], nil
}

func (p *Parser) skipWhitespace() {
	for p.pos < p.length {
		c := p.input[p.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			p.pos++
		} else {
			break
		}
	}
}

// match consumes the literal token if it is next in the input.
func (p *Parser) match(token string) bool {
	p.skipWhitespace()
	if strings.HasPrefix(p.input[p.pos:], token) {
		p.pos += len(token)
		return true
	}
	return false
}

// matchKeyword consumes the keyword (case-insensitive) if it is next
// in the input and not part of a longer word.
func (p *Parser) matchKeyword(keyword string) bool {
	p.skipWhitespace()
	if !p.hasKeyword(keyword) {
		return false
	}
	p.pos += len(keyword)
	return true
}

// peekKeyword reports whether the keyword is next without consuming it.
func (p *Parser) peekKeyword(keyword string) bool {
	p.skipWhitespace()
	return p.hasKeyword(keyword)
}

func (p *Parser) hasKeyword(keyword string) bool {
	end := p.pos + len(keyword)
	if end > p.length {
		return false
	}
	if !strings.EqualFold(p.input[p.pos:end], keyword) {
		return false
	}
	// Must not run into a longer identifier
	if end < p.length && isVarChar(p.input[end]) {
		return false
	}
	return true
}

func isVarChar(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '_'
}
