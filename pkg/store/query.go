package store

import (
	"fmt"

	"github.com/pchampin/quadbridge/internal/sparql"
	"github.com/pchampin/quadbridge/pkg/dataset"
)

// PrepareAndExecute parses and runs a restricted SELECT DISTINCT
// query against the store.
func (s *Store) PrepareAndExecute(query string, _ dataset.QueryOptions) (*dataset.Bindings, error) {
	parsed, err := sparql.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("failed to parse query: %w", err)
	}
	bindings, err := sparql.Evaluate(parsed, s)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate query: %w", err)
	}
	return bindings, nil
}
