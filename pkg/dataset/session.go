package dataset

import (
	"github.com/pchampin/quadbridge/pkg/native"
)

// Session is the narrow capability the facade requires from a
// graph-store backend. pkg/store provides the badger-backed
// implementation; tests substitute fakes.
//
// A session is confined to one logical caller at a time. None of the
// methods are safe for concurrent use without external locking.
type Session interface {
	// RangeScan returns a lazy sequence of quads matching the bound
	// positions. Nil subject, predicate or object mean wildcard; the
	// graph pattern distinguishes any graph, default graph only, and
	// one specific graph.
	RangeScan(s native.SubjectTerm, p *native.NamedNode, o native.Term, g native.GraphPattern) ScanIterator

	// ContainsNative reports whether the exact quad is present.
	ContainsNative(q *native.Quad) (bool, error)

	// InsertNative adds the quad. Inserting a quad that is already
	// present is not an error; the session does not report which case
	// occurred.
	InsertNative(q *native.Quad) error

	// RemoveNative deletes the quad. Removing an absent quad is not an
	// error.
	RemoveNative(q *native.Quad) error

	// PrepareAndExecute runs a restricted single-variable
	// SELECT DISTINCT query. It backs the aggregate extractors and
	// nothing else.
	PrepareAndExecute(query string, opts QueryOptions) (*Bindings, error)
}

// ScanIterator is a pull-based sequence of native quads. A backend
// error surfaces from Quad and terminates the sequence; Close releases
// backend resources and is safe to call mid-iteration.
type ScanIterator interface {
	Next() bool
	Quad() (*native.Quad, error)
	Close() error
}

// QueryOptions configures PrepareAndExecute. Currently empty; it keeps
// the capability's signature stable as options are added.
type QueryOptions struct{}

// Bindings holds the result of a PrepareAndExecute call: one row per
// distinct solution, one term per selected variable.
type Bindings struct {
	Variables []string
	Rows      [][]native.Term
}
