// Package dataset exposes a native quad-store session through the
// generic RDF dataset contract.
//
// Read paths are fail-soft: a bound pattern term that cannot be
// represented in the native model has, by construction, no matches, so
// pattern queries return an empty sequence and Contains returns false
// instead of erroring. Write paths fail loud: Insert and Remove
// propagate conversion errors, since silently dropping a write would
// hide a caller bug.
package dataset

import (
	"errors"

	"github.com/pchampin/quadbridge/pkg/convert"
	"github.com/pchampin/quadbridge/pkg/native"
	"github.com/pchampin/quadbridge/pkg/rdf"
)

// Dataset adapts a backend Session to the generic dataset contract.
// Like the session it wraps, a Dataset serves one logical caller at a
// time.
type Dataset struct {
	session Session
}

// New wraps session as a generic dataset.
func New(session Session) *Dataset {
	return &Dataset{session: session}
}

// Session returns the underlying backend session.
func (d *Dataset) Session() Session {
	return d.session
}

// QuadIterator is a pull-based sequence of generic quads. An error
// from Quad terminates the sequence.
type QuadIterator interface {
	Next() bool
	Quad() (rdf.Quad, error)
	Close() error
}

// graphArg distinguishes "any graph" (variants without a G parameter)
// from a concrete graph name, where nil means the default graph.
type graphArg struct {
	any  bool
	term rdf.Term
}

var anyGraph = graphArg{any: true}

// Quads iterates over every quad in every graph.
func (d *Dataset) Quads() QuadIterator {
	return d.quadsForPattern(nil, nil, nil, anyGraph)
}

// QuadsWithS iterates over quads with the given subject, in any graph.
func (d *Dataset) QuadsWithS(s rdf.Term) QuadIterator {
	return d.quadsForPattern(s, nil, nil, anyGraph)
}

// QuadsWithP iterates over quads with the given predicate, in any graph.
func (d *Dataset) QuadsWithP(p rdf.Term) QuadIterator {
	return d.quadsForPattern(nil, p, nil, anyGraph)
}

// QuadsWithO iterates over quads with the given object, in any graph.
func (d *Dataset) QuadsWithO(o rdf.Term) QuadIterator {
	return d.quadsForPattern(nil, nil, o, anyGraph)
}

// QuadsWithG iterates over quads in the given graph; a nil g selects
// the default graph. The same convention holds for every *G variant
// below.
func (d *Dataset) QuadsWithG(g rdf.Term) QuadIterator {
	return d.quadsForPattern(nil, nil, nil, graphArg{term: g})
}

func (d *Dataset) QuadsWithSP(s, p rdf.Term) QuadIterator {
	return d.quadsForPattern(s, p, nil, anyGraph)
}

func (d *Dataset) QuadsWithSO(s, o rdf.Term) QuadIterator {
	return d.quadsForPattern(s, nil, o, anyGraph)
}

func (d *Dataset) QuadsWithSG(s, g rdf.Term) QuadIterator {
	return d.quadsForPattern(s, nil, nil, graphArg{term: g})
}

func (d *Dataset) QuadsWithPO(p, o rdf.Term) QuadIterator {
	return d.quadsForPattern(nil, p, o, anyGraph)
}

func (d *Dataset) QuadsWithPG(p, g rdf.Term) QuadIterator {
	return d.quadsForPattern(nil, p, nil, graphArg{term: g})
}

func (d *Dataset) QuadsWithOG(o, g rdf.Term) QuadIterator {
	return d.quadsForPattern(nil, nil, o, graphArg{term: g})
}

func (d *Dataset) QuadsWithSPO(s, p, o rdf.Term) QuadIterator {
	return d.quadsForPattern(s, p, o, anyGraph)
}

func (d *Dataset) QuadsWithSPG(s, p, g rdf.Term) QuadIterator {
	return d.quadsForPattern(s, p, nil, graphArg{term: g})
}

func (d *Dataset) QuadsWithSOG(s, o, g rdf.Term) QuadIterator {
	return d.quadsForPattern(s, nil, o, graphArg{term: g})
}

func (d *Dataset) QuadsWithPOG(p, o, g rdf.Term) QuadIterator {
	return d.quadsForPattern(nil, p, o, graphArg{term: g})
}

func (d *Dataset) QuadsWithSPOG(s, p, o, g rdf.Term) QuadIterator {
	return d.quadsForPattern(s, p, o, graphArg{term: g})
}

// quadsForPattern subsumes all pattern-query call shapes: each bound
// position converts to native form, and any conversion failure yields
// an empty sequence.
func (d *Dataset) quadsForPattern(s, p, o rdf.Term, g graphArg) QuadIterator {
	var (
		ns  native.SubjectTerm
		np  *native.NamedNode
		no  native.Term
		err error
	)
	if s != nil {
		if ns, err = convert.ToNativeSubject(s); err != nil {
			return emptyIterator{}
		}
	}
	if p != nil {
		if np, err = convert.ToNativePredicate(p); err != nil {
			return emptyIterator{}
		}
	}
	if o != nil {
		if no, err = convert.ToNativeObject(o); err != nil {
			return emptyIterator{}
		}
	}
	ng := native.AnyGraph()
	if !g.any {
		ngt, err := convert.ToNativeGraph(g.term)
		if err != nil {
			return emptyIterator{}
		}
		if ngt == nil {
			ng = native.DefaultGraphOnly()
		} else {
			ng = native.NamedGraph(ngt)
		}
	}
	return &bridgeIterator{scan: d.session.RangeScan(ns, np, no, ng)}
}

// Contains reports whether the quad (s, p, o, g) is present; nil g
// denotes the default graph. An unrepresentable quad cannot be a
// member, so conversion failures yield (false, nil).
func (d *Dataset) Contains(s, p, o, g rdf.Term) (bool, error) {
	ns, err := convert.ToNativeSubject(s)
	if err != nil {
		return false, nil
	}
	np, err := convert.ToNativePredicate(p)
	if err != nil {
		return false, nil
	}
	no, err := convert.ToNativeObject(o)
	if err != nil {
		return false, nil
	}
	ng, err := convert.ToNativeGraph(g)
	if err != nil {
		return false, nil
	}
	return d.session.ContainsNative(native.NewQuad(ns, np, no, ng))
}

// Insert adds the quad (s, p, o, g); nil g denotes the default graph.
// An unrepresentable quad is reported as a MutationError wrapping the
// ConversionError. Inserting an already-present quad is not an error.
func (d *Dataset) Insert(s, p, o, g rdf.Term) error {
	q, err := d.convertQuad(s, p, o, g)
	if err != nil {
		return err
	}
	return backendError(d.session.InsertNative(q))
}

// Remove deletes the quad (s, p, o, g); nil g denotes the default
// graph. Conversion failures are reported the same way as for Insert:
// one policy for both write paths. Removing an absent quad is not an
// error.
func (d *Dataset) Remove(s, p, o, g rdf.Term) error {
	q, err := d.convertQuad(s, p, o, g)
	if err != nil {
		return err
	}
	return backendError(d.session.RemoveNative(q))
}

func (d *Dataset) convertQuad(s, p, o, g rdf.Term) (*native.Quad, error) {
	ns, err := convert.ToNativeSubject(s)
	if err != nil {
		return nil, conversionError(err)
	}
	np, err := convert.ToNativePredicate(p)
	if err != nil {
		return nil, conversionError(err)
	}
	no, err := convert.ToNativeObject(o)
	if err != nil {
		return nil, conversionError(err)
	}
	ng, err := convert.ToNativeGraph(g)
	if err != nil {
		return nil, conversionError(err)
	}
	return native.NewQuad(ns, np, no, ng), nil
}

// bridgeIterator surfaces a native scan as generic quads, wrapping
// each yielded quad in a fresh BridgedQuad. Ownership of each bridge
// passes to the caller.
type bridgeIterator struct {
	scan ScanIterator
}

func (it *bridgeIterator) Next() bool {
	return it.scan.Next()
}

func (it *bridgeIterator) Quad() (rdf.Quad, error) {
	q, err := it.scan.Quad()
	if err != nil {
		return nil, err
	}
	return BridgeQuad(q), nil
}

func (it *bridgeIterator) Close() error {
	return it.scan.Close()
}

type emptyIterator struct{}

func (emptyIterator) Next() bool {
	return false
}

func (emptyIterator) Quad() (rdf.Quad, error) {
	return nil, errors.New("no current quad")
}

func (emptyIterator) Close() error {
	return nil
}
