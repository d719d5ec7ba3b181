package store

import (
	"fmt"

	"github.com/pchampin/quadbridge/internal/encoding"
	"github.com/pchampin/quadbridge/internal/storage"
	"github.com/pchampin/quadbridge/pkg/dataset"
	"github.com/pchampin/quadbridge/pkg/native"
)

// RangeScan returns all quads matching the bound positions, streamed
// from a single prefix scan over the best-fitting permutation index.
// Nil positions are wildcards.
func (s *Store) RangeScan(subject native.SubjectTerm, predicate *native.NamedNode, object native.Term, graph native.GraphPattern) dataset.ScanIterator {
	var es, ep, eo, eg encoding.EncodedTerm
	sBound := subject != nil
	pBound := predicate != nil
	oBound := object != nil
	gBound := !graph.Any()

	if sBound {
		es, _ = s.encoder.EncodeTerm(subject)
	}
	if pBound {
		ep, _ = s.encoder.EncodeTerm(predicate)
	}
	if oBound {
		eo, _ = s.encoder.EncodeTerm(object)
	}
	if gBound {
		eg, _ = s.encoder.EncodeGraph(graph.Term())
	}

	table, prefixTerms := selectIndex(sBound, pBound, oBound, gBound, es, ep, eo, eg)

	txn, err := s.storage.Begin(false)
	if err != nil {
		return &errorIterator{err: fmt.Errorf("failed to begin transaction: %w", err)}
	}

	var prefix []byte
	if len(prefixTerms) > 0 {
		prefix = s.encoder.EncodeQuadKey(prefixTerms...)
	}

	it, err := txn.Scan(table, prefix)
	if err != nil {
		rollback(txn)
		return &errorIterator{err: fmt.Errorf("failed to scan %s index: %w", table, err)}
	}

	return &scanIterator{
		txn:     txn,
		it:      it,
		table:   table,
		decoder: encoding.NewTermDecoder(&txnLookup{txn: txn}),
	}
}

// selectIndex picks the permutation index whose key order turns the
// bound positions into a contiguous key prefix. Graph-bound scans
// (default graph included) use the G-first tables; scans across all
// graphs use the G-last tables.
func selectIndex(sBound, pBound, oBound, gBound bool, es, ep, eo, eg encoding.EncodedTerm) (storage.Table, []encoding.EncodedTerm) {
	if gBound {
		switch {
		case sBound && pBound && oBound:
			return storage.TableGSPO, []encoding.EncodedTerm{eg, es, ep, eo}
		case sBound && pBound:
			return storage.TableGSPO, []encoding.EncodedTerm{eg, es, ep}
		case sBound && oBound:
			return storage.TableGOSP, []encoding.EncodedTerm{eg, eo, es}
		case sBound:
			return storage.TableGSPO, []encoding.EncodedTerm{eg, es}
		case pBound && oBound:
			return storage.TableGPOS, []encoding.EncodedTerm{eg, ep, eo}
		case pBound:
			return storage.TableGPOS, []encoding.EncodedTerm{eg, ep}
		case oBound:
			return storage.TableGOSP, []encoding.EncodedTerm{eg, eo}
		default:
			return storage.TableGSPO, []encoding.EncodedTerm{eg}
		}
	}

	switch {
	case sBound && pBound && oBound:
		return storage.TableSPOG, []encoding.EncodedTerm{es, ep, eo}
	case sBound && pBound:
		return storage.TableSPOG, []encoding.EncodedTerm{es, ep}
	case sBound && oBound:
		return storage.TableOSPG, []encoding.EncodedTerm{eo, es}
	case sBound:
		return storage.TableSPOG, []encoding.EncodedTerm{es}
	case pBound && oBound:
		return storage.TablePOSG, []encoding.EncodedTerm{ep, eo}
	case pBound:
		return storage.TablePOSG, []encoding.EncodedTerm{ep}
	case oBound:
		return storage.TableOSPG, []encoding.EncodedTerm{eo}
	default:
		return storage.TableSPOG, nil
	}
}

// scanIterator streams decoded quads from one index scan. The read
// transaction is held open until Close so string lookups see the same
// snapshot as the scan.
type scanIterator struct {
	txn     storage.Transaction
	it      storage.Iterator
	table   storage.Table
	decoder *encoding.TermDecoder
	closed  bool
}

func (i *scanIterator) Next() bool {
	if i.closed {
		return false
	}
	return i.it.Next()
}

func (i *scanIterator) Quad() (*native.Quad, error) {
	key := i.it.Key()
	if len(key) != 4*encoding.EncodedTermSize {
		return nil, fmt.Errorf("corrupt %s index key of length %d", i.table, len(key))
	}

	var terms [4]encoding.EncodedTerm
	for n := 0; n < 4; n++ {
		copy(terms[n][:], key[n*encoding.EncodedTermSize:])
	}
	es, ep, eo, eg := quadOrder(i.table, terms)

	subject, err := i.decoder.DecodeSubject(es)
	if err != nil {
		return nil, fmt.Errorf("failed to decode subject: %w", err)
	}
	predicate, err := i.decoder.DecodePredicate(ep)
	if err != nil {
		return nil, fmt.Errorf("failed to decode predicate: %w", err)
	}
	object, err := i.decoder.DecodeTerm(eo)
	if err != nil {
		return nil, fmt.Errorf("failed to decode object: %w", err)
	}
	graph, err := i.decoder.DecodeGraph(eg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode graph: %w", err)
	}

	return &native.Quad{
		Subject:   subject,
		Predicate: predicate,
		Object:    object,
		Graph:     graph,
	}, nil
}

func (i *scanIterator) Close() error {
	if i.closed {
		return nil
	}
	i.closed = true
	closeIterator(i.it)
	rollback(i.txn)
	return nil
}

// quadOrder rearranges the key components of a table into
// subject, predicate, object, graph order.
func quadOrder(table storage.Table, k [4]encoding.EncodedTerm) (s, p, o, g encoding.EncodedTerm) {
	switch table {
	case storage.TableSPOG:
		return k[0], k[1], k[2], k[3]
	case storage.TablePOSG:
		return k[2], k[0], k[1], k[3]
	case storage.TableOSPG:
		return k[1], k[2], k[0], k[3]
	case storage.TableGSPO:
		return k[1], k[2], k[3], k[0]
	case storage.TableGPOS:
		return k[3], k[1], k[2], k[0]
	case storage.TableGOSP:
		return k[2], k[3], k[1], k[0]
	default:
		panic("store: not a quad index table")
	}
}

// errorIterator surfaces a scan setup failure through the iterator's
// error channel: one Next, then the error from Quad.
type errorIterator struct {
	err  error
	done bool
}

func (i *errorIterator) Next() bool {
	if i.done {
		return false
	}
	i.done = true
	return true
}

func (i *errorIterator) Quad() (*native.Quad, error) {
	return nil, i.err
}

func (i *errorIterator) Close() error {
	return nil
}
