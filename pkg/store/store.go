// Package store provides the reference quad store backend: a
// BadgerDB-backed session implementing scans, membership checks,
// mutations and the restricted query language over six permutation
// indexes of encoded terms.
package store

import (
	"fmt"

	"github.com/pchampin/quadbridge/internal/encoding"
	"github.com/pchampin/quadbridge/internal/storage"
	"github.com/pchampin/quadbridge/pkg/dataset"
	"github.com/pchampin/quadbridge/pkg/native"
)

// Store is a quad store over a key-value backend.
//
// Every quad is written to six permutation indexes so that any
// combination of bound positions resolves to a contiguous prefix scan:
// the G-first tables serve graph-bound scans (default graph included,
// encoded as the zero term) and the G-last tables serve scans across
// all graphs.
type Store struct {
	storage storage.Storage
	encoder *encoding.TermEncoder
}

var _ dataset.Session = (*Store)(nil)

// Open creates or opens a store at the given path.
func Open(path string) (*Store, error) {
	st, err := storage.NewBadgerStorage(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	return New(st), nil
}

// New creates a store over an existing storage backend.
func New(st storage.Storage) *Store {
	return &Store{
		storage: st,
		encoder: encoding.NewTermEncoder(),
	}
}

// Close closes the store.
func (s *Store) Close() error {
	return s.storage.Close()
}

// Sync flushes writes to disk.
func (s *Store) Sync() error {
	return s.storage.Sync()
}

// encodedQuad carries the four encoded terms of a quad plus the
// id2str rows their decoding will need.
type encodedQuad struct {
	s, p, o, g encoding.EncodedTerm
	strings    map[[16]byte]string
}

func (s *Store) encodeQuad(quad *native.Quad) encodedQuad {
	eq := encodedQuad{strings: make(map[[16]byte]string, 4)}

	eq.s = s.encodeTerm(quad.Subject, eq.strings)
	eq.p = s.encodeTerm(quad.Predicate, eq.strings)
	eq.o = s.encodeTerm(quad.Object, eq.strings)

	if quad.Graph == nil {
		eq.g, _ = s.encoder.EncodeGraph(nil)
	} else {
		eq.g = s.encodeTerm(quad.Graph, eq.strings)
	}

	return eq
}

func (s *Store) encodeTerm(term native.Term, strings map[[16]byte]string) encoding.EncodedTerm {
	encoded, str := s.encoder.EncodeTerm(term)
	if str != nil {
		var hash [16]byte
		copy(hash[:], encoded[1:])
		strings[hash] = *str
	}
	return encoded
}

// indexKeys returns the six index rows of an encoded quad.
func (s *Store) indexKeys(eq encodedQuad) map[storage.Table][]byte {
	return map[storage.Table][]byte{
		storage.TableSPOG: s.encoder.EncodeQuadKey(eq.s, eq.p, eq.o, eq.g),
		storage.TablePOSG: s.encoder.EncodeQuadKey(eq.p, eq.o, eq.s, eq.g),
		storage.TableOSPG: s.encoder.EncodeQuadKey(eq.o, eq.s, eq.p, eq.g),
		storage.TableGSPO: s.encoder.EncodeQuadKey(eq.g, eq.s, eq.p, eq.o),
		storage.TableGPOS: s.encoder.EncodeQuadKey(eq.g, eq.p, eq.o, eq.s),
		storage.TableGOSP: s.encoder.EncodeQuadKey(eq.g, eq.o, eq.s, eq.p),
	}
}

// InsertNative adds a quad to the store. Inserting a quad that is
// already present is a no-op.
func (s *Store) InsertNative(quad *native.Quad) error {
	txn, err := s.storage.Begin(true)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(txn)

	eq := s.encodeQuad(quad)

	for hash, str := range eq.strings {
		if err := txn.Set(storage.TableID2Str, hash[:], []byte(str)); err != nil {
			return fmt.Errorf("failed to store term string: %w", err)
		}
	}

	for table, key := range s.indexKeys(eq) {
		if err := txn.Set(table, key, nil); err != nil {
			return fmt.Errorf("failed to write %s index: %w", table, err)
		}
	}

	if quad.Graph != nil {
		if err := txn.Set(storage.TableGraphs, eq.g[:], nil); err != nil {
			return fmt.Errorf("failed to register graph: %w", err)
		}
	}

	return txn.Commit()
}

// RemoveNative deletes a quad from the store. Removing an absent quad
// is a no-op. Term strings stay in the id2str table; they are shared
// between quads and cheap to keep.
func (s *Store) RemoveNative(quad *native.Quad) error {
	txn, err := s.storage.Begin(true)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(txn)

	eq := s.encodeQuad(quad)

	for table, key := range s.indexKeys(eq) {
		if err := txn.Delete(table, key); err != nil {
			return fmt.Errorf("failed to delete from %s index: %w", table, err)
		}
	}

	return txn.Commit()
}

// ContainsNative reports whether a quad is in the store.
func (s *Store) ContainsNative(quad *native.Quad) (bool, error) {
	txn, err := s.storage.Begin(false)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(txn)

	eq := s.encodeQuad(quad)
	key := s.encoder.EncodeQuadKey(eq.s, eq.p, eq.o, eq.g)

	_, err = txn.Get(storage.TableSPOG, key)
	if err == storage.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check quad: %w", err)
	}
	return true, nil
}

// Count returns the number of quads in the store.
func (s *Store) Count() (int, error) {
	txn, err := s.storage.Begin(false)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(txn)

	it, err := txn.Scan(storage.TableSPOG, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to scan: %w", err)
	}
	defer closeIterator(it)

	count := 0
	for it.Next() {
		count++
	}
	return count, nil
}

// NamedGraphs returns the names of all graphs ever written to.
// Graph registrations survive removal of the graph's quads.
func (s *Store) NamedGraphs() ([]native.SubjectTerm, error) {
	txn, err := s.storage.Begin(false)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(txn)

	it, err := txn.Scan(storage.TableGraphs, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to scan graphs: %w", err)
	}
	defer closeIterator(it)

	decoder := encoding.NewTermDecoder(&txnLookup{txn: txn})

	var graphs []native.SubjectTerm
	for it.Next() {
		key := it.Key()
		if len(key) != encoding.EncodedTermSize {
			return nil, fmt.Errorf("corrupt graph registry key of length %d", len(key))
		}
		var encoded encoding.EncodedTerm
		copy(encoded[:], key)
		graph, err := decoder.DecodeSubject(encoded)
		if err != nil {
			return nil, fmt.Errorf("failed to decode graph name: %w", err)
		}
		graphs = append(graphs, graph)
	}
	return graphs, nil
}

// txnLookup resolves id2str rows within a transaction.
type txnLookup struct {
	txn storage.Transaction
}

func (l *txnLookup) LookupString(hash [16]byte) (string, error) {
	value, err := l.txn.Get(storage.TableID2Str, hash[:])
	if err != nil {
		return "", err
	}
	return string(value), nil
}

func rollback(txn storage.Transaction) {
	_ = txn.Rollback()
}

func closeIterator(it storage.Iterator) {
	_ = it.Close()
}
