package store

import (
	"context"
	"sort"
	"sync"

	"github.com/matzehuels/layoutgen/pkg/observability"
	"github.com/matzehuels/layoutgen/pkg/rotate"
)

type memKey struct {
	name  string
	angle rotate.Angle
}

// MemoryStore is a map-backed Store. It is safe for concurrent use and
// counts variant writes, which makes idempotence observable in tests.
type MemoryStore struct {
	mu     sync.RWMutex
	docs   map[memKey]rotate.Document
	writes int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[memKey]rotate.Document)}
}

// PutBase stores a base layout.
func (s *MemoryStore) PutBase(name string, doc rotate.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[memKey{name, rotate.Angle0}] = doc
}

// Writes returns the number of PutVariant calls so far.
func (s *MemoryStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

// Base returns the stored base layout.
func (s *MemoryStore) Base(ctx context.Context, name string) (rotate.Document, bool, error) {
	return s.get(ctx, kindBase, memKey{name, rotate.Angle0})
}

// Variant returns the stored variant.
func (s *MemoryStore) Variant(ctx context.Context, name string, angle rotate.Angle) (rotate.Document, bool, error) {
	return s.get(ctx, kindVariant, memKey{name, angle})
}

// PutVariant stores a variant.
func (s *MemoryStore) PutVariant(ctx context.Context, name string, angle rotate.Angle, doc rotate.Document) error {
	s.mu.Lock()
	s.docs[memKey{name, angle}] = doc
	s.writes++
	s.mu.Unlock()
	observability.Store().OnWrite(ctx, BackendMemory, len(doc))
	return nil
}

// DeleteVariant removes a variant.
func (s *MemoryStore) DeleteVariant(ctx context.Context, name string, angle rotate.Angle) error {
	s.mu.Lock()
	_, ok := s.docs[memKey{name, angle}]
	delete(s.docs, memKey{name, angle})
	s.mu.Unlock()
	if ok {
		observability.Store().OnDelete(ctx, BackendMemory)
	}
	return nil
}

// List returns the names of all stored base layouts.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var names []string
	for k := range s.docs {
		if k.angle == rotate.Angle0 {
			names = append(names, k.name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Close does nothing.
func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) get(ctx context.Context, kind string, k memKey) (rotate.Document, bool, error) {
	s.mu.RLock()
	doc, ok := s.docs[k]
	s.mu.RUnlock()
	observability.Store().OnRead(ctx, BackendMemory, kind, ok)
	return doc, ok, nil
}

// Ensure MemoryStore implements Store and Lister.
var (
	_ Store  = (*MemoryStore)(nil)
	_ Lister = (*MemoryStore)(nil)
)
