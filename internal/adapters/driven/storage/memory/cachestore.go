// Package memory provides an in-memory CacheStore for tests and
// cache-less runs. Nothing is persisted; every process starts empty.
package memory

import (
	"sync"
	"time"

	"github.com/helix-tools/genedex-cli/internal/core/domain"
	"github.com/helix-tools/genedex-cli/internal/core/ports/driven"
)

// Ensure CacheStore implements the interface.
var _ driven.CacheStore = (*CacheStore)(nil)

// CacheStore is an in-memory implementation of driven.CacheStore.
type CacheStore struct {
	mu      sync.RWMutex
	entries map[string]domain.CacheEntry
}

// NewCacheStore creates an empty in-memory cache store.
func NewCacheStore() *CacheStore {
	return &CacheStore{
		entries: make(map[string]domain.CacheEntry),
	}
}

// Lookup returns the record for a normalized symbol.
func (s *CacheStore) Lookup(symbol string) (*domain.GeneRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[domain.NormalizeSymbol(symbol)]
	if !ok {
		return nil, false
	}
	rec := entry.Record
	return &rec, true
}

// Store inserts or overwrites the entry for the normalized symbol.
func (s *CacheStore) Store(symbol string, record *domain.GeneRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[domain.NormalizeSymbol(symbol)] = domain.CacheEntry{
		Record:    *record,
		FetchedAt: time.Now(),
	}
	return nil
}

// Entries returns all cached records.
func (s *CacheStore) Entries() []domain.CacheEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]domain.CacheEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		entries = append(entries, entry)
	}
	return entries
}

// Clear removes every entry.
func (s *CacheStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]domain.CacheEntry)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *CacheStore) Close() error {
	return nil
}
