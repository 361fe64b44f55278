// Package file provides the default CacheStore: one JSON document
// mapping normalized gene symbols to cached records.
//
// The file is loaded fully into memory at construction and rewritten in
// full after every store. Persistence uses write-new-then-replace so a
// crash mid-write can never corrupt previously persisted entries.
package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/helix-tools/genedex-cli/internal/core/domain"
	"github.com/helix-tools/genedex-cli/internal/core/ports/driven"
	"github.com/helix-tools/genedex-cli/internal/logger"
)

// Ensure CacheStore implements the interface.
var _ driven.CacheStore = (*CacheStore)(nil)

// CacheStore is a JSON-file-backed implementation of driven.CacheStore.
type CacheStore struct {
	mu      sync.RWMutex
	path    string
	entries map[string]cacheEntry
}

// cacheEntry is the persisted shape of one cached record.
// Symbol and EntrezID are required; an entry missing either is treated
// as legacy garbage and dropped on load.
type cacheEntry struct {
	Symbol      string    `json:"symbol"`
	EntrezID    string    `json:"entrez_id"`
	Chromosome  string    `json:"chromosome,omitempty"`
	MapLocation string    `json:"map_location,omitempty"`
	Description string    `json:"description,omitempty"`
	Summary     string    `json:"summary,omitempty"`
	Source      string    `json:"source,omitempty"`
	FetchedAt   time.Time `json:"fetched_at,omitempty"`
}

// NewCacheStore opens (or creates) the cache at path. If path is empty,
// defaults to ~/.genedex/cache.json. A missing file is an empty cache,
// not an error.
func NewCacheStore(path string) (*CacheStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, ".genedex", "cache.json")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	s := &CacheStore{
		path:    path,
		entries: make(map[string]cacheEntry),
	}
	s.load()
	return s, nil
}

// Path returns the cache file path.
func (s *CacheStore) Path() string {
	return s.path
}

// load reads the cache file into memory. Entries that fail to parse
// into a well-formed record are dropped individually; a file that is
// not valid JSON at all starts the cache fresh rather than failing.
func (s *CacheStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Reading cache %s: %v", s.path, err)
		}
		return
	}

	// Raw messages first, so one malformed entry cannot poison the rest.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.Warn("Cache %s is not valid JSON, starting fresh: %v", s.path, err)
		return
	}

	for key, msg := range raw {
		var entry cacheEntry
		if err := json.Unmarshal(msg, &entry); err != nil {
			logger.Debug("Dropping unparseable cache entry %q: %v", key, err)
			continue
		}
		rec := entry.record()
		if err := rec.Validate(); err != nil {
			// Legacy cleanup: old cache formats stored raw provider
			// responses without the required fields.
			logger.Debug("Dropping legacy cache entry %q: %v", key, err)
			continue
		}
		s.entries[domain.NormalizeSymbol(key)] = entry
	}
}

// Lookup returns the record for a symbol, normalizing it first.
func (s *CacheStore) Lookup(symbol string) (*domain.GeneRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[domain.NormalizeSymbol(symbol)]
	if !ok {
		return nil, false
	}
	rec := entry.record()
	return &rec, true
}

// Store inserts or overwrites the entry for the normalized symbol, then
// persists the full store. A persistence failure leaves the in-memory
// entry in place and is returned for the caller to report as a warning.
func (s *CacheStore) Store(symbol string, record *domain.GeneRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := domain.NormalizeSymbol(symbol)
	s.entries[key] = cacheEntry{
		Symbol:      record.Symbol,
		EntrezID:    record.EntrezID,
		Chromosome:  record.Chromosome,
		MapLocation: record.MapLocation,
		Description: record.Description,
		Summary:     record.Summary,
		Source:      record.SourceTier,
		FetchedAt:   time.Now().UTC(),
	}
	return s.persist()
}

// Entries returns all cached records, sorted by symbol for stable output.
func (s *CacheStore) Entries() []domain.CacheEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.entries))
	for key := range s.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	entries := make([]domain.CacheEntry, 0, len(keys))
	for _, key := range keys {
		entry := s.entries[key]
		entries = append(entries, domain.CacheEntry{
			Record:    entry.record(),
			FetchedAt: entry.FetchedAt,
		})
	}
	return entries
}

// Clear removes every entry and persists the empty store.
func (s *CacheStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]cacheEntry)
	return s.persist()
}

// Close is a no-op; every Store already persisted.
func (s *CacheStore) Close() error {
	return nil
}

// persist writes the full store durably (caller must hold lock).
// Write-new-then-replace: the JSON is written to a temp file in the
// same directory, then renamed over the cache. Rename is atomic on the
// same filesystem, so prior entries survive a crash mid-write.
func (s *CacheStore) persist() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding cache: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".cache-*.json")
	if err != nil {
		return fmt.Errorf("creating temp cache file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp cache file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting cache permissions: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing cache file: %w", err)
	}
	return nil
}

// record converts the persisted shape back into a domain record.
func (e *cacheEntry) record() domain.GeneRecord {
	return domain.GeneRecord{
		Symbol:      e.Symbol,
		EntrezID:    e.EntrezID,
		Chromosome:  e.Chromosome,
		MapLocation: e.MapLocation,
		Description: e.Description,
		Summary:     e.Summary,
		SourceTier:  e.Source,
	}
}
