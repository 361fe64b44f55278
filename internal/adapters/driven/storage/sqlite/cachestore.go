// Package sqlite provides a SQLite-backed CacheStore, selectable via
// cache.backend = "sqlite". Durability per write comes from SQLite's
// own journalling instead of the JSON store's file replacement.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/helix-tools/genedex-cli/internal/core/domain"
	"github.com/helix-tools/genedex-cli/internal/core/ports/driven"
	"github.com/helix-tools/genedex-cli/internal/logger"
)

// Ensure CacheStore implements the interface.
var _ driven.CacheStore = (*CacheStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS gene_cache (
	symbol       TEXT PRIMARY KEY,
	entrez_id    TEXT NOT NULL,
	chromosome   TEXT NOT NULL DEFAULT '',
	map_location TEXT NOT NULL DEFAULT '',
	description  TEXT NOT NULL DEFAULT '',
	summary      TEXT NOT NULL DEFAULT '',
	source       TEXT NOT NULL DEFAULT '',
	fetched_at   TEXT NOT NULL DEFAULT ''
)`

// CacheStore is a SQLite-backed implementation of driven.CacheStore.
// Rows are loaded fully into memory at open; the database is only
// touched again on writes.
type CacheStore struct {
	mu      sync.RWMutex
	db      *sql.DB
	path    string
	entries map[string]domain.CacheEntry
}

// NewCacheStore opens (or creates) the cache database at path.
// If path is empty, defaults to ~/.genedex/cache.db.
func NewCacheStore(path string) (*CacheStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, ".genedex", "cache.db")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}

	s := &CacheStore{
		db:      db,
		path:    path,
		entries: make(map[string]domain.CacheEntry),
	}
	if err := s.load(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Path returns the database file path.
func (s *CacheStore) Path() string {
	return s.path
}

// load reads every row into memory. Rows missing a required field are
// legacy leftovers and are dropped rather than surfaced.
func (s *CacheStore) load() error {
	rows, err := s.db.Query(`
		SELECT symbol, entrez_id, chromosome, map_location, description, summary, source, fetched_at
		FROM gene_cache
	`)
	if err != nil {
		return fmt.Errorf("querying gene cache: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec domain.GeneRecord
		var fetchedAt string
		if err := rows.Scan(&rec.Symbol, &rec.EntrezID, &rec.Chromosome, &rec.MapLocation,
			&rec.Description, &rec.Summary, &rec.SourceTier, &fetchedAt); err != nil {
			return fmt.Errorf("scanning gene cache row: %w", err)
		}
		if err := rec.Validate(); err != nil {
			logger.Debug("Dropping legacy cache row %q: %v", rec.Symbol, err)
			continue
		}
		entry := domain.CacheEntry{Record: rec}
		if t, err := time.Parse(time.RFC3339, fetchedAt); err == nil {
			entry.FetchedAt = t
		}
		s.entries[domain.NormalizeSymbol(rec.Symbol)] = entry
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating gene cache rows: %w", err)
	}
	return nil
}

// Lookup returns the record for a symbol, normalizing it first.
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

// Store upserts the entry for the normalized symbol. A database failure
// leaves the in-memory entry in place and is returned as a warning.
func (s *CacheStore) Store(symbol string, record *domain.GeneRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := domain.NormalizeSymbol(symbol)
	now := time.Now().UTC()
	s.entries[key] = domain.CacheEntry{Record: *record, FetchedAt: now}

	_, err := s.db.Exec(`
		INSERT INTO gene_cache (symbol, entrez_id, chromosome, map_location, description, summary, source, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(symbol) DO UPDATE SET
			entrez_id = excluded.entrez_id,
			chromosome = excluded.chromosome,
			map_location = excluded.map_location,
			description = excluded.description,
			summary = excluded.summary,
			source = excluded.source,
			fetched_at = excluded.fetched_at
	`, key, record.EntrezID, record.Chromosome, record.MapLocation,
		record.Description, record.Summary, record.SourceTier, now.Format(time.RFC3339))

	if err != nil {
		return fmt.Errorf("saving gene cache entry: %w", err)
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
	if _, err := s.db.Exec(`DELETE FROM gene_cache`); err != nil {
		return fmt.Errorf("clearing gene cache: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *CacheStore) Close() error {
	return s.db.Close()
}
