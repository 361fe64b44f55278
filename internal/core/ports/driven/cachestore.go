package driven

import (
	"github.com/helix-tools/genedex-cli/internal/core/domain"
)

// CacheStore persists resolved gene records keyed by normalized symbol.
// Implementations load durable storage fully into memory at construction
// and own the on-disk representation exclusively; the resolver holds a
// transient view for one process invocation.
//
// Entries that fail to parse into a well-formed GeneRecord (missing
// required field, wrong shape) are silently dropped during load, never
// surfaced as valid records and never fatal to the whole load.
type CacheStore interface {
	// Lookup returns the record for a symbol, normalizing it first.
	// The second return reports whether an entry exists.
	Lookup(symbol string) (*domain.GeneRecord, bool)

	// Store inserts or overwrites the entry for the normalized symbol
	// and persists the full store durably. Overwrite semantics: logical
	// duplicates never error. A returned error means the in-memory
	// update succeeded but durable persistence failed; callers treat it
	// as a warning, not a resolution failure.
	Store(symbol string, record *domain.GeneRecord) error

	// Entries returns all cached records, for presentation listing.
	Entries() []domain.CacheEntry

	// Clear removes every entry and persists the empty store.
	Clear() error

	// Close releases resources.
	Close() error
}
