package sqlite

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helix-tools/genedex-cli/internal/core/domain"
)

func newTestStore(t *testing.T) (*CacheStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.db")
	store, err := NewCacheStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, path
}

func TestCacheStore_RoundTrip(t *testing.T) {
	store, path := newTestStore(t)

	rec := &domain.GeneRecord{
		Symbol:      "BRCA1",
		EntrezID:    "672",
		Chromosome:  "17",
		MapLocation: "17q21.31",
		Description: "BRCA1 DNA repair associated",
		SourceTier:  "entrez",
	}
	require.NoError(t, store.Store("brca1", rec))

	got, ok := store.Lookup(" BRCA1 ")
	require.True(t, ok)
	assert.Equal(t, *rec, *got)

	// Reopen: rows are loaded into memory at open.
	require.NoError(t, store.Close())
	reopened, err := NewCacheStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, ok = reopened.Lookup("BRCA1")
	require.True(t, ok)
	assert.Equal(t, "672", got.EntrezID)
	assert.Equal(t, "entrez", got.SourceTier)
}

func TestCacheStore_Overwrite(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Store("TP53", &domain.GeneRecord{Symbol: "TP53", EntrezID: "1"}))
	require.NoError(t, store.Store("TP53", &domain.GeneRecord{Symbol: "TP53", EntrezID: "7157"}))

	got, ok := store.Lookup("TP53")
	require.True(t, ok)
	assert.Equal(t, "7157", got.EntrezID)
	assert.Len(t, store.Entries(), 1)
}

// TestCacheStore_LegacyRowsDropped verifies rows without an identifier
// are discarded at load instead of surfacing as records.
func TestCacheStore_LegacyRowsDropped(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, store.Store("BRCA1", &domain.GeneRecord{Symbol: "BRCA1", EntrezID: "672"}))
	require.NoError(t, store.Close())

	// Plant a malformed row the way an older version might have left it.
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO gene_cache (symbol, entrez_id) VALUES ('TP53', '')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	reopened, err := NewCacheStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	assert.Len(t, reopened.Entries(), 1)
	_, ok := reopened.Lookup("TP53")
	assert.False(t, ok)
}

func TestCacheStore_Clear(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, store.Store("BRCA1", &domain.GeneRecord{Symbol: "BRCA1", EntrezID: "672"}))
	require.NoError(t, store.Clear())
	require.NoError(t, store.Close())

	reopened, err := NewCacheStore(path)
	require.NoError(t, err)
	defer reopened.Close()
	assert.Empty(t, reopened.Entries())
}
