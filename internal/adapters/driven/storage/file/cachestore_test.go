package file

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helix-tools/genedex-cli/internal/core/domain"
)

func newTestStore(t *testing.T) (*CacheStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.json")
	store, err := NewCacheStore(path)
	require.NoError(t, err)
	return store, path
}

func TestCacheStore_MissingFileIsEmpty(t *testing.T) {
	store, path := newTestStore(t)
	assert.Empty(t, store.Entries())

	// The file itself is only created on first write.
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestCacheStore_RoundTrip(t *testing.T) {
	store, path := newTestStore(t)

	rec := &domain.GeneRecord{
		Symbol:      "BRCA1",
		EntrezID:    "672",
		Chromosome:  "17",
		MapLocation: "17q21.31",
		Description: "BRCA1 DNA repair associated",
		Summary:     "This gene encodes a tumor suppressor.",
		SourceTier:  "clinicaltables",
	}
	require.NoError(t, store.Store("brca1", rec))

	// A fresh store over the same file sees the persisted entry.
	reopened, err := NewCacheStore(path)
	require.NoError(t, err)
	got, ok := reopened.Lookup("BRCA1")
	require.True(t, ok)
	assert.Equal(t, *rec, *got)
}

func TestCacheStore_CaseInsensitiveLookup(t *testing.T) {
	store, _ := newTestStore(t)
	rec := &domain.GeneRecord{Symbol: "BRCA1", EntrezID: "672"}
	require.NoError(t, store.Store("BRCA1", rec))

	for _, query := range []string{"brca1", "BRCA1", " BRCA1 "} {
		got, ok := store.Lookup(query)
		require.True(t, ok, "lookup %q", query)
		assert.Equal(t, "672", got.EntrezID)
	}
}

// TestCacheStore_CorruptionTolerance verifies that a cache file with one
// well-formed entry and one entry missing the identifier loads the
// well-formed entry only.
func TestCacheStore_CorruptionTolerance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	payload := `{
		"BRCA1": {"symbol": "BRCA1", "entrez_id": "672", "chromosome": "17"},
		"TP53": {"symbol": "TP53", "description": "no identifier here"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0600))

	store, err := NewCacheStore(path)
	require.NoError(t, err)

	assert.Len(t, store.Entries(), 1)
	got, ok := store.Lookup("BRCA1")
	require.True(t, ok)
	assert.Equal(t, "672", got.EntrezID)

	_, ok = store.Lookup("TP53")
	assert.False(t, ok)
}

// TestCacheStore_LegacyEntriesDropped covers the old format that stored
// raw provider responses under a "data" key.
func TestCacheStore_LegacyEntriesDropped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	payload := `{
		"KRAS": {"data": {"hits": []}, "fetched_at": "2023-01-01T00:00:00Z"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0600))

	store, err := NewCacheStore(path)
	require.NoError(t, err)
	assert.Empty(t, store.Entries())
}

func TestCacheStore_GarbageFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path, []byte("not json at all"), 0600))

	store, err := NewCacheStore(path)
	require.NoError(t, err)
	assert.Empty(t, store.Entries())

	// The store stays usable: the next write replaces the garbage.
	require.NoError(t, store.Store("TP53", &domain.GeneRecord{Symbol: "TP53", EntrezID: "7157"}))
	reopened, err := NewCacheStore(path)
	require.NoError(t, err)
	assert.Len(t, reopened.Entries(), 1)
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

// TestCacheStore_PersistedShape pins the on-disk field names so older
// caches keep loading.
func TestCacheStore_PersistedShape(t *testing.T) {
	store, path := newTestStore(t)
	rec := &domain.GeneRecord{Symbol: "BRCA1", EntrezID: "672", SourceTier: "entrez"}
	require.NoError(t, store.Store("BRCA1", rec))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	entry, ok := raw["BRCA1"]
	require.True(t, ok)
	assert.Equal(t, "672", entry["entrez_id"])
	assert.Equal(t, "entrez", entry["source"])
	assert.Contains(t, entry, "fetched_at")
}

// TestCacheStore_NoStrayTempFiles verifies write-new-then-replace cleans
// up after itself.
func TestCacheStore_NoStrayTempFiles(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, store.Store("BRCA1", &domain.GeneRecord{Symbol: "BRCA1", EntrezID: "672"}))

	matches, err := filepath.Glob(filepath.Join(filepath.Dir(path), ".cache-*"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestCacheStore_Clear(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, store.Store("BRCA1", &domain.GeneRecord{Symbol: "BRCA1", EntrezID: "672"}))
	require.NoError(t, store.Clear())

	reopened, err := NewCacheStore(path)
	require.NoError(t, err)
	assert.Empty(t, reopened.Entries())
}
