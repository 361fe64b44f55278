package cli

import (
	"context"

	"github.com/helix-tools/genedex-cli/internal/adapters/driven/storage/memory"
	"github.com/helix-tools/genedex-cli/internal/core/domain"
	"github.com/helix-tools/genedex-cli/internal/core/ports/driven"
	"github.com/helix-tools/genedex-cli/internal/core/services"
)

// stubProvider resolves from a fixed symbol table, for command tests.
type stubProvider struct {
	records map[string]domain.GeneRecord
}

func (p *stubProvider) Name() string {
	return "stub"
}

func (p *stubProvider) Resolve(_ context.Context, symbol string) (*domain.GeneRecord, error) {
	rec, ok := p.records[symbol]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

// setupTestServices wires the shared services against an in-memory
// cache and a stub provider. The returned cleanup restores the
// package-level state.
func setupTestServices() func() {
	store := memory.NewCacheStore()
	provider := &stubProvider{records: map[string]domain.GeneRecord{
		"BRCA1": {
			Symbol:      "BRCA1",
			EntrezID:    "672",
			Chromosome:  "17",
			MapLocation: "17q21.31",
			Description: "BRCA1 DNA repair associated",
			Summary:     "Tumor suppressor.",
			SourceTier:  "stub",
		},
		"TP53": {
			Symbol:   "TP53",
			EntrezID: "7157",
		},
	}}

	cacheStore = store
	resolverService = services.NewResolverService(store, []driven.GeneProvider{provider}, nil)

	return func() {
		cacheStore = nil
		resolverService = nil
		flagJSON = false
		flagVerbose = false
		flagNoCache = false
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}
}
