package services

import (
	"context"
	"fmt"

	"github.com/helix-tools/genedex-cli/internal/core/domain"
	"github.com/helix-tools/genedex-cli/internal/core/ports/driven"
	"github.com/helix-tools/genedex-cli/internal/core/ports/driving"
	"github.com/helix-tools/genedex-cli/internal/logger"
)

// Ensure ResolverService implements the interface.
var _ driving.ResolverService = (*ResolverService)(nil)

// ResolverService walks the provider tiers for each symbol, consulting
// the cache first and writing successful resolutions through to it.
//
// Per symbol the service is a small state machine:
//
//	CacheCheck -> Tier0 -> Tier1 -> Tier2 -> Resolved | Exhausted
//
// A Found result short-circuits the walk; NotFound and transient
// failures advance to the next tier. On exhaustion the outcome is
// ErrNotFound only if every tier confirmed absence; otherwise the last
// transient failure is reported, since a retryable failure must not
// masquerade as a confirmed absence.
type ResolverService struct {
	cache     driven.CacheStore
	providers []driven.GeneProvider
	summaries driven.SummaryFetcher
}

// NewResolverService creates a resolver over the given cache store and
// providers in tier order. The summaries parameter is optional (can be
// nil); when set, records resolved without a summary are enriched
// best-effort before caching.
func NewResolverService(
	cache driven.CacheStore,
	providers []driven.GeneProvider,
	summaries driven.SummaryFetcher,
) *ResolverService {
	return &ResolverService{
		cache:     cache,
		providers: providers,
		summaries: summaries,
	}
}

// Resolve resolves one symbol through the cache and the provider tiers.
func (s *ResolverService) Resolve(ctx context.Context, symbol string) domain.Resolution {
	key := domain.NormalizeSymbol(symbol)
	if key == "" {
		return domain.Resolution{
			Symbol: symbol,
			Err:    fmt.Errorf("%w: empty gene symbol", domain.ErrInvalidInput),
		}
	}

	logger.Section("Resolving " + key)

	// CacheCheck: a hit is terminal, no network calls and no re-validation.
	if rec, ok := s.cache.Lookup(key); ok {
		logger.Debug("Cache hit for %s (source: %s)", key, rec.SourceTier)
		return domain.Resolution{Symbol: key, Record: rec, FromCache: true}
	}
	logger.Debug("Cache miss for %s", key)

	// Walk tiers strictly in order. Transient failures are retained for
	// reporting but never stop the walk.
	var lastTransient *domain.TransientError
	for _, provider := range s.providers {
		logger.Debug("Trying provider %s", provider.Name())

		rec, err := provider.Resolve(ctx, key)
		switch {
		case err == nil:
			logger.Info("Resolved %s via %s (entrez %s)", key, provider.Name(), rec.EntrezID)
			return s.resolved(ctx, key, rec)

		case domain.IsNotFound(err):
			logger.Debug("%s: not found in %s", key, provider.Name())

		case domain.IsTransient(err):
			lastTransient, _ = domain.AsTransient(err)
			logger.Warn("%s failed transiently: %v", provider.Name(), err)

		default:
			// Providers honour the three-way contract; treat anything
			// unexpected as transient so it is never cached or
			// conflated with absence.
			lastTransient = domain.Transient(provider.Name(), err)
			logger.Warn("%s returned unclassified error: %v", provider.Name(), err)
		}
	}

	// Exhausted.
	if lastTransient != nil {
		logger.Warn("All providers exhausted for %s; last failure: %v", key, lastTransient)
		return domain.Resolution{
			Symbol: key,
			Err:    fmt.Errorf("lookup failed for %s: %w", key, lastTransient),
		}
	}
	logger.Info("All providers confirmed absence of %s", key)
	return domain.Resolution{
		Symbol: key,
		Err:    fmt.Errorf("%s: %w", key, domain.ErrNotFound),
	}
}

// ResolveAll resolves symbols independently and sequentially, preserving
// input order.
func (s *ResolverService) ResolveAll(ctx context.Context, symbols []string) []domain.Resolution {
	results := make([]domain.Resolution, 0, len(symbols))
	for _, symbol := range symbols {
		results = append(results, s.Resolve(ctx, symbol))
	}
	return results
}

// resolved finalizes a Found outcome: optional summary enrichment, then
// write-through to the cache before returning to the caller.
func (s *ResolverService) resolved(ctx context.Context, key string, rec *domain.GeneRecord) domain.Resolution {
	s.enrichSummary(ctx, rec)

	res := domain.Resolution{Symbol: key, Record: rec}
	if err := s.cache.Store(key, rec); err != nil {
		// Persistence failure is non-fatal: the in-memory result is
		// still valid, only future runs lose the cached benefit.
		logger.Warn("Cache write for %s failed: %v", key, err)
		res.Warning = fmt.Errorf("caching %s: %w", key, err)
	}
	return res
}

// enrichSummary backfills a missing summary from the official Entrez
// record. Best-effort: enrichment failures are ignored.
func (s *ResolverService) enrichSummary(ctx context.Context, rec *domain.GeneRecord) {
	if s.summaries == nil || rec.Summary != "" || rec.EntrezID == "" {
		return
	}
	summary, err := s.summaries.SummaryByID(ctx, rec.EntrezID)
	if err != nil {
		logger.Debug("Summary enrichment for %s failed: %v", rec.Symbol, err)
		return
	}
	if summary != "" {
		rec.Summary = domain.TruncateSummary(summary)
	}
}
