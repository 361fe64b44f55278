package driving

import (
	"context"

	"github.com/helix-tools/genedex-cli/internal/core/domain"
)

// ResolverService resolves gene symbols into records.
type ResolverService interface {
	// Resolve resolves one symbol: cache check first, then the provider
	// tiers in fixed order until one succeeds or all are exhausted.
	// The outcome (record, not-found, or lookup-failed) is carried in
	// the Resolution; Resolve itself only errors on invalid input.
	Resolve(ctx context.Context, symbol string) domain.Resolution

	// ResolveAll resolves symbols independently and sequentially,
	// preserving input order. One symbol's exhaustion does not abort
	// the others.
	ResolveAll(ctx context.Context, symbols []string) []domain.Resolution
}
