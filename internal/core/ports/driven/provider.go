package driven

import (
	"context"

	"github.com/helix-tools/genedex-cli/internal/core/domain"
)

// GeneProvider resolves a gene symbol against one external data source.
// Each provider tier (genealacart, clinicaltables, entrez) implements
// this interface.
//
// Resolve encodes the three-way outcome of a tier:
//
//   - Found: a non-nil record and nil error. The record is an exact,
//     unambiguous match for the symbol, already mapped from the
//     provider's native shape (summary truncated, EntrezID as text).
//   - NotFound: domain.ErrNotFound (possibly wrapped). The provider
//     affirmatively has no record for this exact symbol; fuzzy or
//     partial matches count as NotFound, never as an uncertain record.
//   - Transient: a *domain.TransientError. Network failure, timeout,
//     malformed response, or an authentication wall.
//
// Provider-specific failure signatures are absorbed and reclassified
// inside the adapter; callers only ever see this contract.
type GeneProvider interface {
	// Name returns the provider tier identifier, e.g. "entrez".
	Name() string

	// Resolve looks up symbol. The symbol is already normalized
	// (uppercase, trimmed) by the caller. Resolve must return within
	// the adapter's configured timeout; an unbounded wait would stall
	// the whole fallback chain.
	Resolve(ctx context.Context, symbol string) (*domain.GeneRecord, error)
}

// SummaryFetcher fetches the official gene summary for a known
// identifier. Implemented by the entrez provider; used best-effort to
// enrich records from tiers that carry no summary.
type SummaryFetcher interface {
	// SummaryByID returns the summary text for an Entrez GeneID.
	// An empty string with nil error means the provider has no summary.
	SummaryByID(ctx context.Context, entrezID string) (string, error)
}
