package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxSummaryLen is the maximum length of GeneRecord.Summary.
// Longer summaries are truncated by TruncateSummary before a record
// leaves a provider adapter.
const MaxSummaryLen = 300

// GeneRecord is the resolved unit of knowledge about one gene symbol.
// A record only ever exists because a provider returned a successful,
// exact-match response; partial or ambiguous matches never become records.
type GeneRecord struct {
	// Symbol is the canonical uppercase gene symbol. It is the cache key.
	Symbol string

	// EntrezID is the provider-assigned numeric identifier, kept as text
	// to avoid precision loss.
	EntrezID string

	// Chromosome is a short label such as "17". May be empty.
	Chromosome string

	// MapLocation is the cytogenetic location, e.g. "17q21.31". May be empty.
	MapLocation string

	// Description is the longer free-text description. May be empty.
	Description string

	// Summary is a short (<= MaxSummaryLen chars) description,
	// truncated if the provider returned more. May be empty.
	Summary string

	// SourceTier names the provider tier that produced this record.
	// Diagnostic only; correctness never depends on it.
	SourceTier string
}

// Validate checks that the record carries the fields every persisted
// record must have.
func (r *GeneRecord) Validate() error {
	if strings.TrimSpace(r.Symbol) == "" {
		return fmt.Errorf("%w: empty symbol", ErrInvalidRecord)
	}
	if strings.TrimSpace(r.EntrezID) == "" {
		return fmt.Errorf("%w: missing entrez id for %s", ErrInvalidRecord, r.Symbol)
	}
	return nil
}

// NCBIURL returns the NCBI Gene page for this record, or "" when the
// record has no Entrez ID.
func (r *GeneRecord) NCBIURL() string {
	if r.EntrezID == "" {
		return ""
	}
	return "https://www.ncbi.nlm.nih.gov/gene/" + r.EntrezID
}

// GeneCardsURL returns the GeneCards page for this record's symbol.
// The card page is public even when the GeneALaCart API is auth-walled.
func (r *GeneRecord) GeneCardsURL() string {
	if r.Symbol == "" {
		return ""
	}
	return "https://www.genecards.org/cgi-bin/carddisp.pl?gene=" + r.Symbol
}

// CacheEntry wraps a persisted GeneRecord with bookkeeping.
// FetchedAt is informational; no expiry is enforced.
type CacheEntry struct {
	Record    GeneRecord
	FetchedAt time.Time
}

// Resolution is the per-symbol outcome handed to the presentation layer.
// Exactly one of Record or Err is set.
type Resolution struct {
	// Symbol is the normalized symbol that was resolved.
	Symbol string

	// Record is the resolved record on success.
	Record *GeneRecord

	// Err is ErrNotFound (wrapped) for confirmed absence, or a
	// *TransientError when at least one tier failed transiently and
	// none confirmed absence.
	Err error

	// FromCache reports whether the record was served without provider calls.
	FromCache bool

	// Warning carries a non-fatal cache persistence failure. The
	// resolution itself still succeeded; only future runs lose the
	// cached benefit.
	Warning error
}

// NormalizeSymbol canonicalizes a query symbol: surrounding whitespace
// trimmed, case folded to uppercase. Lookups are case-insensitive by
// construction because every key passes through here.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// TruncateSummary shortens s to at most MaxSummaryLen characters,
// collapsing internal whitespace first. Truncation appends "..." within
// the limit. The limit counts characters, not bytes, so multi-byte
// text is never cut mid-rune.
func TruncateSummary(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= MaxSummaryLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:MaxSummaryLen-3]) + "..."
}
