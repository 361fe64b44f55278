// Package entrez implements the tier 2 provider against the NCBI
// E-utilities. It is the authoritative, most exact tier: a two-step
// lookup of esearch by exact gene symbol (human organism) followed by
// esummary on the returned identifier.
//
// Zero or ambiguous identifier results report not-found; an esearch hit
// whose esummary name does not equal the query symbol also reports
// not-found rather than substituting a related gene.
package entrez

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/helix-tools/genedex-cli/internal/core/domain"
	"github.com/helix-tools/genedex-cli/internal/core/ports/driven"
)

// Ensure Provider implements both ports.
var (
	_ driven.GeneProvider   = (*Provider)(nil)
	_ driven.SummaryFetcher = (*Provider)(nil)
)

// Name is the provider tier identifier.
const Name = "entrez"

// Default configuration values.
const (
	DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"
	DefaultTimeout = 10 * time.Second

	// searchMax bounds the esearch id list; more than one id for an
	// exact-symbol term means the symbol is ambiguous.
	searchMax = 5
)

// Config holds configuration for the Entrez provider.
type Config struct {
	// BaseURL is the E-utilities base URL (default: DefaultBaseURL).
	BaseURL string

	// Timeout is the per-request timeout (default: 10s).
	Timeout time.Duration
}

// Provider performs the esearch + esummary two-step lookup.
type Provider struct {
	client  *http.Client
	baseURL string
}

// esearchResponse is the esearch.fcgi retmode=json response format.
type esearchResponse struct {
	Result esearchResult `json:"esearchresult"`
}

type esearchResult struct {
	Count  string   `json:"count"`
	IDList []string `json:"idlist"`
}

// esummaryResponse is the esummary.fcgi retmode=json response format.
// Gene documents are keyed by uid inside "result", alongside a "uids"
// index, so the document map is decoded lazily.
type esummaryResponse struct {
	Result map[string]json.RawMessage `json:"result"`
}

// geneSummary is one gene document within an esummary response.
type geneSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Chromosome  string `json:"chromosome"`
	MapLocation string `json:"maplocation"`
	Summary     string `json:"summary"`
}

// New creates an Entrez provider.
func New(cfg Config) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Provider{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// Name returns the provider tier identifier.
func (p *Provider) Name() string {
	return Name
}

// Resolve performs the two-step lookup for symbol.
func (p *Provider) Resolve(ctx context.Context, symbol string) (*domain.GeneRecord, error) {
	id, err := p.searchID(ctx, symbol)
	if err != nil {
		return nil, err
	}

	doc, err := p.fetchSummary(ctx, id)
	if err != nil {
		return nil, err
	}

	// The esearch term is exact-symbol scoped, but verify the summary
	// agrees before trusting it.
	if !strings.EqualFold(strings.TrimSpace(doc.Name), symbol) {
		return nil, fmt.Errorf("%s: id %s resolves to %q, not %s: %w",
			Name, id, doc.Name, symbol, domain.ErrNotFound)
	}

	return &domain.GeneRecord{
		Symbol:      domain.NormalizeSymbol(doc.Name),
		EntrezID:    id,
		Chromosome:  doc.Chromosome,
		MapLocation: doc.MapLocation,
		Description: doc.Description,
		Summary:     domain.TruncateSummary(doc.Summary),
		SourceTier:  Name,
	}, nil
}

// SummaryByID fetches the official gene summary for an Entrez GeneID.
func (p *Provider) SummaryByID(ctx context.Context, entrezID string) (string, error) {
	doc, err := p.fetchSummary(ctx, entrezID)
	if err != nil {
		return "", err
	}
	return doc.Summary, nil
}

// searchID finds the single GeneID for an exact symbol, human organism.
func (p *Provider) searchID(ctx context.Context, symbol string) (string, error) {
	params := url.Values{}
	params.Set("db", "gene")
	params.Set("term", fmt.Sprintf("%q[Gene Symbol] AND human[orgn]", symbol))
	params.Set("retmode", "json")
	params.Set("retmax", fmt.Sprintf("%d", searchMax))

	var parsed esearchResponse
	if err := p.getJSON(ctx, "/esearch.fcgi", params, &parsed); err != nil {
		return "", err
	}

	ids := parsed.Result.IDList
	switch {
	case len(ids) == 0:
		return "", fmt.Errorf("%s: no identifier for %s: %w", Name, symbol, domain.ErrNotFound)
	case len(ids) > 1:
		// Several ids for an exact-symbol term: the symbol is ambiguous
		// and no single record can be confirmed.
		return "", fmt.Errorf("%s: %d identifiers for %s: %w",
			Name, len(ids), symbol, domain.ErrNotFound)
	}
	return ids[0], nil
}

// fetchSummary retrieves the esummary gene document for an id.
func (p *Provider) fetchSummary(ctx context.Context, id string) (*geneSummary, error) {
	params := url.Values{}
	params.Set("db", "gene")
	params.Set("id", id)
	params.Set("retmode", "json")

	var parsed esummaryResponse
	if err := p.getJSON(ctx, "/esummary.fcgi", params, &parsed); err != nil {
		return nil, err
	}

	raw, ok := parsed.Result[id]
	if !ok {
		return nil, domain.Transientf(Name, "esummary response missing document for id %s", id)
	}
	var doc geneSummary
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, domain.Transient(Name, fmt.Errorf("decode gene document: %w", err))
	}
	return &doc, nil
}

// getJSON issues a GET against an E-utilities endpoint and decodes the
// JSON response into out.
func (p *Provider) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		p.baseURL+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return domain.Transient(Name, fmt.Errorf("create request: %w", err))
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return domain.Transient(Name, fmt.Errorf("send request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Transientf(Name, "%s: unexpected status %d", endpoint, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.Transient(Name, fmt.Errorf("decode %s response: %w", endpoint, err))
	}
	return nil
}
