// Package genealacart implements the tier 0 provider against the
// GeneCards GeneALaCart query endpoint.
//
// The endpoint is the richest source when it answers, but its JSON API
// sits behind a login wall: anonymous requests usually come back as an
// HTML login page with a 200 status. That response is an authentication
// gate, not data, and is classified as transient so the resolver falls
// through to the public tiers.
package genealacart

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/helix-tools/genedex-cli/internal/core/domain"
	"github.com/helix-tools/genedex-cli/internal/core/ports/driven"
)

// Ensure Provider implements the interface.
var _ driven.GeneProvider = (*Provider)(nil)

// Name is the provider tier identifier.
const Name = "genealacart"

// Default configuration values.
const (
	DefaultBaseURL = "https://genealacart.genecards.org"
	DefaultTimeout = 10 * time.Second
)

// Config holds configuration for the GeneALaCart provider.
type Config struct {
	// BaseURL is the service base URL (default: DefaultBaseURL).
	BaseURL string

	// Timeout is the per-request timeout (default: 10s).
	Timeout time.Duration
}

// Provider queries the GeneALaCart endpoint by symbol.
type Provider struct {
	client  *http.Client
	baseURL string
}

// queryResponse is the GeneALaCart /Query response format.
type queryResponse struct {
	Genes []geneEntry `json:"Genes"`
}

// geneEntry is one gene in a GeneALaCart response.
type geneEntry struct {
	Symbol      string      `json:"Symbol"`
	EntrezID    json.Number `json:"EntrezGeneID"`
	Description string      `json:"Description"`
	Summary     string      `json:"GeneCardsSummary"`
	Chromosome  string      `json:"Chromosome"`
	MapLocation string      `json:"MapLocation"`
}

// New creates a GeneALaCart provider.
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

// Resolve looks up symbol via the /Query endpoint.
func (p *Provider) Resolve(ctx context.Context, symbol string) (*domain.GeneRecord, error) {
	params := url.Values{}
	params.Set("geneList", symbol)
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		p.baseURL+"/Query?"+params.Encode(), nil)
	if err != nil {
		return nil, domain.Transient(Name, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, domain.Transient(Name, fmt.Errorf("send request: %w", err))
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to body classification
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, domain.Transient(Name, domain.ErrAuthRequired)
	default:
		return nil, domain.Transientf(Name, "unexpected status %d", resp.StatusCode)
	}

	// The service answers 200 with an HTML login page when a session is
	// required. A non-JSON content type plus an undecodable body is the
	// auth-wall signature.
	var parsed queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		if !isJSONContentType(resp.Header.Get("Content-Type")) {
			return nil, domain.Transient(Name,
				fmt.Errorf("%w: non-JSON response (likely login page)", domain.ErrAuthRequired))
		}
		return nil, domain.Transient(Name, fmt.Errorf("decode response: %w", err))
	}

	return mapResponse(&parsed, symbol)
}

// mapResponse translates a decoded query response into the uniform
// contract. Only an exact, unambiguous symbol match with an identifier
// becomes a record.
func mapResponse(parsed *queryResponse, symbol string) (*domain.GeneRecord, error) {
	for _, entry := range parsed.Genes {
		if !strings.EqualFold(strings.TrimSpace(entry.Symbol), symbol) {
			continue
		}
		if entry.EntrezID.String() == "" {
			// An entry without an identifier cannot be confirmed exact.
			return nil, fmt.Errorf("%s: entry for %s has no identifier: %w",
				Name, symbol, domain.ErrNotFound)
		}
		return &domain.GeneRecord{
			Symbol:      domain.NormalizeSymbol(entry.Symbol),
			EntrezID:    entry.EntrezID.String(),
			Chromosome:  entry.Chromosome,
			MapLocation: entry.MapLocation,
			Description: entry.Description,
			Summary:     domain.TruncateSummary(entry.Summary),
			SourceTier:  Name,
		}, nil
	}
	return nil, fmt.Errorf("%s: no exact match for %s: %w", Name, symbol, domain.ErrNotFound)
}

// isJSONContentType reports whether a Content-Type header denotes JSON.
func isJSONContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
