// Package clinicaltables implements the tier 1 provider against the
// NLM ClinicalTables NCBI genes search API.
//
// The API is public and fast but fuzzy: querying "TP53" happily returns
// "TP53TG3" and friends. The adapter therefore requires exact
// (case-insensitive, trimmed) equality between the query and a result's
// symbol field before reporting a match; anything less is not-found.
package clinicaltables

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

// Ensure Provider implements the interface.
var _ driven.GeneProvider = (*Provider)(nil)

// Name is the provider tier identifier.
const Name = "clinicaltables"

// Default configuration values.
const (
	DefaultBaseURL = "https://clinicaltables.nlm.nih.gov"
	DefaultTimeout = 10 * time.Second

	// maxResults bounds how many candidates are scanned for an exact match.
	maxResults = 20
)

// Extra-field keys requested via the ef parameter.
const (
	efGeneID      = "GeneID"
	efChromosome  = "chromosome"
	efMapLocation = "map_location"
)

// Config holds configuration for the ClinicalTables provider.
type Config struct {
	// BaseURL is the service base URL (default: DefaultBaseURL).
	BaseURL string

	// Timeout is the per-request timeout (default: 10s).
	Timeout time.Duration
}

// Provider searches the ClinicalTables NCBI genes table by symbol.
type Provider struct {
	client  *http.Client
	baseURL string
}

// searchResponse is the decoded form of the API's positional array:
//
//	[total, codes, extraFields|null, displays]
//
// where displays rows match the requested df order (Symbol, description)
// and extraFields maps each ef key to a column of values aligned with
// the display rows.
type searchResponse struct {
	Total    int
	Extra    map[string][]string
	Displays [][]string
}

// UnmarshalJSON decodes the positional array into the named fields.
func (r *searchResponse) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	if len(parts) < 4 {
		return fmt.Errorf("expected 4 response elements, got %d", len(parts))
	}

	if err := json.Unmarshal(parts[0], &r.Total); err != nil {
		return fmt.Errorf("total: %w", err)
	}

	// Element 2 is null when no extra fields were requested or found.
	if string(parts[2]) != "null" {
		var extra map[string][]json.RawMessage
		if err := json.Unmarshal(parts[2], &extra); err != nil {
			return fmt.Errorf("extra fields: %w", err)
		}
		r.Extra = make(map[string][]string, len(extra))
		for key, col := range extra {
			values := make([]string, len(col))
			for i, raw := range col {
				values[i] = rawToString(raw)
			}
			r.Extra[key] = values
		}
	}

	if string(parts[3]) != "null" {
		if err := json.Unmarshal(parts[3], &r.Displays); err != nil {
			return fmt.Errorf("display fields: %w", err)
		}
	}
	return nil
}

// rawToString renders a scalar JSON value as text. Extra-field columns
// mix strings and numbers (GeneID comes back numeric).
func rawToString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// New creates a ClinicalTables provider.
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

// Resolve searches for symbol and requires an exact symbol match.
func (p *Provider) Resolve(ctx context.Context, symbol string) (*domain.GeneRecord, error) {
	params := url.Values{}
	params.Set("terms", symbol)
	params.Set("df", "Symbol,description")
	params.Set("ef", strings.Join([]string{efGeneID, efChromosome, efMapLocation}, ","))
	params.Set("count", fmt.Sprintf("%d", maxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		p.baseURL+"/api/ncbi_genes/v3/search?"+params.Encode(), nil)
	if err != nil {
		return nil, domain.Transient(Name, fmt.Errorf("create request: %w", err))
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, domain.Transient(Name, fmt.Errorf("send request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.Transientf(Name, "unexpected status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, domain.Transient(Name, fmt.Errorf("decode response: %w", err))
	}

	return mapResponse(&parsed, symbol)
}

// mapResponse scans the candidates for an exact symbol match. Fuzzy
// neighbours (TP53 vs TP53TG3) never substitute for the query.
func mapResponse(parsed *searchResponse, symbol string) (*domain.GeneRecord, error) {
	for idx, row := range parsed.Displays {
		if len(row) == 0 {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(row[0]), symbol) {
			continue
		}

		geneID := extraAt(parsed.Extra, efGeneID, idx)
		if geneID == "" {
			return nil, fmt.Errorf("%s: match for %s has no GeneID: %w",
				Name, symbol, domain.ErrNotFound)
		}

		rec := &domain.GeneRecord{
			Symbol:      domain.NormalizeSymbol(row[0]),
			EntrezID:    geneID,
			Chromosome:  extraAt(parsed.Extra, efChromosome, idx),
			MapLocation: extraAt(parsed.Extra, efMapLocation, idx),
			SourceTier:  Name,
		}
		if len(row) > 1 {
			rec.Description = row[1]
		}
		return rec, nil
	}
	return nil, fmt.Errorf("%s: no exact match for %s: %w", Name, symbol, domain.ErrNotFound)
}

// extraAt returns the extra-field value for a column key at a row index.
func extraAt(extra map[string][]string, key string, idx int) string {
	col, ok := extra[key]
	if !ok || idx >= len(col) {
		return ""
	}
	return col[idx]
}
