package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/helix-tools/genedex-cli/internal/core/domain"
)

var flagJSON bool

var resolveCmd = &cobra.Command{
	Use:   "resolve [symbols...]",
	Short: "Resolve gene symbols",
	Long: `Resolves each symbol through the cache and the provider tiers,
printing one result block per symbol. Symbols are resolved
independently; a failed symbol does not stop the rest.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().BoolVar(&flagJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	if resolverService == nil {
		return errors.New("resolver service not configured")
	}

	results := resolverService.ResolveAll(context.Background(), args)

	if flagJSON {
		if err := outputJSON(cmd, results); err != nil {
			return err
		}
	} else {
		for _, res := range results {
			printResolution(cmd, res)
		}
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d symbols could not be resolved", failed, len(results))
	}
	return nil
}

// resolutionOutput is the JSON shape of one per-symbol outcome.
type resolutionOutput struct {
	Symbol    string        `json:"symbol"`
	Status    string        `json:"status"`
	Record    *recordOutput `json:"record,omitempty"`
	Error     string        `json:"error,omitempty"`
	FromCache bool          `json:"from_cache,omitempty"`
	Warning   string        `json:"warning,omitempty"`
}

// recordOutput mirrors the cache persistence field names.
type recordOutput struct {
	Symbol       string `json:"symbol"`
	EntrezID     string `json:"entrez_id"`
	Chromosome   string `json:"chromosome,omitempty"`
	MapLocation  string `json:"map_location,omitempty"`
	Description  string `json:"description,omitempty"`
	Summary      string `json:"summary,omitempty"`
	Source       string `json:"source,omitempty"`
	NCBIURL      string `json:"ncbi_url,omitempty"`
	GeneCardsURL string `json:"genecards_url,omitempty"`
}

func outputJSON(cmd *cobra.Command, results []domain.Resolution) error {
	out := make([]resolutionOutput, 0, len(results))
	for _, res := range results {
		entry := resolutionOutput{
			Symbol:    res.Symbol,
			FromCache: res.FromCache,
		}
		switch {
		case res.Err == nil:
			entry.Status = "resolved"
			entry.Record = &recordOutput{
				Symbol:       res.Record.Symbol,
				EntrezID:     res.Record.EntrezID,
				Chromosome:   res.Record.Chromosome,
				MapLocation:  res.Record.MapLocation,
				Description:  res.Record.Description,
				Summary:      res.Record.Summary,
				Source:       res.Record.SourceTier,
				NCBIURL:      res.Record.NCBIURL(),
				GeneCardsURL: res.Record.GeneCardsURL(),
			}
		case domain.IsNotFound(res.Err):
			entry.Status = "not_found"
			entry.Error = res.Err.Error()
		default:
			entry.Status = "lookup_failed"
			entry.Error = res.Err.Error()
		}
		if res.Warning != nil {
			entry.Warning = res.Warning.Error()
		}
		out = append(out, entry)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// printResolution renders one outcome as text.
// Format follows: SYMBOL | Entrez:ID | Chr:N | Loc:LOC, then the
// description, summary and links on their own lines.
func printResolution(cmd *cobra.Command, res domain.Resolution) {
	switch {
	case res.Err == nil:
		printRecord(cmd, res.Record)
		if res.FromCache {
			cmd.Println("(cached)")
		}
	case domain.IsNotFound(res.Err):
		cmd.Printf("Gene not found: %s\n", res.Symbol)
	default:
		cmd.Printf("Lookup failed for %s: %v\n", res.Symbol, errorDetail(res.Err))
		cmd.Println("The providers may be unreachable; retrying later can succeed.")
	}

	if res.Warning != nil {
		cmd.Printf("Warning: result not cached: %v\n", res.Warning)
	}
	cmd.Println()
}

func printRecord(cmd *cobra.Command, rec *domain.GeneRecord) {
	header := rec.Symbol
	if rec.EntrezID != "" {
		header += " | Entrez:" + rec.EntrezID
	}
	if rec.Chromosome != "" {
		header += " | Chr:" + rec.Chromosome
	}
	if rec.MapLocation != "" {
		header += " | Loc:" + rec.MapLocation
	}
	cmd.Println(header)

	if rec.Description != "" {
		cmd.Printf("Description: %s\n", rec.Description)
	} else {
		cmd.Printf("No description available for %s\n", rec.Symbol)
	}
	if rec.Summary != "" {
		cmd.Printf("Summary: %s\n", rec.Summary)
	}
	if url := rec.NCBIURL(); url != "" {
		cmd.Printf("NCBI: %s\n", url)
	}
	if url := rec.GeneCardsURL(); url != "" {
		cmd.Printf("GeneCards: %s\n", url)
	}
}

// errorDetail prefers the transient cause over the full wrap chain.
func errorDetail(err error) string {
	if te, ok := domain.AsTransient(err); ok {
		return te.Error()
	}
	return err.Error()
}
