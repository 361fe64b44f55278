// Package cli implements the genedex command line interface.
// It is a thin presentation layer: argument parsing, output rendering,
// and the interactive prompt all delegate to the resolver service.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	configfile "github.com/helix-tools/genedex-cli/internal/adapters/driven/config/file"
	storefile "github.com/helix-tools/genedex-cli/internal/adapters/driven/storage/file"
	"github.com/helix-tools/genedex-cli/internal/adapters/driven/storage/memory"
	"github.com/helix-tools/genedex-cli/internal/adapters/driven/storage/sqlite"
	"github.com/helix-tools/genedex-cli/internal/core/ports/driven"
	"github.com/helix-tools/genedex-cli/internal/core/ports/driving"
	"github.com/helix-tools/genedex-cli/internal/core/services"
	"github.com/helix-tools/genedex-cli/internal/logger"
	"github.com/helix-tools/genedex-cli/internal/providers/clinicaltables"
	"github.com/helix-tools/genedex-cli/internal/providers/entrez"
	"github.com/helix-tools/genedex-cli/internal/providers/genealacart"
)

// version is set at build time via -ldflags.
var version = "dev"

// Shared service instances, wired in initServices. Tests may inject
// their own before executing a command.
var (
	settings        *configfile.Settings
	cacheStore      driven.CacheStore
	resolverService driving.ResolverService
)

var (
	flagVerbose   bool
	flagConfigDir string
	flagCachePath string
	flagNoCache   bool
)

var rootCmd = &cobra.Command{
	Use:   "genedex [symbols...]",
	Short: "Resolve gene symbols via NCBI and GeneCards",
	Long: `Genedex resolves gene symbols (e.g. BRCA1) into structured records:
Entrez identifier, chromosome, map location, description and summary.

Lookups walk three providers in order - GeneALaCart, ClinicalTables,
NCBI Entrez - and successful results are cached locally so repeated
queries make no network calls.

With symbol arguments genedex resolves them and exits; without
arguments it enters an interactive prompt.`,
	Args:          cobra.ArbitraryArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return initServices()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return runInteractive(cmd)
		}
		return runResolve(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "config directory (default: ~/.genedex)")
	rootCmd.PersistentFlags().StringVar(&flagCachePath, "cache-path", "", "cache location override")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "resolve without reading or writing the cache file")
	rootCmd.Flags().BoolVar(&flagJSON, "json", false, "output results as JSON")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initServices loads configuration and wires the cache store, providers
// and resolver. Already-wired services (tests) are left alone.
func initServices() error {
	if resolverService != nil {
		return nil
	}

	cfg, err := configfile.Load(flagConfigDir)
	if err != nil {
		return err
	}
	settings = cfg

	logger.SetVerbose(flagVerbose || cfg.Verbose)

	store, err := openCacheStore(cfg)
	if err != nil {
		return err
	}
	cacheStore = store

	entrezProvider := entrez.New(entrez.Config{
		BaseURL: cfg.Entrez.BaseURL,
		Timeout: cfg.Timeout(),
	})

	var tiers []driven.GeneProvider
	if !cfg.GeneALaCart.Disabled {
		tiers = append(tiers, genealacart.New(genealacart.Config{
			BaseURL: cfg.GeneALaCart.BaseURL,
			Timeout: cfg.Timeout(),
		}))
	}
	if !cfg.ClinicalTables.Disabled {
		tiers = append(tiers, clinicaltables.New(clinicaltables.Config{
			BaseURL: cfg.ClinicalTables.BaseURL,
			Timeout: cfg.Timeout(),
		}))
	}
	if !cfg.Entrez.Disabled {
		tiers = append(tiers, entrezProvider)
	}
	if len(tiers) == 0 {
		return errors.New("all provider tiers are disabled")
	}

	// Summary enrichment uses Entrez even when it is not a tier.
	resolverService = services.NewResolverService(cacheStore, tiers, entrezProvider)
	return nil
}

// openCacheStore selects the cache backend from flags and settings.
func openCacheStore(cfg *configfile.Settings) (driven.CacheStore, error) {
	if flagNoCache {
		return memory.NewCacheStore(), nil
	}

	path := cfg.Cache.Path
	if flagCachePath != "" {
		path = flagCachePath
	}

	switch cfg.Cache.Backend {
	case configfile.BackendSQLite:
		store, err := sqlite.NewCacheStore(path)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite cache: %w", err)
		}
		return store, nil
	case configfile.BackendMemory:
		return memory.NewCacheStore(), nil
	default:
		store, err := storefile.NewCacheStore(path)
		if err != nil {
			return nil, fmt.Errorf("opening cache: %w", err)
		}
		return store, nil
	}
}
