// Package file loads Genedex settings from a TOML file with
// environment-variable overrides. The file lives in the genedex config
// directory and every field has a working default, so a missing file is
// a valid configuration.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

// Cache backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Settings is the full Genedex configuration.
type Settings struct {
	// Verbose enables debug logging without the --verbose flag.
	Verbose bool `toml:"verbose" env:"GENEDEX_VERBOSE"`

	// TimeoutSeconds is the per-provider HTTP timeout.
	TimeoutSeconds int `toml:"timeout_seconds" env:"GENEDEX_TIMEOUT_SECONDS"`

	Cache          CacheSettings    `toml:"cache" envPrefix:"GENEDEX_CACHE_"`
	GeneALaCart    ProviderSettings `toml:"genealacart" envPrefix:"GENEDEX_GENEALACART_"`
	ClinicalTables ProviderSettings `toml:"clinicaltables" envPrefix:"GENEDEX_CLINICALTABLES_"`
	Entrez         ProviderSettings `toml:"entrez" envPrefix:"GENEDEX_ENTREZ_"`
}

// CacheSettings selects and locates the cache store.
type CacheSettings struct {
	// Backend is one of json, sqlite, memory. Default: json.
	Backend string `toml:"backend" env:"BACKEND"`

	// Path overrides the cache file location. Empty means the backend
	// default under ~/.genedex.
	Path string `toml:"path" env:"PATH"`
}

// ProviderSettings configures one provider tier.
type ProviderSettings struct {
	// BaseURL overrides the provider endpoint. Empty means the
	// provider's production URL.
	BaseURL string `toml:"base_url" env:"BASE_URL"`

	// Disabled removes the tier from the fallback order.
	Disabled bool `toml:"disabled" env:"DISABLED"`
}

// Timeout returns the provider timeout as a duration.
func (s *Settings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Validate checks cross-field constraints.
func (s *Settings) Validate() error {
	switch s.Cache.Backend {
	case BackendJSON, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown cache backend %q", s.Cache.Backend)
	}
	if s.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", s.TimeoutSeconds)
	}
	return nil
}

// DefaultSettings returns the built-in configuration.
func DefaultSettings() *Settings {
	return &Settings{
		TimeoutSeconds: 10,
		Cache:          CacheSettings{Backend: BackendJSON},
	}
}

// Load reads settings from configDir/config.toml, then applies
// GENEDEX_* environment overrides. If configDir is empty, defaults to
// ~/.genedex. A missing file yields the defaults.
func Load(configDir string) (*Settings, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".genedex")
	}

	settings := DefaultSettings()

	data, err := os.ReadFile(filepath.Join(configDir, "config.toml"))
	switch {
	case os.IsNotExist(err):
		// No config file yet - that's fine, use defaults.
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := toml.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	if err := env.Parse(settings); err != nil {
		return nil, fmt.Errorf("parsing environment overrides: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return settings, nil
}
