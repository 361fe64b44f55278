// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - GeneProvider: One external data source in the fallback order
//   - CacheStore: Durable symbol -> record persistence
//
// # Optional Interfaces
//
//   - SummaryFetcher: Entrez summary enrichment by GeneID. Providers that
//     implement it let the resolver backfill missing summaries; without it
//     records are cached as-is.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or provider package
package driven
