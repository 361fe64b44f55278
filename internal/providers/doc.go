// Package providers contains implementations of the GeneProvider
// interface, one per external data source. Tier order is fixed by the
// wiring in the CLI: genealacart, then clinicaltables, then entrez.
//
// Every provider absorbs its source's failure signatures (auth walls,
// positional array formats, fuzzy search results) and reclassifies them
// into the uniform found / not-found / transient contract, so the
// resolver never sees a provider-specific response shape.
package providers
