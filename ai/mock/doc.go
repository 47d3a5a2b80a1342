// Package mock provides test doubles for the ai interfaces.
//
// The mock embedder produces deterministic vectors derived from a hash of the
// input text, so the same text always maps to the same embedding. Tests can
// override behavior by setting the exported function fields.
package mock
