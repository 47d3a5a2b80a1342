// Package reembed regenerates embedding vectors for stored corpus chunks.
//
// It is used after switching embedding models, and to backfill vectors for
// chunks whose asynchronous embedding never completed. Chunks are processed
// in batches with retry and exponential backoff, progress is reported to a
// writer, and vectors are normalized to unit length for cosine similarity.
package reembed
