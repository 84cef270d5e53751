package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks klinik-ai/internal/vectorstore VectorStore

import (
	"context"

	"klinik-ai/internal/sparse"
)

// Point is one hybrid-indexed document: a record id, its dense and sparse
// vectors, and a minimal payload (record id plus the party ids the
// ownership filter matches on — the payload is never authoritative).
type Point struct {
	ID      int64
	Dense   []float32
	Sparse  sparse.Vector
	Payload map[string]any
}

// SearchResult is one ranked hit from a hybrid search.
type SearchResult struct {
	ID      int64
	Score   float32
	Payload map[string]any
}

// VectorStore is the named-collection hybrid search contract.
type VectorStore interface {
	// EnsureCollection creates the collection with the declared dense
	// dimension and a sparse vector space, or validates an existing one.
	EnsureCollection(ctx context.Context, collection string, denseSize int) error

	// Upsert inserts or replaces points; idempotent per record id.
	Upsert(ctx context.Context, collection string, points []Point) error

	// HybridSearch runs oversampled sparse and dense prefetches fused by
	// reciprocal rank fusion, bounded to limit, honoring the score
	// threshold and the pushed-down ownership filter (field → id match
	// conditions). Either vector side may be absent, not both.
	HybridSearch(ctx context.Context, collection string, dense []float32, sv sparse.Vector, limit int, scoreThreshold float32, filter map[string]int64) ([]SearchResult, error)

	// Delete removes points by record id.
	Delete(ctx context.Context, collection string, ids []int64) error
}
