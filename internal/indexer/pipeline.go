// Package indexer maintains the hybrid vector index out-of-band from user
// queries. A freshly indexed record becomes searchable eventually; queries
// in flight may see the previous state.
package indexer

import (
	"context"
	"fmt"

	"klinik-ai/internal/contextutil"
	"klinik-ai/internal/embedding"
	"klinik-ai/internal/privacy"
	"klinik-ai/internal/storage"
	"klinik-ai/internal/vectorstore"
)

const batchSize = 64

// Pipeline rebuilds vector collections from the primary store.
type Pipeline struct {
	embedder *embedding.Builder
	vectors  vectorstore.VectorStore
	stores   map[string]storage.CollectionStore
	dim      int
}

// NewPipeline wires the indexing collaborators. dim is the dense dimension
// every collection is created with.
func NewPipeline(embedder *embedding.Builder, vectors vectorstore.VectorStore, stores []storage.CollectionStore, dim int) *Pipeline {
	byName := make(map[string]storage.CollectionStore, len(stores))
	for _, s := range stores {
		byName[s.Name()] = s
	}
	return &Pipeline{embedder: embedder, vectors: vectors, stores: byName, dim: dim}
}

// Reindex rebuilds one collection: every record is re-embedded and
// upserted, so repeated runs converge on the same index state.
func (p *Pipeline) Reindex(ctx context.Context, collection string) error {
	store, ok := p.stores[collection]
	if !ok {
		return fmt.Errorf("unknown collection %q", collection)
	}

	logger := contextutil.LoggerFromContext(ctx)

	if err := p.vectors.EnsureCollection(ctx, collection, p.dim); err != nil {
		return fmt.Errorf("ensure collection %s: %w", collection, err)
	}

	ids, err := store.ListIDs(ctx)
	if err != nil {
		return fmt.Errorf("list %s ids: %w", collection, err)
	}

	indexed := 0
	for start := 0; start < len(ids); start += batchSize {
		end := min(start+batchSize, len(ids))

		// Indexing reads with the administrative scope: the index holds
		// every record, ownership is enforced at query time.
		records, err := store.GetByIDs(ctx, ids[start:end], storage.Ownership{Role: privacy.RoleAdmin})
		if err != nil {
			return fmt.Errorf("fetch %s batch: %w", collection, err)
		}

		points, err := p.buildPoints(ctx, records)
		if err != nil {
			return fmt.Errorf("embed %s batch: %w", collection, err)
		}
		if len(points) == 0 {
			continue
		}

		if err := p.vectors.Upsert(ctx, collection, points); err != nil {
			return fmt.Errorf("upsert %s batch: %w", collection, err)
		}
		indexed += len(points)
	}

	logger.Info("collection reindexed", "collection", collection, "records", indexed)
	return nil
}

// ReindexAll rebuilds every collection, continuing past per-collection
// failures and returning the first error encountered.
func (p *Pipeline) ReindexAll(ctx context.Context) error {
	logger := contextutil.LoggerFromContext(ctx)

	var firstErr error
	for _, collection := range storage.Collections() {
		if err := p.Reindex(ctx, collection); err != nil {
			logger.Error("reindex failed", "collection", collection, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (p *Pipeline) buildPoints(ctx context.Context, records []storage.Record) ([]vectorstore.Point, error) {
	points := make([]vectorstore.Point, 0, len(records))
	for _, rec := range records {
		if rec.EmbedText == "" {
			continue
		}
		hybrid, err := p.embedder.Build(ctx, rec.EmbedText)
		if err != nil {
			return nil, err
		}
		points = append(points, vectorstore.Point{
			ID:     rec.ID,
			Dense:  hybrid.Dense,
			Sparse: hybrid.Sparse,
			Payload: map[string]any{
				"record_id":  rec.ID,
				"patient_id": rec.PatientID,
				"doctor_id":  rec.DoctorID,
			},
		})
	}
	return points, nil
}
