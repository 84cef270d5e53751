package assistant

import (
	"context"
	"sync"

	"klinik-ai/internal/contextutil"
	"klinik-ai/internal/embedding"
	"klinik-ai/internal/privacy"
	"klinik-ai/internal/sparse"
	"klinik-ai/internal/storage"
	"klinik-ai/internal/temporal"
	"klinik-ai/internal/vectorstore"
)

// temporalScore is assigned on the direct path: chronological order, not
// similarity, is the ranking signal there.
const temporalScore = 1.0

// HybridRetriever fans a query out across collections. Each collection is
// retrieved either through hybrid vector search with an authoritative
// primary-store refetch, or through a direct temporal query when the query
// carries date semantics and the collection is dated.
type HybridRetriever struct {
	embedder  *embedding.Builder
	vectors   vectorstore.VectorStore
	stores    map[string]storage.CollectionStore
	projector *privacy.Projector
	limit     int
	threshold float32
}

// NewHybridRetriever wires the retrieval collaborators. limit bounds each
// collection's hybrid result count; threshold is the fusion score floor.
func NewHybridRetriever(
	embedder *embedding.Builder,
	vectors vectorstore.VectorStore,
	stores []storage.CollectionStore,
	projector *privacy.Projector,
	limit int,
	threshold float32,
) *HybridRetriever {
	byName := make(map[string]storage.CollectionStore, len(stores))
	for _, s := range stores {
		byName[s.Name()] = s
	}
	return &HybridRetriever{
		embedder:  embedder,
		vectors:   vectors,
		stores:    byName,
		projector: projector,
		limit:     limit,
		threshold: threshold,
	}
}

// Retrieve runs per-collection retrievals concurrently and merges the
// results. A failing collection logs and contributes nothing; retrieval as
// a whole never fails.
func (r *HybridRetriever) Retrieve(ctx context.Context, collections []string, searchText string, ti temporal.Info, user privacy.UserContext) []Source {
	logger := contextutil.LoggerFromContext(ctx)

	// One embedding call shared by every hybrid branch. A dense provider
	// outage degrades to sparse-only search instead of failing the query.
	var dense []float32
	var sv sparse.Vector
	if r.needsEmbedding(collections, ti) {
		hybrid, err := r.embedder.Build(ctx, searchText)
		if err != nil {
			logger.Warn("dense embedding unavailable, falling back to sparse-only search", "error", err)
			sv = r.embedder.BuildSparse(searchText)
		} else {
			dense = hybrid.Dense
			sv = hybrid.Sparse
		}
	}

	results := make([][]Source, len(collections))
	var wg sync.WaitGroup
	for i, name := range collections {
		store, ok := r.stores[name]
		if !ok {
			logger.Warn("unknown collection routed", "collection", name)
			continue
		}
		wg.Add(1)
		go func(i int, store storage.CollectionStore) {
			defer wg.Done()
			sources, err := r.retrieveOne(ctx, store, dense, sv, ti, user)
			if err != nil {
				logger.Error("collection retrieval failed", "collection", store.Name(), "error", err)
				return
			}
			results[i] = sources
		}(i, store)
	}
	wg.Wait()

	var merged []Source
	for _, batch := range results {
		merged = append(merged, batch...)
	}
	return merged
}

// needsEmbedding reports whether any routed collection will take the
// hybrid path. All-temporal fan-outs skip the embedding call entirely.
func (r *HybridRetriever) needsEmbedding(collections []string, ti temporal.Info) bool {
	if !ti.HasTemporalQuery {
		return true
	}
	for _, name := range collections {
		if store, ok := r.stores[name]; ok && !store.HasDateField() {
			return true
		}
	}
	return false
}

func (r *HybridRetriever) retrieveOne(ctx context.Context, store storage.CollectionStore, dense []float32, sv sparse.Vector, ti temporal.Info, user privacy.UserContext) ([]Source, error) {
	if ti.HasTemporalQuery && store.HasDateField() {
		return r.retrieveTemporal(ctx, store, ti, user)
	}
	return r.retrieveHybrid(ctx, store, dense, sv, user)
}

// retrieveHybrid searches the vector index, then refetches the hits from
// the primary store. The refetch is authoritative: it reapplies the
// ownership scope, so a stale or tampered index entry can never surface a
// record the user may not read.
func (r *HybridRetriever) retrieveHybrid(ctx context.Context, store storage.CollectionStore, dense []float32, sv sparse.Vector, user privacy.UserContext) ([]Source, error) {
	filter, allowed := ownershipFilter(store.Name(), user)
	if !allowed {
		return nil, nil
	}

	hits, err := r.vectors.HybridSearch(ctx, store.Name(), dense, sv, r.limit, r.threshold, filter)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(hits))
	scores := make(map[int64]float32, len(hits))
	for _, hit := range hits {
		ids = append(ids, hit.ID)
		scores[hit.ID] = hit.Score
	}

	records, err := store.GetByIDs(ctx, ids, storage.Ownership{Role: user.Role, UserID: user.ID})
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]storage.Record, len(records))
	for _, rec := range records {
		byID[rec.ID] = rec
	}

	// Preserve the fused ranking order from the vector store.
	sources := make([]Source, 0, len(hits))
	for _, hit := range hits {
		rec, ok := byID[hit.ID]
		if !ok {
			continue
		}
		sources = append(sources, r.toSource(store.Name(), rec, user.Role, hit.Score))
	}
	return sources, nil
}

// retrieveTemporal issues the direct filtered/sorted/limited query against
// the primary store. Results keep their chronological order and carry a
// constant maximal score.
func (r *HybridRetriever) retrieveTemporal(ctx context.Context, store storage.CollectionStore, ti temporal.Info, user privacy.UserContext) ([]Source, error) {
	records, err := store.FindByDateRange(ctx, storage.RangeQuery{
		From:  ti.DateFrom,
		To:    ti.DateTo,
		Sort:  ti.SortOrder,
		Limit: ti.Limit,
		Owner: storage.Ownership{Role: user.Role, UserID: user.ID},
	})
	if err != nil {
		return nil, err
	}

	sources := make([]Source, 0, len(records))
	for _, rec := range records {
		sources = append(sources, r.toSource(store.Name(), rec, user.Role, temporalScore))
	}
	return sources, nil
}

// toSource projects the record's fields to the role's visible set and
// renders the user-facing snippet from that projection only, so denied
// fields never leave this layer.
func (r *HybridRetriever) toSource(collection string, rec storage.Record, role privacy.Role, score float32) Source {
	fields := r.projector.Project(collection, role, rec.Fields)
	return Source{
		Collection: collection,
		ID:         rec.ID,
		Snippet:    renderSnippet(collection, fields),
		Score:      score,
		Metadata:   fields,
		Date:       rec.Date,
	}
}

// ownershipFilter maps the acting user to vector-store payload match
// conditions. The second return is false when the role may not search the
// collection at all. This filter is an index-side pre-cut; the primary
// store refetch re-enforces the same scope authoritatively.
func ownershipFilter(collection string, user privacy.UserContext) (map[string]int64, bool) {
	if user.Role == privacy.RoleAdmin {
		return nil, true
	}

	switch collection {
	case storage.CollectionPatients:
		if user.Role == privacy.RoleDoctor {
			return nil, false
		}
		return map[string]int64{"record_id": user.ID}, true
	case storage.CollectionDoctors, storage.CollectionSchedules:
		// Clinic-public.
		return nil, true
	default:
		if user.Role == privacy.RoleDoctor {
			return map[string]int64{"doctor_id": user.ID}, true
		}
		return map[string]int64{"patient_id": user.ID}, true
	}
}
