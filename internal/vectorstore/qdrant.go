package vectorstore

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"

	"github.com/qdrant/go-client/qdrant"

	"klinik-ai/internal/contextutil"
	"klinik-ai/internal/sparse"
)

// Vector names inside each collection.
const (
	denseVectorName  = "dense"
	sparseVectorName = "sparse"
)

// prefetchOversample widens each prefetch relative to the fused limit so the
// rank fusion has candidates from both sides to work with.
const prefetchOversample = 2

// QdrantStore implements VectorStore using Qdrant's universal query API.
type QdrantStore struct {
	client *qdrant.Client
}

// NewQdrantStore creates a new Qdrant vector store client.
// urlStr should be in the format "http://host:port" (e.g., "http://localhost:6333").
// The gRPC port (typically 6334) is derived from the HTTP port.
func NewQdrantStore(urlStr string) (*QdrantStore, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsedURL.Hostname()
	if host == "" {
		host = "localhost"
	}

	port := 6334
	if parsedURL.Port() != "" {
		httpPort, err := strconv.Atoi(parsedURL.Port())
		if err == nil {
			// gRPC port sits next to the HTTP port
			port = httpPort + 1
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Qdrant client: %w", err)
	}

	return &QdrantStore{client: client}, nil
}

// Health verifies the Qdrant service responds.
func (s *QdrantStore) Health(ctx context.Context) error {
	if _, err := s.client.HealthCheck(ctx); err != nil {
		return fmt.Errorf("qdrant health check failed: %w", err)
	}
	return nil
}

// EnsureCollection creates the collection with a named dense vector of the
// declared size plus a named sparse vector space, or validates the dense
// dimension of an existing collection.
func (s *QdrantStore) EnsureCollection(ctx context.Context, collection string, denseSize int) error {
	logger := contextutil.LoggerFromContext(ctx)

	exists, err := s.client.CollectionExists(ctx, collection)
	if err != nil {
		return fmt.Errorf("failed to check collection existence: %w", err)
	}

	if !exists {
		logger.InfoContext(ctx, "creating collection", "collection", collection, "dense_size", denseSize)
		err := s.client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: collection,
			VectorsConfig: qdrant.NewVectorsConfigMap(map[string]*qdrant.VectorParams{
				denseVectorName: {
					Size:     uint64(denseSize),
					Distance: qdrant.Distance_Cosine,
				},
			}),
			SparseVectorsConfig: qdrant.NewSparseVectorsConfig(map[string]*qdrant.SparseVectorParams{
				sparseVectorName: {},
			}),
		})
		if err != nil {
			return fmt.Errorf("failed to create collection: %w", err)
		}
		return nil
	}

	info, err := s.client.GetCollectionInfo(ctx, collection)
	if err != nil {
		return fmt.Errorf("failed to get collection info: %w", err)
	}

	config := info.GetConfig().GetParams().GetVectorsConfig().GetParamsMap()
	if config == nil {
		return fmt.Errorf("collection %s has no named vectors config", collection)
	}
	params, ok := config.GetMap()[denseVectorName]
	if !ok {
		return fmt.Errorf("collection %s is missing the %q vector", collection, denseVectorName)
	}
	if int(params.Size) != denseSize {
		return fmt.Errorf("collection %s dense size mismatch: expected %d, got %d", collection, denseSize, params.Size)
	}

	logger.InfoContext(ctx, "collection validated", "collection", collection, "dense_size", denseSize)
	return nil
}

// Upsert inserts or replaces hybrid points keyed by record id.
func (s *QdrantStore) Upsert(ctx context.Context, collection string, points []Point) error {
	logger := contextutil.LoggerFromContext(ctx)

	if len(points) == 0 {
		return nil
	}

	qdrantPoints := make([]*qdrant.PointStruct, 0, len(points))
	for _, point := range points {
		vectors := map[string]*qdrant.Vector{}
		if len(point.Dense) > 0 {
			vectors[denseVectorName] = qdrant.NewVectorDense(point.Dense)
		}
		if !point.Sparse.IsEmpty() {
			vectors[sparseVectorName] = qdrant.NewVectorSparse(point.Sparse.Indices, point.Sparse.Values)
		}

		qdrantPoint := &qdrant.PointStruct{
			Id:      qdrant.NewIDNum(uint64(point.ID)),
			Vectors: qdrant.NewVectorsMap(vectors),
		}
		if len(point.Payload) > 0 {
			qdrantPoint.Payload = qdrant.NewValueMap(point.Payload)
		}
		qdrantPoints = append(qdrantPoints, qdrantPoint)
	}

	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collection,
		Points:         qdrantPoints,
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to upsert points", "collection", collection, "count", len(points), "error", err)
		return fmt.Errorf("failed to upsert points: %w", err)
	}

	logger.DebugContext(ctx, "upserted points", "collection", collection, "count", len(points))
	return nil
}

// HybridSearch runs sparse and dense prefetches (each oversampled relative
// to limit) fused with reciprocal rank fusion. The ownership filter is
// applied inside each prefetch so filtered candidates never reach fusion.
func (s *QdrantStore) HybridSearch(ctx context.Context, collection string, dense []float32, sv sparse.Vector, limit int, scoreThreshold float32, filter map[string]int64) ([]SearchResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than 0")
	}
	if len(dense) == 0 && sv.IsEmpty() {
		return nil, fmt.Errorf("hybrid search needs at least one of dense or sparse query vectors")
	}

	qdrantFilter := buildFilter(filter)
	prefetchLimit := uint64(limit * prefetchOversample)

	var prefetch []*qdrant.PrefetchQuery
	if !sv.IsEmpty() {
		prefetch = append(prefetch, &qdrant.PrefetchQuery{
			Query:  qdrant.NewQuerySparse(sv.Indices, sv.Values),
			Using:  qdrant.PtrOf(sparseVectorName),
			Filter: qdrantFilter,
			Limit:  qdrant.PtrOf(prefetchLimit),
		})
	}
	if len(dense) > 0 {
		prefetch = append(prefetch, &qdrant.PrefetchQuery{
			Query:  qdrant.NewQuery(dense...),
			Using:  qdrant.PtrOf(denseVectorName),
			Filter: qdrantFilter,
			Limit:  qdrant.PtrOf(prefetchLimit),
		})
	}

	scoredPoints, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: collection,
		Prefetch:       prefetch,
		Query:          qdrant.NewQueryFusion(qdrant.Fusion_RRF),
		Limit:          qdrant.PtrOf(uint64(limit)),
		ScoreThreshold: qdrant.PtrOf(scoreThreshold),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		logger.ErrorContext(ctx, "hybrid search failed", "collection", collection, "limit", limit, "error", err)
		return nil, fmt.Errorf("failed to query collection %s: %w", collection, err)
	}

	results := make([]SearchResult, 0, len(scoredPoints))
	for _, point := range scoredPoints {
		var id int64
		if point.Id != nil {
			id = int64(point.Id.GetNum())
		}
		payload := map[string]any{}
		if point.Payload != nil {
			payload = convertPayloadToMap(point.Payload)
		}
		results = append(results, SearchResult{
			ID:      id,
			Score:   point.Score,
			Payload: payload,
		})
	}

	logger.DebugContext(ctx, "hybrid search completed", "collection", collection, "results", len(results))
	return results, nil
}

// Delete removes points by record id.
func (s *QdrantStore) Delete(ctx context.Context, collection string, ids []int64) error {
	logger := contextutil.LoggerFromContext(ctx)

	if len(ids) == 0 {
		return nil
	}

	qdrantIDs := make([]*qdrant.PointId, 0, len(ids))
	for _, id := range ids {
		qdrantIDs = append(qdrantIDs, qdrant.NewIDNum(uint64(id)))
	}

	_, err := s.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: collection,
		Points:         qdrant.NewPointsSelector(qdrantIDs...),
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to delete points", "collection", collection, "count", len(ids), "error", err)
		return fmt.Errorf("failed to delete points: %w", err)
	}
	return nil
}

// buildFilter turns ownership field matches into a must-filter, with field
// order made deterministic.
func buildFilter(filter map[string]int64) *qdrant.Filter {
	if len(filter) == 0 {
		return nil
	}

	fields := make([]string, 0, len(filter))
	for field := range filter {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	conditions := make([]*qdrant.Condition, 0, len(fields))
	for _, field := range fields {
		conditions = append(conditions, qdrant.NewMatchInt(field, filter[field]))
	}
	return &qdrant.Filter{Must: conditions}
}

// convertPayloadToMap converts a Qdrant payload to map[string]any.
func convertPayloadToMap(payload map[string]*qdrant.Value) map[string]any {
	result := make(map[string]any, len(payload))
	for k, v := range payload {
		if v == nil {
			continue
		}
		result[k] = convertValue(v)
	}
	return result
}

func convertValue(v *qdrant.Value) any {
	switch val := v.Kind.(type) {
	case *qdrant.Value_BoolValue:
		return val.BoolValue
	case *qdrant.Value_IntegerValue:
		return val.IntegerValue
	case *qdrant.Value_DoubleValue:
		return val.DoubleValue
	case *qdrant.Value_StringValue:
		return val.StringValue
	case *qdrant.Value_ListValue:
		list := make([]any, len(val.ListValue.Values))
		for i, item := range val.ListValue.Values {
			list[i] = convertValue(item)
		}
		return list
	case *qdrant.Value_StructValue:
		return convertPayloadToMap(val.StructValue.Fields)
	default:
		return nil
	}
}
