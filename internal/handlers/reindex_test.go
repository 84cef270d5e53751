package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"klinik-ai/internal/contextutil"
	"klinik-ai/internal/embedding"
	embeddingmocks "klinik-ai/internal/embedding/mocks"
	"klinik-ai/internal/handlers"
	"klinik-ai/internal/indexer"
	"klinik-ai/internal/privacy"
	"klinik-ai/internal/sparse"
	"klinik-ai/internal/storage"
	storagemocks "klinik-ai/internal/storage/mocks"
	vectormocks "klinik-ai/internal/vectorstore/mocks"
)

func reindexRouter(h *handlers.ReindexHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/api/index/{collection}", h.ServeHTTP)
	return r
}

func reindexRequest(collection string, user *privacy.UserContext) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/index/"+collection, nil)
	if user != nil {
		req = req.WithContext(contextutil.WithUser(req.Context(), *user))
	}
	return req
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReindexHandler_Accepted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dense := embeddingmocks.NewMockDenseEmbedder(ctrl)
	vectors := vectormocks.NewMockVectorStore(ctrl)
	store := storagemocks.NewMockCollectionStore(ctrl)

	store.EXPECT().Name().Return("patients").AnyTimes()
	vectors.EXPECT().EnsureCollection(gomock.Any(), "patients", 4).Return(nil)
	store.EXPECT().ListIDs(gomock.Any()).Return(nil, nil)

	pipeline := indexer.NewPipeline(
		embedding.NewBuilder(dense, sparse.NewEncoder(sparse.DefaultDim), 4),
		vectors,
		[]storage.CollectionStore{store},
		4,
	)
	refresher := indexer.NewRefresher(context.Background(), pipeline, discardLogger())

	admin := privacy.UserContext{ID: 9, Role: privacy.RoleAdmin}

	rec := httptest.NewRecorder()
	reindexRouter(handlers.NewReindexHandler(refresher)).ServeHTTP(rec, reindexRequest("patients", &admin))

	// Close drains the queue so the enqueued rebuild runs before the mock
	// expectations are checked.
	refresher.Close()

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp handlers.ReindexResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if resp.Collection != "patients" || resp.Status != "accepted" {
		t.Errorf("response = %+v", resp)
	}
}

func TestReindexHandler_Forbidden(t *testing.T) {
	refresher := indexer.NewRefresher(context.Background(), nil, discardLogger())
	defer refresher.Close()

	h := handlers.NewReindexHandler(refresher)

	tests := []struct {
		name string
		user *privacy.UserContext
	}{
		{name: "no identity", user: nil},
		{name: "patient", user: &privacy.UserContext{ID: 1, Role: privacy.RolePatient}},
		{name: "doctor", user: &privacy.UserContext{ID: 2, Role: privacy.RoleDoctor}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			reindexRouter(h).ServeHTTP(rec, reindexRequest("patients", tt.user))
			if rec.Code != http.StatusForbidden {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
			}
		})
	}
}

func TestReindexHandler_UnknownCollection(t *testing.T) {
	refresher := indexer.NewRefresher(context.Background(), nil, discardLogger())
	defer refresher.Close()

	admin := privacy.UserContext{ID: 9, Role: privacy.RoleAdmin}

	rec := httptest.NewRecorder()
	reindexRouter(handlers.NewReindexHandler(refresher)).ServeHTTP(rec, reindexRequest("invoices", &admin))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
