package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"klinik-ai/internal/contextutil"
	"klinik-ai/internal/indexer"
	"klinik-ai/internal/privacy"
	"klinik-ai/internal/storage"
)

// ReindexHandler accepts index rebuild requests and hands them to the
// background refresher without waiting.
type ReindexHandler struct {
	refresher *indexer.Refresher
}

// NewReindexHandler creates a new ReindexHandler.
func NewReindexHandler(refresher *indexer.Refresher) *ReindexHandler {
	return &ReindexHandler{refresher: refresher}
}

// ReindexResponse acknowledges an accepted rebuild request.
type ReindexResponse struct {
	Collection string `json:"collection"`
	Status     string `json:"status"`
}

// ServeHTTP handles POST /api/index/{collection}. The rebuild runs in the
// background; the response only acknowledges the request.
func (h *ReindexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	user, ok := contextutil.UserFromContext(ctx)
	if !ok || user.Role != privacy.RoleAdmin {
		logger.WarnContext(ctx, "reindex requested without admin role")
		writeError(w, http.StatusForbidden, "Reindexing requires the admin role")
		return
	}

	collection := chi.URLParam(r, "collection")
	if !validCollection(collection) {
		logger.WarnContext(ctx, "unknown collection in reindex request", "collection", collection)
		writeError(w, http.StatusBadRequest, "Unknown collection")
		return
	}

	h.refresher.Enqueue(collection)
	logger.InfoContext(ctx, "reindex accepted", "collection", collection)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(ReindexResponse{Collection: collection, Status: "accepted"})
}

func validCollection(name string) bool {
	for _, c := range storage.Collections() {
		if c == name {
			return true
		}
	}
	return false
}
