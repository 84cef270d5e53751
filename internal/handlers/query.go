// Package handlers exposes the assistant over HTTP.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"klinik-ai/internal/assistant"
	"klinik-ai/internal/contextutil"
)

// QueryHandler handles assistant query requests.
type QueryHandler struct {
	engine assistant.Engine
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(engine assistant.Engine) *QueryHandler {
	return &QueryHandler{engine: engine}
}

// QueryRequest represents the HTTP request payload for assistant queries.
type QueryRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id,omitempty"`
}

// SourceResponse is one cited source in the HTTP response.
type SourceResponse struct {
	Collection string         `json:"collection"`
	ID         int64          `json:"id"`
	Snippet    string         `json:"snippet"`
	Score      float32        `json:"score"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Date       *time.Time     `json:"date,omitempty"`
}

// QueryResponse represents the HTTP response payload for assistant queries.
type QueryResponse struct {
	Answer             string           `json:"answer"`
	Sources            []SourceResponse `json:"sources"`
	SessionID          string           `json:"session_id"`
	ProcessingTimeMs   int64            `json:"processing_time_ms"`
	NeedsMoreInfo      bool             `json:"needs_more_info,omitempty"`
	FollowUpQuestion   string           `json:"follow_up_question,omitempty"`
	SuggestedFollowUps []string         `json:"suggested_follow_ups,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP handles POST /api/assistant/query.
func (h *QueryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	user, ok := contextutil.UserFromContext(ctx)
	if !ok {
		logger.WarnContext(ctx, "request without user identity")
		writeError(w, http.StatusUnauthorized, "User identity headers required")
		return
	}

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	answer, err := h.engine.Ask(ctx, assistant.Query{
		Text:      req.Query,
		SessionID: req.SessionID,
		User:      user,
	})
	if err != nil {
		h.handleEngineError(w, r, err)
		return
	}

	sources := make([]SourceResponse, 0, len(answer.Sources))
	for _, s := range answer.Sources {
		sources = append(sources, SourceResponse{
			Collection: s.Collection,
			ID:         s.ID,
			Snippet:    s.Snippet,
			Score:      s.Score,
			Metadata:   s.Metadata,
			Date:       s.Date,
		})
	}

	resp := QueryResponse{
		Answer:             answer.Answer,
		Sources:            sources,
		SessionID:          answer.SessionID,
		ProcessingTimeMs:   answer.ProcessingTimeMs,
		NeedsMoreInfo:      answer.NeedsMoreInfo,
		FollowUpQuestion:   answer.FollowUpQuestion,
		SuggestedFollowUps: answer.SuggestedFollowUps,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (h *QueryHandler) handleEngineError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	switch {
	case assistant.IsValidation(err):
		logger.WarnContext(ctx, "invalid query", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
	case assistant.IsLLMUnavailable(err):
		logger.ErrorContext(ctx, "language model unavailable", "error", err)
		writeError(w, http.StatusBadGateway, "Language model unavailable")
	default:
		logger.ErrorContext(ctx, "query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to process query")
	}
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
