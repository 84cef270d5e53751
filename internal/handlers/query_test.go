package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"klinik-ai/internal/assistant"
	"klinik-ai/internal/assistant/mocks"
	"klinik-ai/internal/contextutil"
	"klinik-ai/internal/handlers"
	"klinik-ai/internal/privacy"
)

func queryRequest(body string, user *privacy.UserContext) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/assistant/query", strings.NewReader(body))
	if user != nil {
		req = req.WithContext(contextutil.WithUser(req.Context(), *user))
	}
	return req
}

func TestQueryHandler(t *testing.T) {
	patient := privacy.UserContext{ID: 42, Role: privacy.RolePatient, Name: "Budi"}

	tests := []struct {
		name       string
		body       string
		user       *privacy.UserContext
		askErr     error
		wantStatus int
	}{
		{
			name:       "missing identity",
			body:       `{"query":"jadwal dokter"}`,
			user:       nil,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed body",
			body:       `{"query":`,
			user:       &patient,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "validation error",
			body:       `{"query":""}`,
			user:       &patient,
			askErr:     &assistant.ValidationError{Field: "query", Message: "query must not be empty"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "language model down",
			body:       `{"query":"jadwal dokter"}`,
			user:       &patient,
			askErr:     assistant.ErrLLMUnavailable,
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "unexpected failure",
			body:       `{"query":"jadwal dokter"}`,
			user:       &patient,
			askErr:     errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			engine := mocks.NewMockEngine(ctrl)
			if tt.askErr != nil {
				engine.EXPECT().Ask(gomock.Any(), gomock.Any()).Return(assistant.Answer{}, tt.askErr)
			}

			rec := httptest.NewRecorder()
			handlers.NewQueryHandler(engine).ServeHTTP(rec, queryRequest(tt.body, tt.user))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var resp handlers.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("error body not JSON: %v", err)
			}
			if resp.Error == "" {
				t.Error("error responses must carry a message")
			}
		})
	}
}

func TestQueryHandler_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	user := privacy.UserContext{ID: 7, Role: privacy.RoleDoctor, Name: "dr. Sari"}

	engine := mocks.NewMockEngine(ctrl)
	engine.EXPECT().
		Ask(gomock.Any(), assistant.Query{Text: "pasien hari ini", SessionID: "sess-9", User: user}).
		Return(assistant.Answer{
			Answer:    "Ada 3 pemeriksaan hari ini.",
			SessionID: "sess-9",
			Sources: []assistant.Source{
				{Collection: "examinations", ID: 11, Snippet: "Budi, demam", Score: 0.8},
			},
		}, nil)

	rec := httptest.NewRecorder()
	handlers.NewQueryHandler(engine).ServeHTTP(rec, queryRequest(`{"query":"pasien hari ini","session_id":"sess-9"}`, &user))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp handlers.QueryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if resp.Answer != "Ada 3 pemeriksaan hari ini." {
		t.Errorf("answer = %q", resp.Answer)
	}
	if resp.SessionID != "sess-9" {
		t.Errorf("session_id = %q", resp.SessionID)
	}
	if len(resp.Sources) != 1 || resp.Sources[0].Collection != "examinations" || resp.Sources[0].ID != 11 {
		t.Errorf("sources = %+v", resp.Sources)
	}
}

func TestQueryHandler_MethodNotAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/assistant/query", nil)
	handlers.NewQueryHandler(mocks.NewMockEngine(ctrl)).ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}
