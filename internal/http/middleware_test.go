package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"klinik-ai/internal/contextutil"
	"klinik-ai/internal/privacy"
)

func TestLoggerMiddleware(t *testing.T) {
	var capturedCtx context.Context
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedCtx = r.Context()
		w.WriteHeader(http.StatusOK)
	})

	middleware := LoggerMiddleware(handler)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	middleware.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("LoggerMiddleware() status = %v, want %v", w.Code, http.StatusOK)
	}

	if capturedCtx == nil {
		t.Fatal("LoggerMiddleware() should capture context")
	}
	logger := capturedCtx.Value(contextutil.LoggerKey())
	if logger == nil {
		t.Error("LoggerMiddleware() should add logger to context")
	}
}

func TestUserMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		headers  map[string]string
		wantUser bool
		wantRole privacy.Role
		wantID   int64
	}{
		{
			name: "valid patient identity",
			headers: map[string]string{
				"X-User-Id":   "42",
				"X-User-Role": "patient",
				"X-User-Name": "Budi Santoso",
			},
			wantUser: true,
			wantRole: privacy.RolePatient,
			wantID:   42,
		},
		{
			name: "indonesian role alias",
			headers: map[string]string{
				"X-User-Id":   "7",
				"X-User-Role": "dokter",
			},
			wantUser: true,
			wantRole: privacy.RoleDoctor,
			wantID:   7,
		},
		{
			name:     "missing headers",
			headers:  map[string]string{},
			wantUser: false,
		},
		{
			name: "non-numeric id",
			headers: map[string]string{
				"X-User-Id":   "abc",
				"X-User-Role": "admin",
			},
			wantUser: false,
		},
		{
			name: "unknown role",
			headers: map[string]string{
				"X-User-Id":   "1",
				"X-User-Role": "superuser",
			},
			wantUser: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUser privacy.UserContext
			var gotOK bool
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser, gotOK = contextutil.UserFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			middleware := UserMiddleware(handler)

			req := httptest.NewRequest(http.MethodPost, "/test", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()

			middleware.ServeHTTP(w, req)

			if gotOK != tt.wantUser {
				t.Fatalf("UserMiddleware() attached user = %v, want %v", gotOK, tt.wantUser)
			}
			if !tt.wantUser {
				return
			}
			if gotUser.Role != tt.wantRole {
				t.Errorf("UserMiddleware() role = %v, want %v", gotUser.Role, tt.wantRole)
			}
			if gotUser.ID != tt.wantID {
				t.Errorf("UserMiddleware() id = %v, want %v", gotUser.ID, tt.wantID)
			}
			if name, want := gotUser.Name, tt.headers["X-User-Name"]; name != want {
				t.Errorf("UserMiddleware() name = %q, want %q", name, want)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	middleware := CORS(handler)

	tests := []struct {
		name           string
		method         string
		origin         string
		wantStatusCode int
		wantOrigin     string
	}{
		{
			name:           "preflight OPTIONS",
			method:         http.MethodOptions,
			origin:         "http://localhost:3000",
			wantStatusCode: http.StatusNoContent,
			wantOrigin:     "http://localhost:3000",
		},
		{
			name:           "request with origin",
			method:         http.MethodPost,
			origin:         "http://localhost:3000",
			wantStatusCode: http.StatusOK,
			wantOrigin:     "http://localhost:3000",
		},
		{
			name:           "request without origin",
			method:         http.MethodPost,
			origin:         "",
			wantStatusCode: http.StatusOK,
			wantOrigin:     "*",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/test", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()

			middleware.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Errorf("CORS() status = %v, want %v", w.Code, tt.wantStatusCode)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("CORS() Allow-Origin = %v, want %v", got, tt.wantOrigin)
			}
		})
	}
}

func TestCORS_IdentityHeadersAllowed(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	middleware := CORS(handler)

	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()

	middleware.ServeHTTP(w, req)

	allowed := w.Header().Get("Access-Control-Allow-Headers")
	for _, h := range []string{"X-User-Id", "X-User-Role", "X-User-Name"} {
		if !strings.Contains(allowed, h) {
			t.Errorf("CORS() Allow-Headers = %q, missing %q", allowed, h)
		}
	}
}
