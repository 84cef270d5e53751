package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"klinik-ai/internal/contextutil"
	"klinik-ai/internal/privacy"
)

// LoggerMiddleware adds a structured logger to the request context.
func LoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := slog.Default().With(
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)
		ctx := context.WithValue(r.Context(), contextutil.LoggerKey(), logger)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserMiddleware reads the authenticated identity forwarded by the API
// gateway (X-User-Id, X-User-Role, X-User-Name) and attaches it to the
// request context. Requests without a complete valid identity pass through
// unattached; handlers that require one reject them.
func UserMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.Header.Get("X-User-Id"), 10, 64)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		role, err := privacy.ParseRole(r.Header.Get("X-User-Role"))
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := contextutil.WithUser(r.Context(), privacy.UserContext{
			ID:   id,
			Role: role,
			Name: r.Header.Get("X-User-Name"),
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CORS adds CORS headers to allow cross-origin requests.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-User-Id, X-User-Role, X-User-Name")
		w.Header().Set("Access-Control-Max-Age", "3600")

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
