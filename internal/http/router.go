package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"klinik-ai/internal/assistant"
	"klinik-ai/internal/handlers"
	"klinik-ai/internal/indexer"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Engine       assistant.Engine
	Refresher    *indexer.Refresher
	HealthChecks map[string]handlers.HealthChecker
}

// NewRouter creates the HTTP router.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)
	r.Use(UserMiddleware)

	queryHandler := handlers.NewQueryHandler(deps.Engine)
	reindexHandler := handlers.NewReindexHandler(deps.Refresher)
	healthHandler := handlers.NewHealthHandler(deps.HealthChecks)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/assistant/query", queryHandler)
		r.Method(http.MethodPost, "/index/{collection}", reindexHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	return r
}
