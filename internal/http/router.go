package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"docqa/internal/handlers"
	"docqa/internal/ingest"
	"docqa/internal/keyword"
	"docqa/internal/rag"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Engine       rag.Engine
	IngestSvc    *ingest.Service
	KeywordStore *keyword.Store
	Capabilities handlers.Capabilities
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	askHandler := handlers.NewAskHandler(deps.Engine)
	documentsHandler := handlers.NewDocumentsHandler(deps.IngestSvc, deps.KeywordStore)
	healthHandler := handlers.NewHealthHandler(deps.KeywordStore, deps.Capabilities)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/ask", askHandler)
		r.Post("/documents", documentsHandler.Ingest)
		r.Get("/documents", documentsHandler.List)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	return r
}
