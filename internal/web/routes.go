package web

import (
	"github.com/go-chi/chi/v5"

	"github.com/pageatlas/page-atlas/internal/web/handlers"
)

func (s *Server) setupRoutes() {
	composeHandler := handlers.NewComposeHandler(s.config)
	lookupHandler := handlers.NewLookupHandler(s.config)

	s.router.Get("/api/v1/health", handlers.HealthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/compose", composeHandler.Compose)
		r.Get("/lookup", lookupHandler.Lookup)
	})
}
