package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(withLogging)

	router.Route("/api", func(r chi.Router) {
		r.Get("/status", h.getStatus)
		r.Get("/snapshot", h.getSnapshot)
		r.Get("/select", h.getSelection)
		r.Post("/select", h.postSelection)
		r.Post("/refresh", h.postRefresh)
		r.Get("/history/selections", h.getSelectionHistory)
		r.Get("/history/snapshots/last", h.getLastSnapshot)
		r.Get("/version", h.getVersion)
	})

	if h.metrics != nil {
		router.Method("GET", "/metrics", h.metrics)
	}

	router.MethodNotAllowed(methodNotAllowed(router))

	return router
}
