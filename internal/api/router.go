package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/mkraev/worklog/internal/sse"
	"github.com/mkraev/worklog/internal/workspace"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// broker, if non-nil, receives document events and serves GET /events.
func NewRouter(svc *workspace.Service, authEnabled bool, token string, broker *sse.Broker) chi.Router {
	h := NewHandler(svc, broker)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Generic record CRUD.
	r.Get("/documents", h.ListDocuments)
	r.Post("/documents", h.CreateDocument)
	r.Get("/documents/*", h.GetDocument)
	r.Put("/documents/*", h.UpdateDocument)
	r.Delete("/documents/*", h.DeleteDocument)

	// Kind-specific listing and creation.
	r.Get("/dailies", h.ListDailies)
	r.Post("/dailies", h.CreateDaily)
	r.Get("/projects", h.ListProjects)
	r.Post("/projects", h.CreateProject)

	// Weekly reports.
	r.Get("/weeks", h.ListWeeks)
	r.Get("/weeks/{week}", h.GetWeekly)
	r.Post("/weeks/{week}", h.CreateWeekly)
	r.Post("/weeks/{week}/generate", h.GenerateWeekly)

	// Search.
	r.Get("/search", h.Search)

	// SSE endpoint (protected by the same auth middleware).
	if broker != nil {
		r.Get("/events", broker.ServeHTTP)
	}

	return r
}
