package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tobyard/hl/internal/hlservice"
	"github.com/tobyard/hl/internal/sse"
)

// NewRouter creates a chi router with all API routes mounted. events may
// be nil; when set, entry mutations are broadcast to SSE clients and the
// stream is served at GET /events.
func NewRouter(svc *hlservice.Service, events *sse.Broker) chi.Router {
	var notify func(kind string, id int64)
	if events != nil {
		notify = events.PublishEntryEvent
	}
	h := NewHandler(svc, notify)

	r := chi.NewRouter()

	// Entries CRUD.
	r.Get("/entries", h.ListEntries)
	r.Post("/entries", h.CreateEntry)
	r.Get("/entries/{id}", h.GetEntry)
	r.Put("/entries/{id}", h.UpdateEntry)
	r.Delete("/entries/{id}", h.DeleteEntry)

	// Search.
	r.Get("/search", h.Search)

	// SSE stream.
	if events != nil {
		r.Method(http.MethodGet, "/events", events)
	}

	return r
}
