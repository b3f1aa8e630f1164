// Package api implements the local HTTP API using chi.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/tobyard/hl/internal/apperr"
	"github.com/tobyard/hl/internal/hlservice"
	"github.com/tobyard/hl/internal/store"
)

// Handler holds API route handlers.
type Handler struct {
	svc    *hlservice.Service
	notify func(kind string, id int64)
}

// NewHandler creates a new Handler. notify may be nil; when set it is
// called after every successful mutation.
func NewHandler(svc *hlservice.Service, notify func(kind string, id int64)) *Handler {
	if notify == nil {
		notify = func(string, int64) {}
	}
	return &Handler{svc: svc, notify: notify}
}

// CreateEntryRequest is the request body for creating an entry.
type CreateEntryRequest struct {
	Content string `json:"content"`
	Author  string `json:"author"`
	Source  string `json:"source"`
}

// Validate checks the creation preconditions.
func (r CreateEntryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.Required),
		validation.Field(&r.Author, validation.Required),
	)
}

// UpdateEntryRequest is the request body for updating an entry. Omitted
// fields keep their stored values.
type UpdateEntryRequest struct {
	Content *string `json:"content"`
	Source  *string `json:"source"`
}

func entryID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

// ListEntries handles GET /entries with optional limit and author filters.
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	entries, err := h.svc.Recent(r.Context(), limit, q.Get("author"))
	if err != nil {
		slog.Error("list entries failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if entries == nil {
		entries = []store.Entry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

// GetEntry handles GET /entries/{id}.
func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid id"))
		return
	}
	entry, err := h.svc.Get(r.Context(), id)
	if err != nil {
		slog.Error("get entry failed", slog.Int64("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if entry == nil {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// CreateEntry handles POST /entries.
func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	entry, err := h.svc.Add(r.Context(), req.Content, req.Author, req.Source)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrEmptyContent), errors.Is(err, apperr.ErrNoAuthor):
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		default:
			slog.Error("create entry failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	h.notify("created", entry.ID)
	writeJSON(w, http.StatusCreated, entry)
}

// UpdateEntry handles PUT /entries/{id}.
func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	id, ok := entryID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid id"))
		return
	}
	var req UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	entry, err := h.svc.Update(r.Context(), id, req.Content, req.Source)
	if err != nil {
		if errors.Is(err, apperr.ErrEmptyContent) {
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		} else {
			slog.Error("update entry failed", slog.Int64("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	if entry == nil {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	h.notify("updated", entry.ID)
	writeJSON(w, http.StatusOK, entry)
}

// DeleteEntry handles DELETE /entries/{id}.
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid id"))
		return
	}
	deleted, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		slog.Error("delete entry failed", slog.Int64("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	h.notify("deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

// Search handles GET /search.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.svc.Search(r.Context(), q, limit)
	if err != nil {
		slog.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if results == nil {
		results = []store.Entry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}
