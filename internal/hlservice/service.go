// Package hlservice composes the entry store and the editor lock manager
// into the lifecycle operations exposed to the CLI, HTTP API, and MCP
// server.
package hlservice

import (
	"context"
	"strings"

	"github.com/tobyard/hl/internal/apperr"
	"github.com/tobyard/hl/internal/lock"
	"github.com/tobyard/hl/internal/store"
)

// Author values used by the bundled callers. The store treats author as
// opaque text; these are call-site conventions, not an enum.
const (
	AuthorUser   = "user"
	AuthorClaude = "claude"
)

// Service coordinates store and lock operations.
type Service struct {
	db    *store.DB
	locks *lock.Manager
}

// NewService creates a new highlight service.
func NewService(db *store.DB, locks *lock.Manager) *Service {
	return &Service{db: db, locks: locks}
}

// Add creates a new entry. Attribution is mandatory: callers must state who
// authored the highlight, there is no implicit default.
func (s *Service) Add(_ context.Context, content, author, source string) (*store.Entry, error) {
	if strings.TrimSpace(author) == "" {
		return nil, apperr.ErrNoAuthor
	}
	return s.db.Create(content, author, source)
}

// Search runs a full-text search across content and source.
func (s *Service) Search(_ context.Context, query string, limit int) ([]store.Entry, error) {
	return s.db.Search(query, limit)
}

// Recent lists entries newest first, optionally filtered by author.
func (s *Service) Recent(_ context.Context, limit int, author string) ([]store.Entry, error) {
	return s.db.Recent(limit, author)
}

// Get returns a single entry, or nil when the id is unknown.
func (s *Service) Get(_ context.Context, id int64) (*store.Entry, error) {
	return s.db.Get(id)
}

// Update rewrites content and/or source; nil fields keep their current
// value. Returns nil when the id is unknown.
func (s *Service) Update(_ context.Context, id int64, content, source *string) (*store.Entry, error) {
	return s.db.Update(id, content, source)
}

// Delete removes an entry, reporting whether it existed.
func (s *Service) Delete(_ context.Context, id int64) (bool, error) {
	return s.db.Delete(id)
}
