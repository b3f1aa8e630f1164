package hlservice

import (
	"context"
	"strings"

	"github.com/tobyard/hl/internal/apperr"
	"github.com/tobyard/hl/internal/checksum"
	"github.com/tobyard/hl/internal/store"
)

// EditSession guards a long-running external edit of one entry. It holds
// the editor lock from StartEdit until Close and persists content
// snapshots pushed by the caller, so the stored entry stays close to the
// in-progress edit even if the editor dies.
type EditSession struct {
	svc     *Service
	entry   *store.Entry
	lastSum string
}

// StartEdit acquires the editor lock for id and returns a session seeded
// with the entry's current content. Returns apperr.ErrNotFound for an
// unknown id and *lock.HeldError when another live process is editing it.
func (s *Service) StartEdit(ctx context.Context, id int64) (*EditSession, error) {
	entry, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, apperr.ErrNotFound
	}
	if err := s.locks.Acquire(id); err != nil {
		return nil, err
	}
	return &EditSession{
		svc:     s,
		entry:   entry,
		lastSum: checksum.SumString(entry.Content),
	}, nil
}

// Entry returns the most recently persisted state of the entry under edit.
func (es *EditSession) Entry() *store.Entry {
	return es.entry
}

// NotifySnapshot persists an intermediate content snapshot, updating only
// the content field. Empty drafts and content identical to the last
// persisted snapshot are skipped; the bool reports whether a write
// happened.
func (es *EditSession) NotifySnapshot(ctx context.Context, content string) (bool, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return false, nil
	}
	sum := checksum.SumString(content)
	if sum == es.lastSum {
		return false, nil
	}
	updated, err := es.svc.Update(ctx, es.entry.ID, &content, nil)
	if err != nil {
		return false, err
	}
	if updated == nil {
		// Entry deleted out from under the session.
		return false, apperr.ErrNotFound
	}
	es.entry = updated
	es.lastSum = sum
	return true, nil
}

// Close releases the editor lock. Safe to call more than once.
func (es *EditSession) Close() error {
	return es.svc.locks.Release(es.entry.ID)
}
