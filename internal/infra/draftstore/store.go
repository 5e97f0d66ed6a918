package draftstore

import (
	"sync"

	"eventcrm/internal/domain/offer"
	"eventcrm/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errs.New("draft not found")
	ErrForbidden = errs.New("draft belongs to another user")
)

// Store keeps offer drafts in memory. Drafts are ephemeral working state and
// get no database identity until they are saved as an offer; a restart
// discards them, which matches their lifecycle in the offer builder.
type Store struct {
	mu     sync.RWMutex
	drafts map[uuid.UUID]*offer.Draft
}

func New() *Store {
	return &Store{drafts: make(map[uuid.UUID]*offer.Draft)}
}

func (s *Store) Put(d *offer.Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[d.ID()] = d
}

// Read runs fn on the draft under the read lock, so snapshots taken inside
// fn cannot interleave with a concurrent Mutate. The draft pointer must not
// escape fn.
func (s *Store) Read(id, ownerID uuid.UUID, fn func(d *offer.Draft) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, err := s.lookup(id, ownerID)
	if err != nil {
		return err
	}
	return fn(d)
}

// Mutate runs fn on the draft under the write lock, so a read-modify-write
// sequence on one draft cannot interleave with another request's.
func (s *Store) Mutate(id, ownerID uuid.UUID, fn func(d *offer.Draft) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.lookup(id, ownerID)
	if err != nil {
		return err
	}
	return fn(d)
}

func (s *Store) Delete(id, ownerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookup(id, ownerID); err != nil {
		return err
	}
	delete(s.drafts, id)
	return nil
}

func (s *Store) lookup(id, ownerID uuid.UUID) (*offer.Draft, error) {
	d, ok := s.drafts[id]
	if !ok {
		return nil, ErrNotFound
	}
	if d.OwnerID() != ownerID {
		return nil, ErrForbidden
	}
	return d, nil
}
