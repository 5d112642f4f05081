// Package memory provides in-memory implementations of the storage
// ports. Used by tests and by --memory development runs.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/mediapull/internal/core/domain"
	"github.com/custodia-labs/mediapull/internal/core/ports/driven"
)

// Ensure EntityStore implements the interface.
var _ driven.EntityStore = (*EntityStore)(nil)

// EntityStore is an in-memory implementation of driven.EntityStore.
type EntityStore struct {
	mu      sync.RWMutex
	records map[string]domain.Record // by ID
	byGUID  map[string]string        // GUID → ID
}

// NewEntityStore creates a new in-memory entity store.
func NewEntityStore() *EntityStore {
	return &EntityStore{
		records: make(map[string]domain.Record),
		byGUID:  make(map[string]string),
	}
}

// LookupIDByGUID resolves an existing record ID from a remote GUID.
func (s *EntityStore) LookupIDByGUID(_ context.Context, guid string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byGUID[guid]
	return id, ok, nil
}

// Load retrieves a record by category and ID.
func (s *EntityStore) Load(_ context.Context, category domain.Category, id string) (*domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok || rec.Category != category {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

// Save stores or updates a record, assigning an ID on first save.
func (s *EntityStore) Save(_ context.Context, rec *domain.Record) (*domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := *rec
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}
	s.records[saved.ID] = saved
	if saved.GUID != "" {
		s.byGUID[saved.GUID] = saved.ID
	}
	return &saved, nil
}

// Len returns the number of stored records.
func (s *EntityStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
