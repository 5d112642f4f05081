package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/mediapull/internal/core/domain"
	"github.com/custodia-labs/mediapull/internal/core/ports/driven"
)

// Ensure TaxonomyStore implements the interface.
var _ driven.TaxonomyService = (*TaxonomyStore)(nil)

// TaxonomyStore is an in-memory implementation of driven.TaxonomyService.
type TaxonomyStore struct {
	mu    sync.RWMutex
	terms map[string]domain.Term // vocabulary + "\x00" + name → term
}

// NewTaxonomyStore creates a new in-memory taxonomy store.
func NewTaxonomyStore() *TaxonomyStore {
	return &TaxonomyStore{
		terms: make(map[string]domain.Term),
	}
}

func termKey(name, vocabulary string) string {
	return vocabulary + "\x00" + name
}

// FindTerm looks up a term by name within a vocabulary.
func (s *TaxonomyStore) FindTerm(_ context.Context, name, vocabulary string) (*domain.Term, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	term, ok := s.terms[termKey(name, vocabulary)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &term, nil
}

// CreateTerm creates a new term, assigning its ID.
func (s *TaxonomyStore) CreateTerm(_ context.Context, name, vocabulary string) (*domain.Term, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	term := domain.Term{
		ID:         uuid.NewString(),
		Name:       name,
		Vocabulary: vocabulary,
	}
	s.terms[termKey(name, vocabulary)] = term
	return &term, nil
}

// Len returns the number of stored terms.
func (s *TaxonomyStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.terms)
}
