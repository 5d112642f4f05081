package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/mediapull/internal/core/domain"
	"github.com/custodia-labs/mediapull/internal/core/ports/driven"
)

// taxonomyStore implements driven.TaxonomyService.
type taxonomyStore struct {
	store *Store
}

var _ driven.TaxonomyService = (*taxonomyStore)(nil)

// FindTerm looks up a term by name within a vocabulary.
func (s *taxonomyStore) FindTerm(ctx context.Context, name, vocabulary string) (*domain.Term, error) {
	var term domain.Term
	err := s.store.db.QueryRowContext(ctx,
		"SELECT id, name, vocabulary FROM terms WHERE name = ? AND vocabulary = ?",
		name, vocabulary).Scan(&term.ID, &term.Name, &term.Vocabulary)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding term: %w", err)
	}
	return &term, nil
}

// CreateTerm creates a new term, assigning its ID.
func (s *taxonomyStore) CreateTerm(ctx context.Context, name, vocabulary string) (*domain.Term, error) {
	term := domain.Term{
		ID:         uuid.NewString(),
		Name:       name,
		Vocabulary: vocabulary,
	}
	_, err := s.store.db.ExecContext(ctx,
		"INSERT INTO terms (id, name, vocabulary) VALUES (?, ?, ?)",
		term.ID, term.Name, term.Vocabulary)
	if err != nil {
		return nil, fmt.Errorf("creating term: %w", err)
	}
	return &term, nil
}
