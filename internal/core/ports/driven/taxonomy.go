package driven

import (
	"context"

	"github.com/custodia-labs/mediapull/internal/core/domain"
)

// TaxonomyService finds or creates named terms within a vocabulary.
type TaxonomyService interface {
	// FindTerm looks up a term by name within a vocabulary.
	// Returns domain.ErrNotFound when absent.
	FindTerm(ctx context.Context, name, vocabulary string) (*domain.Term, error)

	// CreateTerm creates a new term, assigning its ID.
	CreateTerm(ctx context.Context, name, vocabulary string) (*domain.Term, error)
}
