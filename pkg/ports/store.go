package ports

import (
	"context"

	"github.com/aretw0/lindenmayer/pkg/domain"
)

// GrammarStore defines the interface for persisting named grammar definitions.
type GrammarStore interface {
	// Save persists the definition under def.Name, replacing any previous one.
	Save(ctx context.Context, def *domain.Definition) error

	// Load retrieves the definition for a given name.
	// Returns domain.ErrGrammarNotFound if the name does not exist.
	Load(ctx context.Context, name string) (*domain.Definition, error)

	// Delete removes the definition. Deleting an unknown name is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the stored names in ascending order.
	List(ctx context.Context) ([]string, error)
}
