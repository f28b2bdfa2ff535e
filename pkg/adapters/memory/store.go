package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/lindenmayer/pkg/domain"
)

// Store implements ports.GrammarStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.Definition
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store, optionally seeded with definitions.
func NewStore(defs ...*domain.Definition) (*Store, error) {
	s := &Store{
		data: make(map[string]domain.Definition, len(defs)),
	}
	for _, def := range defs {
		if err := s.Save(context.Background(), def); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Save validates and keeps a copy of the definition.
// Grammars are immutable, so the copy can share them.
func (s *Store) Save(ctx context.Context, def *domain.Definition) error {
	if err := def.Validate(); err != nil {
		return fmt.Errorf("failed to save grammar: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[def.Name] = *def
	return nil
}

// Load retrieves a definition from memory.
func (s *Store) Load(ctx context.Context, name string) (*domain.Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	def, ok := s.data[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrGrammarNotFound, name)
	}
	return &def, nil
}

// Delete removes a definition.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns the stored names in ascending order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
