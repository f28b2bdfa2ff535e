package ports_test

import (
	"context"
	"sort"
	"testing"

	"github.com/aretw0/lindenmayer/pkg/domain"
	"github.com/aretw0/lindenmayer/pkg/ports"
)

// mockStore is a minimal map-backed GrammarStore used to exercise the contract itself.
type mockStore struct {
	data map[string]*domain.Definition
}

func (m *mockStore) Save(ctx context.Context, def *domain.Definition) error {
	copied := *def
	m.data[def.Name] = &copied
	return nil
}

func (m *mockStore) Load(ctx context.Context, name string) (*domain.Definition, error) {
	def, ok := m.data[name]
	if !ok {
		return nil, domain.ErrGrammarNotFound
	}
	return def, nil
}

func (m *mockStore) Delete(ctx context.Context, name string) error {
	delete(m.data, name)
	return nil
}

func (m *mockStore) List(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(m.data))
	for name := range m.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func TestGrammarStore_Contract(t *testing.T) {
	ports.RunGrammarStoreContract(t, &mockStore{data: make(map[string]*domain.Definition)})
}
