package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/lindenmayer/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunGrammarStoreContract runs a suite of tests to verify that a GrammarStore implementation
// adheres to the defined interface contract.
func RunGrammarStoreContract(t *testing.T, store GrammarStore) {
	ctx := context.Background()
	name := "contract-" + time.Now().Format("20060102150405")

	plant := &domain.Definition{
		Name:        name,
		Description: "fractal plant",
		Grammar: domain.NewGrammar(domain.NewSequence("X"), domain.Rules{
			'X': domain.NewSequence("F[X][+DX]-DX"),
			'D': domain.NewSequence("F"),
			'E': {},
		}),
	}

	t.Run("Save and Load", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, plant), "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, plant.Name, loaded.Name)
		assert.Equal(t, plant.Description, loaded.Description)
		assert.False(t, loaded.Grammar.Stochastic())
		assert.Equal(t, "X", loaded.Grammar.Axiom().String())

		rep, ok := loaded.Grammar.Lookup('X')
		require.True(t, ok)
		assert.Equal(t, "F[X][+DX]-DX", rep.String())

		rep, ok = loaded.Grammar.Lookup('E')
		assert.True(t, ok, "empty replacements must survive persistence")
		assert.Empty(t, rep)
	})

	t.Run("Save Stochastic", func(t *testing.T) {
		id := name + "-stochastic"
		def := &domain.Definition{
			Name: id,
			Grammar: domain.NewStochasticGrammar(domain.NewSequence("X"), domain.StochasticRules{
				'X': {
					{Replacement: domain.NewSequence("A"), Weight: 2},
					{Replacement: domain.NewSequence("B"), Weight: 0.5},
				},
			}),
		}
		require.NoError(t, store.Save(ctx, def))
		defer func() { _ = store.Delete(ctx, id) }()

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		require.True(t, loaded.Grammar.Stochastic())
		assert.Equal(t, def.Grammar.StochasticRules(), loaded.Grammar.StochasticRules())
	})

	t.Run("Overwrite", func(t *testing.T) {
		updated := &domain.Definition{
			Name:    name,
			Grammar: domain.NewGrammar(domain.NewSequence("A"), domain.Rules{'A': domain.NewSequence("AB")}),
		}
		require.NoError(t, store.Save(ctx, updated))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, "A", loaded.Grammar.Axiom().String())
		assert.Empty(t, loaded.Description)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrGrammarNotFound)
	})

	t.Run("List", func(t *testing.T) {
		id1 := name + "-1"
		id2 := name + "-2"
		_ = store.Save(ctx, &domain.Definition{Name: id2, Grammar: plant.Grammar})
		_ = store.Save(ctx, &domain.Definition{Name: id1, Grammar: plant.Grammar})
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
		assert.IsNonDecreasing(t, names)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, name), "Delete should not return error")

		_, err := store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrGrammarNotFound, "Load after Delete should return ErrGrammarNotFound")

		assert.NoError(t, store.Delete(ctx, name), "Deleting twice is not an error")
	})
}
