package catalog_test

import (
	"context"
	"testing"

	"github.com/aretw0/lindenmayer/pkg/adapters/memory"
	"github.com/aretw0/lindenmayer/pkg/catalog"
	"github.com/aretw0/lindenmayer/pkg/domain"
	"github.com/aretw0/lindenmayer/pkg/expansion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinitions(t *testing.T) {
	defs, err := catalog.Definitions()
	require.NoError(t, err)

	var names []string
	for _, def := range defs {
		names = append(names, def.Name)
	}
	assert.Equal(t, []string{"algae", "cantor", "dragon", "fractal-plant", "koch", "sierpinski", "stochastic-plant"}, names)
}

func TestDefinitions_Expand(t *testing.T) {
	defs, err := catalog.Definitions()
	require.NoError(t, err)

	for _, def := range defs {
		t.Run(def.Name, func(t *testing.T) {
			if def.Grammar.Stochastic() {
				engine, err := expansion.NewStochastic(def.Grammar, 3, expansion.WithSeed(1))
				require.NoError(t, err)
				out, err := engine.Collect()
				require.NoError(t, err)
				assert.NotEmpty(t, out)
				return
			}
			engine, err := expansion.NewLazy(def.Grammar, 3)
			require.NoError(t, err)
			eager, err := expansion.Eager(def.Grammar, 3)
			require.NoError(t, err)
			lazy, err := engine.Collect()
			require.NoError(t, err)
			assert.Equal(t, eager, lazy)
		})
	}
}

func TestAlgaeDepth5(t *testing.T) {
	defs, err := catalog.Definitions()
	require.NoError(t, err)

	engine, err := expansion.NewLazy(defs[0].Grammar, 5)
	require.NoError(t, err)
	out, err := engine.Collect()
	require.NoError(t, err)
	assert.Equal(t, "ABAABABAABAAB", out.String())
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	custom := &domain.Definition{
		Name:    "koch",
		Grammar: domain.NewGrammar(domain.NewSequence("F"), domain.Rules{'F': domain.NewSequence("FF")}),
	}
	store, err := memory.NewStore(custom)
	require.NoError(t, err)

	added, err := catalog.Seed(ctx, store)
	require.NoError(t, err)
	assert.NotContains(t, added, "koch", "existing grammars are kept")
	assert.Contains(t, added, "algae")

	kept, err := store.Load(ctx, "koch")
	require.NoError(t, err)
	rep, _ := kept.Grammar.Lookup('F')
	assert.Equal(t, "FF", rep.String())

	added, err = catalog.Seed(ctx, store)
	require.NoError(t, err)
	assert.Empty(t, added)
}
