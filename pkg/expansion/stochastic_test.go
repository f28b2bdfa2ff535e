package expansion_test

import (
	"strings"
	"testing"

	"github.com/aretw0/lindenmayer/pkg/domain"
	"github.com/aretw0/lindenmayer/pkg/expansion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stochasticPlant() *domain.Grammar {
	return domain.NewStochasticGrammar(domain.NewSequence("X"), domain.StochasticRules{
		'X': {{Replacement: domain.NewSequence("F[X][+DX]-DX"), Weight: 1}},
		'D': {
			{Replacement: domain.NewSequence("F"), Weight: 2},
			{Replacement: domain.NewSequence("D"), Weight: 1},
			{Replacement: domain.NewSequence("FF"), Weight: 1},
		},
	})
}

func coin() *domain.Grammar {
	return domain.NewStochasticGrammar(domain.NewSequence("X"), domain.StochasticRules{
		'X': {
			{Replacement: domain.NewSequence("A"), Weight: 2},
			{Replacement: domain.NewSequence("B"), Weight: 1},
		},
	})
}

func stochasticString(t *testing.T, g *domain.Grammar, depth int, opts ...expansion.StochasticOption) string {
	t.Helper()
	s, err := expansion.NewStochastic(g, depth, opts...)
	require.NoError(t, err)
	out, err := s.Collect()
	require.NoError(t, err)
	return out.String()
}

func TestStochastic_ReproducibleWithSeed(t *testing.T) {
	first := stochasticString(t, stochasticPlant(), 6, expansion.WithSeed(35453))
	for range 5 {
		assert.Equal(t, first, stochasticString(t, stochasticPlant(), 6, expansion.WithSeed(35453)))
	}

	s, err := expansion.NewStochastic(stochasticPlant(), 6, expansion.WithSeed(35453))
	require.NoError(t, err)
	seed, ok := s.Seed()
	assert.True(t, ok)
	assert.EqualValues(t, 35453, seed)
}

func TestStochastic_EntropySeeded(t *testing.T) {
	wide := domain.NewStochasticGrammar(domain.NewSequence(strings.Repeat("X", 128)), coin().StochasticRules())

	s, err := expansion.NewStochastic(wide, 1)
	require.NoError(t, err)
	_, ok := s.Seed()
	assert.False(t, ok)

	// 128 independent draws: two entropy-seeded runs agree with negligible probability.
	assert.NotEqual(t, stochasticString(t, wide, 1), stochasticString(t, wide, 1))
}

func TestStochastic_Weighting(t *testing.T) {
	const trials = 30_000
	counts := map[string]int{}
	for range trials {
		counts[stochasticString(t, coin(), 1)]++
	}

	require.Len(t, counts, 2)
	share := float64(counts["A"]) / trials
	assert.InDelta(t, 2.0/3.0, share, 0.02, "A=%d B=%d", counts["A"], counts["B"])
}

func TestStochastic_OutputsAreDerivations(t *testing.T) {
	g := domain.NewStochasticGrammar(domain.NewSequence("D"), domain.StochasticRules{
		'D': {
			{Replacement: domain.NewSequence("F"), Weight: 1},
			{Replacement: domain.NewSequence("FF"), Weight: 1},
			{Replacement: domain.NewSequence(""), Weight: 1},
		},
	})
	for seed := range uint64(50) {
		out := stochasticString(t, g, 1, expansion.WithSeed(seed))
		assert.Contains(t, []string{"F", "FF", ""}, out)
	}
}

func TestStochastic_DeterministicGrammar(t *testing.T) {
	for depth := 0; depth <= 5; depth++ {
		assert.Equal(t, eagerString(t, plant(), depth), stochasticString(t, plant(), depth))
	}
}

func TestStochastic_DepthZeroDoesNotSample(t *testing.T) {
	broken := domain.NewStochasticGrammar(domain.NewSequence("X"), domain.StochasticRules{'X': {}})
	assert.Equal(t, "X", stochasticString(t, broken, 0))
}

func TestStochastic_SamplingFailureStops(t *testing.T) {
	broken := domain.NewStochasticGrammar(domain.NewSequence("AXA"), domain.StochasticRules{
		'X': {{Replacement: domain.NewSequence("B"), Weight: 0}},
	})

	s, err := expansion.NewStochastic(broken, 1, expansion.WithSeed(1))
	require.NoError(t, err)

	out, err := s.Collect()
	assert.ErrorIs(t, err, domain.ErrNoCandidates)
	assert.Equal(t, "A", out.String(), "symbols before the failure are kept")

	_, ok := s.Next()
	assert.False(t, ok, "a failed engine stays exhausted")
	assert.ErrorIs(t, s.Err(), domain.ErrNoCandidates)
}

func TestStochastic_NegativeDepth(t *testing.T) {
	_, err := expansion.NewStochastic(coin(), -3)
	assert.ErrorIs(t, err, expansion.ErrNegativeDepth)
}

func TestEagerStochastic_Reproducible(t *testing.T) {
	a, err := expansion.EagerStochastic(stochasticPlant(), 5, expansion.NewRand(9))
	require.NoError(t, err)
	b, err := expansion.EagerStochastic(stochasticPlant(), 5, expansion.NewRand(9))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	_, err = expansion.EagerStochastic(
		domain.NewStochasticGrammar(domain.NewSequence("X"), domain.StochasticRules{'X': {}}),
		1, expansion.NewRand(9))
	assert.ErrorIs(t, err, domain.ErrNoCandidates)
}

func TestStochastic_NoAllocationPerSymbol(t *testing.T) {
	s, err := expansion.NewStochastic(stochasticPlant(), 40, expansion.WithSeed(3))
	require.NoError(t, err)

	allocs := testing.AllocsPerRun(10000, func() {
		if _, ok := s.Next(); !ok {
			t.Fatal("expansion ended early")
		}
	})
	assert.Zero(t, allocs)
	assert.Equal(t, 41, s.Stats().Layers)
}
