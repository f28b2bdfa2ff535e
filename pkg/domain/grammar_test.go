package domain_test

import (
	"math"
	"testing"

	"github.com/aretw0/lindenmayer/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource replays a fixed list of draws.
type fixedSource struct {
	draws []float64
	calls int
}

func (f *fixedSource) Float64() float64 {
	v := f.draws[f.calls%len(f.draws)]
	f.calls++
	return v
}

func TestSequence_RoundTrip(t *testing.T) {
	seq := domain.NewSequence("F[+X]é")
	assert.Len(t, seq, 6)
	assert.Equal(t, domain.Symbol('é'), seq[5])
	assert.Equal(t, "F[+X]é", seq.String())
	assert.Nil(t, domain.Sequence(nil).Clone())
}

func TestGrammar_Lookup(t *testing.T) {
	g := domain.NewGrammar(domain.NewSequence("X"), domain.Rules{
		'X': domain.NewSequence("F[X]"),
		'E': {},
	})

	rep, ok := g.Lookup('X')
	require.True(t, ok)
	assert.Equal(t, "F[X]", rep.String())

	rep, ok = g.Lookup('E')
	assert.True(t, ok, "empty replacement is still a rule")
	assert.Empty(t, rep)

	_, ok = g.Lookup('F')
	assert.False(t, ok, "symbols without a rule are terminal")
	assert.False(t, g.Stochastic())
	assert.Equal(t, []domain.Symbol{'E', 'X'}, g.Symbols())
}

func TestGrammar_IsolatedFromInputs(t *testing.T) {
	axiom := domain.NewSequence("A")
	rules := domain.Rules{'A': domain.NewSequence("AB")}
	g := domain.NewGrammar(axiom, rules)

	axiom[0] = 'Z'
	rules['A'][0] = 'Z'
	rules['B'] = domain.NewSequence("A")

	assert.Equal(t, "A", g.Axiom().String())
	rep, _ := g.Lookup('A')
	assert.Equal(t, "AB", rep.String())
	_, ok := g.Lookup('B')
	assert.False(t, ok)

	copied := g.Rules()
	copied['A'][0] = 'Q'
	rep, _ = g.Lookup('A')
	assert.Equal(t, "AB", rep.String())
}

func TestGrammar_SampleDeterministic(t *testing.T) {
	g := domain.NewGrammar(domain.NewSequence("A"), domain.Rules{'A': domain.NewSequence("AB")})
	src := &fixedSource{draws: []float64{0.5}}

	rep, ok, err := g.Sample('A', src)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "AB", rep.String())
	assert.Zero(t, src.calls, "deterministic grammars must not draw")
}

func TestGrammar_SampleWeighted(t *testing.T) {
	g := domain.NewStochasticGrammar(domain.NewSequence("X"), domain.StochasticRules{
		'X': {
			{Replacement: domain.NewSequence("A"), Weight: 2},
			{Replacement: domain.NewSequence("skip"), Weight: 0},
			{Replacement: domain.NewSequence("B"), Weight: 1},
		},
	})
	require.True(t, g.Stochastic())

	cases := []struct {
		draw float64
		want string
	}{
		{0.0, "A"},
		{0.66, "A"},
		{0.67, "B"},
		{0.999999, "B"},
	}
	for _, tc := range cases {
		rep, ok, err := g.Sample('X', &fixedSource{draws: []float64{tc.draw}})
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, tc.want, rep.String(), "draw %v", tc.draw)
	}

	_, ok, err := g.Sample('F', &fixedSource{draws: []float64{0}})
	assert.NoError(t, err)
	assert.False(t, ok)

	_, ok = g.Lookup('X')
	assert.False(t, ok, "stochastic grammars answer only through Sample")
}

func TestGrammar_SampleMalformed(t *testing.T) {
	g := domain.NewStochasticGrammar(domain.NewSequence("X"), domain.StochasticRules{
		'E': {},
		'Z': {{Replacement: domain.NewSequence("A"), Weight: 0}},
		'N': {{Replacement: domain.NewSequence("A"), Weight: -1}},
		'Q': {{Replacement: domain.NewSequence("A"), Weight: math.NaN()}},
	})
	src := &fixedSource{draws: []float64{0.1}}

	_, ok, err := g.Sample('E', src)
	assert.True(t, ok)
	assert.ErrorIs(t, err, domain.ErrNoCandidates)

	_, _, err = g.Sample('Z', src)
	assert.ErrorIs(t, err, domain.ErrNoCandidates)

	_, _, err = g.Sample('N', src)
	assert.ErrorIs(t, err, domain.ErrInvalidWeight)

	_, _, err = g.Sample('Q', src)
	assert.ErrorIs(t, err, domain.ErrInvalidWeight)

	err = g.Validate()
	assert.ErrorIs(t, err, domain.ErrNoCandidates)
	assert.ErrorIs(t, err, domain.ErrInvalidWeight)
}

func TestDefinition_Validate(t *testing.T) {
	ok := &domain.Definition{
		Name:    "algae",
		Grammar: domain.NewGrammar(domain.NewSequence("A"), nil),
	}
	assert.NoError(t, ok.Validate())

	badName := &domain.Definition{Name: "../etc", Grammar: ok.Grammar}
	assert.ErrorIs(t, badName.Validate(), domain.ErrInvalidGrammar)

	noGrammar := &domain.Definition{Name: "empty"}
	assert.ErrorIs(t, noGrammar.Validate(), domain.ErrInvalidGrammar)

	badWeights := &domain.Definition{
		Name: "broken",
		Grammar: domain.NewStochasticGrammar(nil, domain.StochasticRules{
			'X': {{Replacement: domain.NewSequence("A"), Weight: 0}},
		}),
	}
	err := badWeights.Validate()
	assert.ErrorIs(t, err, domain.ErrInvalidGrammar)
	assert.ErrorIs(t, err, domain.ErrNoCandidates)
}
