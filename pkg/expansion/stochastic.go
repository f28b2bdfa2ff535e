package expansion

import (
	"fmt"
	"iter"
	"math/rand/v2"

	"github.com/aretw0/lindenmayer/pkg/domain"
)

// seedStream is the fixed PCG stream selector used for explicit seeds.
const seedStream = 0x9e3779b97f4a7c15

// NewRand returns a generator fully determined by seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seedStream))
}

// StochasticOption configures a Stochastic engine.
type StochasticOption func(*Stochastic)

// WithSeed makes the output reproducible for a fixed grammar, depth and seed.
func WithSeed(seed uint64) StochasticOption {
	return func(s *Stochastic) {
		s.rng = NewRand(seed)
		s.seed = &seed
	}
}

// Stochastic is the lazy engine for weighted grammars. Each rewrite samples a
// candidate with the engine's own generator, in depth-first order. A sampling
// failure ends the stream and is reported by Err.
type Stochastic struct {
	m    machine
	rng  *rand.Rand
	seed *uint64
}

// NewStochastic binds a new engine to a grammar and a depth. Without WithSeed
// the generator is seeded from entropy and the output is not reproducible.
// Deterministic grammars are accepted and expand without drawing.
func NewStochastic(g *domain.Grammar, depth int, opts ...StochasticOption) (*Stochastic, error) {
	if depth < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeDepth, depth)
	}

	s := &Stochastic{}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	lookup := func(sym domain.Symbol) (domain.Sequence, bool, error) {
		return g.Sample(sym, s.rng)
	}
	s.m = newMachine(g.Axiom(), depth, lookup)
	return s, nil
}

// Next returns the next symbol, or false once the expansion is exhausted or failed.
func (s *Stochastic) Next() (domain.Symbol, bool) {
	return s.m.next()
}

// Err returns the sampling error that stopped the expansion, if any.
func (s *Stochastic) Err() error {
	return s.m.err
}

// All returns an iterator over the remaining symbols.
func (s *Stochastic) All() iter.Seq[domain.Symbol] {
	return All(s)
}

// Collect materializes the remaining symbols.
func (s *Stochastic) Collect() (domain.Sequence, error) {
	return Collect(s)
}

// Seed returns the explicit seed, or false when seeded from entropy.
func (s *Stochastic) Seed() (uint64, bool) {
	if s.seed == nil {
		return 0, false
	}
	return *s.seed, true
}

// Depth returns the number of rewrite rounds the engine was built for.
func (s *Stochastic) Depth() int {
	return s.m.depth
}

// Stats returns the work done so far.
func (s *Stochastic) Stats() Stats {
	return s.m.stats
}
