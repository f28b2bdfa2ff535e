package expansion

import (
	"fmt"
	"iter"

	"github.com/aretw0/lindenmayer/pkg/domain"
)

// Lazy produces the expansion of a deterministic grammar one symbol at a time.
// Its output is identical to Eager for the same grammar and depth while holding
// only depth+1 cursors. A Lazy is single-use and not safe for concurrent use.
type Lazy struct {
	m machine
}

// NewLazy binds a new engine to a deterministic grammar and a depth.
func NewLazy(g *domain.Grammar, depth int) (*Lazy, error) {
	if depth < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeDepth, depth)
	}
	if g.Stochastic() {
		return nil, fmt.Errorf("%w: use NewStochastic", ErrStochasticGrammar)
	}

	lookup := func(sym domain.Symbol) (domain.Sequence, bool, error) {
		rep, ok := g.Lookup(sym)
		return rep, ok, nil
	}
	return &Lazy{m: newMachine(g.Axiom(), depth, lookup)}, nil
}

// Next returns the next symbol, or false once the expansion is exhausted.
func (l *Lazy) Next() (domain.Symbol, bool) {
	return l.m.next()
}

// Err returns nil: deterministic lookups cannot fail.
func (l *Lazy) Err() error {
	return l.m.err
}

// All returns an iterator over the remaining symbols.
func (l *Lazy) All() iter.Seq[domain.Symbol] {
	return All(l)
}

// Collect materializes the remaining symbols.
func (l *Lazy) Collect() (domain.Sequence, error) {
	return Collect(l)
}

// Depth returns the number of rewrite rounds the engine was built for.
func (l *Lazy) Depth() int {
	return l.m.depth
}

// Stats returns the work done so far.
func (l *Lazy) Stats() Stats {
	return l.m.stats
}
