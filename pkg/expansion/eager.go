package expansion

import (
	"fmt"

	"github.com/aretw0/lindenmayer/pkg/domain"
)

// Eager applies a deterministic grammar depth times to the whole sequence and
// returns the result. Symbols left after the last round are kept verbatim, even
// when they have rules.
func Eager(g *domain.Grammar, depth int) (domain.Sequence, error) {
	rounds, err := eager(g, depth, nil, false)
	if err != nil {
		return nil, err
	}
	return rounds[len(rounds)-1], nil
}

// EagerRounds is like Eager but returns the axiom followed by the sequence
// obtained after each round, depth+1 entries in total.
func EagerRounds(g *domain.Grammar, depth int) ([]domain.Sequence, error) {
	return eager(g, depth, nil, true)
}

// EagerStochastic rewrites a grammar depth times, sampling every replacement
// independently. Randomness is drawn round by round, left to right within a
// round. The draw order differs from Stochastic, so the two do not agree for the
// same seed.
func EagerStochastic(g *domain.Grammar, depth int, rng domain.Float64Source) (domain.Sequence, error) {
	rounds, err := eager(g, depth, rng, false)
	if err != nil {
		return nil, err
	}
	return rounds[len(rounds)-1], nil
}

func eager(g *domain.Grammar, depth int, rng domain.Float64Source, keep bool) ([]domain.Sequence, error) {
	if depth < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeDepth, depth)
	}
	if rng == nil && g.Stochastic() {
		return nil, fmt.Errorf("%w: use EagerStochastic", ErrStochasticGrammar)
	}

	current := g.Axiom()
	rounds := []domain.Sequence{current}
	for round := 1; round <= depth; round++ {
		next := make(domain.Sequence, 0, len(current))
		for _, sym := range current {
			rep, ok, err := g.Sample(sym, rng)
			if err != nil {
				return nil, fmt.Errorf("round %d: %w", round, err)
			}
			if ok {
				next = append(next, rep...)
			} else {
				next = append(next, sym)
			}
		}
		current = next
		if keep {
			rounds = append(rounds, current)
		} else {
			rounds[0] = current
		}
	}
	return rounds, nil
}
