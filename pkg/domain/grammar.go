package domain

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
)

// Rules maps a non-terminal symbol to its replacement.
type Rules map[Symbol]Sequence

// Candidate is one weighted alternative of a stochastic rule.
type Candidate struct {
	Replacement Sequence
	Weight      float64
}

// StochasticRules maps a non-terminal symbol to its weighted alternatives.
type StochasticRules map[Symbol][]Candidate

// Float64Source is the randomness needed to sample a stochastic rule.
// *rand.Rand from math/rand and math/rand/v2 both satisfy it.
type Float64Source interface {
	Float64() float64
}

// Grammar is an axiom plus exactly one rule table, deterministic or stochastic.
// It is immutable after construction and safe to share between expanders.
type Grammar struct {
	axiom      Sequence
	rules      Rules
	stochastic StochasticRules
}

// NewGrammar creates a deterministic grammar. Inputs are copied.
func NewGrammar(axiom Sequence, rules Rules) *Grammar {
	g := &Grammar{
		axiom: axiom.Clone(),
		rules: make(Rules, len(rules)),
	}
	for sym, rep := range rules {
		g.rules[sym] = rep.Clone()
	}
	return g
}

// NewStochasticGrammar creates a grammar whose rules are sampled by weight.
// Candidate weights are only checked when a symbol is sampled (or by Validate).
func NewStochasticGrammar(axiom Sequence, rules StochasticRules) *Grammar {
	g := &Grammar{
		axiom:      axiom.Clone(),
		stochastic: make(StochasticRules, len(rules)),
	}
	for sym, candidates := range rules {
		copied := make([]Candidate, len(candidates))
		for i, c := range candidates {
			copied[i] = Candidate{Replacement: c.Replacement.Clone(), Weight: c.Weight}
		}
		g.stochastic[sym] = copied
	}
	return g
}

// Stochastic reports whether the grammar uses weighted rules.
func (g *Grammar) Stochastic() bool {
	return g.stochastic != nil
}

// Axiom returns a copy of the depth-0 sequence.
func (g *Grammar) Axiom() Sequence {
	return g.axiom.Clone()
}

// Rules returns a copy of the deterministic table (nil for stochastic grammars).
func (g *Grammar) Rules() Rules {
	if g.rules == nil {
		return nil
	}
	out := make(Rules, len(g.rules))
	for sym, rep := range g.rules {
		out[sym] = rep.Clone()
	}
	return out
}

// StochasticRules returns a copy of the weighted table (nil for deterministic grammars).
func (g *Grammar) StochasticRules() StochasticRules {
	if g.stochastic == nil {
		return nil
	}
	out := make(StochasticRules, len(g.stochastic))
	for sym, candidates := range g.stochastic {
		copied := make([]Candidate, len(candidates))
		for i, c := range candidates {
			copied[i] = Candidate{Replacement: c.Replacement.Clone(), Weight: c.Weight}
		}
		out[sym] = copied
	}
	return out
}

// Symbols returns the non-terminal symbols in ascending order.
func (g *Grammar) Symbols() []Symbol {
	if g.stochastic != nil {
		return slices.Sorted(maps.Keys(g.stochastic))
	}
	return slices.Sorted(maps.Keys(g.rules))
}

// Lookup returns the replacement of a symbol in a deterministic grammar.
// The returned slice aliases the grammar's own buffer and must not be modified.
// ok is false for terminal symbols and for every symbol of a stochastic grammar.
func (g *Grammar) Lookup(sym Symbol) (rep Sequence, ok bool) {
	rep, ok = g.rules[sym]
	return rep, ok
}

// Sample picks a replacement for sym. Deterministic grammars answer like Lookup
// without consuming randomness. For stochastic grammars candidate i is chosen
// with probability weight_i / sum(weights).
//
// A non-terminal whose candidates cannot be sampled is a malformed grammar:
// the error wraps ErrNoCandidates or ErrInvalidWeight and ok is true.
func (g *Grammar) Sample(sym Symbol, rng Float64Source) (rep Sequence, ok bool, err error) {
	if g.stochastic == nil {
		rep, ok = g.rules[sym]
		return rep, ok, nil
	}

	candidates, ok := g.stochastic[sym]
	if !ok {
		return nil, false, nil
	}

	i, err := pick(candidates, rng)
	if err != nil {
		return nil, true, fmt.Errorf("symbol %q: %w", rune(sym), err)
	}
	return candidates[i].Replacement, true, nil
}

// Validate reports every stochastic entry that would fail when sampled.
func (g *Grammar) Validate() error {
	if g.stochastic == nil {
		return nil
	}
	var errs []error
	for _, sym := range g.Symbols() {
		if _, err := totalWeight(g.stochastic[sym]); err != nil {
			errs = append(errs, fmt.Errorf("symbol %q: %w", rune(sym), err))
		}
	}
	return errors.Join(errs...)
}

func pick(candidates []Candidate, rng Float64Source) (int, error) {
	total, err := totalWeight(candidates)
	if err != nil {
		return 0, err
	}

	target := rng.Float64() * total
	last := -1
	var cum float64
	for i, c := range candidates {
		if c.Weight <= 0 {
			continue
		}
		cum += c.Weight
		last = i
		if target < cum {
			return i, nil
		}
	}
	// Rounding can leave target == cum on the final step.
	return last, nil
}

func totalWeight(candidates []Candidate) (float64, error) {
	var total float64
	for _, c := range candidates {
		if c.Weight < 0 || math.IsNaN(c.Weight) || math.IsInf(c.Weight, 0) {
			return 0, fmt.Errorf("%w: %v", ErrInvalidWeight, c.Weight)
		}
		total += c.Weight
	}
	if math.IsInf(total, 0) {
		return 0, fmt.Errorf("%w: weights overflow", ErrInvalidWeight)
	}
	if total <= 0 {
		return 0, ErrNoCandidates
	}
	return total, nil
}
