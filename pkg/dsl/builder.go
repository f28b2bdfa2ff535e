package dsl

import (
	"fmt"

	"github.com/aretw0/lindenmayer/pkg/adapters/memory"
	"github.com/aretw0/lindenmayer/pkg/domain"
)

// Builder accumulates a grammar definition. Errors are deferred to Build.
type Builder struct {
	name        string
	description string
	axiom       domain.Sequence
	rules       domain.Rules
	choices     domain.StochasticRules
	errs        []error
}

// New creates a new grammar builder.
func New(name string) *Builder {
	return &Builder{name: name}
}

// Describe sets a human readable description.
func (b *Builder) Describe(text string) *Builder {
	b.description = text
	return b
}

// Axiom sets the depth-0 sequence.
func (b *Builder) Axiom(axiom string) *Builder {
	b.axiom = domain.NewSequence(axiom)
	return b
}

// Rule adds a deterministic rule. Each symbol may have one rule only.
func (b *Builder) Rule(sym rune, replacement string) *Builder {
	if b.rules == nil {
		b.rules = make(domain.Rules)
	}
	s := domain.Symbol(sym)
	if _, dup := b.rules[s]; dup {
		b.errs = append(b.errs, fmt.Errorf("duplicate rule for %q", sym))
		return b
	}
	b.rules[s] = domain.NewSequence(replacement)
	return b
}

// Choice adds a weighted alternative for sym, making the grammar stochastic.
// Alternatives keep the order in which they were added.
func (b *Builder) Choice(sym rune, replacement string, weight float64) *Builder {
	if b.choices == nil {
		b.choices = make(domain.StochasticRules)
	}
	s := domain.Symbol(sym)
	b.choices[s] = append(b.choices[s], domain.Candidate{
		Replacement: domain.NewSequence(replacement),
		Weight:      weight,
	})
	return b
}

// Build validates the accumulated grammar and returns its definition.
func (b *Builder) Build() (*domain.Definition, error) {
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidGrammar, b.name, b.errs[0])
	}
	if b.rules != nil && b.choices != nil {
		return nil, fmt.Errorf("%w: %s mixes Rule and Choice", domain.ErrInvalidGrammar, b.name)
	}

	var g *domain.Grammar
	if b.choices != nil {
		g = domain.NewStochasticGrammar(b.axiom, b.choices)
	} else {
		g = domain.NewGrammar(b.axiom, b.rules)
	}

	def := &domain.Definition{
		Name:        b.name,
		Description: b.description,
		Grammar:     g,
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def, nil
}

// Store compiles the given definitions into an in-memory grammar store.
func Store(defs ...*domain.Definition) (*memory.Store, error) {
	store, err := memory.NewStore(defs...)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory store: %w", err)
	}
	return store, nil
}
