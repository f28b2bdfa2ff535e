package domain

import "errors"

// ErrNoCandidates is returned when a stochastic rule has no candidate with a positive weight.
var ErrNoCandidates = errors.New("no candidate with positive weight")

// ErrInvalidWeight is returned when a candidate weight is negative, NaN or infinite.
var ErrInvalidWeight = errors.New("invalid candidate weight")

// ErrEmptyStack is returned by consumers popping from an empty auxiliary stack.
var ErrEmptyStack = errors.New("pop from empty stack")

// ErrGrammarNotFound is returned when a grammar name cannot be found in the store.
var ErrGrammarNotFound = errors.New("grammar not found")

// ErrInvalidGrammar is returned when a grammar definition is structurally malformed.
var ErrInvalidGrammar = errors.New("invalid grammar")
