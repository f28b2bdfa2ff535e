package expansion

import "errors"

// ErrNegativeDepth is returned when an expander is asked for a negative depth.
var ErrNegativeDepth = errors.New("depth must not be negative")

// ErrStochasticGrammar is returned when a deterministic expander is given a stochastic grammar.
var ErrStochasticGrammar = errors.New("grammar is stochastic")
