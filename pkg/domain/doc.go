/*
Package domain contains the core domain models of the Lindenmayer engine.

It defines the alphabet (Symbol, Sequence), the rule tables and the Grammar that
ties an axiom to exactly one table. This package is kept pure and free of
external dependencies like I/O or persistence, following Hexagonal Architecture
principles.

# Key Entities

  - Symbol: An atomic alphabet element. Terminal when no rule exists for it.
  - Sequence: An ordered run of symbols (axioms and replacements).
  - Rules / StochasticRules: Deterministic and weighted rule tables.
  - Grammar: Immutable axiom + rule table, shared read-only by expanders.
  - Definition: A named grammar as kept by grammar stores.
*/
package domain
