/*
Package ports defines the driven ports (interfaces) for the Lindenmayer engine.

These interfaces decouple the core logic from external implementations, allowing
expansion runs and grammar definitions to flow through various consumers and
storage backends.

# Key Interfaces

  - SymbolSource: Pull-based stream of symbols produced by an expansion engine.
  - GrammarStore: Responsible for persisting and loading named grammar Definitions.
*/
package ports
