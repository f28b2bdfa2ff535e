/*
Package lindenmayer expands L-system grammars lazily.

A Lindenmayer system is an axiom plus rewrite rules; applying the rules n
times yields a sequence whose length grows exponentially with n. This package
never builds that sequence. It walks the derivation depth first and hands out
one symbol at a time, so memory stays proportional to the depth and the
consumer decides how much of the output it needs.

# Concept

Grammars live in a ports.GrammarStore (memory, file or redis). The Engine
resolves a grammar by name and opens a Run: a pull-based stream of symbols
that can feed a turtle interpreter, a writer or any other consumer.

  - Deterministic grammars expand with expansion.Lazy.
  - Stochastic grammars expand with expansion.Stochastic; each Run records the
    seed it used, so every output can be replayed.
  - Lifecycle hooks (see pkg/observability) report every run to logs and metrics.

# Usage

	package main

	import (
		"context"
		"log"
		"os"

		"github.com/aretw0/lindenmayer"
	)

	func main() {
		// A nil store serves the bundled catalog from memory.
		eng, err := lindenmayer.New(nil, lindenmayer.WithMaxDepth(64))
		if err != nil {
			log.Fatal(err)
		}

		run, err := eng.Open(context.Background(), "fractal-plant", lindenmayer.Request{Depth: 6})
		if err != nil {
			log.Fatal(err)
		}
		defer run.Close()

		if _, err := lindenmayer.Stream(os.Stdout, run, 80); err != nil {
			log.Fatal(err)
		}
	}

# Packages

  - pkg/domain: symbols, grammars, definitions and events.
  - pkg/expansion: eager and lazy expansion engines.
  - pkg/turtle: turtle-graphics reader over a symbol stream.
  - pkg/dsl: fluent builder for grammars in Go code.
  - pkg/adapters: grammar stores, HTTP and MCP servers.
*/
package lindenmayer
