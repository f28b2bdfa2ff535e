/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing grammars.

It allows developers to define grammars using a fluent builder pattern instead of
relying on external YAML or JSON documents. This is particularly useful for
tests, generated grammars and leveraging IDE autocompletion/type-checking.

Example usage:

	package main

	import (
		"github.com/aretw0/lindenmayer/pkg/dsl"
	)

	func main() {
		plant, err := dsl.New("fractal-plant").
			Describe("Barnsley-like fern").
			Axiom("X").
			Rule('X', "F[X][+DX]-DX").
			Rule('D', "F").
			Build()

		bush, err := dsl.New("bush").
			Axiom("F").
			Choice('F', "F[+F]F[-F]F", 1).
			Choice('F', "F[+F]F", 1).
			Choice('F', "F[-F]F", 1).
			Build()

		// Both definitions can be kept in any ports.GrammarStore
		store, err := dsl.Store(plant, bush)
		// ... pass store to lindenmayer.New(...)
	}
*/
package dsl
