/*
Package expansion rewrites grammars into symbol sequences.

Two families of expanders are provided:

  - Eager expanders (Eager, EagerStochastic, EagerRounds) rebuild the whole
    sequence once per round. They are the reference semantics and their memory
    grows with the output, which is exponential in depth.
  - Lazy engines (Lazy, Stochastic) produce the very same symbols one at a time,
    on demand, keeping only depth+1 cursors into the grammar's own replacement
    buffers.

Lazy engines are single-use: they are consumed by repeated Next calls and cannot
be rewound. Build a new engine to regenerate a sequence.

	g := domain.NewGrammar(domain.NewSequence("X"), domain.Rules{
		'X': domain.NewSequence("F[X][+DX]-DX"),
		'D': domain.NewSequence("F"),
	})

	lazy, err := expansion.NewLazy(g, 2)
	if err != nil {
		log.Fatal(err)
	}
	for sym := range lazy.All() {
		fmt.Print(sym)
	}
	// F[F[X][+DX]-DX][+FF[X][+DX]-DX]-FF[X][+DX]-DX
*/
package expansion
