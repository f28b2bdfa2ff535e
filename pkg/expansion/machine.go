package expansion

import (
	"iter"

	"github.com/aretw0/lindenmayer/pkg/domain"
	"github.com/aretw0/lindenmayer/pkg/ports"
)

// lookupFunc answers "what replaces sym". ok is false for terminal symbols.
type lookupFunc func(sym domain.Symbol) (rep domain.Sequence, ok bool, err error)

// Stats reports the work done by a lazy engine so far.
type Stats struct {
	// Emitted is the number of symbols returned by Next.
	Emitted int64
	// Rewrites is the number of non-terminal symbols replaced.
	Rewrites int64
	// Layers is the number of cursor slots held by the engine, always depth+1.
	Layers int
}

// machine walks the derivation tree depth first without materializing it.
//
// layers[i] holds the symbols still owed at remaining depth i; each entry is a
// slice of the axiom or of a replacement owned by the grammar, never a copy.
// The not-yet-produced output is layers[0] ++ layers[1] ++ ... ++ layers[depth].
// active is the layer being drained; depth+1 means exhausted.
type machine struct {
	lookup lookupFunc
	depth  int
	layers []domain.Sequence
	active int
	err    error
	stats  Stats
}

func newMachine(axiom domain.Sequence, depth int, lookup lookupFunc) machine {
	layers := make([]domain.Sequence, depth+1)
	layers[depth] = axiom
	return machine{
		lookup: lookup,
		depth:  depth,
		layers: layers,
		active: depth,
		stats:  Stats{Layers: depth + 1},
	}
}

func (m *machine) next() (domain.Symbol, bool) {
	for {
		if m.active > m.depth {
			return 0, false
		}

		// Layer 0 is fully rewritten: its symbols go straight out.
		if len(m.layers[0]) > 0 {
			sym := m.layers[0][0]
			m.layers[0] = m.layers[0][1:]
			m.stats.Emitted++
			return sym, true
		}

		layer := m.layers[m.active]
		if len(layer) == 0 {
			// Resume the next unfinished layer above.
			m.active++
			continue
		}

		sym := layer[0]
		m.layers[m.active] = layer[1:]

		rep, ok, err := m.lookup(sym)
		if err != nil {
			m.err = err
			m.active = m.depth + 1
			return 0, false
		}
		if !ok {
			m.stats.Emitted++
			return sym, true
		}

		// active > 0 here: layer 0 was empty, so an empty active layer would
		// have moved the pointer up instead. Layer active-1 is drained.
		m.stats.Rewrites++
		m.layers[m.active-1] = rep
		m.active--
	}
}

// Collect drains src into a single sequence. On error the symbols produced so
// far are returned together with the error.
func Collect(src ports.SymbolSource) (domain.Sequence, error) {
	var out domain.Sequence
	for {
		sym, ok := src.Next()
		if !ok {
			break
		}
		out = append(out, sym)
	}
	return out, src.Err()
}

// All adapts src to a range-over-func iterator. Check src.Err after the loop.
func All(src ports.SymbolSource) iter.Seq[domain.Symbol] {
	return func(yield func(domain.Symbol) bool) {
		for {
			sym, ok := src.Next()
			if !ok || !yield(sym) {
				return
			}
		}
	}
}
