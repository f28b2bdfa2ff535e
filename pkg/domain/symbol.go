package domain

import (
	"slices"
	"strings"
)

// Symbol is an atomic element of the alphabet.
type Symbol rune

// String returns the symbol as a one-character string.
func (s Symbol) String() string {
	return string(rune(s))
}

// Sequence is an ordered run of symbols.
type Sequence []Symbol

// NewSequence converts a string into a Sequence, one symbol per rune.
func NewSequence(s string) Sequence {
	seq := make(Sequence, 0, len(s))
	for _, r := range s {
		seq = append(seq, Symbol(r))
	}
	return seq
}

// String joins the symbols back into a string.
func (s Sequence) String() string {
	var b strings.Builder
	b.Grow(len(s))
	for _, sym := range s {
		b.WriteRune(rune(sym))
	}
	return b.String()
}

// Clone returns an independent copy. A nil sequence stays nil.
func (s Sequence) Clone() Sequence {
	return slices.Clone(s)
}
