package ports

import "github.com/aretw0/lindenmayer/pkg/domain"

// SymbolSource is a forward-only, non-restartable stream of symbols.
type SymbolSource interface {
	// Next returns the next symbol, or false once the stream has ended.
	Next() (domain.Symbol, bool)

	// Err returns the error that ended the stream early, if any.
	Err() error
}
