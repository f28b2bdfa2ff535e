package lindenmayer

import (
	"bufio"
	"fmt"
	"io"

	"github.com/aretw0/lindenmayer/pkg/ports"
)

// Stream drains src into w, inserting a newline every wrap symbols
// (never when wrap is zero) and after the last one.
// It returns the number of symbols written; the error is the first write
// failure or, failing that, src.Err().
func Stream(w io.Writer, src ports.SymbolSource, wrap int) (int64, error) {
	out := bufio.NewWriter(w)
	var n int64
	for {
		sym, ok := src.Next()
		if !ok {
			break
		}
		if _, err := out.WriteRune(rune(sym)); err != nil {
			return n, fmt.Errorf("failed to write expansion: %w", err)
		}
		n++
		if wrap > 0 && n%int64(wrap) == 0 {
			if err := out.WriteByte('\n'); err != nil {
				return n, fmt.Errorf("failed to write expansion: %w", err)
			}
		}
	}

	if n > 0 && (wrap == 0 || n%int64(wrap) != 0) {
		if err := out.WriteByte('\n'); err != nil {
			return n, fmt.Errorf("failed to write expansion: %w", err)
		}
	}
	if err := out.Flush(); err != nil {
		return n, fmt.Errorf("failed to write expansion: %w", err)
	}
	return n, src.Err()
}
