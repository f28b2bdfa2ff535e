package domain

import (
	"fmt"
	"regexp"
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Definition is a named grammar, the unit kept by grammar stores.
type Definition struct {
	Name        string
	Description string
	Grammar     *Grammar
}

// ValidName reports whether name can identify a stored grammar.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// Validate checks that the definition can be stored and expanded.
// Names double as file names and redis keys, so they are restricted to
// letters, digits, '.', '_' and '-'.
func (d *Definition) Validate() error {
	if !namePattern.MatchString(d.Name) {
		return fmt.Errorf("%w: bad name %q", ErrInvalidGrammar, d.Name)
	}
	if d.Grammar == nil {
		return fmt.Errorf("%w: %s has no grammar", ErrInvalidGrammar, d.Name)
	}
	if err := d.Grammar.Validate(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidGrammar, d.Name, err)
	}
	return nil
}
