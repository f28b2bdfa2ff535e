// Package catalog ships a set of classic L-system grammars.
package catalog

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/aretw0/lindenmayer/internal/dto"
	"github.com/aretw0/lindenmayer/pkg/domain"
	"github.com/aretw0/lindenmayer/pkg/ports"
)

//go:embed grammars/*.yaml
var files embed.FS

// Definitions parses every bundled grammar, sorted by name.
func Definitions() ([]*domain.Definition, error) {
	entries, err := fs.ReadDir(files, "grammars")
	if err != nil {
		return nil, err
	}

	var defs []*domain.Definition
	for _, entry := range entries {
		f, err := files.Open(path.Join("grammars", entry.Name()))
		if err != nil {
			return nil, err
		}
		docs, err := dto.DecodeYAML(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %w", entry.Name(), err)
		}
		for _, doc := range docs {
			def, err := doc.ToDomain()
			if err != nil {
				return nil, fmt.Errorf("catalog %s: %w", entry.Name(), err)
			}
			defs = append(defs, def)
		}
	}

	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs, nil
}

// Seed saves every bundled grammar the store does not already hold.
// It returns the names it added.
func Seed(ctx context.Context, store ports.GrammarStore) ([]string, error) {
	defs, err := Definitions()
	if err != nil {
		return nil, err
	}

	var added []string
	for _, def := range defs {
		_, err := store.Load(ctx, def.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrGrammarNotFound) {
			return added, err
		}
		if err := store.Save(ctx, def); err != nil {
			return added, err
		}
		added = append(added, def.Name)
	}
	return added, nil
}
