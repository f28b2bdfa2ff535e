package file

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/lindenmayer/internal/dto"
	"github.com/aretw0/lindenmayer/pkg/domain"
)

const ext = ".yaml"

// tmpPrefix marks in-flight writes. Valid names start with an alphanumeric,
// so no grammar file can carry it.
const tmpPrefix = ".tmp-"

// Store implements ports.GrammarStore using the local filesystem.
// Each grammar is one YAML document named <name>.yaml in BasePath.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".lsys/grammars".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".lsys", "grammars")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(name string) string {
	return filepath.Join(s.BasePath, name+ext)
}

// Save validates the definition and writes it atomically.
// The document goes to a temp file in the same directory, is fsynced and then
// renamed over the destination.
func (s *Store) Save(ctx context.Context, def *domain.Definition) error {
	if err := def.Validate(); err != nil {
		return fmt.Errorf("failed to save grammar: %w", err)
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure grammar directory: %w", err)
	}

	var buf bytes.Buffer
	if err := dto.EncodeYAML(&buf, dto.FromDomain(def)); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(s.BasePath, tmpPrefix+def.Name+"-*"+ext)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// os.Rename does not replace an existing file on Windows.
	destPath := s.path(def.Name)
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing grammar file for overwrite: %w", err)
		}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to grammar file: %w", err)
	}
	return nil
}

// Load reads and validates a grammar file.
func (s *Store) Load(ctx context.Context, name string) (*domain.Definition, error) {
	if !domain.ValidName(name) {
		return nil, fmt.Errorf("%w: %q", domain.ErrGrammarNotFound, name)
	}

	f, err := os.Open(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrGrammarNotFound, name)
		}
		return nil, fmt.Errorf("failed to read grammar file: %w", err)
	}
	defer f.Close()

	docs, err := dto.DecodeYAML(f)
	if err != nil {
		return nil, fmt.Errorf("grammar %s: %w", name, err)
	}
	if len(docs) != 1 {
		return nil, fmt.Errorf("%w: %s holds %d documents, want 1", domain.ErrInvalidGrammar, name, len(docs))
	}

	doc := docs[0]
	if doc.Name == "" {
		doc.Name = name
	}
	return doc.ToDomain()
}

// Delete removes the grammar file. Missing files are not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	if !domain.ValidName(name) {
		return nil
	}
	err := os.Remove(s.path(name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete grammar file: %w", err)
	}
	return nil
}

// List returns the stored grammar names in ascending order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list grammars: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ext || strings.HasPrefix(name, tmpPrefix) {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ext))
	}
	sort.Strings(names)
	return names, nil
}
