package dto

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"unicode/utf8"

	"github.com/aretw0/lindenmayer/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// GrammarDocument is the serialized form of a domain.Definition.
// It uses "mapstructure" tags so the same struct decodes from YAML, JSON and
// loosely typed maps (MCP tool arguments). Rule keys are one-symbol strings.
type GrammarDocument struct {
	Name        string                         `json:"name" yaml:"name" mapstructure:"name"`
	Description string                         `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Axiom       string                         `json:"axiom" yaml:"axiom" mapstructure:"axiom"`
	Rules       map[string]string              `json:"rules,omitempty" yaml:"rules,omitempty" mapstructure:"rules"`
	Stochastic  map[string][]CandidateDocument `json:"stochastic,omitempty" yaml:"stochastic,omitempty" mapstructure:"stochastic"`
}

// CandidateDocument is one weighted alternative of a stochastic rule.
type CandidateDocument struct {
	Replacement string  `json:"replacement" yaml:"replacement" mapstructure:"replacement"`
	Weight      float64 `json:"weight" yaml:"weight" mapstructure:"weight"`
}

// FromDomain converts a definition into its document form.
func FromDomain(def *domain.Definition) GrammarDocument {
	doc := GrammarDocument{
		Name:        def.Name,
		Description: def.Description,
		Axiom:       def.Grammar.Axiom().String(),
	}
	if def.Grammar.Stochastic() {
		doc.Stochastic = make(map[string][]CandidateDocument)
		for sym, candidates := range def.Grammar.StochasticRules() {
			docs := make([]CandidateDocument, len(candidates))
			for i, c := range candidates {
				docs[i] = CandidateDocument{Replacement: c.Replacement.String(), Weight: c.Weight}
			}
			doc.Stochastic[sym.String()] = docs
		}
		return doc
	}
	for sym, rep := range def.Grammar.Rules() {
		if doc.Rules == nil {
			doc.Rules = make(map[string]string)
		}
		doc.Rules[sym.String()] = rep.String()
	}
	return doc
}

// ToDomain builds and validates the definition described by the document.
func (d GrammarDocument) ToDomain() (*domain.Definition, error) {
	if len(d.Rules) > 0 && len(d.Stochastic) > 0 {
		return nil, fmt.Errorf("%w: %s defines both rules and stochastic rules", domain.ErrInvalidGrammar, d.Name)
	}

	var g *domain.Grammar
	axiom := domain.NewSequence(d.Axiom)
	if len(d.Stochastic) > 0 {
		table := make(domain.StochasticRules, len(d.Stochastic))
		for key, docs := range d.Stochastic {
			sym, err := symbolKey(key)
			if err != nil {
				return nil, err
			}
			candidates := make([]domain.Candidate, len(docs))
			for i, c := range docs {
				candidates[i] = domain.Candidate{Replacement: domain.NewSequence(c.Replacement), Weight: c.Weight}
			}
			table[sym] = candidates
		}
		g = domain.NewStochasticGrammar(axiom, table)
	} else {
		table := make(domain.Rules, len(d.Rules))
		for key, rep := range d.Rules {
			sym, err := symbolKey(key)
			if err != nil {
				return nil, err
			}
			table[sym] = domain.NewSequence(rep)
		}
		g = domain.NewGrammar(axiom, table)
	}

	def := &domain.Definition{Name: d.Name, Description: d.Description, Grammar: g}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def, nil
}

func symbolKey(key string) (domain.Symbol, error) {
	r, size := utf8.DecodeRuneInString(key)
	if r == utf8.RuneError || size != len(key) {
		return 0, fmt.Errorf("%w: rule key %q must be exactly one symbol", domain.ErrInvalidGrammar, key)
	}
	return domain.Symbol(r), nil
}

// Decode maps a loosely typed structure (decoded YAML/JSON, tool arguments)
// onto a GrammarDocument. Numbers given as strings are accepted; unknown keys
// are rejected.
func Decode(raw map[string]any) (GrammarDocument, error) {
	var doc GrammarDocument
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &doc,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return doc, err
	}
	if err := decoder.Decode(raw); err != nil {
		return doc, fmt.Errorf("%w: %w", domain.ErrInvalidGrammar, err)
	}
	return doc, nil
}

// DecodeYAML reads every document of a (possibly multi-document) YAML stream.
func DecodeYAML(r io.Reader) ([]GrammarDocument, error) {
	dec := yaml.NewDecoder(r)
	var docs []GrammarDocument
	for {
		var raw map[string]any
		err := dec.Decode(&raw)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
		if raw == nil {
			continue
		}
		doc, err := Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", len(docs)+1, err)
		}
		docs = append(docs, doc)
	}
}

// EncodeYAML writes a single document. Rule keys are emitted in sorted order.
func EncodeYAML(w io.Writer, doc GrammarDocument) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

// SortedKeys returns the rule keys of either table in ascending order.
func (d GrammarDocument) SortedKeys() []string {
	keys := make([]string, 0, len(d.Rules)+len(d.Stochastic))
	for k := range d.Rules {
		keys = append(keys, k)
	}
	for k := range d.Stochastic {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
