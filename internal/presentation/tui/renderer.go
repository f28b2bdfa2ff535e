package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/lindenmayer/internal/dto"
	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)

	return func(markdown string) (string, error) {
		if err != nil {
			return "", err
		}
		return r.Render(markdown)
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// GrammarMarkdown describes a grammar document as markdown.
func GrammarMarkdown(doc dto.GrammarDocument) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", doc.Name)
	if doc.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", doc.Description)
	}

	kind := "deterministic"
	if len(doc.Stochastic) > 0 {
		kind = "stochastic"
	}
	fmt.Fprintf(&b, "- **Axiom:** `%s`\n- **Kind:** %s\n\n", doc.Axiom, kind)

	if len(doc.Stochastic) > 0 {
		b.WriteString("| Symbol | Replacement | Weight |\n|---|---|---|\n")
		for _, key := range doc.SortedKeys() {
			for _, c := range doc.Stochastic[key] {
				fmt.Fprintf(&b, "| `%s` | `%s` | %g |\n", key, codeCell(c.Replacement), c.Weight)
			}
		}
		return b.String()
	}

	b.WriteString("| Symbol | Replacement |\n|---|---|\n")
	for _, key := range doc.SortedKeys() {
		fmt.Fprintf(&b, "| `%s` | `%s` |\n", key, codeCell(doc.Rules[key]))
	}
	return b.String()
}

// Pipes would split the table cell; empty code spans do not render.
func codeCell(s string) string {
	if s == "" {
		return "ε"
	}
	return strings.ReplaceAll(s, "|", `\|`)
}

// GrammarTable describes a grammar document as aligned plain text, for
// output that is not a terminal.
func GrammarTable(doc dto.GrammarDocument) string {
	var rows [][2]string
	for _, key := range doc.SortedKeys() {
		if cands, ok := doc.Stochastic[key]; ok {
			for _, c := range cands {
				rows = append(rows, [2]string{key, fmt.Sprintf("%s  (weight %g)", emptyMark(c.Replacement), c.Weight)})
			}
			continue
		}
		rows = append(rows, [2]string{key, emptyMark(doc.Rules[key])})
	}

	width := runewidth.StringWidth("axiom")
	for _, row := range rows {
		width = max(width, runewidth.StringWidth(row[0]))
	}

	var b strings.Builder
	b.WriteString(doc.Name)
	if doc.Description != "" {
		b.WriteString(" - " + doc.Description)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s  %s\n", runewidth.FillRight("axiom", width), emptyMark(doc.Axiom))
	for _, row := range rows {
		fmt.Fprintf(&b, "%s  -> %s\n", runewidth.FillRight(row[0], width), row[1])
	}
	return b.String()
}

func emptyMark(s string) string {
	if s == "" {
		return "ε"
	}
	return s
}
