package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/lindenmayer/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var plant = dto.GrammarDocument{
	Name:        "plant",
	Description: "branching plant",
	Axiom:       "X",
	Rules:       map[string]string{"X": "F[X][+X]", "F": "FF", "E": ""},
}

func TestGrammarMarkdown(t *testing.T) {
	md := GrammarMarkdown(plant)
	assert.Contains(t, md, "# plant")
	assert.Contains(t, md, "- **Kind:** deterministic")
	assert.Contains(t, md, "| `X` | `F[X][+X]` |")
	assert.Contains(t, md, "| `E` | `ε` |")

	bush := dto.GrammarDocument{
		Name:       "bush",
		Axiom:      "F",
		Stochastic: map[string][]dto.CandidateDocument{"F": {{Replacement: "F|F", Weight: 2}}},
	}
	md = GrammarMarkdown(bush)
	assert.Contains(t, md, "- **Kind:** stochastic")
	assert.Contains(t, md, "| `F` | `F\\|F` | 2 |")
}

func TestGrammarTable(t *testing.T) {
	table := GrammarTable(plant)
	lines := strings.Split(strings.TrimSpace(table), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "plant - branching plant", lines[0])
	assert.Equal(t, "axiom  X", lines[1])
	assert.Equal(t, "E      -> ε", lines[2])
	assert.Equal(t, "F      -> FF", lines[3])
	assert.Equal(t, "X      -> F[X][+X]", lines[4])
}

func TestNewRenderer(t *testing.T) {
	render := NewRenderer()
	out, err := render("# algae")
	require.NoError(t, err)
	assert.Contains(t, out, "algae")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.Contains(t, buf.String(), `|___|___/\__, |___/`)
	assert.NotContains(t, buf.String(), "\x1b[", "no colours when writing to a buffer")
	assert.Equal(t, "ok", Status(&buf, "ok", true))
}
