package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{` _                   `, "#34d399"},
	{`| |  ___ _   _ ___   `, "#10b981"},
	{`| | / __| | | / __|  `, "#059669"},
	{`| |_\__ \ |_| \__ \  `, "#047857"},
	{`|___|___/\__, |___/  `, "#065f46"},
	{`          |___/       `, "#064e3b"},
}

// PrintBanner writes the lsys banner in a green gradient.
// Colours degrade to the terminal's profile (none when w is not a terminal).
func PrintBanner(w io.Writer) {
	p := termenv.NewOutput(w).ColorProfile()

	fmt.Fprintln(w)
	for _, line := range bannerLines {
		fmt.Fprintln(w, p.String(line.text).Foreground(p.Color(line.color)))
	}
	fmt.Fprintln(w)
}

// Status colours a short label (e.g. "ok", "invalid") for terminal output.
func Status(w io.Writer, label string, ok bool) string {
	p := termenv.NewOutput(w).ColorProfile()
	color := "#22c55e"
	if !ok {
		color = "#ef4444"
	}
	return p.String(label).Foreground(p.Color(color)).Bold().String()
}
