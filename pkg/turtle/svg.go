package turtle

import (
	"bufio"
	"fmt"
	"io"
)

// WriteSVG renders segments as a single SVG path. The view box is bounds
// padded by margin; y is flipped so headings follow the usual math orientation.
func WriteSVG(w io.Writer, segments []Segment, bounds Bounds, margin, stroke float64) error {
	out := bufio.NewWriter(w)
	width := bounds.Max.X - bounds.Min.X + 2*margin
	height := bounds.Max.Y - bounds.Min.Y + 2*margin

	fmt.Fprintf(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.3f %.3f %.3f %.3f">`+"\n",
		bounds.Min.X-margin, flip(bounds.Max.Y)-margin, width, height)
	fmt.Fprintf(out, `<path fill="none" stroke="black" stroke-width="%.3f" stroke-linecap="round" d="`, stroke)

	var last Vec2
	for i, s := range segments {
		if i == 0 || s.Start != last {
			fmt.Fprintf(out, "M%.3f %.3f", s.Start.X, flip(s.Start.Y))
		}
		fmt.Fprintf(out, "L%.3f %.3f", s.End.X, flip(s.End.Y))
		last = s.End
	}
	fmt.Fprint(out, "\"/>\n</svg>\n")
	return out.Flush()
}

// flip negates y without producing -0.
func flip(y float64) float64 {
	return 0 - y
}
