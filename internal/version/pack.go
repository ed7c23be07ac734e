package version

import (
	"strconv"

	"github.com/mattn/go-runewidth"
)

// DefaultPillLimit is the fixed pill count used when widths cannot be measured.
const DefaultPillLimit = 3

// Layout is how many version pills are shown before the "+N" indicator.
type Layout struct {
	Visible  int
	Hidden   int
	Overflow string
}

// Pack fits pills left to right into container. gap separates neighbouring
// pills, and the overflow indicator (plus its gap) is reserved whenever at
// least one pill would remain hidden.
func Pack(widths []float64, gap, overflowWidth, container float64) Layout {
	n := len(widths)
	if n == 0 {
		return Layout{}
	}

	total := 0.0
	for i, w := range widths {
		if i > 0 {
			total += gap
		}
		total += w
	}
	if total <= container {
		return Layout{Visible: n}
	}

	used := 0.0
	visible := 0
	for i, w := range widths {
		next := used + w
		if visible > 0 {
			next += gap
		}
		need := next
		if n-(i+1) > 0 {
			need += gap + overflowWidth
		}
		if need > container {
			break
		}
		used = next
		visible++
	}
	return newLayout(visible, n)
}

// Metrics approximates rendered pill widths from text.
type Metrics struct {
	CellWidth     float64
	Padding       float64
	Gap           float64
	OverflowWidth float64
}

// PackLabels estimates each label's width from its terminal cell count, so
// Hangul and other wide glyphs take two cells, then packs them.
func PackLabels(labels []string, m Metrics, container float64) Layout {
	widths := make([]float64, 0, len(labels))
	for _, label := range labels {
		widths = append(widths, float64(runewidth.StringWidth(label))*m.CellWidth+m.Padding)
	}
	return Pack(widths, m.Gap, m.OverflowWidth, container)
}

// Truncate is the fixed-count fallback: show at most limit pills.
func Truncate(n, limit int) Layout {
	if limit < 0 {
		limit = 0
	}
	if n <= limit {
		return Layout{Visible: n}
	}
	return newLayout(limit, n)
}

func newLayout(visible, n int) Layout {
	hidden := n - visible
	l := Layout{Visible: visible, Hidden: hidden}
	if hidden > 0 {
		l.Overflow = "+" + strconv.Itoa(hidden)
	}
	return l
}
