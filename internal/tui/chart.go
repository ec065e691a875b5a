package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/algoviz/internal/step"
)

type role int

const (
	roleBar role = iota
	roleOutside
	roleSorted
	roleComparing
	roleSwapped
	rolePivot
)

// roles assigns each index its strongest highlight.
func roles(s step.Step, n int) []role {
	out := make([]role, n)
	if lo, hi, ok := searchWindow(s); ok {
		for i := range out {
			if i < lo || i > hi {
				out[i] = roleOutside
			}
		}
	}

	h := step.HighlightsOf(s)
	mark := func(idx []int, r role) {
		for _, i := range idx {
			if i >= 0 && i < n && out[i] < r {
				out[i] = r
			}
		}
	}
	mark(h.Sorted, roleSorted)
	mark(h.Comparing, roleComparing)
	mark(h.Swapped, roleSwapped)
	if h.HasPivot {
		mark([]int{h.Pivot}, rolePivot)
	}
	return out
}

func searchWindow(s step.Step) (lo, hi int, ok bool) {
	switch v := s.(type) {
	case step.Init:
		return v.Left, v.Right, true
	case step.SelectMid:
		return v.Left, v.Right, true
	case step.SearchLeft:
		return v.Left, v.Right, true
	case step.SearchRight:
		return v.Left, v.Right, true
	}
	return 0, 0, false
}

func (t Theme) roleStyle(r role) lipgloss.Style {
	switch r {
	case roleOutside:
		return t.style(t.Muted)
	case roleSorted:
		return t.style(t.Sorted)
	case roleComparing:
		return t.style(t.Comparing)
	case roleSwapped:
		return t.style(t.Swapped)
	case rolePivot:
		return t.style(t.Pivot)
	}
	return t.style(t.Bar)
}

// renderChart draws the snapshot of s as vertical bars at most width columns
// wide and height rows tall.
func renderChart(s step.Step, t Theme, width, height int) string {
	values := s.Values()
	if len(values) == 0 {
		return t.style(t.Muted).Render("   (empty)") + "\n"
	}

	lo, hi := 0.0, 0.0
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi-lo < 1e-9 {
		hi = lo + 1
	}

	bw := max(1, min(3, (width-3)/len(values)-1))
	heights := make([]int, len(values))
	for i, v := range values {
		heights[i] = max(1, int(math.Round((v-lo)/(hi-lo)*float64(height))))
	}

	rs := roles(s, len(values))
	styles := make([]lipgloss.Style, len(values))
	for i, r := range rs {
		styles[i] = t.roleStyle(r)
	}

	var b strings.Builder
	block := strings.Repeat("█", bw)
	blank := strings.Repeat(" ", bw)
	for row := height; row >= 1; row-- {
		b.WriteString("   ")
		for i := range values {
			if heights[i] >= row {
				b.WriteString(styles[i].Render(block))
			} else {
				b.WriteString(blank)
			}
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}

	if bw >= 2 && len(values) <= 40 {
		b.WriteString("   ")
		for _, v := range values {
			label := fmtValue(v)
			if len(label) > bw {
				label = label[:bw]
			}
			b.WriteString(t.style(t.Muted).Render(fmt.Sprintf("%-*s", bw, label)) + " ")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func fmtValue(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e6 {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}

// countsLine renders the tally array of a counting sort step, if any.
func countsLine(s step.Step) (string, bool) {
	var counts []int
	var offset int
	switch v := s.(type) {
	case step.Counting:
		counts, offset = v.Counts, v.Min
	case step.Cumulative:
		counts, offset = v.Counts, v.Min
	case step.Output:
		counts, offset = v.Counts, v.Min
	default:
		return "", false
	}
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = fmt.Sprintf("%d:%d", offset+i, c)
	}
	line := strings.Join(parts, " ")
	if len(line) > 72 {
		line = line[:69] + "..."
	}
	return line, true
}
