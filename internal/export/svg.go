package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/algoviz/internal/step"
)

// Palette holds SVG fill colors.
type Palette struct {
	Background string
	Bar        string
	Comparing  string
	Swapped    string
	Sorted     string
	Pivot      string
}

var DefaultPalette = Palette{
	Background: "#0a0a0a",
	Bar:        "#6c6c6c",
	Comparing:  "#ffd700",
	Swapped:    "#ff5f5f",
	Sorted:     "#5fff5f",
	Pivot:      "#ff87ff",
}

// StepToSVG draws the snapshot of s as a bar chart, coloring highlighted
// indices. Pivot beats swapped, swapped beats comparing, comparing beats sorted.
func StepToSVG(s step.Step, width, height int, p Palette) string {
	values := s.Values()

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, p.Background)

	if len(values) == 0 {
		sb.WriteString("</svg>")
		return sb.String()
	}

	lo, hi := 0.0, 0.0
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi-lo < 1e-9 {
		hi = lo + 1
	}

	fills := make([]string, len(values))
	for i := range fills {
		fills[i] = p.Bar
	}
	h := step.HighlightsOf(s)
	paint := func(idx []int, color string) {
		for _, i := range idx {
			if i >= 0 && i < len(fills) {
				fills[i] = color
			}
		}
	}
	paint(h.Sorted, p.Sorted)
	paint(h.Comparing, p.Comparing)
	paint(h.Swapped, p.Swapped)
	if h.HasPivot {
		paint([]int{h.Pivot}, p.Pivot)
	}

	slot := float64(width) / float64(len(values))
	gap := math.Min(2, slot*0.2)
	for i, v := range values {
		bh := math.Max(1, (v-lo)/(hi-lo)*float64(height)*0.95)
		fmt.Fprintf(&sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, float64(i)*slot+gap/2, float64(height)-bh, slot-gap, bh, fills[i])
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG plots values against their index as a polyline.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		minY = math.Min(minY, v)
		maxY = math.Max(maxY, v)
	}
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	rangeX := float64(len(values) - 1)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, DefaultPalette.Background, strokeColor)

	for i, v := range values {
		x := float64(i) / rangeX * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
