package export

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/san-kum/algoviz/internal/step"
)

func wellFormed(t *testing.T, svg string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(svg))
	for {
		_, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			t.Fatalf("malformed svg: %v\n%s", err, svg)
		}
	}
}

func TestStepToSVG(t *testing.T) {
	s := step.Compare{
		Base:      step.Base{Snapshot: []float64{3, 1, 2}},
		Comparing: []int{0, 1},
		Sorted:    []int{2},
	}
	svg := StepToSVG(s, 300, 100, DefaultPalette)
	wellFormed(t, svg)

	if got := strings.Count(svg, "<rect"); got != 4 {
		t.Errorf("expected background plus 3 bars, got %d rects", got)
	}
	if got := strings.Count(svg, DefaultPalette.Comparing); got != 2 {
		t.Errorf("expected 2 comparing bars, got %d", got)
	}
	if !strings.Contains(svg, DefaultPalette.Sorted) {
		t.Error("expected a sorted bar")
	}
}

func TestStepToSVGPivotWins(t *testing.T) {
	s := step.PlacePivot{
		Base:      step.Base{Snapshot: []float64{1, 2}},
		Partition: 0,
		Swapped:   []int{0, 1},
	}
	svg := StepToSVG(s, 100, 50, DefaultPalette)
	if got := strings.Count(svg, DefaultPalette.Pivot); got != 1 {
		t.Errorf("expected 1 pivot bar, got %d", got)
	}
	if got := strings.Count(svg, DefaultPalette.Swapped); got != 1 {
		t.Errorf("expected 1 swapped bar, got %d", got)
	}
}

func TestStepToSVGEmpty(t *testing.T) {
	svg := StepToSVG(step.Done{Base: step.Base{Snapshot: []float64{}}}, 100, 50, DefaultPalette)
	wellFormed(t, svg)
	if strings.Count(svg, "<rect") != 1 {
		t.Error("expected only the background")
	}
}

func TestSeriesToSVG(t *testing.T) {
	if SeriesToSVG([]float64{1}, 100, 50, "#fff") != "" {
		t.Error("expected empty output for a single point")
	}
	svg := SeriesToSVG([]float64{0, 1, 1, 3}, 100, 50, "#00ff00")
	wellFormed(t, svg)
	if got := strings.Count(svg, " L"); got != 3 {
		t.Errorf("expected 3 line segments, got %d", got)
	}
}
