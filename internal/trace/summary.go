package trace

import (
	"github.com/san-kum/algoviz/internal/step"
)

// Summary aggregates what a trace did.
type Summary struct {
	Algorithm   string
	Size        int
	Steps       int
	Comparisons int
	Writes      int
	MaxDepth    int
	Outcome     step.Action
	Counts      map[step.Action]int
	// ComparisonSeries[i] is the number of comparisons up to and including step i.
	ComparisonSeries []float64
}

func Summarize(t *Trace) Summary {
	s := Summary{
		Algorithm:        t.algorithm,
		Size:             len(t.input),
		Steps:            len(t.steps),
		Outcome:          t.Last().Action(),
		Counts:           make(map[step.Action]int),
		ComparisonSeries: make([]float64, len(t.steps)),
	}

	for i, st := range t.steps {
		s.Counts[st.Action()]++
		switch v := st.(type) {
		case step.Compare:
			s.Comparisons++
		case step.Swap, step.Shift, step.Insert, step.ExtractMax, step.PlacePivot, step.Output:
			s.Writes++
		case step.Split:
			s.MaxDepth = max(s.MaxDepth, v.Depth+1)
		}
		s.ComparisonSeries[i] = float64(s.Comparisons)
	}
	return s
}
