// Package algorithms holds the step producers. Every producer is a pure
// function of its input: it copies the collection, runs the algorithm on the
// copy and returns the complete ordered list of steps it recorded.
package algorithms

import (
	"fmt"
	"math"
	"strconv"

	"github.com/san-kum/algoviz/internal/step"
)

// Producer turns an input collection and optional search target into steps.
type Producer func(input []float64, target *float64) []step.Step

type recorder struct {
	steps []step.Step
}

func newRecorder(n int) *recorder {
	return &recorder{steps: make([]step.Step, 0, n*4+1)}
}

func (r *recorder) emit(s step.Step) { r.steps = append(r.steps, s) }

func (r *recorder) result() []step.Step { return r.steps }

func base(arr []float64, format string, args ...any) step.Base {
	return step.Base{Snapshot: step.Clone(arr), Explanation: fmt.Sprintf(format, args...)}
}

// invalidValue returns the index of the first NaN or Inf, or -1.
func invalidValue(arr []float64) int {
	for i, v := range arr {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return i
		}
	}
	return -1
}

func rejectInput(arr []float64) []step.Step {
	i := invalidValue(arr)
	if i < 0 {
		return nil
	}
	return []step.Step{step.Error{Base: step.Base{
		Snapshot:    []float64{},
		Explanation: fmt.Sprintf("value at index %d is not a finite number", i),
	}}}
}

func validTarget(target *float64) (float64, string, bool) {
	if target == nil {
		return 0, "no search target given", false
	}
	if math.IsNaN(*target) || math.IsInf(*target, 0) {
		return 0, "search target is not a finite number", false
	}
	return *target, "", true
}

func fmtv(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func swap(arr []float64, i, j int) { arr[i], arr[j] = arr[j], arr[i] }

// guardSort returns the single explanatory step for inputs a sort cannot
// animate, or nil when the input is usable.
func guardSort(input []float64) []step.Step {
	if bad := rejectInput(input); bad != nil {
		return bad
	}
	if len(input) == 0 {
		return []step.Step{step.Done{
			Base:   step.Base{Snapshot: []float64{}, Explanation: "nothing to sort"},
			Sorted: []int{},
		}}
	}
	return nil
}
