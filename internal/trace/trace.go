// Package trace materializes producers into immutable, randomly indexable
// step sequences and dispatches algorithm ids to producers.
package trace

import (
	"github.com/san-kum/algoviz/internal/step"
)

// Trace is the complete step sequence for one (algorithm, input, target).
// It is never empty and never changes after construction.
type Trace struct {
	algorithm string
	input     []float64
	target    *float64
	steps     []step.Step
}

func newTrace(algorithm string, input []float64, target *float64, steps []step.Step) *Trace {
	var tgt *float64
	if target != nil {
		v := *target
		tgt = &v
	}
	return &Trace{
		algorithm: algorithm,
		input:     step.Clone(input),
		target:    tgt,
		steps:     steps,
	}
}

// FromSteps wraps already materialized steps, e.g. a trace read back from an
// export. An empty or unterminated slice is replaced by an error trace.
func FromSteps(algorithm string, input []float64, target *float64, steps []step.Step) *Trace {
	if err := validate(steps); err != nil {
		return errorTrace(algorithm, input, target, err)
	}
	cp := make([]step.Step, len(steps))
	copy(cp, steps)
	return newTrace(algorithm, input, target, cp)
}

func (t *Trace) Algorithm() string { return t.algorithm }

func (t *Trace) Input() []float64 { return step.Clone(t.input) }

func (t *Trace) Target() (float64, bool) {
	if t.target == nil {
		return 0, false
	}
	return *t.target, true
}

func (t *Trace) Len() int { return len(t.steps) }

// At returns step i, clamped into [0, Len()-1].
func (t *Trace) At(i int) step.Step {
	if i < 0 {
		i = 0
	}
	if i >= len(t.steps) {
		i = len(t.steps) - 1
	}
	return t.steps[i]
}

func (t *Trace) First() step.Step { return t.steps[0] }

func (t *Trace) Last() step.Step { return t.steps[len(t.steps)-1] }

// Steps returns a copy of the step slice.
func (t *Trace) Steps() []step.Step {
	cp := make([]step.Step, len(t.steps))
	copy(cp, t.steps)
	return cp
}

// Failed reports whether the trace is a substituted error trace.
func (t *Trace) Failed() bool {
	return len(t.steps) == 1 && t.steps[0].Action() == step.ActionError
}
