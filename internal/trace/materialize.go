package trace

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/algoviz/internal/algorithms"
	"github.com/san-kum/algoviz/internal/step"
)

var (
	ErrProducerPanic = errors.New("trace: producer panicked")
	ErrEmptyTrace    = errors.New("trace: producer emitted no steps")
	ErrNilStep       = errors.New("trace: producer emitted a nil step")
	ErrUnterminated  = errors.New("trace: last step is not terminal")
	ErrUnknownAlgo   = errors.New("trace: unknown algorithm")
	ErrNilProducer   = errors.New("trace: nil producer")
	ErrDuplicateAlgo = errors.New("trace: algorithm already registered")
)

// Materialize drains p to completion before anything can play it back. The
// returned trace is always usable; fault is non-nil when the producer failed
// and the trace was replaced by a single error step.
func Materialize(algorithm string, p algorithms.Producer, input []float64, target *float64) (t *Trace, fault error) {
	if p == nil {
		return errorTrace(algorithm, input, target, ErrNilProducer), ErrNilProducer
	}

	steps, err := drain(p, step.Clone(input), target)
	if err == nil {
		err = validate(steps)
	}
	if err != nil {
		return errorTrace(algorithm, input, target, err), err
	}
	return newTrace(algorithm, input, target, steps), nil
}

func drain(p algorithms.Producer, input []float64, target *float64) (steps []step.Step, err error) {
	defer func() {
		if r := recover(); r != nil {
			steps = nil
			err = fmt.Errorf("%w: %v", ErrProducerPanic, r)
		}
	}()
	return p(input, target), nil
}

func validate(steps []step.Step) error {
	if len(steps) == 0 {
		return ErrEmptyTrace
	}
	for i, s := range steps {
		if s == nil {
			return fmt.Errorf("%w at %d", ErrNilStep, i)
		}
	}
	if !step.IsTerminal(steps[len(steps)-1]) {
		return fmt.Errorf("%w: %s", ErrUnterminated, steps[len(steps)-1].Action())
	}
	return nil
}

func errorTrace(algorithm string, input []float64, target *float64, cause error) *Trace {
	s := step.Error{Base: step.Base{
		Snapshot:    finite(input),
		Explanation: cause.Error(),
	}}
	return newTrace(algorithm, input, target, []step.Step{s})
}

// finite drops a snapshot that JSON could not encode.
func finite(values []float64) []float64 {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return []float64{}
		}
	}
	return step.Clone(values)
}
