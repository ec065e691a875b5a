package algorithms

import (
	"math"

	"github.com/san-kum/algoviz/internal/step"
)

// MaxCountingRange bounds max-min+1 for counting sort.
const MaxCountingRange = 1 << 12

// CountingSort walks the counting, cumulative and output phases. Decrementing
// a count while placing an element is part of its output step.
func CountingSort(input []float64, _ *float64) []step.Step {
	if early := guardSort(input); early != nil {
		return early
	}
	arr := step.Clone(input)
	n := len(arr)

	for i, v := range arr {
		if v != math.Trunc(v) || math.Abs(v) > 1<<31 {
			return []step.Step{step.Error{Base: base(arr, "counting sort needs integers, index %d holds %s", i, fmtv(v))}}
		}
	}
	lo, hi := arr[0], arr[0]
	for _, v := range arr {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi-lo+1 > MaxCountingRange {
		return []step.Step{step.Error{Base: base(arr, "value range %s..%s is too wide for counting sort", fmtv(lo), fmtv(hi))}}
	}

	minVal := int(lo)
	counts := make([]int, int(hi)-minVal+1)
	r := newRecorder(n*2 + len(counts))

	for i, v := range arr {
		counts[int(v)-minVal]++
		r.emit(step.Counting{
			Base:   base(arr, "count %s", fmtv(v)),
			Index:  i,
			Counts: cloneInts(counts),
			Min:    minVal,
		})
	}

	for k := 1; k < len(counts); k++ {
		counts[k] += counts[k-1]
		r.emit(step.Cumulative{
			Base:   base(arr, "%d values are <= %d", counts[k], k+minVal),
			Index:  k,
			Counts: cloneInts(counts),
			Min:    minVal,
		})
	}

	out := step.Clone(arr)
	for i := n - 1; i >= 0; i-- {
		v := arr[i]
		k := int(v) - minVal
		counts[k]--
		pos := counts[k]
		out[pos] = v
		r.emit(step.Output{
			Base:     base(out, "place %s at position %d", fmtv(v), pos),
			Index:    i,
			Position: pos,
			Counts:   cloneInts(counts),
			Min:      minVal,
		})
	}

	r.emit(step.Done{Base: base(out, "array is sorted"), Sorted: step.Range(0, n)})
	return r.result()
}

func cloneInts(s []int) []int {
	c := make([]int, len(s))
	copy(c, s)
	return c
}
