package algorithms

import "github.com/san-kum/algoviz/internal/step"

type mergeSorter struct {
	arr []float64
	r   *recorder
}

// MergeSort records splits top-down and merges bottom-up. The working array
// is only rewritten when a frame's merge completes; merge-step snapshots show
// the accumulator in Merged instead.
func MergeSort(input []float64, _ *float64) []step.Step {
	if early := guardSort(input); early != nil {
		return early
	}
	arr := step.Clone(input)
	n := len(arr)
	m := &mergeSorter{arr: arr, r: newRecorder(n * 4)}

	m.sort(0, n, 0)

	m.r.emit(step.Done{Base: base(arr, "array is sorted"), Sorted: step.Range(0, n)})
	return m.r.result()
}

func (m *mergeSorter) sort(lo, hi, depth int) {
	if hi-lo <= 1 {
		return
	}
	mid := lo + (hi-lo)/2

	m.r.emit(step.Split{
		Base:  base(m.arr, "split [%d, %d) at %d", lo, hi, mid),
		Left:  step.Clone(m.arr[lo:mid]),
		Right: step.Clone(m.arr[mid:hi]),
		Depth: depth,
	})

	m.sort(lo, mid, depth+1)
	m.sort(mid, hi, depth+1)
	m.merge(lo, mid, hi, depth)
}

func (m *mergeSorter) merge(lo, mid, hi, depth int) {
	left := step.Clone(m.arr[lo:mid])
	right := step.Clone(m.arr[mid:hi])
	merged := make([]float64, 0, hi-lo)

	i, j := 0, 0
	for i < len(left) && j < len(right) {
		m.r.emit(step.Compare{
			Base:      base(m.arr, "compare %s and %s", fmtv(left[i]), fmtv(right[j])),
			Comparing: []int{lo + i, mid + j},
			Depth:     depth,
		})
		if left[i] <= right[j] {
			merged = append(merged, left[i])
			i++
		} else {
			merged = append(merged, right[j])
			j++
		}
		m.emitMergeStep(merged, depth)
	}
	for ; i < len(left); i++ {
		merged = append(merged, left[i])
		m.emitMergeStep(merged, depth)
	}
	for ; j < len(right); j++ {
		merged = append(merged, right[j])
		m.emitMergeStep(merged, depth)
	}

	copy(m.arr[lo:hi], merged)
	m.r.emit(step.MergeComplete{
		Base:   base(m.arr, "merged [%d, %d)", lo, hi),
		Merged: step.Clone(merged),
		Depth:  depth,
	})
}

func (m *mergeSorter) emitMergeStep(merged []float64, depth int) {
	m.r.emit(step.MergeStep{
		Base:   base(m.arr, "append %s", fmtv(merged[len(merged)-1])),
		Merged: step.Clone(merged),
		Depth:  depth,
	})
}
