package algorithms

import "github.com/san-kum/algoviz/internal/step"

func SelectionSort(input []float64, _ *float64) []step.Step {
	if early := guardSort(input); early != nil {
		return early
	}
	arr := step.Clone(input)
	n := len(arr)
	r := newRecorder(n * n)

	for i := 0; i < n-1; i++ {
		minIdx := i
		for j := i + 1; j < n; j++ {
			r.emit(step.Compare{
				Base:      base(arr, "is %s smaller than current minimum %s?", fmtv(arr[j]), fmtv(arr[minIdx])),
				Comparing: []int{minIdx, j},
				Sorted:    step.Range(0, i),
			})
			if arr[j] < arr[minIdx] {
				minIdx = j
			}
		}
		if minIdx != i {
			swap(arr, i, minIdx)
			r.emit(step.Swap{
				Base:    base(arr, "move minimum %s to position %d", fmtv(arr[i]), i),
				Swapped: []int{i, minIdx},
				Sorted:  step.Range(0, i+1),
			})
		}
	}

	r.emit(step.Done{Base: base(arr, "array is sorted"), Sorted: step.Range(0, n)})
	return r.result()
}
