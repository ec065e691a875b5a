package algorithms

import "github.com/san-kum/algoviz/internal/step"

func BubbleSort(input []float64, _ *float64) []step.Step {
	if early := guardSort(input); early != nil {
		return early
	}
	arr := step.Clone(input)
	n := len(arr)
	r := newRecorder(n * n)

	for i := 0; i < n; i++ {
		settled := step.Range(n-i, n)
		swapped := false
		for j := 0; j < n-i-1; j++ {
			r.emit(step.Compare{
				Base:      base(arr, "compare %s and %s", fmtv(arr[j]), fmtv(arr[j+1])),
				Comparing: []int{j, j + 1},
				Sorted:    settled,
			})
			if arr[j] > arr[j+1] {
				swap(arr, j, j+1)
				swapped = true
				r.emit(step.Swap{
					Base:    base(arr, "%s > %s, swap", fmtv(arr[j+1]), fmtv(arr[j])),
					Swapped: []int{j, j + 1},
					Sorted:  settled,
				})
			}
		}
		if !swapped {
			break
		}
	}

	r.emit(step.Done{Base: base(arr, "array is sorted"), Sorted: step.Range(0, n)})
	return r.result()
}
