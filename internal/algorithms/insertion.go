package algorithms

import "github.com/san-kum/algoviz/internal/step"

func InsertionSort(input []float64, _ *float64) []step.Step {
	if early := guardSort(input); early != nil {
		return early
	}
	arr := step.Clone(input)
	n := len(arr)
	r := newRecorder(n * n)

	for i := 1; i < n; i++ {
		key := arr[i]
		r.emit(step.Select{
			Base:   base(arr, "pick %s as key", fmtv(key)),
			Index:  i,
			Sorted: step.Range(0, i),
		})

		j := i - 1
		for j >= 0 && arr[j] > key {
			r.emit(step.Compare{
				Base:      base(arr, "%s > %s", fmtv(arr[j]), fmtv(key)),
				Comparing: []int{j, j + 1},
				Sorted:    step.Range(0, i),
			})
			arr[j+1] = arr[j]
			r.emit(step.Shift{
				Base:   base(arr, "shift %s right", fmtv(arr[j])),
				From:   j,
				To:     j + 1,
				Sorted: step.Range(0, i),
			})
			j--
		}

		arr[j+1] = key
		r.emit(step.Insert{
			Base:   base(arr, "insert %s at position %d", fmtv(key), j+1),
			Index:  j + 1,
			Sorted: step.Range(0, i+1),
		})
	}

	r.emit(step.Done{Base: base(arr, "array is sorted"), Sorted: step.Range(0, n)})
	return r.result()
}
