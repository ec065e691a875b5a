package algorithms

import "github.com/san-kum/algoviz/internal/step"

type quickSorter struct {
	arr []float64
	r   *recorder
}

// QuickSort uses Lomuto partitioning with the last element as pivot.
func QuickSort(input []float64, _ *float64) []step.Step {
	if early := guardSort(input); early != nil {
		return early
	}
	arr := step.Clone(input)
	n := len(arr)
	q := &quickSorter{arr: arr, r: newRecorder(n * 4)}

	q.sort(0, n-1)

	q.r.emit(step.Done{Base: base(arr, "array is sorted"), Sorted: step.Range(0, n)})
	return q.r.result()
}

func (q *quickSorter) sort(low, high int) {
	if low >= high {
		return
	}
	p := q.partition(low, high)
	q.sort(low, p-1)
	q.sort(p+1, high)
}

func (q *quickSorter) partition(low, high int) int {
	arr := q.arr
	pivot := arr[high]
	q.r.emit(step.SelectPivot{
		Base:  base(arr, "pivot %s", fmtv(pivot)),
		Pivot: high,
		Low:   low,
		High:  high,
	})

	i := low - 1
	for j := low; j < high; j++ {
		q.r.emit(step.Compare{
			Base:      base(arr, "compare %s with pivot %s", fmtv(arr[j]), fmtv(pivot)),
			Comparing: []int{j, high},
		})
		if arr[j] <= pivot {
			i++
			if i != j {
				swap(arr, i, j)
				q.r.emit(step.Swap{
					Base:    base(arr, "move %s left of the boundary", fmtv(arr[i])),
					Swapped: []int{i, j},
				})
			}
		}
	}

	p := i + 1
	swap(arr, p, high)
	q.r.emit(step.PlacePivot{
		Base:      base(arr, "pivot %s placed at %d", fmtv(pivot), p),
		Partition: p,
		Swapped:   []int{p, high},
	})
	return p
}
