package algorithms

import "github.com/san-kum/algoviz/internal/step"

type heapSorter struct {
	arr []float64
	r   *recorder
}

func HeapSort(input []float64, _ *float64) []step.Step {
	if early := guardSort(input); early != nil {
		return early
	}
	arr := step.Clone(input)
	n := len(arr)
	h := &heapSorter{arr: arr, r: newRecorder(n * 6)}

	for i := n/2 - 1; i >= 0; i-- {
		h.heapify(n, i)
	}

	for i := n - 1; i > 0; i-- {
		swap(arr, 0, i)
		h.r.emit(step.ExtractMax{
			Base:    base(arr, "move max %s to position %d", fmtv(arr[i]), i),
			Swapped: []int{0, i},
			Sorted:  step.Range(i, n),
		})
		h.heapify(i, 0)
	}

	h.r.emit(step.Done{Base: base(arr, "array is sorted"), Sorted: step.Range(0, n)})
	return h.r.result()
}

// heapify sifts index i down within the first size elements.
func (h *heapSorter) heapify(size, i int) {
	arr := h.arr
	n := len(arr)
	largest := i
	for _, child := range []int{2*i + 1, 2*i + 2} {
		if child >= size {
			continue
		}
		h.r.emit(step.Compare{
			Base:      base(arr, "compare %s with child %s", fmtv(arr[largest]), fmtv(arr[child])),
			Comparing: []int{largest, child},
			Sorted:    step.Range(size, n),
		})
		if arr[child] > arr[largest] {
			largest = child
		}
	}

	if largest == i {
		h.r.emit(step.HeapifyDone{
			Base:     base(arr, "heap property holds at %d", i),
			Index:    i,
			HeapSize: size,
		})
		return
	}

	swap(arr, i, largest)
	h.r.emit(step.Swap{
		Base:    base(arr, "sift %s down", fmtv(arr[largest])),
		Swapped: []int{i, largest},
		Sorted:  step.Range(size, n),
	})
	h.heapify(size, largest)
}
