package algorithms

import (
	"sort"

	"github.com/san-kum/algoviz/internal/step"
)

func LinearSearch(input []float64, target *float64) []step.Step {
	if bad := rejectInput(input); bad != nil {
		return bad
	}
	arr := step.Clone(input)
	tv, reason, ok := validTarget(target)
	if !ok {
		return []step.Step{step.NotFound{Base: base(arr, "%s", reason)}}
	}

	r := newRecorder(len(arr))
	for i, v := range arr {
		r.emit(step.Compare{
			Base:      base(arr, "compare %s with target %s", fmtv(v), fmtv(tv)),
			Comparing: []int{i},
			Target:    &tv,
		})
		if v == tv {
			r.emit(step.Found{
				Base:       base(arr, "found %s at index %d", fmtv(tv), i),
				FoundIndex: i,
				Target:     tv,
			})
			return r.result()
		}
	}

	r.emit(step.NotFound{Base: base(arr, "%s is not in the array", fmtv(tv)), Target: &tv})
	return r.result()
}

// BinarySearch searches an ascending copy of input, so indices in its steps
// refer to the sorted order, not the caller's ordering.
func BinarySearch(input []float64, target *float64) []step.Step {
	if bad := rejectInput(input); bad != nil {
		return bad
	}
	arr := step.Clone(input)
	sort.Float64s(arr)
	tv, reason, ok := validTarget(target)
	if !ok {
		return []step.Step{step.NotFound{Base: base(arr, "%s", reason)}}
	}

	r := newRecorder(len(arr))
	left, right := 0, len(arr)-1
	r.emit(step.Init{
		Base:   base(arr, "search %s in [%d, %d]", fmtv(tv), left, right),
		Bounds: step.Bounds{Left: left, Right: right},
		Target: tv,
	})

	for left <= right {
		mid := left + (right-left)/2
		r.emit(step.SelectMid{
			Base:   base(arr, "middle element %s at %d", fmtv(arr[mid]), mid),
			Bounds: step.Bounds{Left: left, Right: right},
			Mid:    mid,
			Target: tv,
		})

		switch {
		case arr[mid] == tv:
			r.emit(step.Found{
				Base:       base(arr, "found %s at index %d", fmtv(tv), mid),
				FoundIndex: mid,
				Target:     tv,
			})
			return r.result()
		case arr[mid] < tv:
			left = mid + 1
			r.emit(step.SearchRight{
				Base:   base(arr, "%s < %s, search right half", fmtv(arr[mid]), fmtv(tv)),
				Bounds: step.Bounds{Left: left, Right: right},
				Target: tv,
			})
		default:
			right = mid - 1
			r.emit(step.SearchLeft{
				Base:   base(arr, "%s > %s, search left half", fmtv(arr[mid]), fmtv(tv)),
				Bounds: step.Bounds{Left: left, Right: right},
				Target: tv,
			})
		}
	}

	r.emit(step.NotFound{Base: base(arr, "%s is not in the array", fmtv(tv)), Target: &tv})
	return r.result()
}
