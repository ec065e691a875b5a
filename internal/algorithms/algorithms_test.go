package algorithms

import (
	"math"
	"math/rand"
	"reflect"
	"sort"
	"testing"

	"github.com/san-kum/algoviz/internal/step"
)

func actions(steps []step.Step) []step.Action {
	out := make([]step.Action, len(steps))
	for i, s := range steps {
		out[i] = s.Action()
	}
	return out
}

func ptr(v float64) *float64 { return &v }

func sortedCopy(in []float64) []float64 {
	c := step.Clone(in)
	sort.Float64s(c)
	return c
}

func testInputs() [][]float64 {
	rng := rand.New(rand.NewSource(7))
	inputs := [][]float64{
		{},
		{42},
		{2, 1},
		{3, 1, 2},
		{1, 2, 3, 4, 5},
		{5, 4, 3, 2, 1},
		{4, 4, 1, 4, 1},
		{-3, 10, 0, -7, 2, 2},
	}
	for n := 0; n <= 12; n++ {
		in := make([]float64, n)
		for i := range in {
			in[i] = float64(rng.Intn(40) - 10)
		}
		inputs = append(inputs, in)
	}
	return inputs
}

func TestBubbleSortScenario(t *testing.T) {
	steps := BubbleSort([]float64{3, 1, 2}, nil)

	want := []step.Action{
		step.ActionCompare, step.ActionSwap,
		step.ActionCompare, step.ActionSwap,
		step.ActionCompare,
		step.ActionDone,
	}
	if got := actions(steps); !reflect.DeepEqual(got, want) {
		t.Fatalf("actions = %v, want %v", got, want)
	}

	if c := steps[0].(step.Compare); !reflect.DeepEqual(c.Comparing, []int{0, 1}) {
		t.Errorf("first compare indices = %v", c.Comparing)
	}
	if s := steps[1].(step.Swap); !reflect.DeepEqual(s.Snapshot, []float64{1, 3, 2}) {
		t.Errorf("after first swap = %v", s.Snapshot)
	}
	if c := steps[2].(step.Compare); !reflect.DeepEqual(c.Comparing, []int{1, 2}) {
		t.Errorf("second compare indices = %v", c.Comparing)
	}
	if s := steps[3].(step.Swap); !reflect.DeepEqual(s.Snapshot, []float64{1, 2, 3}) {
		t.Errorf("after second swap = %v", s.Snapshot)
	}
	if c := steps[4].(step.Compare); !reflect.DeepEqual(c.Sorted, []int{2}) {
		t.Errorf("second pass sorted = %v, want [2]", c.Sorted)
	}
	done := steps[5].(step.Done)
	if !reflect.DeepEqual(done.Sorted, []int{0, 1, 2}) {
		t.Errorf("done sorted = %v", done.Sorted)
	}
}

func TestLinearSearchScenario(t *testing.T) {
	steps := LinearSearch([]float64{4, 2, 7}, ptr(7))

	want := []step.Action{step.ActionCompare, step.ActionCompare, step.ActionCompare, step.ActionFound}
	if got := actions(steps); !reflect.DeepEqual(got, want) {
		t.Fatalf("actions = %v, want %v", got, want)
	}
	for i := 0; i < 3; i++ {
		c := steps[i].(step.Compare)
		if !reflect.DeepEqual(c.Comparing, []int{i}) || c.Target == nil || *c.Target != 7 {
			t.Errorf("step %d: comparing %v target %v", i, c.Comparing, c.Target)
		}
	}
	if f := steps[3].(step.Found); f.FoundIndex != 2 {
		t.Errorf("found index = %d, want 2", f.FoundIndex)
	}
}

func TestBinarySearchScenario(t *testing.T) {
	steps := BinarySearch([]float64{5, 3, 1}, ptr(3))

	want := []step.Action{step.ActionInit, step.ActionSelectMid, step.ActionFound}
	if got := actions(steps); !reflect.DeepEqual(got, want) {
		t.Fatalf("actions = %v, want %v", got, want)
	}
	start := steps[0].(step.Init)
	if start.Left != 0 || start.Right != 2 {
		t.Errorf("init bounds = [%d, %d]", start.Left, start.Right)
	}
	if !reflect.DeepEqual(start.Snapshot, []float64{1, 3, 5}) {
		t.Errorf("search runs on %v, want sorted copy", start.Snapshot)
	}
	if mid := steps[1].(step.SelectMid); mid.Mid != 1 {
		t.Errorf("mid = %d, want 1", mid.Mid)
	}
	if f := steps[2].(step.Found); f.FoundIndex != 1 {
		t.Errorf("found index = %d, want 1", f.FoundIndex)
	}
}

func TestBinarySearchNarrowing(t *testing.T) {
	steps := BinarySearch([]float64{1, 2, 3, 4, 5, 6, 7}, ptr(5))

	want := []step.Action{
		step.ActionInit,
		step.ActionSelectMid, step.ActionSearchRight,
		step.ActionSelectMid, step.ActionSearchLeft,
		step.ActionSelectMid, step.ActionFound,
	}
	if got := actions(steps); !reflect.DeepEqual(got, want) {
		t.Fatalf("actions = %v, want %v", got, want)
	}
	right := steps[2].(step.SearchRight)
	if right.Left != 4 || right.Right != 6 {
		t.Errorf("after search-right bounds = [%d, %d], want [4, 6]", right.Left, right.Right)
	}
	if f := steps[6].(step.Found); f.FoundIndex != 4 {
		t.Errorf("found index = %d, want 4", f.FoundIndex)
	}
}

func TestSelectionSortSequence(t *testing.T) {
	steps := SelectionSort([]float64{2, 1, 3}, nil)

	want := []step.Action{
		step.ActionCompare, step.ActionCompare, step.ActionSwap,
		step.ActionCompare,
		step.ActionDone,
	}
	if got := actions(steps); !reflect.DeepEqual(got, want) {
		t.Fatalf("actions = %v, want %v", got, want)
	}
	if c := steps[1].(step.Compare); !reflect.DeepEqual(c.Comparing, []int{1, 2}) {
		t.Errorf("compare against running minimum = %v, want [1 2]", c.Comparing)
	}
	if s := steps[2].(step.Swap); !reflect.DeepEqual(s.Sorted, []int{0}) {
		t.Errorf("sorted after first swap = %v", s.Sorted)
	}
}

func TestInsertionSortSequence(t *testing.T) {
	steps := InsertionSort([]float64{2, 1}, nil)

	want := []step.Action{step.ActionSelect, step.ActionCompare, step.ActionShift, step.ActionInsert, step.ActionDone}
	if got := actions(steps); !reflect.DeepEqual(got, want) {
		t.Fatalf("actions = %v, want %v", got, want)
	}
	if s := steps[2].(step.Shift); !reflect.DeepEqual(s.Snapshot, []float64{2, 2}) {
		t.Errorf("shift snapshot = %v", s.Snapshot)
	}
	if ins := steps[3].(step.Insert); ins.Index != 0 || !reflect.DeepEqual(ins.Snapshot, []float64{1, 2}) {
		t.Errorf("insert = %d %v", ins.Index, ins.Snapshot)
	}
}

func TestMergeSortStructure(t *testing.T) {
	steps := MergeSort([]float64{4, 1, 3, 2}, nil)

	splits, completes := 0, 0
	for i, s := range steps {
		switch v := s.(type) {
		case step.Split:
			splits++
			if v.Depth == 0 && (!reflect.DeepEqual(v.Left, []float64{4, 1}) || !reflect.DeepEqual(v.Right, []float64{3, 2})) {
				t.Errorf("top split = %v | %v", v.Left, v.Right)
			}
		case step.MergeComplete:
			completes++
		case step.Compare:
			if i+1 >= len(steps) || steps[i+1].Action() != step.ActionMergeStep {
				t.Errorf("compare at %d not followed by merge-step", i)
			}
		}
	}
	if splits != 3 || completes != 3 {
		t.Errorf("splits=%d completes=%d, want 3 and 3", splits, completes)
	}

	last := steps[len(steps)-2].(step.MergeComplete)
	if last.Depth != 0 || !reflect.DeepEqual(last.Merged, []float64{1, 2, 3, 4}) {
		t.Errorf("final merge = depth %d %v", last.Depth, last.Merged)
	}
}

func TestMergeSortDrainsWithoutCompare(t *testing.T) {
	steps := MergeSort([]float64{1, 2}, nil)

	want := []step.Action{
		step.ActionSplit,
		step.ActionCompare, step.ActionMergeStep,
		step.ActionMergeStep,
		step.ActionMergeComplete,
		step.ActionDone,
	}
	if got := actions(steps); !reflect.DeepEqual(got, want) {
		t.Fatalf("actions = %v, want %v", got, want)
	}
}

func TestQuickSortPartition(t *testing.T) {
	steps := QuickSort([]float64{5, 3, 8, 1}, nil)

	sp, ok := steps[0].(step.SelectPivot)
	if !ok || sp.Pivot != 3 {
		t.Fatalf("first step = %v, want select-pivot at 3", steps[0].Action())
	}
	for i := 1; i <= 3; i++ {
		c := steps[i].(step.Compare)
		if !reflect.DeepEqual(c.Comparing, []int{i - 1, 3}) {
			t.Errorf("compare %d = %v", i, c.Comparing)
		}
	}
	pp := steps[4].(step.PlacePivot)
	if pp.Partition != 0 || !reflect.DeepEqual(pp.Snapshot, []float64{1, 3, 8, 5}) {
		t.Errorf("place-pivot = %d %v", pp.Partition, pp.Snapshot)
	}

	dones := 0
	for _, s := range steps {
		if s.Action() == step.ActionDone {
			dones++
		}
	}
	if dones != 1 {
		t.Errorf("expected exactly one done, got %d", dones)
	}
}

func TestHeapSortExtractions(t *testing.T) {
	in := []float64{3, 9, 2, 7, 5}
	steps := HeapSort(in, nil)

	extracts := 0
	for _, s := range steps {
		if e, ok := s.(step.ExtractMax); ok {
			extracts++
			if e.Swapped[0] != 0 || e.Sorted[0] != e.Swapped[1] {
				t.Errorf("extract swapped %v sorted %v", e.Swapped, e.Sorted)
			}
		}
	}
	if extracts != len(in)-1 {
		t.Errorf("extractions = %d, want %d", extracts, len(in)-1)
	}
}

func TestCountingSortPhases(t *testing.T) {
	steps := CountingSort([]float64{3, 1, 2, 1}, nil)

	want := []step.Action{
		step.ActionCounting, step.ActionCounting, step.ActionCounting, step.ActionCounting,
		step.ActionCumulative, step.ActionCumulative,
		step.ActionOutput, step.ActionOutput, step.ActionOutput, step.ActionOutput,
		step.ActionDone,
	}
	if got := actions(steps); !reflect.DeepEqual(got, want) {
		t.Fatalf("actions = %v, want %v", got, want)
	}
	c := steps[3].(step.Counting)
	if c.Min != 1 || !reflect.DeepEqual(c.Counts, []int{2, 1, 1}) {
		t.Errorf("counts = %v min %d", c.Counts, c.Min)
	}
	cum := steps[5].(step.Cumulative)
	if !reflect.DeepEqual(cum.Counts, []int{2, 3, 4}) {
		t.Errorf("cumulative = %v", cum.Counts)
	}
}

func TestCountingSortRejectsFractions(t *testing.T) {
	steps := CountingSort([]float64{1, 2.5}, nil)
	if len(steps) != 1 || steps[0].Action() != step.ActionError {
		t.Fatalf("expected single error step, got %v", actions(steps))
	}
	if steps[0].Note() == "" {
		t.Error("error step should explain itself")
	}
}

func TestSortsEndSorted(t *testing.T) {
	for _, info := range Builtin() {
		if info.Kind != KindSort {
			continue
		}
		t.Run(info.ID, func(t *testing.T) {
			for _, in := range testInputs() {
				orig := step.Clone(in)
				steps := info.Produce(in, nil)
				if len(steps) == 0 {
					t.Fatalf("input %v: no steps", in)
				}
				last := steps[len(steps)-1]
				if last.Action() != step.ActionDone {
					t.Fatalf("input %v: last action %s", in, last.Action())
				}
				if !reflect.DeepEqual(last.Values(), sortedCopy(in)) {
					t.Errorf("input %v: final %v", in, last.Values())
				}
				if got := last.(step.Done).Sorted; len(got) != len(in) {
					t.Errorf("input %v: done marks %d sorted", in, len(got))
				}
				if !reflect.DeepEqual(in, orig) {
					t.Errorf("producer mutated its input: %v -> %v", orig, in)
				}
			}
		})
	}
}

func TestSearchesEndTerminal(t *testing.T) {
	for _, in := range testInputs() {
		for _, tv := range []float64{-10, 2, 4, 29, 100} {
			linear := LinearSearch(in, ptr(tv))
			binary := BinarySearch(in, ptr(tv))

			want := -1
			for i, v := range in {
				if v == tv {
					want = i
					break
				}
			}

			switch last := linear[len(linear)-1].(type) {
			case step.Found:
				if last.FoundIndex != want {
					t.Errorf("linear %v/%g: found %d, want %d", in, tv, last.FoundIndex, want)
				}
			case step.NotFound:
				if want != -1 {
					t.Errorf("linear %v/%g: not found, want %d", in, tv, want)
				}
			default:
				t.Errorf("linear %v/%g: last action %s", in, tv, last.Action())
			}

			switch last := binary[len(binary)-1].(type) {
			case step.Found:
				if last.Values()[last.FoundIndex] != tv {
					t.Errorf("binary %v/%g: index %d holds %g", in, tv, last.FoundIndex, last.Values()[last.FoundIndex])
				}
			case step.NotFound:
				if want != -1 {
					t.Errorf("binary %v/%g: not found but present", in, tv)
				}
			default:
				t.Errorf("binary %v/%g: last action %s", in, tv, last.Action())
			}
		}
	}
}

func TestSearchWithoutTarget(t *testing.T) {
	for _, produce := range []Producer{LinearSearch, BinarySearch} {
		for _, target := range []*float64{nil, ptr(math.NaN())} {
			steps := produce([]float64{1, 2, 3}, target)
			if len(steps) != 1 || steps[0].Action() != step.ActionNotFound {
				t.Errorf("expected single not-found, got %v", actions(steps))
			}
			if steps[0].Note() == "" {
				t.Error("not-found step should explain the missing target")
			}
		}
	}
}

func TestNonFiniteInput(t *testing.T) {
	for _, info := range Builtin() {
		steps := info.Produce([]float64{1, math.Inf(1), 2}, ptr(1))
		if len(steps) != 1 || steps[0].Action() != step.ActionError {
			t.Errorf("%s: expected single error step, got %v", info.ID, actions(steps))
		}
	}
}

func TestSnapshotsAreIndependent(t *testing.T) {
	steps := BubbleSort([]float64{3, 2, 1}, nil)
	before := step.Clone(steps[1].Values())

	steps[0].Values()[0] = 999

	if !reflect.DeepEqual(steps[1].Values(), before) {
		t.Errorf("mutating one snapshot changed another: %v", steps[1].Values())
	}
}

func TestProducersAreDeterministic(t *testing.T) {
	in := []float64{5, 3, 8, 1, 9, 2}
	for _, info := range Builtin() {
		a := info.Produce(in, ptr(8))
		b := info.Produce(in, ptr(8))
		if !reflect.DeepEqual(a, b) {
			t.Errorf("%s: traces differ between runs", info.ID)
		}
	}
}

func TestLookup(t *testing.T) {
	info, ok := Lookup(IDHeapSort)
	if !ok || info.Kind != KindSort {
		t.Fatalf("expected heap-sort to be a sort, got %+v %v", info, ok)
	}
	if _, ok := Lookup("bogo-sort"); ok {
		t.Error("unexpected lookup hit")
	}
	if !IsSearch(IDBinarySearch) || IsSearch(IDMergeSort) || IsSearch("nope") {
		t.Error("IsSearch misclassified an id")
	}
}
