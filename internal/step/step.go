// Package step defines the closed set of snapshot records emitted by the
// algorithm producers. Each action has exactly one variant type and each
// variant carries only the fields that mean something for that action.
package step

type Action string

const (
	ActionCompare       Action = "compare"
	ActionSwap          Action = "swap"
	ActionSelect        Action = "select"
	ActionShift         Action = "shift"
	ActionInsert        Action = "insert"
	ActionSplit         Action = "split"
	ActionMergeStep     Action = "merge-step"
	ActionMergeComplete Action = "merge-complete"
	ActionSelectPivot   Action = "select-pivot"
	ActionPlacePivot    Action = "place-pivot"
	ActionExtractMax    Action = "extract-max"
	ActionHeapifyDone   Action = "heapify-done"
	ActionInit          Action = "init"
	ActionSelectMid     Action = "select-mid"
	ActionSearchLeft    Action = "search-left"
	ActionSearchRight   Action = "search-right"
	ActionFound         Action = "found"
	ActionNotFound      Action = "not-found"
	ActionDone          Action = "done"
	ActionCounting      Action = "counting"
	ActionCumulative    Action = "cumulative"
	ActionOutput        Action = "output"
	ActionError         Action = "error"
)

// Step is one immutable snapshot. The interface is sealed: only the variant
// types in this package implement it.
type Step interface {
	Action() Action
	Values() []float64
	Note() string
	sealed()
}

// Base holds the fields shared by every variant.
type Base struct {
	Snapshot    []float64 `json:"snapshot"`
	Explanation string    `json:"explanation,omitempty"`
}

func (b Base) Values() []float64 { return b.Snapshot }
func (b Base) Note() string      { return b.Explanation }
func (Base) sealed()             {}

// Compare inspects one or two positions. Searches compare a single index
// against the target.
type Compare struct {
	Base
	Comparing []int    `json:"comparingIndices"`
	Sorted    []int    `json:"sortedIndices,omitempty"`
	Target    *float64 `json:"target,omitempty"`
	Depth     int      `json:"depth,omitempty"`
}

type Swap struct {
	Base
	Swapped []int `json:"swappedIndices"`
	Sorted  []int `json:"sortedIndices,omitempty"`
}

// Select marks the key held by insertion sort.
type Select struct {
	Base
	Index  int   `json:"index"`
	Sorted []int `json:"sortedIndices,omitempty"`
}

// Shift moves the element at From one slot right.
type Shift struct {
	Base
	From   int   `json:"from"`
	To     int   `json:"to"`
	Sorted []int `json:"sortedIndices,omitempty"`
}

type Insert struct {
	Base
	Index  int   `json:"index"`
	Sorted []int `json:"sortedIndices,omitempty"`
}

type Split struct {
	Base
	Left  []float64 `json:"leftPart"`
	Right []float64 `json:"rightPart"`
	Depth int       `json:"depth"`
}

// MergeStep carries the merge accumulator after one element was appended.
type MergeStep struct {
	Base
	Merged []float64 `json:"merged"`
	Depth  int       `json:"depth"`
}

type MergeComplete struct {
	Base
	Merged []float64 `json:"merged"`
	Depth  int       `json:"depth"`
}

type SelectPivot struct {
	Base
	Pivot int `json:"pivotIndex"`
	Low   int `json:"low"`
	High  int `json:"high"`
}

type PlacePivot struct {
	Base
	Partition int   `json:"partitionIndex"`
	Swapped   []int `json:"swappedIndices,omitempty"`
}

// ExtractMax moves the heap root behind the shrinking heap boundary.
type ExtractMax struct {
	Base
	Swapped []int `json:"swappedIndices"`
	Sorted  []int `json:"sortedIndices"`
}

type HeapifyDone struct {
	Base
	Index    int `json:"index"`
	HeapSize int `json:"heapSize"`
}

// Bounds is the live [Left, Right] window of a binary search.
type Bounds struct {
	Left  int `json:"left"`
	Right int `json:"right"`
}

type Init struct {
	Base
	Bounds
	Target float64 `json:"target"`
}

type SelectMid struct {
	Base
	Bounds
	Mid    int     `json:"mid"`
	Target float64 `json:"target"`
}

type SearchLeft struct {
	Base
	Bounds
	Target float64 `json:"target"`
}

type SearchRight struct {
	Base
	Bounds
	Target float64 `json:"target"`
}

type Found struct {
	Base
	FoundIndex int     `json:"foundIndex"`
	Target     float64 `json:"target"`
}

type NotFound struct {
	Base
	Target *float64 `json:"target,omitempty"`
}

type Done struct {
	Base
	Sorted []int `json:"sortedIndices"`
}

// Counting is one tally in the counting phase. Counts is offset by Min.
type Counting struct {
	Base
	Index  int   `json:"index"`
	Counts []int `json:"counts"`
	Min    int   `json:"min"`
}

type Cumulative struct {
	Base
	Index  int   `json:"index"`
	Counts []int `json:"counts"`
	Min    int   `json:"min"`
}

// Output places one element into the output array; Snapshot is the output
// built so far with unfilled slots holding the original values.
type Output struct {
	Base
	Index    int   `json:"index"`
	Position int   `json:"position"`
	Counts   []int `json:"counts"`
	Min      int   `json:"min"`
}

type Error struct {
	Base
}

func (Compare) Action() Action       { return ActionCompare }
func (Swap) Action() Action          { return ActionSwap }
func (Select) Action() Action        { return ActionSelect }
func (Shift) Action() Action         { return ActionShift }
func (Insert) Action() Action        { return ActionInsert }
func (Split) Action() Action         { return ActionSplit }
func (MergeStep) Action() Action     { return ActionMergeStep }
func (MergeComplete) Action() Action { return ActionMergeComplete }
func (SelectPivot) Action() Action   { return ActionSelectPivot }
func (PlacePivot) Action() Action    { return ActionPlacePivot }
func (ExtractMax) Action() Action    { return ActionExtractMax }
func (HeapifyDone) Action() Action   { return ActionHeapifyDone }
func (Init) Action() Action          { return ActionInit }
func (SelectMid) Action() Action     { return ActionSelectMid }
func (SearchLeft) Action() Action    { return ActionSearchLeft }
func (SearchRight) Action() Action   { return ActionSearchRight }
func (Found) Action() Action         { return ActionFound }
func (NotFound) Action() Action      { return ActionNotFound }
func (Done) Action() Action          { return ActionDone }
func (Counting) Action() Action      { return ActionCounting }
func (Cumulative) Action() Action    { return ActionCumulative }
func (Output) Action() Action        { return ActionOutput }
func (Error) Action() Action         { return ActionError }

// IsTerminal reports whether s can end a trace.
func IsTerminal(s Step) bool {
	if s == nil {
		return false
	}
	switch s.Action() {
	case ActionDone, ActionFound, ActionNotFound, ActionError:
		return true
	}
	return false
}

// Clone copies values so a snapshot never aliases a producer's working slice.
func Clone(values []float64) []float64 {
	c := make([]float64, len(values))
	copy(c, values)
	return c
}

// Range returns [from, to) as an index slice.
func Range(from, to int) []int {
	if to <= from {
		return []int{}
	}
	r := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		r = append(r, i)
	}
	return r
}

// Highlights collects the index annotations a renderer colors.
type Highlights struct {
	Comparing []int
	Swapped   []int
	Sorted    []int
	Pivot     int
	HasPivot  bool
}

// HighlightsOf extracts index annotations from any variant.
func HighlightsOf(s Step) Highlights {
	var h Highlights
	switch v := s.(type) {
	case Compare:
		h.Comparing, h.Sorted = v.Comparing, v.Sorted
	case Swap:
		h.Swapped, h.Sorted = v.Swapped, v.Sorted
	case Select:
		h.Comparing, h.Sorted = []int{v.Index}, v.Sorted
	case Shift:
		h.Swapped, h.Sorted = []int{v.From, v.To}, v.Sorted
	case Insert:
		h.Swapped, h.Sorted = []int{v.Index}, v.Sorted
	case SelectPivot:
		h.Pivot, h.HasPivot = v.Pivot, true
	case PlacePivot:
		h.Swapped = v.Swapped
		h.Pivot, h.HasPivot = v.Partition, true
	case ExtractMax:
		h.Swapped, h.Sorted = v.Swapped, v.Sorted
	case HeapifyDone:
		h.Comparing = []int{v.Index}
	case SelectMid:
		h.Comparing = []int{v.Mid}
	case Found:
		h.Sorted = []int{v.FoundIndex}
	case Done:
		h.Sorted = v.Sorted
	case Counting:
		h.Comparing = []int{v.Index}
	case Output:
		h.Swapped = []int{v.Position}
	}
	return h
}
