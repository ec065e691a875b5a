package algorithms

const (
	IDBubbleSort    = "bubble-sort"
	IDSelectionSort = "selection-sort"
	IDInsertionSort = "insertion-sort"
	IDMergeSort     = "merge-sort"
	IDQuickSort     = "quick-sort"
	IDHeapSort      = "heap-sort"
	IDCountingSort  = "counting-sort"
	IDLinearSearch  = "linear-search"
	IDBinarySearch  = "binary-search"
)

type Kind int

const (
	KindSort Kind = iota
	KindSearch
)

// Info describes one built-in producer.
type Info struct {
	ID          string
	Kind        Kind
	Description string
	Produce     Producer
}

// Builtin lists the built-in producers in menu order.
func Builtin() []Info {
	return []Info{
		{IDBubbleSort, KindSort, "adjacent swaps, early exit", BubbleSort},
		{IDSelectionSort, KindSort, "select the minimum", SelectionSort},
		{IDInsertionSort, KindSort, "shift and insert", InsertionSort},
		{IDMergeSort, KindSort, "divide and merge", MergeSort},
		{IDQuickSort, KindSort, "lomuto partition", QuickSort},
		{IDHeapSort, KindSort, "max-heap extraction", HeapSort},
		{IDCountingSort, KindSort, "tally, prefix sums, place", CountingSort},
		{IDLinearSearch, KindSearch, "scan left to right", LinearSearch},
		{IDBinarySearch, KindSearch, "halve a sorted copy", BinarySearch},
	}
}

func Lookup(id string) (Info, bool) {
	for _, info := range Builtin() {
		if info.ID == id {
			return info, true
		}
	}
	return Info{}, false
}

// IsSearch reports whether id names a built-in search, i.e. one that wants a target.
func IsSearch(id string) bool {
	info, ok := Lookup(id)
	return ok && info.Kind == KindSearch
}
