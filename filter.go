package ujson

// FilterMode selects how a Filter's key list is applied during filtered
// object iteration.
type FilterMode int

const (
	// FilterSkip drops keys present in the list, keeping everything else.
	FilterSkip FilterMode = iota
	// FilterKeep retains only keys present in the list.
	FilterKeep
)

// Filter is a lexicographically sorted key list plus a mode, applied by
// ObjFirstFiltered/ObjNextFiltered. Keys must be sorted ascending; behavior
// is undefined otherwise, since lookup is a binary search.
type Filter struct {
	Keys []string
	Mode FilterMode
}

// keep reports whether key should be surfaced to the caller under f.
func (f *Filter) keep(key string) bool {
	_, found := ListLookup(f.Keys, key)
	if !found {
		return f.Mode == FilterSkip
	}
	return f.Mode == FilterKeep
}

// ListLookup performs a binary search for key over a sorted list, returning
// the index and true on a match, or (-1, false) otherwise. It runs in
// O(log n).
func ListLookup(list []string, key string) (int, bool) {
	lo, hi := 0, len(list)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		switch {
		case list[mid] == key:
			return mid, true
		case list[mid] < key:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return -1, false
}
