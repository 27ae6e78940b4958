package viewstate

// HeightIndex maintains cumulative entry heights behind a Fenwick tree,
// giving O(log n) point updates and prefix sums and an O(log² n) search
// from absolute line offset back to entry index. Recomputing offsets
// linearly would make every expand/collapse O(n), which blows the frame
// budget on 100k-entry documents.
//
// Indices are 0-based. The tree is 1-indexed internally.
type HeightIndex struct {
	tree    []int
	heights []int
}

// NewHeightIndex creates an empty index with the given initial capacity.
func NewHeightIndex(capacity int) *HeightIndex {
	if capacity < 1 {
		capacity = 1
	}
	return &HeightIndex{
		tree:    make([]int, capacity+1),
		heights: make([]int, 0, capacity),
	}
}

// Len returns the number of entries in the index.
func (ix *HeightIndex) Len() int { return len(ix.heights) }

// Height returns the current height at index.
// Panics if index is out of range.
func (ix *HeightIndex) Height(index int) int { return ix.heights[index] }

// Push appends an entry with the given height. Amortized O(log n); the
// backing tree doubles and is rebuilt when full.
func (ix *HeightIndex) Push(height int) {
	ix.heights = append(ix.heights, height)
	if len(ix.heights) > len(ix.tree)-1 {
		ix.rebuild(2 * (len(ix.tree) - 1))
		return
	}
	ix.add(len(ix.heights)-1, height)
}

// Set overwrites the height at index, applying the signed delta to the
// tree in O(log n). Panics if index >= Len.
func (ix *HeightIndex) Set(index, height int) {
	if index >= len(ix.heights) {
		panic("viewstate: HeightIndex.Set index out of range")
	}
	delta := height - ix.heights[index]
	ix.heights[index] = height
	if delta != 0 {
		ix.add(index, delta)
	}
}

// PrefixSum returns the cumulative height through index, inclusive.
// O(log n). Panics if index >= Len.
func (ix *HeightIndex) PrefixSum(index int) int {
	if index >= len(ix.heights) {
		panic("viewstate: HeightIndex.PrefixSum index out of range")
	}
	sum := 0
	for i := index + 1; i > 0; i -= i & -i {
		sum += ix.tree[i]
	}
	return sum
}

// Total returns the cumulative height of all entries.
func (ix *HeightIndex) Total() int {
	if len(ix.heights) == 0 {
		return 0
	}
	return ix.PrefixSum(len(ix.heights) - 1)
}

// LowerBound returns the smallest index whose cumulative range contains
// offset, i.e. the first i with PrefixSum(i) > offset. The second return is
// false when the index is empty or offset >= Total. O(log² n): a binary
// search over indices with a PrefixSum per probe.
//
// Zero-height entries are never returned; their range is empty.
func (ix *HeightIndex) LowerBound(offset int) (int, bool) {
	n := len(ix.heights)
	if n == 0 || offset >= ix.Total() {
		return 0, false
	}
	lo, hi := 0, n-1
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if ix.PrefixSum(mid) > offset {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo, true
}

// Clear resets the index to empty, retaining capacity.
func (ix *HeightIndex) Clear() {
	clear(ix.tree)
	ix.heights = ix.heights[:0]
}

// add applies delta at index across the full tree capacity so that nodes
// covering not-yet-pushed slots stay consistent for future appends.
func (ix *HeightIndex) add(index, delta int) {
	for i := index + 1; i < len(ix.tree); i += i & -i {
		ix.tree[i] += delta
	}
}

// rebuild reconstructs the tree at the given capacity in O(capacity) using
// the classic parent-propagation pass.
func (ix *HeightIndex) rebuild(capacity int) {
	if capacity < len(ix.heights) {
		capacity = len(ix.heights)
	}
	ix.tree = make([]int, capacity+1)
	for i, h := range ix.heights {
		ix.tree[i+1] = h
	}
	for i := 1; i <= capacity; i++ {
		if parent := i + i&-i; parent <= capacity {
			ix.tree[parent] += ix.tree[i]
		}
	}
}
