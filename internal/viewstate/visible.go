package viewstate

// VisibleRange is the result of a viewport-intersection query: the half-open
// entry index range [Start, End) with some portion inside the viewport, plus
// the resolved scroll offset the query was made at. Ephemeral; recomputed
// every frame.
type VisibleRange struct {
	Start          int
	End            int
	ScrollOffset   int
	ViewportHeight int
}

// Len returns the number of visible entries.
func (r VisibleRange) Len() int { return r.End - r.Start }

// IsEmpty reports whether no entries are visible.
func (r VisibleRange) IsEmpty() bool { return r.End <= r.Start }

// Contains reports whether index falls inside the range.
func (r VisibleRange) Contains(index int) bool {
	return index >= r.Start && index < r.End
}

// HitTestResult maps a screen coordinate back to a document entry. A miss
// (click outside any content) is a legitimate result, not an error.
type HitTestResult struct {
	Hit         bool
	EntryIndex  int
	LineInEntry int
	Column      int
}

// Miss returns a miss result.
func Miss() HitTestResult { return HitTestResult{} }

// HitAt returns a hit result for the given entry, in-entry line, and column.
func HitAt(entryIndex, lineInEntry, column int) HitTestResult {
	return HitTestResult{Hit: true, EntryIndex: entryIndex, LineInEntry: lineInEntry, Column: column}
}
