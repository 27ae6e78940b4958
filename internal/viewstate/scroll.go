package viewstate

// ScrollKind discriminates the ScrollPosition variants.
type ScrollKind int

const (
	// ScrollTop pins the view to line 0.
	ScrollTop ScrollKind = iota
	// ScrollBottom pins the view so the last line is visible.
	ScrollBottom
	// ScrollAtLine is an absolute line offset, clamped on resolution.
	ScrollAtLine
	// ScrollAtEntry anchors the view to an entry plus an in-entry line.
	// It re-resolves against the current layout every time, so it survives
	// expand/collapse and rewraps elsewhere in the document.
	ScrollAtEntry
	// ScrollFraction is a proportional position for scrollbar navigation.
	ScrollFraction
)

// ScrollPosition expresses scroll intent rather than a raw offset. It is
// resolved to an absolute, clamped line offset on demand, against whatever
// layout is current at that moment.
type ScrollPosition struct {
	Kind        ScrollKind
	Line        int     // ScrollAtLine
	Entry       int     // ScrollAtEntry
	LineInEntry int     // ScrollAtEntry
	Fraction    float64 // ScrollFraction
}

// Top returns a position pinned to the start of the document.
func Top() ScrollPosition { return ScrollPosition{Kind: ScrollTop} }

// Bottom returns a position pinned to the end of the document.
func Bottom() ScrollPosition { return ScrollPosition{Kind: ScrollBottom} }

// AtLine returns an absolute line position.
func AtLine(line int) ScrollPosition {
	return ScrollPosition{Kind: ScrollAtLine, Line: line}
}

// AtEntry returns a position anchored to an entry.
func AtEntry(entry, lineInEntry int) ScrollPosition {
	return ScrollPosition{Kind: ScrollAtEntry, Entry: entry, LineInEntry: lineInEntry}
}

// AtFraction returns a proportional position in [0,1].
func AtFraction(f float64) ScrollPosition {
	return ScrollPosition{Kind: ScrollFraction, Fraction: f}
}

// Resolve converts the position to an absolute line offset in
// [0, max(0, total-viewportHeight)]. lookup maps an entry index to its
// cumulative Y; a failed lookup resolves the anchor to 0. Every variant
// collapses to 0 when the content fits in the viewport.
func (p ScrollPosition) Resolve(total, viewportHeight int, lookup func(int) (int, bool)) int {
	maxOffset := total - viewportHeight
	if maxOffset < 0 {
		maxOffset = 0
	}
	var offset int
	switch p.Kind {
	case ScrollTop:
		return 0
	case ScrollBottom:
		return maxOffset
	case ScrollAtLine:
		offset = p.Line
	case ScrollAtEntry:
		if y, ok := lookup(p.Entry); ok {
			offset = y + p.LineInEntry
		} else {
			offset = p.LineInEntry
		}
	case ScrollFraction:
		f := p.Fraction
		if f < 0 {
			f = 0
		} else if f > 1 {
			f = 1
		}
		offset = int(f * float64(maxOffset))
	}
	if offset < 0 {
		return 0
	}
	if offset > maxOffset {
		return maxOffset
	}
	return offset
}
