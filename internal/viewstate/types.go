// Package viewstate implements the layout and scroll engine for session-log
// viewing: height-indexed vertical layout, semantic scroll positions,
// viewport intersection, mouse hit-testing, and a bounded render cache.
//
// The engine owns no text layout of its own. Heights and rendered lines come
// from a caller-supplied MeasureFunc; the engine tracks them in a Fenwick
// tree so that scrolling, hit-testing, and expand/collapse stay O(log n)
// even at hundreds of thousands of entries.
package viewstate

import "github.com/wethinkt/seslog/internal/trace"

// WrapMode controls line wrapping for entry content.
type WrapMode int

const (
	// Wrap soft-wraps long lines at the viewport width.
	Wrap WrapMode = iota
	// NoWrap truncates long lines at the viewport width.
	NoWrap
)

// String returns "wrap" or "nowrap".
func (m WrapMode) String() string {
	if m == NoWrap {
		return "nowrap"
	}
	return "wrap"
}

// WrapOverride is a per-entry wrap setting layered over the global mode.
type WrapOverride int

const (
	// WrapDefault defers to the global wrap mode.
	WrapDefault WrapOverride = iota
	// WrapForced wraps this entry regardless of the global mode.
	WrapForced
	// WrapDisabled truncates this entry regardless of the global mode.
	WrapDisabled
)

// Viewport is the visible window into the document, in terminal cells.
type Viewport struct {
	Width  int
	Height int
}

// LayoutParams are the global parameters that affect every entry's layout.
// Per-entry state (expanded, wrap override) lives on EntryView.
type LayoutParams struct {
	Width int
	Wrap  WrapMode
}

// MeasureFunc computes the rendered line count of an entry for the given
// expand state, wrap mode, and width. It is supplied by the rendering layer
// and must be pure: same inputs, same height. Malformed entries measure 0.
type MeasureFunc func(entry *trace.Entry, expanded bool, wrap WrapMode, width int) int
