package viewstate

import "github.com/wethinkt/seslog/internal/trace"

// Conversation is the view state for one conversation thread: an ordered
// sequence of EntryViews plus a HeightIndex whose i-th slot always equals
// entries[i].Height(). Cumulative offsets are derived from the index, never
// stored per entry, so a single height change is O(log n) instead of O(n).
//
// A Conversation is owned by one UI session and must only be mutated from
// its event loop; nothing here is safe for concurrent use.
type Conversation struct {
	agentID string
	entries []EntryView
	heights *HeightIndex
	scroll  ScrollPosition
	focused int // -1 when nothing is focused
	params  LayoutParams
	laidOut bool
}

// NewConversation creates view state for the given entries. No layout exists
// until RecomputeLayout runs; queries return empty results until then.
func NewConversation(agentID string, entries []trace.Entry) *Conversation {
	views := make([]EntryView, len(entries))
	for i, e := range entries {
		views[i] = EntryView{entry: e}
	}
	capacity := len(views)
	if capacity < 64 {
		capacity = 64
	}
	return &Conversation{
		agentID: agentID,
		entries: views,
		heights: NewHeightIndex(capacity),
		scroll:  Top(),
		focused: -1,
	}
}

// AgentID returns the sub-thread ID, or "" for the main thread.
func (c *Conversation) AgentID() string { return c.agentID }

// Len returns the number of entries.
func (c *Conversation) Len() int { return len(c.entries) }

// Get returns the entry view at index, or nil if out of range.
func (c *Conversation) Get(index int) *EntryView {
	if index < 0 || index >= len(c.entries) {
		return nil
	}
	return &c.entries[index]
}

// Scroll returns the current scroll position.
func (c *Conversation) Scroll() ScrollPosition { return c.scroll }

// SetScroll replaces the scroll position.
func (c *Conversation) SetScroll(pos ScrollPosition) { c.scroll = pos }

// Focused returns the focused entry index, or -1.
func (c *Conversation) Focused() int { return c.focused }

// SetFocused sets the focused entry index; values outside [0, Len) clear it.
func (c *Conversation) SetFocused(index int) {
	if index < 0 || index >= len(c.entries) {
		c.focused = -1
		return
	}
	c.focused = index
}

// TotalHeight returns the document height in lines.
func (c *Conversation) TotalHeight() int { return c.heights.Total() }

// NeedsLayout reports whether the global params differ from the last layout.
// Per-entry changes (expand, wrap override) relayout through their own
// operations and do not show up here.
func (c *Conversation) NeedsLayout(params LayoutParams) bool {
	return !c.laidOut || c.params != params
}

// EntryCumulativeY returns the top-of-document line offset of entry index:
// PrefixSum(index-1), or 0 for the first entry. False if out of range or
// before first layout.
func (c *Conversation) EntryCumulativeY(index int) (int, bool) {
	if index < 0 || index >= c.heights.Len() {
		return 0, false
	}
	if index == 0 {
		return 0, true
	}
	return c.heights.PrefixSum(index - 1), true
}

// EntryHeight returns the laid-out height of entry index, or false when out
// of range or before first layout.
func (c *Conversation) EntryHeight(index int) (int, bool) {
	if index < 0 || index >= c.heights.Len() {
		return 0, false
	}
	return c.heights.Height(index), true
}

// RecomputeLayout measures every entry and rebuilds the height index. O(n);
// used on construction and when width or the global wrap mode changes.
func (c *Conversation) RecomputeLayout(params LayoutParams, measure MeasureFunc) {
	c.heights.Clear()
	for i := range c.entries {
		v := &c.entries[i]
		v.height = measure(&v.entry, v.expanded, v.EffectiveWrap(params.Wrap), params.Width)
		c.heights.Push(v.height)
	}
	c.params = params
	c.laidOut = true
}

// RelayoutFrom re-measures entries at and after index, leaving every
// cumulative offset before index untouched. Falls back to a full
// RecomputeLayout when no layout exists yet.
func (c *Conversation) RelayoutFrom(index int, params LayoutParams, measure MeasureFunc) {
	if !c.laidOut || c.heights.Len() != len(c.entries) {
		c.RecomputeLayout(params, measure)
		return
	}
	if index < 0 {
		index = 0
	}
	for i := index; i < len(c.entries); i++ {
		v := &c.entries[i]
		v.height = measure(&v.entry, v.expanded, v.EffectiveWrap(params.Wrap), params.Width)
		c.heights.Set(i, v.height)
	}
	c.params = params
}

// ToggleExpand flips the expand flag of entry index and re-measures that
// single entry, applying the height delta in O(log n). Entries before the
// toggle point keep their offsets by construction; when the toggled entry is
// above the viewport, the scroll position is re-anchored to the first
// visible entry so the view does not jump. Returns the new expand state, or
// false ok for an out-of-range index.
func (c *Conversation) ToggleExpand(index int, params LayoutParams, vp Viewport, measure MeasureFunc) (expanded, ok bool) {
	if index < 0 || index >= len(c.entries) {
		return false, false
	}
	anchor, anchored := c.anchorAbove(index, vp)

	v := &c.entries[index]
	state := v.ToggleExpanded()
	v.height = measure(&v.entry, v.expanded, v.EffectiveWrap(params.Wrap), params.Width)
	if index < c.heights.Len() {
		c.heights.Set(index, v.height)
	}

	if anchored {
		c.scroll = anchor
	}
	return state, true
}

// SetWrapOverride sets the per-entry wrap override and re-measures that
// entry. Returns false for an out-of-range index.
func (c *Conversation) SetWrapOverride(index int, o WrapOverride, params LayoutParams, measure MeasureFunc) bool {
	if index < 0 || index >= len(c.entries) {
		return false
	}
	v := &c.entries[index]
	v.SetWrapOverride(o)
	v.height = measure(&v.entry, v.expanded, v.EffectiveWrap(params.Wrap), params.Width)
	if index < c.heights.Len() {
		c.heights.Set(index, v.height)
	}
	return true
}

// Append adds entries at the tail. When a layout exists they are measured
// and pushed immediately; offsets before the append point never move.
func (c *Conversation) Append(entries []trace.Entry, params LayoutParams, measure MeasureFunc) {
	for _, e := range entries {
		v := EntryView{entry: e}
		if c.laidOut {
			v.height = measure(&v.entry, v.expanded, v.EffectiveWrap(params.Wrap), params.Width)
			c.heights.Push(v.height)
		}
		c.entries = append(c.entries, v)
	}
}

// ResolveScroll resolves the current scroll position to an absolute,
// clamped line offset for the given viewport.
func (c *Conversation) ResolveScroll(vp Viewport) int {
	return c.scroll.Resolve(c.TotalHeight(), vp.Height, c.EntryCumulativeY)
}

// VisibleRange returns the entries intersecting the viewport at the current
// scroll position. Two LowerBound queries; O(log² n).
func (c *Conversation) VisibleRange(vp Viewport) VisibleRange {
	n := c.heights.Len()
	if n == 0 || vp.Height <= 0 {
		return VisibleRange{ViewportHeight: vp.Height}
	}
	offset := c.ResolveScroll(vp)

	start, ok := c.heights.LowerBound(offset)
	if !ok {
		return VisibleRange{Start: n, End: n, ScrollOffset: offset, ViewportHeight: vp.Height}
	}
	end := n
	if last, ok := c.heights.LowerBound(offset + vp.Height - 1); ok {
		end = last + 1
	}
	return VisibleRange{Start: start, End: end, ScrollOffset: offset, ViewportHeight: vp.Height}
}

// HitTest maps a viewport row and column plus scroll offset back to an
// entry. Returns Miss for coordinates beyond the content or before the
// first layout.
func (c *Conversation) HitTest(row, column, scrollOffset int) HitTestResult {
	if c.heights.Len() == 0 || row < 0 {
		return Miss()
	}
	absoluteY := scrollOffset + row
	index, ok := c.heights.LowerBound(absoluteY)
	if !ok {
		return Miss()
	}
	y, _ := c.EntryCumulativeY(index)
	return HitAt(index, absoluteY-y, column)
}

// IsAtBottom reports whether the last content line is inside the viewport.
// Used to pause follow-mode auto-scroll once the user scrolls away.
func (c *Conversation) IsAtBottom(vp Viewport) bool {
	total := c.TotalHeight()
	if total <= vp.Height {
		return true
	}
	return c.ResolveScroll(vp) >= total-vp.Height
}

// anchorAbove captures an AtEntry anchor for the first visible entry when
// the entry at index sits entirely above the viewport, so that toggling it
// keeps the visible entries in place.
func (c *Conversation) anchorAbove(index int, vp Viewport) (ScrollPosition, bool) {
	if len(c.entries) == 0 || c.heights.Len() == 0 {
		return ScrollPosition{}, false
	}
	visible := c.VisibleRange(vp)
	if visible.IsEmpty() || index >= visible.Start {
		return ScrollPosition{}, false
	}
	firstY, ok := c.EntryCumulativeY(visible.Start)
	if !ok {
		return ScrollPosition{}, false
	}
	lineInEntry := visible.ScrollOffset - firstY
	if lineInEntry < 0 {
		lineInEntry = 0
	}
	return AtEntry(visible.Start, lineInEntry), true
}
