package viewstate

import "github.com/wethinkt/seslog/internal/trace"

// EntryView is the per-entry layout record: the entry itself, its current
// rendered height, and the view state that feeds into measurement. EntryViews
// are owned by their Conversation and referenced by index only, never by
// pointer across relayouts.
type EntryView struct {
	entry        trace.Entry
	height       int
	expanded     bool
	wrapOverride WrapOverride
}

// Entry returns the underlying entry.
func (v *EntryView) Entry() *trace.Entry { return &v.entry }

// Height returns the current rendered height in lines. Malformed entries
// carry the zero sentinel and take no vertical space.
func (v *EntryView) Height() int { return v.height }

// IsExpanded reports whether the entry is expanded.
func (v *EntryView) IsExpanded() bool { return v.expanded }

// SetExpanded sets the expand flag without relayout.
func (v *EntryView) SetExpanded(expanded bool) { v.expanded = expanded }

// ToggleExpanded flips the expand flag and returns the new state.
func (v *EntryView) ToggleExpanded() bool {
	v.expanded = !v.expanded
	return v.expanded
}

// WrapOverride returns the per-entry wrap override.
func (v *EntryView) WrapOverride() WrapOverride { return v.wrapOverride }

// SetWrapOverride sets the per-entry wrap override without relayout.
func (v *EntryView) SetWrapOverride(o WrapOverride) { v.wrapOverride = o }

// EffectiveWrap resolves the entry's wrap mode against the global mode.
func (v *EntryView) EffectiveWrap(global WrapMode) WrapMode {
	switch v.wrapOverride {
	case WrapForced:
		return Wrap
	case WrapDisabled:
		return NoWrap
	default:
		return global
	}
}
