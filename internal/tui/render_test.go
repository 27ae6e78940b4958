package tui

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/wethinkt/seslog/internal/trace"
	"github.com/wethinkt/seslog/internal/tui/theme"
	"github.com/wethinkt/seslog/internal/viewstate"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	return NewRenderer(BuildStyles(theme.Dark()), "dark", 100, 5)
}

func textEntry(id string, kind trace.Kind, text string) trace.Entry {
	return trace.Entry{
		Kind:   kind,
		UUID:   id,
		Blocks: []trace.ContentBlock{{Type: "text", Text: text}},
	}
}

func multiLine(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	return strings.Join(lines, "\n")
}

func TestRendererMeasureMatchesLines(t *testing.T) {
	r := newTestRenderer(t)
	entries := []trace.Entry{
		textEntry("u1", trace.KindUser, "hello"),
		textEntry("a1", trace.KindAssistant, "some *markdown* text"),
		textEntry("s1", trace.KindSystem, multiLine(8)),
	}
	for i := range entries {
		got := r.Measure(&entries[i], true, viewstate.Wrap, 80)
		want := len(r.Lines(&entries[i], true, viewstate.Wrap, 80))
		if got != want {
			t.Errorf("entry %s: Measure = %d, len(Lines) = %d", entries[i].UUID, got, want)
		}
	}
}

func TestRendererCollapsesLongEntries(t *testing.T) {
	r := newTestRenderer(t)
	entry := textEntry("u1", trace.KindUser, multiLine(10))

	// Expanded: label + 10 body lines + separator.
	if got := r.Measure(&entry, true, viewstate.NoWrap, 80); got != 12 {
		t.Errorf("expanded height = %d, want 12", got)
	}

	// Collapsed: threshold lines + "more" indicator + separator.
	lines := r.Lines(&entry, false, viewstate.NoWrap, 80)
	if len(lines) != 7 {
		t.Fatalf("collapsed height = %d, want 7", len(lines))
	}
	if !strings.Contains(lines[5], "more lines") {
		t.Errorf("collapsed entry missing more-lines indicator: %q", lines[5])
	}
}

func TestRendererShortEntryNotCollapsed(t *testing.T) {
	r := newTestRenderer(t)
	entry := textEntry("u1", trace.KindUser, "one line")

	collapsed := r.Measure(&entry, false, viewstate.NoWrap, 80)
	expanded := r.Measure(&entry, true, viewstate.NoWrap, 80)
	if collapsed != expanded {
		t.Errorf("short entry: collapsed = %d, expanded = %d, want equal", collapsed, expanded)
	}
}

func TestRendererMalformedTakesNoSpace(t *testing.T) {
	r := newTestRenderer(t)
	entry := trace.Entry{Kind: trace.KindMalformed, Line: 3, Raw: "{not json"}
	if got := r.Measure(&entry, true, viewstate.Wrap, 80); got != 0 {
		t.Errorf("malformed entry height = %d, want 0", got)
	}
}

func TestRendererEmptyEntryTakesNoSpace(t *testing.T) {
	r := newTestRenderer(t)
	entry := trace.Entry{Kind: trace.KindUser, UUID: "u1"}
	if got := r.Measure(&entry, true, viewstate.Wrap, 80); got != 0 {
		t.Errorf("empty entry height = %d, want 0", got)
	}
}

func TestRendererWrapModes(t *testing.T) {
	r := newTestRenderer(t)
	// 100 columns of text at width 40: wrapped it takes 3 body lines,
	// truncated it takes 1. KindUser keeps the text out of glamour.
	entry := textEntry("u1", trace.KindUser, strings.Repeat("a", 100))

	if got := r.Measure(&entry, true, viewstate.Wrap, 40); got != 5 {
		t.Errorf("wrapped height = %d, want 5", got)
	}
	if got := r.Measure(&entry, true, viewstate.NoWrap, 40); got != 3 {
		t.Errorf("truncated height = %d, want 3", got)
	}
}

func TestRendererCachesRenders(t *testing.T) {
	r := newTestRenderer(t)
	entry := textEntry("u1", trace.KindUser, "hello")

	r.Lines(&entry, false, viewstate.Wrap, 80)
	r.Lines(&entry, false, viewstate.Wrap, 80)
	if got := r.CacheLen(); got != 1 {
		t.Errorf("cache len after repeated render = %d, want 1", got)
	}

	// A different width is a different cache entry.
	r.Lines(&entry, false, viewstate.Wrap, 40)
	if got := r.CacheLen(); got != 2 {
		t.Errorf("cache len after second width = %d, want 2", got)
	}
}

func TestRendererSetStylesClearsCache(t *testing.T) {
	r := newTestRenderer(t)
	entry := textEntry("u1", trace.KindUser, "hello")
	r.Lines(&entry, false, viewstate.Wrap, 80)

	r.SetStyles(BuildStyles(theme.Light()), "light")
	if got := r.CacheLen(); got != 0 {
		t.Errorf("cache len after SetStyles = %d, want 0", got)
	}
}

func TestRendererToolUseBlock(t *testing.T) {
	r := newTestRenderer(t)
	entry := trace.Entry{
		Kind: trace.KindAssistant,
		UUID: "a1",
		Blocks: []trace.ContentBlock{{
			Type:  "tool_use",
			Name:  "bash",
			Input: json.RawMessage(`{"command": "ls"}`),
		}},
	}
	lines := r.Lines(&entry, true, viewstate.NoWrap, 80)
	if len(lines) != 4 {
		t.Fatalf("tool_use height = %d, want 4", len(lines))
	}
	if !strings.Contains(lines[1], "Tool: bash") {
		t.Errorf("missing tool header: %q", lines[1])
	}
	if !strings.Contains(lines[2], `"command":"ls"`) {
		t.Errorf("missing compacted input: %q", lines[2])
	}
}

func TestCompactJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"null", "null", ""},
		{"object", "{\n  \"a\": 1\n}", `{"a":1}`},
		{"invalid passes through", "{oops", "{oops"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := compactJSON(json.RawMessage(tt.raw)); got != tt.want {
				t.Errorf("compactJSON(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestToolResultText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"string", `"file contents"`, "file contents"},
		{"block array", `[{"type":"text","text":"a"},{"type":"text","text":"b"}]`, "a\nb"},
		{"object falls back to compact", `{"ok": true}`, `{"ok":true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := toolResultText(json.RawMessage(tt.raw)); got != tt.want {
				t.Errorf("toolResultText(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
