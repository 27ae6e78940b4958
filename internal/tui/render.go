package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/x/ansi"

	"github.com/wethinkt/seslog/internal/trace"
	"github.com/wethinkt/seslog/internal/viewstate"
)

// Renderer turns entries into styled terminal lines. It is the measure and
// render strategy injected into the view state: an entry's height is the
// length of its rendered line slice, so layout and drawing can never
// disagree. Rendered output is served through a RenderCache; measuring a
// cached entry costs one map lookup.
type Renderer struct {
	styles            Styles
	cache             *viewstate.RenderCache
	collapseThreshold int
	glamourStyle      string

	// Markdown rendering wraps at a fixed width, so the renderer is
	// rebuilt when the layout width changes.
	markdown      *glamour.TermRenderer
	markdownWidth int
}

// NewRenderer creates a renderer. themeName selects the glamour style
// ("dark" or "light"); collapseThreshold is the number of lines shown for a
// collapsed entry.
func NewRenderer(styles Styles, themeName string, cacheCapacity, collapseThreshold int) *Renderer {
	if collapseThreshold < 1 {
		collapseThreshold = 5
	}
	glamourStyle := glamourstyles.DarkStyle
	if themeName == "light" {
		glamourStyle = glamourstyles.LightStyle
	}
	return &Renderer{
		styles:            styles,
		cache:             viewstate.NewRenderCache(cacheCapacity),
		collapseThreshold: collapseThreshold,
		glamourStyle:      glamourStyle,
	}
}

// SetStyles swaps the style set and drops all cached renders, which were
// produced under the old theme.
func (r *Renderer) SetStyles(styles Styles, themeName string) {
	r.styles = styles
	r.glamourStyle = glamourstyles.DarkStyle
	if themeName == "light" {
		r.glamourStyle = glamourstyles.LightStyle
	}
	r.markdown = nil
	r.cache.Clear()
}

// CacheLen returns the number of cached entry renders.
func (r *Renderer) CacheLen() int { return r.cache.Len() }

// Measure returns the rendered height of an entry. It is the
// viewstate.MeasureFunc for every layout operation.
func (r *Renderer) Measure(entry *trace.Entry, expanded bool, wrap viewstate.WrapMode, width int) int {
	return len(r.Lines(entry, expanded, wrap, width))
}

// Lines returns the rendered lines for an entry, from cache when possible.
// Callers must treat the returned slice as immutable.
func (r *Renderer) Lines(entry *trace.Entry, expanded bool, wrap viewstate.WrapMode, width int) []string {
	key := viewstate.RenderKey{
		EntryID:  entry.ID(),
		Width:    width,
		Expanded: expanded,
		Wrap:     wrap,
	}
	if lines, ok := r.cache.Get(key); ok {
		return lines
	}
	lines := r.render(entry, expanded, wrap, width)
	r.cache.Put(key, lines)
	return lines
}

func (r *Renderer) render(entry *trace.Entry, expanded bool, wrap viewstate.WrapMode, width int) []string {
	// Malformed entries take no space; line numbers in the gutter would be
	// the place to surface them.
	if entry.IsMalformed() {
		return nil
	}
	if width < 1 {
		return nil
	}

	lines := []string{r.label(entry)}
	for i := range entry.Blocks {
		lines = append(lines, r.renderBlock(entry, &entry.Blocks[i], wrap, width)...)
	}
	if len(lines) == 1 {
		return nil // label only, nothing to show
	}

	if !expanded && len(lines) > r.collapseThreshold {
		hidden := len(lines) - r.collapseThreshold
		lines = append(lines[:r.collapseThreshold:r.collapseThreshold],
			r.styles.MoreText.Render(fmt.Sprintf("… +%d more lines", hidden)))
	}
	return append(lines, "") // blank separator after each entry
}

func (r *Renderer) label(entry *trace.Entry) string {
	switch entry.Kind {
	case trace.KindUser:
		return r.styles.UserLabel.Render("User")
	case trace.KindAssistant:
		if entry.Model != "" {
			return r.styles.AssistantLabel.Render("Assistant") +
				r.styles.Help.Render(" ("+entry.Model+")")
		}
		return r.styles.AssistantLabel.Render("Assistant")
	case trace.KindSystem:
		return r.styles.SystemLabel.Render("System")
	case trace.KindSummary:
		return r.styles.SummaryLabel.Render("Summary")
	default:
		return r.styles.ErrorLabel.Render(entry.Kind.String())
	}
}

func (r *Renderer) renderBlock(entry *trace.Entry, block *trace.ContentBlock, wrap viewstate.WrapMode, width int) []string {
	switch block.Type {
	case "text":
		if block.Text == "" {
			return nil
		}
		if entry.Kind == trace.KindAssistant && wrap == viewstate.Wrap {
			if md := r.renderMarkdown(block.Text, width); md != nil {
				return md
			}
		}
		return fit(block.Text, wrap, width, nil)

	case "thinking":
		if block.Thinking == "" {
			return nil
		}
		lines := []string{r.styles.ThinkingLabel.Render("Thinking")}
		return append(lines, fit(block.Thinking, wrap, width, &r.styles.ThinkingText)...)

	case "tool_use":
		header := r.styles.ToolLabel.Render("Tool: " + block.Name)
		lines := []string{header}
		if input := compactJSON(block.Input); input != "" {
			lines = append(lines, fit(input, wrap, width, &r.styles.ToolText)...)
		}
		return lines

	case "tool_result":
		lines := []string{r.styles.ToolLabel.Render("Tool result")}
		if content := toolResultText(block.Content); content != "" {
			lines = append(lines, fit(content, wrap, width, &r.styles.ToolText)...)
		}
		return lines

	default:
		return nil
	}
}

// renderMarkdown renders assistant text through glamour, or nil if the
// renderer cannot be built.
func (r *Renderer) renderMarkdown(text string, width int) []string {
	if r.markdown == nil || r.markdownWidth != width {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(r.glamourStyle),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return nil
		}
		r.markdown = renderer
		r.markdownWidth = width
	}
	rendered, err := r.markdown.Render(text)
	if err != nil {
		return nil
	}
	return strings.Split(strings.Trim(rendered, "\n"), "\n")
}

// fit splits text into lines and wraps or truncates each to width,
// optionally applying a style per line.
func fit(text string, wrap viewstate.WrapMode, width int, style *lipgloss.Style) []string {
	var out []string
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		switch wrap {
		case viewstate.Wrap:
			wrapped := ansi.Wrap(line, width, "")
			out = append(out, strings.Split(wrapped, "\n")...)
		default:
			out = append(out, ansi.Truncate(line, width, "…"))
		}
	}
	if style != nil {
		for i, line := range out {
			out[i] = style.Render(line)
		}
	}
	return out
}

// compactJSON renders a raw JSON value on one line, empty for null/empty.
func compactJSON(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// toolResultText extracts displayable text from a tool_result content
// field, which can be a string or a block array.
func toolResultText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str
	}
	var blocks []trace.ContentBlock
	if err := json.Unmarshal(raw, &blocks); err == nil {
		var parts []string
		for _, b := range blocks {
			if b.Type == "text" && b.Text != "" {
				parts = append(parts, b.Text)
			}
		}
		return strings.Join(parts, "\n")
	}
	return compactJSON(raw)
}
