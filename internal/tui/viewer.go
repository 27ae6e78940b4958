// Package tui implements the terminal viewer: a bubbletea model over the
// view-state core, with key and mouse navigation, expand/collapse, wrap
// control, thread and session cycling, and live-follow.
package tui

import (
	"fmt"
	"os"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"golang.org/x/term"

	"github.com/wethinkt/seslog/internal/config"
	"github.com/wethinkt/seslog/internal/source"
	"github.com/wethinkt/seslog/internal/trace"
	"github.com/wethinkt/seslog/internal/tui/theme"
	"github.com/wethinkt/seslog/internal/tuilog"
	"github.com/wethinkt/seslog/internal/viewstate"
)

const (
	headerHeight = 1
	footerHeight = 1
)

// batchMsg delivers a batch of new entries from the source.
type batchMsg source.Batch

// sourceClosedMsg signals the entry source has no more data.
type sourceClosedMsg struct{}

// Options configure a viewer run.
type Options struct {
	Title   string
	Entries []trace.Entry
	Batches <-chan source.Batch // nil when not following
	Follow  bool
	Config  config.Config
}

// Model is the viewer's bubbletea model.
type Model struct {
	title    string
	log      *viewstate.Log
	renderer *Renderer
	styles   Styles
	keys     viewerKeyMap
	cfg      config.Config

	params viewstate.LayoutParams
	width  int
	height int
	ready  bool

	sessionIdx int
	agentIdx   int // -1 = main thread, otherwise index into AgentIDs

	follow       bool
	followPaused bool
	batches      <-chan source.Batch
	sourceDone   bool

	showHelp bool
}

// NewModel creates a viewer model over the given entries.
func NewModel(opts Options) Model {
	t, err := theme.LoadByName(opts.Config.Theme)
	if err != nil {
		tuilog.Log.Warn("viewer: unknown theme, using default", "theme", opts.Config.Theme)
		t = theme.Default()
	}
	styles := BuildStyles(t)

	wrap := viewstate.Wrap
	if opts.Config.Wrap == "nowrap" {
		wrap = viewstate.NoWrap
	}

	m := Model{
		title:    opts.Title,
		log:      viewstate.NewLog(),
		renderer: NewRenderer(styles, opts.Config.Theme, opts.Config.RenderCacheCapacity, opts.Config.CollapseThreshold),
		styles:   styles,
		keys:     defaultViewerKeyMap(),
		cfg:      opts.Config,
		params:   viewstate.LayoutParams{Wrap: wrap},
		agentIdx: -1,
		follow:   opts.Follow,
		batches:  opts.Batches,
	}
	// Entries are routed before the first WindowSizeMsg; layout happens
	// once the width is known.
	m.log.AddEntries(opts.Entries, m.params, m.renderer.Measure)
	m.sessionIdx = m.log.SessionCount() - 1
	if m.sessionIdx < 0 {
		m.sessionIdx = 0
	}
	if opts.Follow {
		m.scrollTo(viewstate.Bottom())
	}
	return m
}

// conversation returns the active conversation, or nil when the log is
// empty.
func (m *Model) conversation() *viewstate.Conversation {
	session := m.log.Session(m.sessionIdx)
	if session == nil {
		return nil
	}
	if m.agentIdx < 0 {
		return session.Main()
	}
	ids := session.AgentIDs()
	if m.agentIdx >= len(ids) {
		return session.Main()
	}
	return session.Agent(ids[m.agentIdx])
}

func (m *Model) viewport() viewstate.Viewport {
	return viewstate.Viewport{
		Width:  m.width,
		Height: max(0, m.height-headerHeight-footerHeight),
	}
}

func (m Model) Init() tea.Cmd {
	tuilog.Log.Info("viewer: init", "sessions", m.log.SessionCount(), "entries", m.log.EntryCount(), "follow", m.follow)
	if m.batches != nil {
		return waitForBatch(m.batches)
	}
	return nil
}

func waitForBatch(ch <-chan source.Batch) tea.Cmd {
	return func() tea.Msg {
		batch, ok := <-ch
		if !ok {
			return sourceClosedMsg{}
		}
		return batchMsg(batch)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		params := viewstate.LayoutParams{Width: m.width, Wrap: m.params.Wrap}
		if params != m.params || !m.ready {
			done := tuilog.Log.Timed("viewer: full relayout")
			m.params = params
			m.log.RecomputeLayout(m.params, m.renderer.Measure)
			done()
		}
		m.ready = true

	case batchMsg:
		m.applyBatch(source.Batch(msg))
		return m, waitForBatch(m.batches)

	case sourceClosedMsg:
		m.sourceDone = true

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseWheelMsg:
		switch msg.Button {
		case tea.MouseWheelUp:
			m.scrollBy(-3)
		case tea.MouseWheelDown:
			m.scrollBy(3)
		}

	case tea.MouseClickMsg:
		m.handleClick(msg.X, msg.Y)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	vp := m.viewport()
	conv := m.conversation()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return *m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.scrollBy(-1)
	case key.Matches(msg, m.keys.Down):
		m.scrollBy(1)
	case key.Matches(msg, m.keys.PgUp):
		m.scrollBy(-vp.Height)
	case key.Matches(msg, m.keys.PgDown):
		m.scrollBy(vp.Height)
	case key.Matches(msg, m.keys.HalfUp):
		m.scrollBy(-vp.Height / 2)
	case key.Matches(msg, m.keys.HalfDown):
		m.scrollBy(vp.Height / 2)
	case key.Matches(msg, m.keys.Home):
		m.scrollTo(viewstate.Top())
	case key.Matches(msg, m.keys.End):
		m.scrollTo(viewstate.Bottom())
		m.followPaused = false

	case key.Matches(msg, m.keys.ToggleExpand):
		if conv != nil {
			index := conv.Focused()
			if index < 0 {
				index = conv.VisibleRange(vp).Start
			}
			m.toggleExpand(index)
		}

	case key.Matches(msg, m.keys.NextEntry):
		m.moveFocus(1)
	case key.Matches(msg, m.keys.PrevEntry):
		m.moveFocus(-1)

	case key.Matches(msg, m.keys.ToggleWrap):
		m.toggleGlobalWrap()
	case key.Matches(msg, m.keys.ToggleEntryWrap):
		m.toggleEntryWrap()

	case key.Matches(msg, m.keys.NextThread):
		m.cycleThread(1)
	case key.Matches(msg, m.keys.PrevThread):
		m.cycleThread(-1)
	case key.Matches(msg, m.keys.NextSession):
		m.cycleSession(1)
	case key.Matches(msg, m.keys.PrevSession):
		m.cycleSession(-1)

	case key.Matches(msg, m.keys.Follow):
		m.follow = !m.follow
		m.followPaused = false
		if m.follow {
			m.scrollTo(viewstate.Bottom())
		}

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	}

	return *m, nil
}

// applyBatch routes freshly read entries and keeps the view pinned to the
// bottom in follow mode, unless the user scrolled away.
func (m *Model) applyBatch(batch source.Batch) {
	if batch.Reset {
		tuilog.Log.Info("viewer: source reset, rebuilding")
		m.log = viewstate.NewLog()
		m.agentIdx = -1
		m.followPaused = false
	}

	wasAtBottom := true
	if conv := m.conversation(); conv != nil {
		wasAtBottom = conv.IsAtBottom(m.viewport())
	}

	m.log.AddEntries(batch.Entries, m.params, m.renderer.Measure)

	if batch.Reset || m.sessionIdx >= m.log.SessionCount() {
		m.sessionIdx = max(0, m.log.SessionCount()-1)
	}
	if m.follow && !m.followPaused {
		// Streaming may have opened a new session; follow it.
		m.sessionIdx = max(0, m.log.SessionCount()-1)
		if wasAtBottom {
			m.scrollTo(viewstate.Bottom())
		} else {
			m.followPaused = true
		}
	}
}

func (m *Model) scrollBy(delta int) {
	conv := m.conversation()
	if conv == nil {
		return
	}
	vp := m.viewport()
	offset := conv.ResolveScroll(vp)
	conv.SetScroll(viewstate.AtLine(offset + delta))
	if m.follow {
		m.followPaused = !conv.IsAtBottom(vp)
	}
}

func (m *Model) scrollTo(pos viewstate.ScrollPosition) {
	if conv := m.conversation(); conv != nil {
		conv.SetScroll(pos)
	}
}

func (m *Model) toggleExpand(index int) {
	conv := m.conversation()
	if conv == nil {
		return
	}
	expanded, ok := conv.ToggleExpand(index, m.params, m.viewport(), m.renderer.Measure)
	if ok {
		conv.SetFocused(index)
		tuilog.Log.Debug("viewer: toggled entry", "index", index, "expanded", expanded)
	}
}

func (m *Model) moveFocus(delta int) {
	conv := m.conversation()
	if conv == nil || conv.Len() == 0 {
		return
	}
	index := conv.Focused()
	if index < 0 {
		index = conv.VisibleRange(m.viewport()).Start
	} else {
		index += delta
	}
	if index < 0 {
		index = 0
	}
	if index >= conv.Len() {
		index = conv.Len() - 1
	}
	conv.SetFocused(index)
	conv.SetScroll(viewstate.AtEntry(index, 0))
}

// toggleGlobalWrap flips the wrap mode for every conversation. The first
// visible entry is captured as an anchor first, so the viewer stays at the
// same entry through the relayout.
func (m *Model) toggleGlobalWrap() {
	wrap := viewstate.NoWrap
	if m.params.Wrap == viewstate.NoWrap {
		wrap = viewstate.Wrap
	}
	conv := m.conversation()
	if conv != nil {
		if visible := conv.VisibleRange(m.viewport()); !visible.IsEmpty() {
			conv.SetScroll(viewstate.AtEntry(visible.Start, 0))
		}
	}
	m.params = viewstate.LayoutParams{Width: m.params.Width, Wrap: wrap}
	done := tuilog.Log.Timed("viewer: wrap relayout")
	m.log.RecomputeLayout(m.params, m.renderer.Measure)
	done()
}

func (m *Model) toggleEntryWrap() {
	conv := m.conversation()
	if conv == nil {
		return
	}
	index := conv.Focused()
	if index < 0 {
		index = conv.VisibleRange(m.viewport()).Start
	}
	view := conv.Get(index)
	if view == nil {
		return
	}
	override := viewstate.WrapDisabled
	if view.EffectiveWrap(m.params.Wrap) == viewstate.NoWrap {
		override = viewstate.WrapForced
	}
	conv.SetWrapOverride(index, override, m.params, m.renderer.Measure)
}

// cycleThread moves between the main thread and agent sub-threads of the
// active session.
func (m *Model) cycleThread(delta int) {
	session := m.log.Session(m.sessionIdx)
	if session == nil {
		return
	}
	n := len(session.AgentIDs())
	if n == 0 {
		return
	}
	// Positions: -1 (main), 0..n-1 (agents), wrapping at both ends.
	pos := m.agentIdx + delta
	switch {
	case pos < -1:
		pos = n - 1
	case pos >= n:
		pos = -1
	}
	m.agentIdx = pos
	if conv := m.conversation(); conv != nil && conv.NeedsLayout(m.params) {
		conv.RecomputeLayout(m.params, m.renderer.Measure)
	}
}

func (m *Model) cycleSession(delta int) {
	n := m.log.SessionCount()
	if n < 2 {
		return
	}
	m.sessionIdx = ((m.sessionIdx+delta)%n + n) % n
	m.agentIdx = -1
}

func (m *Model) handleClick(x, y int) {
	conv := m.conversation()
	if conv == nil {
		return
	}
	row := y - headerHeight
	vp := m.viewport()
	if row < 0 || row >= vp.Height {
		return
	}
	hit := conv.HitTest(row, x, conv.ResolveScroll(vp))
	if !hit.Hit {
		return
	}
	m.toggleExpand(hit.EntryIndex)
}

func (m Model) View() tea.View {
	var body string
	switch {
	case !m.ready:
		body = "Loading..."
	case m.showHelp:
		body = m.renderHelp()
	default:
		body = m.renderContent()
	}

	v := tea.NewView(m.renderHeader() + "\n" + body + "\n" + m.renderFooter())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

// renderContent assembles the visible window: only entries intersecting the
// viewport are rendered, and of those only the lines inside it are kept.
func (m Model) renderContent() string {
	conv := m.conversation()
	vp := m.viewport()
	if conv == nil || conv.TotalHeight() == 0 {
		return padLines(nil, vp.Height)
	}

	offset := conv.ResolveScroll(vp)
	visible := conv.VisibleRange(vp)

	var lines []string
	for i := visible.Start; i < visible.End; i++ {
		view := conv.Get(i)
		entryLines := m.renderer.Lines(view.Entry(), view.IsExpanded(), view.EffectiveWrap(m.params.Wrap), vp.Width)
		if i == visible.Start {
			y, _ := conv.EntryCumulativeY(i)
			if skip := offset - y; skip > 0 && skip <= len(entryLines) {
				entryLines = entryLines[skip:]
			}
		}
		lines = append(lines, entryLines...)
		if len(lines) >= vp.Height {
			lines = lines[:vp.Height]
			break
		}
	}
	return padLines(lines, vp.Height)
}

func (m Model) renderHeader() string {
	title := m.styles.Title.Render(m.title)

	var parts []string
	if n := m.log.SessionCount(); n > 1 {
		parts = append(parts, fmt.Sprintf("session %d/%d", m.sessionIdx+1, n))
	}
	if session := m.log.Session(m.sessionIdx); session != nil {
		if m.agentIdx >= 0 {
			ids := session.AgentIDs()
			if m.agentIdx < len(ids) {
				parts = append(parts, "thread "+ids[m.agentIdx])
			}
		} else if n := len(session.AgentIDs()); n > 0 {
			parts = append(parts, fmt.Sprintf("main +%d threads", n))
		}
	}
	if m.follow {
		if m.followPaused {
			parts = append(parts, "follow (paused)")
		} else {
			parts = append(parts, "follow")
		}
	}

	info := ""
	if len(parts) > 0 {
		info = m.styles.Info.Render("  " + strings.Join(parts, " • "))
	}
	return title + info
}

func (m Model) renderFooter() string {
	conv := m.conversation()
	position := ""
	if conv != nil && conv.TotalHeight() > 0 {
		vp := m.viewport()
		offset := conv.ResolveScroll(vp)
		denom := conv.TotalHeight() - vp.Height
		percent := 100.0
		if denom > 0 {
			percent = float64(offset) / float64(denom) * 100
		}
		position = m.styles.Info.Render(fmt.Sprintf("%3.0f%%", percent))
	}

	help := m.styles.Help.Render("↑/↓: scroll • enter: expand • tab: threads • w: wrap • ?: help • q: quit")
	footerWidth := max(0, m.width-lipgloss.Width(position))
	return help + lipgloss.NewStyle().Width(footerWidth).Align(lipgloss.Right).Render(position)
}

func (m Model) renderHelp() string {
	bindings := []key.Binding{
		m.keys.Up, m.keys.Down, m.keys.PgUp, m.keys.PgDown,
		m.keys.HalfUp, m.keys.HalfDown, m.keys.Home, m.keys.End,
		m.keys.ToggleExpand, m.keys.NextEntry, m.keys.PrevEntry,
		m.keys.ToggleWrap, m.keys.ToggleEntryWrap,
		m.keys.NextThread, m.keys.PrevThread,
		m.keys.NextSession, m.keys.PrevSession,
		m.keys.Follow, m.keys.Help, m.keys.Quit,
	}
	var lines []string
	for _, b := range bindings {
		h := b.Help()
		lines = append(lines, fmt.Sprintf("  %-12s %s", m.styles.Title.Render(h.Key), m.styles.Help.Render(h.Desc)))
	}
	return padLines(lines, m.viewport().Height)
}

// padLines joins lines and pads with blanks to exactly height lines.
func padLines(lines []string, height int) string {
	var b strings.Builder
	for i := 0; i < height; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i < len(lines) {
			b.WriteString(lines[i])
		}
	}
	return b.String()
}

func termSizeOpts() []tea.ProgramOption {
	var opts []tea.ProgramOption
	for _, fd := range []int{int(os.Stdout.Fd()), int(os.Stdin.Fd()), int(os.Stderr.Fd())} {
		if term.IsTerminal(fd) {
			w, h, err := term.GetSize(fd)
			if err == nil && w > 0 && h > 0 {
				opts = append(opts, tea.WithWindowSize(w, h))
				break
			}
		}
	}
	return opts
}

// Run runs the viewer until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), termSizeOpts()...)
	_, err := p.Run()
	return err
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
