package tui

import "charm.land/bubbles/v2/key"

// viewerKeyMap defines key bindings for the log viewer
type viewerKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PgUp     key.Binding
	PgDown   key.Binding
	HalfUp   key.Binding
	HalfDown key.Binding
	Home     key.Binding
	End      key.Binding
	Quit     key.Binding

	// Entry operations
	ToggleExpand key.Binding
	NextEntry    key.Binding
	PrevEntry    key.Binding

	// Wrap
	ToggleWrap      key.Binding
	ToggleEntryWrap key.Binding

	// Thread and session navigation
	NextThread  key.Binding
	PrevThread  key.Binding
	NextSession key.Binding
	PrevSession key.Binding

	// Modes
	Follow key.Binding
	Help   key.Binding
}

// defaultViewerKeyMap returns the default key bindings for the viewer
func defaultViewerKeyMap() viewerKeyMap {
	return viewerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		PgUp: key.NewBinding(
			key.WithKeys("pgup", "b"),
			key.WithHelp("pgup", "page up"),
		),
		PgDown: key.NewBinding(
			key.WithKeys("pgdown", " "),
			key.WithHelp("pgdn", "page down"),
		),
		HalfUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "half page up"),
		),
		HalfDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "half page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "go to top"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "go to bottom"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),

		ToggleExpand: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "expand/collapse entry"),
		),
		NextEntry: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "next entry"),
		),
		PrevEntry: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "previous entry"),
		),

		ToggleWrap: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "toggle wrap"),
		),
		ToggleEntryWrap: key.NewBinding(
			key.WithKeys("W"),
			key.WithHelp("W", "toggle wrap for entry"),
		),

		NextThread: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next thread"),
		),
		PrevThread: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous thread"),
		),
		NextSession: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next session"),
		),
		PrevSession: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "previous session"),
		),

		Follow: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "toggle follow"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}
