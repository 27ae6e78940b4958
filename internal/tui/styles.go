package tui

import (
	"charm.land/lipgloss/v2"

	"github.com/wethinkt/seslog/internal/tui/theme"
)

// Styles holds all the computed lipgloss styles for the viewer. It is a
// plain value carried on the model, rebuilt when the theme changes.
type Styles struct {
	// Header and footer
	Title     lipgloss.Style
	Info      lipgloss.Style
	Help      lipgloss.Style
	StatusBar lipgloss.Style

	// Entry labels
	UserLabel      lipgloss.Style
	AssistantLabel lipgloss.Style
	SystemLabel    lipgloss.Style
	SummaryLabel   lipgloss.Style
	ThinkingLabel  lipgloss.Style
	ToolLabel      lipgloss.Style
	ErrorLabel     lipgloss.Style

	// Entry body text
	ThinkingText lipgloss.Style
	ToolText     lipgloss.Style

	// Separators and fold indicators
	Separator lipgloss.Style
	MoreText  lipgloss.Style
}

// applyStyle applies a theme.Style to a lipgloss.Style builder.
func applyStyle(s lipgloss.Style, ts theme.Style) lipgloss.Style {
	if ts.Fg != "" {
		s = s.Foreground(lipgloss.Color(ts.Fg))
	}
	if ts.Bg != "" {
		s = s.Background(lipgloss.Color(ts.Bg))
	}
	if ts.Bold {
		s = s.Bold(true)
	}
	if ts.Italic {
		s = s.Italic(true)
	}
	if ts.Underline {
		s = s.Underline(true)
	}
	return s
}

// BuildStyles creates Styles from a Theme.
func BuildStyles(t theme.Theme) Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.TextPrimary.Fg)),

		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.TextSecondary.Fg)),

		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.TextMuted.Fg)),

		StatusBar: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Accent)).
			Foreground(lipgloss.Color(t.TextPrimary.Fg)).
			Bold(true).
			Padding(0, 1),

		UserLabel:      applyStyle(lipgloss.NewStyle(), t.UserLabel),
		AssistantLabel: applyStyle(lipgloss.NewStyle(), t.AssistantLabel),
		SystemLabel:    applyStyle(lipgloss.NewStyle(), t.SystemLabel),
		SummaryLabel:   applyStyle(lipgloss.NewStyle(), t.SummaryLabel),
		ThinkingLabel:  applyStyle(lipgloss.NewStyle(), t.ThinkingLabel),
		ToolLabel:      applyStyle(lipgloss.NewStyle(), t.ToolLabel),
		ErrorLabel:     applyStyle(lipgloss.NewStyle(), t.ErrorLabel),

		ThinkingText: applyStyle(lipgloss.NewStyle(), t.ThinkingText),
		ToolText:     applyStyle(lipgloss.NewStyle(), t.ToolText),

		Separator: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		MoreText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.TextSecondary.Fg)).
			Italic(true),
	}
}
