// Package theme provides theming support for the TUI.
package theme

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wethinkt/seslog/internal/config"
)

// Style defines colors and text attributes for a UI element.
type Style struct {
	Fg        string `json:"fg,omitempty"`
	Bg        string `json:"bg,omitempty"`
	Bold      bool   `json:"bold,omitempty"`
	Italic    bool   `json:"italic,omitempty"`
	Underline bool   `json:"underline,omitempty"`
}

// Theme defines all styles used in the TUI.
type Theme struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`

	// UI chrome
	Accent         string `json:"accent,omitempty"`
	BorderActive   string `json:"border_active,omitempty"`
	BorderInactive string `json:"border_inactive,omitempty"`

	// Text styles (typically fg-only, on terminal default bg)
	TextPrimary   Style `json:"text_primary,omitempty"`
	TextSecondary Style `json:"text_secondary,omitempty"`
	TextMuted     Style `json:"text_muted,omitempty"`

	// Entry labels
	UserLabel      Style `json:"user_label,omitempty"`
	AssistantLabel Style `json:"assistant_label,omitempty"`
	SystemLabel    Style `json:"system_label,omitempty"`
	SummaryLabel   Style `json:"summary_label,omitempty"`
	ThinkingLabel  Style `json:"thinking_label,omitempty"`
	ToolLabel      Style `json:"tool_label,omitempty"`
	ErrorLabel     Style `json:"error_label,omitempty"`

	// Entry body text
	ThinkingText Style `json:"thinking_text,omitempty"`
	ToolText     Style `json:"tool_text,omitempty"`
}

// Dark returns the built-in dark theme.
func Dark() Theme {
	return Theme{
		Name:           "dark",
		Description:    "Default dark theme",
		Accent:         "#7D56F4",
		BorderActive:   "#7D56F4",
		BorderInactive: "#444444",
		TextPrimary:    Style{Fg: "#FAFAFA"},
		TextSecondary:  Style{Fg: "#A0A0A0"},
		TextMuted:      Style{Fg: "#626262"},
		UserLabel:      Style{Fg: "#5FD7FF", Bold: true},
		AssistantLabel: Style{Fg: "#AF87FF", Bold: true},
		SystemLabel:    Style{Fg: "#FFAF5F", Bold: true},
		SummaryLabel:   Style{Fg: "#87D787", Bold: true},
		ThinkingLabel:  Style{Fg: "#808080", Bold: true, Italic: true},
		ToolLabel:      Style{Fg: "#D7AF5F", Bold: true},
		ErrorLabel:     Style{Fg: "#FF5F5F", Bold: true},
		ThinkingText:   Style{Fg: "#808080", Italic: true},
		ToolText:       Style{Fg: "#9E9E9E"},
	}
}

// Light returns the built-in light theme.
func Light() Theme {
	return Theme{
		Name:           "light",
		Description:    "Default light theme",
		Accent:         "#5F00D7",
		BorderActive:   "#5F00D7",
		BorderInactive: "#C0C0C0",
		TextPrimary:    Style{Fg: "#1C1C1C"},
		TextSecondary:  Style{Fg: "#4E4E4E"},
		TextMuted:      Style{Fg: "#8A8A8A"},
		UserLabel:      Style{Fg: "#005FAF", Bold: true},
		AssistantLabel: Style{Fg: "#5F00AF", Bold: true},
		SystemLabel:    Style{Fg: "#AF5F00", Bold: true},
		SummaryLabel:   Style{Fg: "#008700", Bold: true},
		ThinkingLabel:  Style{Fg: "#6C6C6C", Bold: true, Italic: true},
		ToolLabel:      Style{Fg: "#875F00", Bold: true},
		ErrorLabel:     Style{Fg: "#D70000", Bold: true},
		ThinkingText:   Style{Fg: "#6C6C6C", Italic: true},
		ToolText:       Style{Fg: "#585858"},
	}
}

// Default returns the default theme.
func Default() Theme { return Dark() }

// ThemesDir returns the path to the user themes directory.
func ThemesDir() (string, error) {
	configDir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "themes"), nil
}

// LoadByName loads a theme by name, checking user themes first, then the
// built-ins. User theme files start from the dark theme so missing fields
// get sensible values.
func LoadByName(name string) (Theme, error) {
	themesDir, err := ThemesDir()
	if err == nil {
		userPath := filepath.Join(themesDir, name+".json")
		if data, err := os.ReadFile(userPath); err == nil {
			theme := Default()
			if err := json.Unmarshal(data, &theme); err == nil {
				theme.Name = name
				return theme, nil
			}
		}
	}

	switch name {
	case "dark", "":
		return Dark(), nil
	case "light":
		return Light(), nil
	default:
		return Theme{}, fmt.Errorf("unknown theme %q", name)
	}
}

// Save writes a theme to the user themes directory.
func Save(name string, theme Theme) error {
	themesDir, err := ThemesDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(themesDir, 0755); err != nil {
		return err
	}

	theme.Name = name
	data, err := json.MarshalIndent(theme, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(themesDir, name+".json"), data, 0600)
}
