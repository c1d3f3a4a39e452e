package picker

import "github.com/charmbracelet/lipgloss"

// Theme defines the colors used by the picker.
// Use DarkTheme or LightTheme, or construct a custom Theme.
type Theme struct {
	Prompt    lipgloss.Color // prompt and match count
	Text      lipgloss.Color // candidate rows
	TextMuted lipgloss.Color // hints, empty state
	Selected  lipgloss.Color // cursor row foreground
	Highlight lipgloss.Color // cursor row background
	SSH       lipgloss.Color // ssh target marker
}

// DarkTheme returns the default theme for dark terminal backgrounds.
func DarkTheme() Theme {
	return Theme{
		Prompt:    lipgloss.Color("12"),
		Text:      lipgloss.Color("15"),
		TextMuted: lipgloss.Color("8"),
		Selected:  lipgloss.Color("15"),
		Highlight: lipgloss.Color("8"),
		SSH:       lipgloss.Color("14"),
	}
}

// LightTheme returns a theme for bright terminal backgrounds.
func LightTheme() Theme {
	return Theme{
		Prompt:    lipgloss.Color("4"),
		Text:      lipgloss.Color("0"),
		TextMuted: lipgloss.Color("7"),
		Selected:  lipgloss.Color("0"),
		Highlight: lipgloss.Color("7"),
		SSH:       lipgloss.Color("6"),
	}
}

// ThemeByName returns a theme by name. Defaults to dark.
func ThemeByName(name string) Theme {
	switch name {
	case "light":
		return LightTheme()
	default:
		return DarkTheme()
	}
}

// styles holds the lipgloss styles derived from a Theme, built once per
// picker run.
type styles struct {
	prompt   lipgloss.Style
	item     lipgloss.Style
	selected lipgloss.Style
	dim      lipgloss.Style
	ssh      lipgloss.Style
	count    lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		prompt:   lipgloss.NewStyle().Bold(true).Foreground(t.Prompt),
		item:     lipgloss.NewStyle().Foreground(t.Text),
		selected: lipgloss.NewStyle().Bold(true).Foreground(t.Selected).Background(t.Highlight),
		dim:      lipgloss.NewStyle().Foreground(t.TextMuted),
		ssh:      lipgloss.NewStyle().Foreground(t.SSH),
		count:    lipgloss.NewStyle().Foreground(t.TextMuted),
	}
}
