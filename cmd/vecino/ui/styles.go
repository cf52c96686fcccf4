// Package ui provides the page models and visual styling for the vecino
// interactive client.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette with light/dark mode support.
var (
	// Light Mode Colors (Default)
	LightBackground = lipgloss.Color("#f6f7f4")
	LightForeground = lipgloss.Color("#1b2a1f")
	LightPrimary    = lipgloss.Color("#1b5e20") // Market green
	LightAccent     = lipgloss.Color("#ef6c00") // Stall orange
	LightMuted      = lipgloss.Color("#9aa5a0")
	LightBorder     = lipgloss.Color("#d8ded9")
	LightCard       = lipgloss.Color("#ffffff")

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#121a14")
	DarkForeground = lipgloss.Color("#eef2ee")
	DarkPrimary    = lipgloss.Color("#81c784")
	DarkAccent     = lipgloss.Color("#ffb74d")
	DarkMuted      = lipgloss.Color("#5d6b61")
	DarkBorder     = lipgloss.Color("#2c3a30")
	DarkCard       = lipgloss.Color("#1b2a1f")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#e53935")
	Success     = lipgloss.Color("#43a047")
	Warning     = lipgloss.Color("#FFC107")
	WhatsApp    = lipgloss.Color("#25D366")
)

// Theme holds the current color scheme.
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// Styles bundles the lipgloss styles shared by all pages.
type Styles struct {
	Theme Theme

	Header   lipgloss.Style
	Location lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Badge    lipgloss.Style
	Featured lipgloss.Style
	Selected lipgloss.Style
	Card     lipgloss.Style
	ImageBox lipgloss.Style
	Prompt   lipgloss.Style
	Input    lipgloss.Style
	Spinner  lipgloss.Style
	Help     lipgloss.Style
	ModalBox lipgloss.Style
	WaLink   lipgloss.Style
}

// NewStyles builds the style set for a theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(theme.Border).
			Padding(0, 1),
		Location: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Accent),
		Label: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground),
		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),
		Error: lipgloss.NewStyle().
			Foreground(Destructive),
		Success: lipgloss.NewStyle().
			Foreground(Success),
		Badge: lipgloss.NewStyle().
			Foreground(theme.Card).
			Background(theme.Accent).
			Padding(0, 1),
		Featured: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Accent),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Card).
			Background(theme.Primary),
		Card: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
		ImageBox: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(theme.Muted).
			Foreground(theme.Muted).
			Align(lipgloss.Center),
		Prompt: lipgloss.NewStyle().
			Foreground(theme.Primary),
		Input: lipgloss.NewStyle().
			Foreground(theme.Foreground),
		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),
		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),
		ModalBox: lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(theme.Accent).
			Padding(1, 2),
		WaLink: lipgloss.NewStyle().
			Bold(true).
			Foreground(WhatsApp),
	}
}

// DefaultStyles returns the light theme styles.
func DefaultStyles() Styles {
	return NewStyles(LightTheme())
}
