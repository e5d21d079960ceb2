// Package theme defines the light and dark lipgloss palettes and the
// terminal-background fallback used when no preference is persisted.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"catatan/pkg/models"
)

// Theme bundles the styles the browser and its components render with.
type Theme struct {
	Header    lipgloss.Style
	Info      lipgloss.Style
	Faint     lipgloss.Style
	Highlight lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Pinned    lipgloss.Style
	Archived  lipgloss.Style
	TabActive lipgloss.Style
	TabIdle   lipgloss.Style
	Border    lipgloss.Color
}

var light = &Theme{
	Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1d4ed8")),
	Info:      lipgloss.NewStyle().Foreground(lipgloss.Color("#2563eb")),
	Faint:     lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")),
	Highlight: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#047857")),
	Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#b91c1c")),
	Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("#15803d")),
	Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("#b45309")),
	Pinned:    lipgloss.NewStyle().Foreground(lipgloss.Color("#b45309")),
	Archived:  lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#6b7280")),
	TabActive: lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("#1d4ed8")),
	TabIdle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")),
	Border:    lipgloss.Color("#9ca3af"),
}

var dark = &Theme{
	Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#93c5fd")),
	Info:      lipgloss.NewStyle().Foreground(lipgloss.Color("#60a5fa")),
	Faint:     lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af")),
	Highlight: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#34d399")),
	Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#f87171")),
	Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80")),
	Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("#fbbf24")),
	Pinned:    lipgloss.NewStyle().Foreground(lipgloss.Color("#fbbf24")),
	Archived:  lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#9ca3af")),
	TabActive: lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("#93c5fd")),
	TabIdle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af")),
	Border:    lipgloss.Color("#4b5563"),
}

// For returns the palette for a theme preference.
func For(t models.Theme) *Theme {
	if t == models.ThemeDark {
		return dark
	}
	return light
}

// System guesses the preference from the terminal background, the closest
// terminal equivalent of a prefers-color-scheme media query.
func System() models.Theme {
	if lipgloss.HasDarkBackground() {
		return models.ThemeDark
	}
	return models.ThemeLight
}
