package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/tartampluch/go-birthday-wish/internal/config"
)

var (
	ColorInactive = lipgloss.Color(config.ColorInactive)
	ColorFlame    = lipgloss.Color(config.ColorFlame)
	ColorMuted    = lipgloss.Color(config.ColorMuted)
	ColorAccent   = lipgloss.Color("#FF6B6B")
	ColorBorder   = lipgloss.Color("#3F4451")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 3).
			Align(lipgloss.Center)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	NameStyle = lipgloss.NewStyle().
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	FlameStyle = lipgloss.NewStyle().
			Foreground(ColorFlame)

	InactiveStyle = lipgloss.NewStyle().
			Foreground(ColorInactive)

	// CursorStyle brackets the item the cursor is on.
	CursorStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)
)

// itemStyle colors a candle or balloon with its palette entry.
func itemStyle(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}
