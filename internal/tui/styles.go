// Package tui implements the interactive ecotrack dashboard.
package tui

import "github.com/charmbracelet/lipgloss"

// Default dimensions before the first WindowSizeMsg.
const (
	defaultWidth  = 80
	defaultHeight = 24
	borderPadding = 4
)

// Palette.
var (
	ColorGreen  = lipgloss.Color("42")
	ColorBright = lipgloss.Color("46")
	ColorAmber  = lipgloss.Color("220")
	ColorRed    = lipgloss.Color("196")
	ColorMuted  = lipgloss.Color("246")
	ColorBorder = lipgloss.Color("29")
)

// Shared styles.
var (
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorGreen)
	LabelStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	ValueStyle  = lipgloss.NewStyle().Bold(true)
	SubtleStyle = lipgloss.NewStyle().Italic(true).Foreground(ColorMuted)
	InfoStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	ErrorStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorRed)
	EcoStyle    = lipgloss.NewStyle().Foreground(ColorBright)
	BarStyle    = lipgloss.NewStyle().Foreground(ColorGreen)

	BoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorGreen).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(ColorBorder)

	TableSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("22"))
)
