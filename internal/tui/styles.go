package tui

import "github.com/charmbracelet/lipgloss"

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	roadFg    = lipgloss.Color("#F59E0B")
	lastFg    = lipgloss.Color("#EF4444")
	okFg      = lipgloss.Color("#10B981")
	borderCol = lipgloss.Color("#243141")

	appStyle   = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(baseDimFg)

	baseLayerStyle  = lipgloss.NewStyle().Foreground(baseDimFg)
	overlayStyle    = lipgloss.NewStyle().Foreground(roadFg)
	vertexStyle     = lipgloss.NewStyle().Foreground(roadFg).Bold(true)
	lastVertexStyle = lipgloss.NewStyle().Foreground(lastFg).Bold(true)
	modeStyle       = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	metricStyle     = lipgloss.NewStyle().Foreground(okFg)
)
