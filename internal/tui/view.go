package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"roadtrace/internal/draw"
	"roadtrace/internal/metrics"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	contentWidth := max(10, m.width)

	title := " roadtrace ─ draw a road, get its numbers "
	if m.layerPath != "" {
		title += dimStyle.Render("· " + filepath.Base(m.layerPath))
	}
	header := lipgloss.NewStyle().Width(contentWidth).Render(titleStyle.Render(title))

	var mapView string
	if m.showSaved {
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		maxW := min(m.view.width, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(m.view.height-2, 20))
		box := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(m.view.width, m.view.height, lipgloss.Center, lipgloss.Center, box)
	} else if m.pasteMode {
		m.ta.SetWidth(m.view.width)
		m.ta.SetHeight(min(m.view.height, 12))
		mapView = lipgloss.NewStyle().Width(m.view.width).Height(m.view.height).Render(m.ta.View())
	} else {
		mapView = lipgloss.NewStyle().Width(m.view.width).Height(m.view.height).Render(m.view.render())
	}

	body := mapView
	if m.showPicker {
		sidebar := lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	footer := lipgloss.JoinVertical(lipgloss.Left, m.renderStatus(contentWidth), m.renderMetrics(contentWidth))
	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(contentWidth).Height(m.height).Render(ui)
}

func (m Model) renderStatus(width int) string {
	mode := modeStyle.Render(fmt.Sprintf(" %s ", m.ctrl.State()))
	cursor := dimStyle.Render(cursorLabel(m.view.cursor))
	status := dimStyle.Render(" " + m.status + " ")
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, mode, cursor, status, m.renderHelp())

	coords := ""
	if m.hovering {
		coords = dimStyle.Render(fmt.Sprintf("  lat=%.5f lon=%.5f  ", m.hoverLat, m.hoverLon))
	}
	spacerW := max(0, width-lipgloss.Width(left)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	return lipgloss.NewStyle().Width(width).MaxHeight(1).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))
}

// renderMetrics shows the live preview of the trace and the last completed road.
func (m Model) renderMetrics(width int) string {
	vs := m.ctrl.Vertices()
	live := fmt.Sprintf(" trace: %d pts", len(vs))
	if len(vs) >= 2 {
		p := m.ctrl.Preview()
		live += fmt.Sprintf("  %s  %d corners  twist %.1f", formatLength(p.LengthM), p.CornerCount, metrics.Display(p.Twistiness))
	}
	parts := []string{metricStyle.Render(live)}
	if m.ctrl.InFlight() {
		parts = append(parts, dimStyle.Render("  elevation…"))
	}
	if d := m.road.last; d != nil {
		parts = append(parts, dimStyle.Render(fmt.Sprintf("  last: %s  %d corners  twist %.1f  +%.0f/-%.0f m  %.0f–%.0f m",
			formatLength(d.LengthM), d.CornerCount, metrics.Display(d.Twistiness),
			d.ElevationGainM, d.ElevationLossM, d.MinElevationM, d.MaxElevationM)))
	}
	return lipgloss.NewStyle().Width(width).MaxHeight(1).Render(strings.Join(parts, ""))
}

func cursorLabel(c draw.Cursor) string {
	switch c {
	case draw.CursorCrosshair:
		return " ✛ "
	case draw.CursorGrab:
		return " ✋ "
	}
	return " ↖ "
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"click add",
		"Enter finish",
		"u undo",
		"c clear",
		"Esc cancel",
		"shift pan",
		"d draw on/off",
		"+/- zoom",
		"Tab layers",
		"p paste",
		"s saved",
		"h help",
		"q quit",
	}
	if m.ctrl.Trigger() == draw.NativeDrag {
		keys[5] = "drag pan"
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
