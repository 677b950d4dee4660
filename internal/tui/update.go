package tui

import (
	"fmt"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"roadtrace/internal/draw"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil
	case elevationMsg:
		if d, ok := m.ctrl.Resolve(m.ctx, msg.res); ok {
			m.status = fmt.Sprintf("road saved  %s  %d corners", formatLength(d.LengthM), d.CornerCount)
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	}
	if m.showPicker {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While filtering, the list owns every key.
	if m.showPicker && m.l.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	if m.pasteMode {
		return m.handlePasteKey(msg)
	}
	if m.showSaved {
		switch msg.String() {
		case "esc", "s", "q":
			m.showSaved = false
			return m, nil
		}
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return m, cmd
	}
	if m.showPicker {
		switch msg.String() {
		case "enter":
			if it, ok := m.l.SelectedItem().(fileItem); ok {
				m.loadLayer(it.path)
			}
			m.showPicker = false
			m.layout()
			return m, nil
		case "esc", "tab":
			m.showPicker = false
			m.layout()
			return m, nil
		case "up", "down", "k", "j", "/", "pgup", "pgdown":
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "enter":
		p, ok := m.ctrl.Complete()
		if !ok {
			if m.ctrl.InFlight() {
				m.status = "still resolving the previous road"
			} else {
				m.status = "need at least two points"
			}
			return m, nil
		}
		m.status = "resolving elevation..."
		return m, elevationCmd(m.ctx, p)
	case "u", "backspace":
		m.ctrl.Undo()
	case "c":
		m.ctrl.Clear()
		m.status = "cleared"
	case "esc":
		m.ctrl.Cancel()
		m.status = "cancelled"
	case "d":
		if m.ctrl.Active() {
			m.ctrl.Disable()
			m.status = "drawing off"
		} else {
			m.ctrl.Enable()
			m.status = "drawing on"
		}
	case "+", "=":
		m.view.zoomBy(1.2)
		m.status = fmt.Sprintf("zoom: %.2fx", m.view.zoom)
	case "-", "_":
		m.view.zoomBy(1 / 1.2)
		m.status = fmt.Sprintf("zoom: %.2fx", m.view.zoom)
	case "up":
		m.view.pan(0, -1)
	case "down":
		m.view.pan(0, 1)
	case "left":
		m.view.pan(-2, 0)
	case "right":
		m.view.pan(2, 0)
	case "tab":
		m.showPicker = true
		m.refreshDir()
		m.layout()
		if len(m.items) == 0 {
			m.status = "no layer files in " + m.cwd
		}
	case "s":
		m.showSaved = m.refreshSaved()
	case "p":
		m.pasteMode = true
		m.ta.SetValue("")
		m.ta.Focus()
		m.status = "paste mode"
	case "h":
		m.helpVisible = !m.helpVisible
	}
	return m, nil
}

// handleMouse turns raw mouse reports into controller events. The Shift
// flag stands in for modifier key up/down, which terminals do not report.
// A left press released without dragging is a click; a drag pans when the
// map has panning enabled.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Shift != m.shiftHeld {
		m.shiftHeld = msg.Shift
		m.ctrl.HandleEvent(draw.ModifierEvent{Down: msg.Shift})
	}

	m.hovering = false
	if m.view.contains(msg.X, msg.Y) {
		if v, err := m.view.ProjectToGeo(float64(msg.X), float64(msg.Y)); err == nil {
			m.hovering, m.hoverLon, m.hoverLat = true, v.Lon, v.Lat
		}
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.view.zoomBy(1.2)
		case tea.MouseButtonWheelDown:
			m.view.zoomBy(1 / 1.2)
		case tea.MouseButtonLeft:
			m.pressed, m.dragged = true, false
			m.lastX, m.lastY = msg.X, msg.Y
		}
	case tea.MouseActionMotion:
		if !m.pressed {
			return
		}
		if msg.X == m.lastX && msg.Y == m.lastY {
			return
		}
		m.dragged = true
		if m.view.panEnabled {
			m.view.pan(msg.X-m.lastX, msg.Y-m.lastY)
		}
		m.lastX, m.lastY = msg.X, msg.Y
	case tea.MouseActionRelease:
		if !m.pressed {
			return
		}
		m.pressed = false
		if m.dragged || m.showSaved || m.pasteMode {
			return
		}
		m.ctrl.HandleEvent(draw.ClickEvent{
			X:        float64(msg.X),
			Y:        float64(msg.Y),
			OnChrome: !m.view.contains(msg.X, msg.Y),
			Modifier: msg.Shift,
		})
	}
}
