package tui

import (
	"fmt"
	"strings"

	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"roadtrace/internal/layer"
)

func newPasteArea() textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "Paste WKT to use as base layer. Enter to load; Esc to cancel."
	ta.CharLimit = 0
	ta.SetWidth(50)
	ta.SetHeight(6)
	return ta
}

func (m Model) handlePasteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	case "enter":
		w := strings.TrimSpace(m.ta.Value())
		if w == "" {
			m.status = "paste: empty"
			return m, nil
		}
		c, err := layer.ParseWKT(w)
		if err != nil {
			m.status = "wkt error: " + err.Error()
			return m, nil
		}
		m.view.base = c
		m.view.reset(c.Bound())
		m.layerPath = ""
		m.pasteMode = false
		m.ta.Blur()
		m.status = fmt.Sprintf("pasted WKT  geometries=%d", len(c))
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}
