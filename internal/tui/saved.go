package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"

	"roadtrace/internal/metrics"
)

var savedColumns = []table.Column{
	{Title: "#", Width: 4},
	{Title: "id", Width: 10},
	{Title: "saved", Width: 16},
	{Title: "length", Width: 10},
	{Title: "corners", Width: 8},
	{Title: "twist", Width: 7},
	{Title: "gain", Width: 7},
	{Title: "loss", Width: 7},
}

// refreshSaved rebuilds the saved-roads table from the store. It reports
// false, leaving the table closed, when there is nothing to show.
func (m *Model) refreshSaved() bool {
	if m.lists == nil {
		m.status = "no store configured"
		return false
	}
	saved, err := m.lists.List()
	if err != nil {
		m.status = "list error: " + err.Error()
		return false
	}
	if len(saved) == 0 {
		m.status = "no saved roads yet"
		return false
	}
	rows := make([]table.Row, 0, len(saved))
	for i, s := range saved {
		d := s.Draft
		id := s.ID
		if len(id) > 8 {
			id = id[len(id)-8:]
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			id,
			s.SavedAt.Format("2006-01-02 15:04"),
			formatLength(d.LengthM),
			fmt.Sprintf("%d", d.CornerCount),
			fmt.Sprintf("%.1f", metrics.Display(d.Twistiness)),
			fmt.Sprintf("%.0f m", d.ElevationGainM),
			fmt.Sprintf("%.0f m", d.ElevationLossM),
		})
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(savedColumns)
	m.tbl.SetRows(rows)
	m.status = fmt.Sprintf("%d saved roads", len(saved))
	return true
}

func formatLength(m float64) string {
	if m >= 1000 {
		return fmt.Sprintf("%.2f km", m/1000)
	}
	return fmt.Sprintf("%.0f m", m)
}
