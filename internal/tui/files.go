package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"roadtrace/internal/layer"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

// refreshDir lists the layer files of the working directory in the picker.
func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		if e.IsDir() || !layer.Supported(e.Name()) {
			continue
		}
		items = append(items, fileItem{
			title: e.Name(),
			desc:  strings.ToLower(filepath.Ext(e.Name())),
			path:  filepath.Join(m.cwd, e.Name()),
		})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).title < items[j].(fileItem).title })
	m.items = items
	m.l.SetItems(items)
}

// loadLayer replaces the base layer and frames the map on it. The trace in
// progress is kept; it is stored in geographic coordinates.
func (m *Model) loadLayer(p string) {
	c, bound, err := layer.Load(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		return
	}
	m.layerPath = p
	m.view.base = c
	m.view.reset(bound)
	m.status = fmt.Sprintf("loaded: %s  geometries=%d", filepath.Base(p), len(c))
}
