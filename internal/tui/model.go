// Package tui is the terminal host for a drawing session: a braille map
// canvas that implements draw.MapAdapter, with input routed to a
// draw.Controller.
package tui

import (
	"context"
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb"

	"roadtrace/internal/draw"
	"roadtrace/internal/elevation"
	"roadtrace/internal/metrics"
	"roadtrace/internal/store"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// Lister supplies the saved-roads table.
type Lister interface {
	List() ([]store.Saved, error)
}

// Options configures New.
type Options struct {
	Trigger   draw.PanTrigger
	Params    metrics.Params
	Elevation *elevation.Aggregator
	Saver     draw.Saver
	Lister    Lister
	// View is the initial extent when no layer is loaded.
	View orb.Bound
	// Layer is an optional base layer file to open at start.
	Layer string
	// Dir is browsed by the base layer picker; empty means the working directory.
	Dir string
}

// roadPanel receives controller callbacks; Model copies share it.
type roadPanel struct {
	last *draw.RoadDraft
}

type Model struct {
	ctx    context.Context
	width  int
	height int

	view  *mapView
	ctrl  *draw.Controller
	road  *roadPanel
	lists Lister

	helpVisible bool
	status      string

	// base layer picker
	showPicker bool
	cwd        string
	l          list.Model
	items      []list.Item
	layerPath  string

	// WKT paste mode
	pasteMode bool
	ta        textarea.Model

	// saved roads table
	showSaved bool
	tbl       table.Model

	// pointer state
	pressed   bool
	dragged   bool
	lastX     int
	lastY     int
	shiftHeld bool

	hovering bool
	hoverLon float64
	hoverLat float64
}

// elevationMsg carries a finished elevation job back to the event loop.
type elevationMsg struct {
	res draw.Resolution
}

func New(ctx context.Context, opts Options) Model {
	road := &roadPanel{}
	m := Model{
		ctx:         ctx,
		view:        newMapView(opts.View),
		road:        road,
		lists:       opts.Lister,
		helpVisible: true,
		status:      "roadtrace ready",
		cwd:         opts.Dir,
	}
	m.view.reset(opts.View)
	m.ctrl = draw.NewController(m.view, draw.Options{
		Trigger:   opts.Trigger,
		Params:    opts.Params,
		Elevation: opts.Elevation,
		Saver:     opts.Saver,
		OnRoadDrawn: func(d *draw.RoadDraft) {
			road.last = d
		},
	})
	if m.cwd == "" {
		m.cwd, _ = os.Getwd()
	}

	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Base layers"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)

	m.ta = newPasteArea()
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)

	m.refreshDir()
	if opts.Layer != "" {
		m.loadLayer(opts.Layer)
	}
	m.ctrl.Enable()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// Controller exposes the session, mainly for tests and the CLI summary.
func (m Model) Controller() *draw.Controller { return m.ctrl }

// LastRoad is the most recent draft reported by the controller, or nil.
func (m Model) LastRoad() *draw.RoadDraft { return m.road.last }

// layout places the map area between header, footer and the optional sidebar.
func (m *Model) layout() {
	contentHeight := max(4, m.height-headerHeight-footerHeight)
	contentWidth := max(10, m.width)
	sw := 0
	if m.showPicker {
		sw = sidebarWidth + 1
		m.l.SetSize(sidebarWidth-2, contentHeight-2)
	}
	m.view.originX = sw
	m.view.originY = headerHeight
	m.view.width = max(10, contentWidth-sw)
	m.view.height = contentHeight
}

func elevationCmd(ctx context.Context, p *draw.Pending) tea.Cmd {
	return func() tea.Msg {
		return elevationMsg{res: p.Run(ctx)}
	}
}
