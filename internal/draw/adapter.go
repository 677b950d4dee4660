// Package draw is the freehand road-drawing engine: a per-map-view session
// controller that captures vertices through a MapAdapter and, on completion,
// hands a RoadDraft with metrics and an elevation profile to a Saver.
package draw

import (
	"errors"
	"fmt"

	"roadtrace/internal/geo"
)

// ErrOutsideViewport is returned by adapters when a screen location has no
// geographic position.
var ErrOutsideViewport = errors.New("draw: location outside the rendered viewport")

// Cursor is a pointer style hint for the adapter.
type Cursor string

const (
	CursorDefault   Cursor = "default"
	CursorCrosshair Cursor = "crosshair"
	CursorGrab      Cursor = "grab"
)

// MapAdapter is everything the engine needs from the underlying map.
// Implementations must not call back into the Controller from these methods.
type MapAdapter interface {
	// ProjectToGeo converts a screen location to a coordinate.
	ProjectToGeo(x, y float64) (geo.Vertex, error)
	// RenderOverlay replaces the drawn polyline and markers with vs.
	RenderOverlay(vs []geo.Vertex)
	ClearOverlay()
	SetPanEnabled(enabled bool)
	SetCursor(c Cursor)
}

// PanTrigger selects how a session switches between drawing and panning.
type PanTrigger int

const (
	// ShiftHold pans only while the modifier is held; the session enters Panning.
	ShiftHold PanTrigger = iota
	// NativeDrag leaves map dragging enabled while drawing; clicks still draw.
	NativeDrag
)

func (p PanTrigger) String() string {
	switch p {
	case ShiftHold:
		return "shift-hold"
	case NativeDrag:
		return "native-drag"
	}
	return fmt.Sprintf("PanTrigger(%d)", int(p))
}

// ParsePanTrigger parses "shift-hold" or "native-drag".
func ParsePanTrigger(s string) (PanTrigger, error) {
	switch s {
	case "shift-hold", "":
		return ShiftHold, nil
	case "native-drag":
		return NativeDrag, nil
	}
	return 0, fmt.Errorf("unknown pan trigger %q", s)
}

// Event is an input routed to a Controller.
type Event interface{ isEvent() }

// ClickEvent is a primary click at a screen location.
type ClickEvent struct {
	X, Y float64
	// OnChrome is set when the click landed on UI controls rather than the map.
	OnChrome bool
	// Modifier reports the modifier state carried by the click itself.
	Modifier bool
}

// ModifierEvent reports the pan modifier going down or up.
type ModifierEvent struct {
	Down bool
}

func (ClickEvent) isEvent()    {}
func (ModifierEvent) isEvent() {}
