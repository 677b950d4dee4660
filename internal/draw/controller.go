package draw

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"roadtrace/internal/elevation"
	"roadtrace/internal/geo"
	"roadtrace/internal/metrics"
)

// State is the interaction mode of a session.
type State int

const (
	Inactive State = iota
	Drawing
	Panning
)

func (s State) String() string {
	switch s {
	case Inactive:
		return "inactive"
	case Drawing:
		return "drawing"
	case Panning:
		return "panning"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Options configures a Controller.
type Options struct {
	Trigger   PanTrigger
	Params    metrics.Params
	Elevation *elevation.Aggregator
	Saver     Saver
	// OnRoadDrawn receives each completed draft, or nil when the drawing is
	// cleared or drawing mode is turned off.
	OnRoadDrawn func(*RoadDraft)
}

// Controller owns one drawing session for one map view. All methods are
// meant to run on the host's event loop; it is not safe for concurrent use.
// Only Pending.Run may execute elsewhere.
type Controller struct {
	adapter MapAdapter
	opts    Options

	state        State
	vertices     []geo.Vertex
	modifierHeld bool
	generation   uint64
	pending      *Pending
}

// NewController creates an inactive Controller over adapter.
func NewController(adapter MapAdapter, opts Options) *Controller {
	if opts.Params == (metrics.Params{}) {
		opts.Params = metrics.DefaultParams()
	}
	return &Controller{adapter: adapter, opts: opts}
}

func (c *Controller) State() State        { return c.state }
func (c *Controller) Trigger() PanTrigger { return c.opts.Trigger }
func (c *Controller) Active() bool        { return c.state != Inactive }
func (c *Controller) Generation() uint64  { return c.generation }

// InFlight reports whether a completion is waiting on its elevation lookup.
func (c *Controller) InFlight() bool { return c.pending != nil }

// Vertices returns a copy of the current point sequence.
func (c *Controller) Vertices() []geo.Vertex {
	return append([]geo.Vertex(nil), c.vertices...)
}

// CanComplete reports whether Complete would start a completion.
func (c *Controller) CanComplete() bool {
	return c.state == Drawing && len(c.vertices) >= 2 && c.pending == nil
}

// Preview computes metrics for the current point sequence.
func (c *Controller) Preview() metrics.RoadMetrics {
	return metrics.Compute(c.vertices, c.opts.Params)
}

// HandleEvent routes an input event.
func (c *Controller) HandleEvent(ev Event) {
	switch ev := ev.(type) {
	case ClickEvent:
		c.Click(ev)
	case ModifierEvent:
		if ev.Down {
			c.ModifierDown()
		} else {
			c.ModifierUp()
		}
	}
}

// Enable starts a fresh session.
func (c *Controller) Enable() {
	if c.state != Inactive {
		return
	}
	c.reset()
	c.state = Drawing
	c.adapter.SetPanEnabled(c.opts.Trigger == NativeDrag)
	c.adapter.SetCursor(CursorCrosshair)
	log.Debug().Str("trigger", c.opts.Trigger.String()).Uint64("generation", c.generation).Msg("Drawing enabled")
}

// Disable ends the session, discarding points and any in-flight completion.
func (c *Controller) Disable() {
	if c.state == Inactive {
		return
	}
	c.reset()
	c.state = Inactive
	c.adapter.SetPanEnabled(true)
	c.adapter.SetCursor(CursorDefault)
	c.emit(nil)
	log.Debug().Msg("Drawing disabled")
}

// Click appends a vertex when the session is drawing, the click is on the
// map, and no modifier is held. The modifier carried by the event counts
// even if its ModifierEvent has not arrived yet.
func (c *Controller) Click(ev ClickEvent) bool {
	if c.state != Drawing || ev.OnChrome || ev.Modifier || c.modifierHeld {
		return false
	}
	return c.capture(ev.X, ev.Y)
}

// ModifierDown records the held modifier and, under ShiftHold, switches to panning.
func (c *Controller) ModifierDown() {
	c.modifierHeld = true
	if c.state == Drawing && c.opts.Trigger == ShiftHold {
		c.state = Panning
		c.adapter.SetPanEnabled(true)
		c.adapter.SetCursor(CursorGrab)
	}
}

// ModifierUp releases the modifier and returns from panning to drawing.
func (c *Controller) ModifierUp() {
	c.modifierHeld = false
	c.leavePanning()
}

func (c *Controller) leavePanning() {
	if c.state != Panning {
		return
	}
	c.state = Drawing
	c.adapter.SetPanEnabled(false)
	c.adapter.SetCursor(CursorCrosshair)
}

// Undo drops the last vertex; with one vertex or none it behaves as Clear.
func (c *Controller) Undo() {
	if c.state == Inactive {
		return
	}
	if len(c.vertices) <= 1 {
		c.Clear()
		return
	}
	c.vertices = c.vertices[:len(c.vertices)-1]
	c.redraw()
}

// Clear empties the point sequence and discards any in-flight completion.
func (c *Controller) Clear() {
	if c.state == Inactive {
		return
	}
	c.reset()
	c.emit(nil)
}

// Cancel clears the session and abandons a modifier pan.
func (c *Controller) Cancel() {
	if c.state == Inactive {
		return
	}
	c.modifierHeld = false
	c.leavePanning()
	c.Clear()
}

// reset starts a new generation, so results dispatched before it are stale.
func (c *Controller) reset() {
	c.generation++
	c.vertices = nil
	if c.pending != nil {
		log.Debug().Uint64("generation", c.pending.generation).Msg("In-flight completion abandoned")
		c.pending = nil
	}
	c.adapter.ClearOverlay()
}

// Complete computes metrics for the current path and returns the pending
// elevation job. The point sequence is reset immediately so drawing can
// continue. It returns false, changing nothing, when fewer than two vertices
// exist, the session is not drawing, or a completion is already in flight.
func (c *Controller) Complete() (*Pending, bool) {
	if !c.CanComplete() {
		return nil, false
	}
	coords := c.Vertices()
	p := &Pending{
		generation: c.generation,
		Metrics:    metrics.Compute(coords, c.opts.Params),
		coords:     coords,
		aggregator: c.opts.Elevation,
	}
	c.pending = p
	c.vertices = nil
	c.adapter.ClearOverlay()
	log.Info().Int("vertices", len(coords)).Float64("length_m", p.Metrics.LengthM).
		Uint("corners", p.Metrics.CornerCount).Uint64("generation", p.generation).Msg("Road completed, resolving elevation")
	return p, true
}

// Resolve merges a finished elevation job on the event loop. Results from an
// earlier generation, or for a completion that was abandoned, are dropped.
// On success the draft goes to the Saver and OnRoadDrawn.
func (c *Controller) Resolve(ctx context.Context, r Resolution) (*RoadDraft, bool) {
	if r.pending == nil || r.pending != c.pending || r.pending.generation != c.generation {
		log.Debug().Uint64("result_generation", r.generation()).Uint64("generation", c.generation).Msg("Stale elevation result discarded")
		return nil, false
	}
	c.pending = nil

	draft := NewDraft(r.pending.Metrics, r.Profile, r.pending.coords)
	if c.opts.Saver != nil {
		if err := c.save(ctx, draft); err != nil {
			log.Error().Err(err).Msg("Failed to save road draft")
		}
	}
	c.emit(&draft)
	return &draft, true
}

func (c *Controller) save(ctx context.Context, d RoadDraft) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("saver panicked: %v", r)
		}
	}()
	return c.opts.Saver.Save(ctx, d)
}

func (c *Controller) emit(d *RoadDraft) {
	if c.opts.OnRoadDrawn != nil {
		c.opts.OnRoadDrawn(d)
	}
}

// Pending is a completion waiting on its elevation profile.
type Pending struct {
	generation uint64
	coords     []geo.Vertex
	aggregator *elevation.Aggregator

	// Metrics are available as soon as Complete returns.
	Metrics metrics.RoadMetrics
}

// Coordinates returns a copy of the completed path.
func (p *Pending) Coordinates() []geo.Vertex {
	return append([]geo.Vertex(nil), p.coords...)
}

// Run performs the elevation lookup. It touches no Controller state and may
// run on any goroutine.
func (p *Pending) Run(ctx context.Context) Resolution {
	return Resolution{pending: p, Profile: p.aggregator.Aggregate(ctx, p.coords)}
}

// Resolution is the outcome of Pending.Run, to be passed to Controller.Resolve.
type Resolution struct {
	pending *Pending
	Profile elevation.Profile
}

func (r Resolution) generation() uint64 {
	if r.pending == nil {
		return 0
	}
	return r.pending.generation
}
