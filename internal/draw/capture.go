package draw

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"roadtrace/internal/geo"
)

// project asks the adapter for a coordinate, turning adapter panics and
// out-of-range results into errors.
func (c *Controller) project(x, y float64) (v geo.Vertex, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("projection panicked: %v", r)
		}
	}()
	v, err = c.adapter.ProjectToGeo(x, y)
	if err != nil {
		return geo.Vertex{}, err
	}
	if !v.Valid() {
		return geo.Vertex{}, fmt.Errorf("projection out of range: %v", v)
	}
	return v, nil
}

// capture appends the vertex under (x, y) and redraws the whole overlay.
// A failed projection leaves the session untouched.
func (c *Controller) capture(x, y float64) bool {
	v, err := c.project(x, y)
	if err != nil {
		log.Debug().Err(err).Float64("x", x).Float64("y", y).Msg("Click dropped")
		return false
	}
	c.vertices = append(c.vertices, v)
	c.redraw()
	return true
}

func (c *Controller) redraw() {
	if len(c.vertices) == 0 {
		c.adapter.ClearOverlay()
		return
	}
	c.adapter.RenderOverlay(c.Vertices())
}
