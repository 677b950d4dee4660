package tui

import (
	"math"
	"strings"

	"github.com/paulmach/orb"

	"roadtrace/internal/draw"
	"roadtrace/internal/geo"
)

const (
	minZoom = 0.05
	maxZoom = 64.0
)

// mapView is the terminal map canvas. It is the draw.MapAdapter the
// controller talks to, so it lives behind a pointer shared by Model copies.
type mapView struct {
	bound   orb.Bound
	zoom    float64
	offsetX int
	offsetY int

	// screen placement of the map area, in cells
	originX, originY int
	width, height    int

	base       orb.Collection
	overlay    []geo.Vertex
	panEnabled bool
	cursor     draw.Cursor
}

func newMapView(bound orb.Bound) *mapView {
	return &mapView{bound: bound, zoom: 1, panEnabled: true, cursor: draw.CursorDefault}
}

var _ draw.MapAdapter = (*mapView)(nil)

func (v *mapView) ProjectToGeo(x, y float64) (geo.Vertex, error) {
	cx, cy := int(math.Floor(x))-v.originX, int(math.Floor(y))-v.originY
	if !v.usable() || cx < 0 || cy < 0 || cx >= v.width || cy >= v.height {
		return geo.Vertex{}, draw.ErrOutsideViewport
	}
	// centre of the cell on the microgrid
	p := v.fromMicro(float64(cx*2)+0.5, float64(cy*4)+1.5)
	vx := geo.FromPoint(p)
	if !vx.Valid() {
		return geo.Vertex{}, draw.ErrOutsideViewport
	}
	return vx, nil
}

func (v *mapView) RenderOverlay(vs []geo.Vertex) {
	v.overlay = append(v.overlay[:0], vs...)
}

func (v *mapView) ClearOverlay()         { v.overlay = nil }
func (v *mapView) SetPanEnabled(on bool) { v.panEnabled = on }
func (v *mapView) SetCursor(c draw.Cursor) {
	v.cursor = c
}

func (v *mapView) usable() bool {
	return v.width > 0 && v.height > 0 && v.bound.Max.X() > v.bound.Min.X() && v.bound.Max.Y() > v.bound.Min.Y()
}

// contains reports whether a screen cell falls on the map area.
func (v *mapView) contains(x, y int) bool {
	return x >= v.originX && x < v.originX+v.width && y >= v.originY && y < v.originY+v.height
}

// toMicro maps lon/lat into the 2x4-per-cell microgrid, applying zoom around
// the centre and the pan offset.
func (v *mapView) toMicro(p orb.Point) (float64, float64) {
	nx := (p.X() - v.bound.Min.X()) / (v.bound.Max.X() - v.bound.Min.X())
	ny := (p.Y() - v.bound.Min.Y()) / (v.bound.Max.Y() - v.bound.Min.Y())
	zx := 0.5 + (nx-0.5)*v.zoom
	zy := 0.5 + (ny-0.5)*v.zoom
	wMic, hMic := float64(v.width*2-1), float64(v.height*4-1)
	return zx*wMic + float64(v.offsetX*2), (1-zy)*hMic + float64(v.offsetY*4)
}

// fromMicro is the inverse of toMicro.
func (v *mapView) fromMicro(mx, my float64) orb.Point {
	wMic, hMic := float64(v.width*2-1), float64(v.height*4-1)
	zx := (mx - float64(v.offsetX*2)) / wMic
	zy := 1 - (my-float64(v.offsetY*4))/hMic
	nx := 0.5 + (zx-0.5)/v.zoom
	ny := 0.5 + (zy-0.5)/v.zoom
	return orb.Point{
		v.bound.Min.X() + nx*(v.bound.Max.X()-v.bound.Min.X()),
		v.bound.Min.Y() + ny*(v.bound.Max.Y()-v.bound.Min.Y()),
	}
}

func (v *mapView) micro(p orb.Point) [2]int {
	mx, my := v.toMicro(p)
	return [2]int{int(math.Round(mx)), int(math.Round(my))}
}

func (v *mapView) pan(dx, dy int) {
	v.offsetX += dx
	v.offsetY += dy
}

func (v *mapView) zoomBy(f float64) {
	v.zoom = math.Min(maxZoom, math.Max(minZoom, v.zoom*f))
}

// reset frames bound at zoom 1 with no pan. Zero-area bounds are padded.
func (v *mapView) reset(bound orb.Bound) {
	if bound.Max.X()-bound.Min.X() < 1e-3 {
		bound.Min[0] -= 0.01
		bound.Max[0] += 0.01
	}
	if bound.Max.Y()-bound.Min.Y() < 1e-3 {
		bound.Min[1] -= 0.01
		bound.Max[1] += 0.01
	}
	v.bound = bound.Pad(math.Max(bound.Max.X()-bound.Min.X(), bound.Max.Y()-bound.Min.Y()) * 0.05)
	v.zoom = 1
	v.offsetX, v.offsetY = 0, 0
}

// render draws the base layer dimmed and the overlay on top, with a marker
// on every vertex and the last one highlighted.
func (v *mapView) render() string {
	if v.width <= 0 || v.height <= 0 {
		return ""
	}
	if !v.usable() {
		return dimStyle.Render("no map extent")
	}

	base := newBrailleBuf(v.width, v.height)
	for _, g := range v.base {
		v.drawGeometry(base, g)
	}

	over := newBrailleBuf(v.width, v.height)
	markers := make(map[[2]int]bool, len(v.overlay))
	last := [2]int{-1, -1}
	pts := make([][2]int, len(v.overlay))
	for i, vx := range v.overlay {
		pts[i] = v.micro(vx.Point())
		last = [2]int{-1, -1}
		if pts[i][0] >= 0 && pts[i][1] >= 0 {
			last = [2]int{pts[i][0] / 2, pts[i][1] / 4}
			markers[last] = true
		}
	}
	over.polyline(pts)

	var sb strings.Builder
	for y := 0; y < v.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < v.width; x++ {
			cell := [2]int{x, y}
			switch {
			case cell == last:
				sb.WriteString(lastVertexStyle.Render("●"))
			case markers[cell]:
				sb.WriteString(vertexStyle.Render("•"))
			case over.cell(x, y) != ' ':
				sb.WriteString(overlayStyle.Render(string(over.cell(x, y))))
			case base.cell(x, y) != ' ':
				sb.WriteString(baseLayerStyle.Render(string(base.cell(x, y))))
			default:
				sb.WriteByte(' ')
			}
		}
	}
	return sb.String()
}

func (v *mapView) drawGeometry(b *brailleBuf, g orb.Geometry) {
	switch g := g.(type) {
	case orb.Point:
		p := v.micro(g)
		b.setPixel(p[0], p[1])
	case orb.MultiPoint:
		for _, p := range g {
			v.drawGeometry(b, p)
		}
	case orb.LineString:
		b.polyline(v.microAll(g))
	case orb.MultiLineString:
		for _, ls := range g {
			b.polyline(v.microAll(ls))
		}
	case orb.Ring:
		pts := v.microAll(g)
		if len(pts) > 0 {
			pts = append(pts, pts[0])
		}
		b.polyline(pts)
	case orb.Polygon:
		for _, r := range g {
			v.drawGeometry(b, r)
		}
	case orb.MultiPolygon:
		for _, p := range g {
			v.drawGeometry(b, p)
		}
	case orb.Collection:
		for _, c := range g {
			v.drawGeometry(b, c)
		}
	}
}

func (v *mapView) microAll(ps []orb.Point) [][2]int {
	out := make([][2]int, len(ps))
	for i, p := range ps {
		out[i] = v.micro(p)
	}
	return out
}
