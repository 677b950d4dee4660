// Package layer loads reference geometry to trace over. Coordinates are
// kept in orb's [lon, lat] order.
package layer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"

	"roadtrace/internal/geo"
)

var (
	ErrUnsupported = errors.New("layer: unsupported file type")
	ErrEmpty       = errors.New("layer: no geometries found")
)

// Extensions lists the file types Load understands.
var Extensions = []string{".geojson", ".json", ".wkt", ".kml", ".csv"}

// Supported reports whether path has an extension Load understands.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Load reads the geometries of a layer file and their bound.
func Load(path string) (orb.Collection, orb.Bound, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !Supported(path) {
		return nil, orb.Bound{}, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, orb.Bound{}, err
	}

	var c orb.Collection
	switch ext {
	case ".geojson", ".json":
		c, err = ParseGeoJSON(data)
	case ".wkt":
		c, err = ParseWKT(string(data))
	case ".kml":
		c, err = ParseKML(data)
	case ".csv":
		c, err = ParseCSV(data)
	}
	if err != nil {
		return nil, orb.Bound{}, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	if len(c) == 0 {
		return nil, orb.Bound{}, fmt.Errorf("load %s: %w", filepath.Base(path), ErrEmpty)
	}
	return c, c.Bound(), nil
}

// ParseGeoJSON accepts a FeatureCollection, a single Feature or a bare geometry.
func ParseGeoJSON(data []byte) (orb.Collection, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, err
		}
		var c orb.Collection
		for _, f := range fc.Features {
			if f.Geometry != nil {
				c = append(c, f.Geometry)
			}
		}
		return c, nil
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, err
		}
		if f.Geometry == nil {
			return nil, nil
		}
		return orb.Collection{f.Geometry}, nil
	case "":
		return nil, errors.New("geojson: missing type")
	}
	g, err := geojson.UnmarshalGeometry(data)
	if err != nil {
		return nil, err
	}
	if gc, ok := g.Geometry().(orb.Collection); ok {
		return gc, nil
	}
	return orb.Collection{g.Geometry()}, nil
}

// ParseWKT reads one WKT geometry. GEOMETRYCOLLECTION is flattened one level.
func ParseWKT(s string) (orb.Collection, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("wkt: empty input")
	}
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return nil, fmt.Errorf("wkt: %w", err)
	}
	if gc, ok := g.(orb.Collection); ok {
		return gc, nil
	}
	return orb.Collection{g}, nil
}

// FirstLine returns the first line in c as vertices. Multi-lines and nested
// collections are searched in order.
func FirstLine(c orb.Collection) ([]geo.Vertex, bool) {
	for _, g := range c {
		var ls orb.LineString
		switch g := g.(type) {
		case orb.LineString:
			ls = g
		case orb.MultiLineString:
			if len(g) > 0 {
				ls = g[0]
			}
		case orb.Collection:
			if vs, ok := FirstLine(g); ok {
				return vs, true
			}
		}
		if len(ls) == 0 {
			continue
		}
		vs := make([]geo.Vertex, len(ls))
		for i, p := range ls {
			vs[i] = geo.FromPoint(p)
		}
		return vs, true
	}
	return nil, false
}
