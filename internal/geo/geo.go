// Package geo holds the coordinate type shared by the drawing engine and the
// spherical helpers the metrics are built on.
package geo

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

// EarthRadius is the mean earth radius in meters used for all distances.
const EarthRadius = 6371000.0

// Vertex is a WGS84 coordinate in degrees.
// It marshals to JSON as a [lat, lon] pair.
type Vertex struct {
	Lat float64
	Lon float64
}

// Point converts the vertex to an orb point (lon, lat order).
func (v Vertex) Point() orb.Point {
	return orb.Point{v.Lon, v.Lat}
}

// FromPoint converts an orb point back to a vertex.
func FromPoint(p orb.Point) Vertex {
	return Vertex{Lat: p.Lat(), Lon: p.Lon()}
}

// Valid reports whether the vertex is a finite coordinate inside the WGS84 range.
func (v Vertex) Valid() bool {
	if math.IsNaN(v.Lat) || math.IsNaN(v.Lon) || math.IsInf(v.Lat, 0) || math.IsInf(v.Lon, 0) {
		return false
	}
	return v.Lat >= -90 && v.Lat <= 90 && v.Lon >= -180 && v.Lon <= 180
}

// String renders the vertex as "lat,lon", the form elevation lookups expect.
func (v Vertex) String() string {
	return fmt.Sprintf("%.6f,%.6f", v.Lat, v.Lon)
}

func (v Vertex) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{v.Lat, v.Lon})
}

func (v *Vertex) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("vertex: expected [lat, lon], got %d values", len(pair))
	}
	v.Lat, v.Lon = pair[0], pair[1]
	return nil
}

// Distance is the haversine great-circle distance between a and b in meters.
func Distance(a, b Vertex) float64 {
	if a == b {
		return 0
	}
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dlat := (b.Lat - a.Lat) * math.Pi / 180
	dlon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadius * c
}

// Bearing is the initial great-circle bearing from a to b in degrees, [0, 360).
func Bearing(a, b Vertex) float64 {
	deg := orbgeo.Bearing(a.Point(), b.Point())
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// TurnAngle is the absolute difference between two bearings folded into [0, 180].
func TurnAngle(from, to float64) float64 {
	d := math.Mod(math.Abs(to-from), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// PathLength sums the segment distances of an ordered path.
func PathLength(vs []Vertex) float64 {
	total := 0.0
	for i := 1; i < len(vs); i++ {
		total += Distance(vs[i-1], vs[i])
	}
	return total
}
