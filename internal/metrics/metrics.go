// Package metrics derives length, corner count and twistiness from a traced path.
package metrics

import (
	"math"

	"roadtrace/internal/geo"
)

// Default tuning values.
const (
	DefaultCornerThresholdDeg = 15.0
	DefaultMinSegmentM        = 5.0
	DefaultTwistinessScale    = 1.0
)

// Params tunes corner detection and the twistiness calibration.
type Params struct {
	// CornerThresholdDeg is the turn angle a vertex must exceed to count as a corner.
	CornerThresholdDeg float64 `yaml:"corner_threshold_deg"`
	// MinSegmentM is the length both segments around a corner must exceed.
	MinSegmentM float64 `yaml:"min_segment_m"`
	// TwistinessScale multiplies the summed turn (radians) per meter.
	TwistinessScale float64 `yaml:"twistiness_scale"`
}

// DefaultParams returns the stock calibration.
func DefaultParams() Params {
	return Params{
		CornerThresholdDeg: DefaultCornerThresholdDeg,
		MinSegmentM:        DefaultMinSegmentM,
		TwistinessScale:    DefaultTwistinessScale,
	}
}

// RoadMetrics are recomputed in full for every completed path.
type RoadMetrics struct {
	LengthM     float64 `json:"length_m"`
	CornerCount uint    `json:"corner_count"`
	Twistiness  float64 `json:"twistiness"`
}

// Compute derives RoadMetrics from an ordered path. Paths shorter than two
// vertices yield zero metrics.
func Compute(vs []geo.Vertex, p Params) RoadMetrics {
	n := len(vs)
	if n < 2 {
		return RoadMetrics{}
	}

	segs := make([]float64, n-1)
	bearings := make([]float64, n-1)
	var m RoadMetrics
	for i := 0; i < n-1; i++ {
		segs[i] = geo.Distance(vs[i], vs[i+1])
		bearings[i] = geo.Bearing(vs[i], vs[i+1])
		m.LengthM += segs[i]
	}

	turned := 0.0
	for i := 1; i <= n-2; i++ {
		// a zero-length neighbour has no direction to turn from
		if segs[i-1] == 0 || segs[i] == 0 {
			continue
		}
		angle := geo.TurnAngle(bearings[i-1], bearings[i])
		turned += angle * math.Pi / 180
		if angle > p.CornerThresholdDeg && segs[i-1] > p.MinSegmentM && segs[i] > p.MinSegmentM {
			m.CornerCount++
		}
	}

	m.Twistiness = turned / math.Max(m.LengthM, 1) * p.TwistinessScale
	return m
}

// Display scales twistiness into the figure shown to users.
func Display(twistiness float64) float64 {
	return twistiness * 1000
}
