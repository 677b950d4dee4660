package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"roadtrace/internal/geo"
)

func TestCompute_Degenerate(t *testing.T) {
	assert.Equal(t, RoadMetrics{}, Compute(nil, DefaultParams()))
	assert.Equal(t, RoadMetrics{}, Compute([]geo.Vertex{{Lat: 38, Lon: -120}}, DefaultParams()))
}

func TestCompute_StraightSegment(t *testing.T) {
	m := Compute([]geo.Vertex{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}}, DefaultParams())
	assert.InDelta(t, 111195, m.LengthM, 1)
	assert.Equal(t, uint(0), m.CornerCount)
	assert.Zero(t, m.Twistiness)
}

func TestCompute_RightAngle(t *testing.T) {
	m := Compute([]geo.Vertex{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}, {Lat: 1, Lon: 1}}, DefaultParams())
	assert.Equal(t, uint(1), m.CornerCount)
	assert.InDelta(t, 2*111195, m.LengthM, 50)
	// a quarter turn over ~222 km
	assert.InDelta(t, (math.Pi/2)/m.LengthM, m.Twistiness, 1e-9)
}

func TestCompute_CollinearIsNotACorner(t *testing.T) {
	m := Compute([]geo.Vertex{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 0.5}, {Lat: 0, Lon: 1}}, DefaultParams())
	assert.Equal(t, uint(0), m.CornerCount)
	assert.InDelta(t, 0, m.Twistiness, 1e-12)
}

func TestCompute_ShortSegmentsSuppressCorners(t *testing.T) {
	// ~1 m zig-zag: sharp turns, but segments under MinSegmentM
	step := 1.0 / 111195.0
	path := []geo.Vertex{{Lat: 0, Lon: 0}, {Lat: 0, Lon: step}, {Lat: step, Lon: step}, {Lat: step, Lon: 2 * step}}
	m := Compute(path, DefaultParams())
	assert.Equal(t, uint(0), m.CornerCount)
	assert.Greater(t, m.Twistiness, 0.0, "turns still count toward twistiness")

	loose := DefaultParams()
	loose.MinSegmentM = 0.5
	assert.Equal(t, uint(2), Compute(path, loose).CornerCount)
}

func TestCompute_ThresholdIsTunable(t *testing.T) {
	// gentle ~10 degree bend
	path := []geo.Vertex{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 0.01}, {Lat: 0.00176, Lon: 0.01998}}
	assert.Equal(t, uint(0), Compute(path, DefaultParams()).CornerCount)

	p := DefaultParams()
	p.CornerThresholdDeg = 5
	assert.Equal(t, uint(1), Compute(path, p).CornerCount)
}

func TestCompute_RepeatedVertexIgnored(t *testing.T) {
	m := Compute([]geo.Vertex{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 0.01}, {Lat: 0, Lon: 0.01}, {Lat: 0, Lon: 0.02}}, DefaultParams())
	assert.Equal(t, uint(0), m.CornerCount)
	assert.Zero(t, m.Twistiness)
}

func TestCompute_Switchbacks(t *testing.T) {
	// hairpins every ~100 m should land in the 0.01-0.05 band
	step := 100.0 / 111195.0
	var path []geo.Vertex
	for i := 0; i < 12; i++ {
		lon := 0.0
		if i%2 == 1 {
			lon = step
		}
		path = append(path, geo.Vertex{Lat: float64(i) * step * 0.2, Lon: lon})
	}
	m := Compute(path, DefaultParams())
	assert.Equal(t, uint(10), m.CornerCount)
	assert.Greater(t, m.Twistiness, 0.01)
	assert.Less(t, m.Twistiness, 0.05)
}

func TestCompute_AppendNeverShortens(t *testing.T) {
	path := []geo.Vertex{{Lat: 38.0, Lon: -120.0}}
	extra := []geo.Vertex{{Lat: 38.01, Lon: -120.0}, {Lat: 38.01, Lon: -120.02}, {Lat: 38.0, Lon: -120.02}, {Lat: 38.0, Lon: -120.02}, {Lat: 38.05, Lon: -120.1}}
	prev := Compute(path, DefaultParams()).LengthM
	for _, v := range extra {
		path = append(path, v)
		cur := Compute(path, DefaultParams()).LengthM
		assert.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestDisplay(t *testing.T) {
	assert.InDelta(t, 25, Display(0.025), 1e-9)
}
