package geo

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	// one degree of longitude on the equator
	d := Distance(Vertex{0, 0}, Vertex{0, 1})
	assert.InDelta(t, 111195, d, 1)

	// Angels Camp to Murphys, ~11 km
	angels := Vertex{Lat: 38.0675, Lon: -120.5436}
	murphys := Vertex{Lat: 38.1391, Lon: -120.4561}
	assert.InDelta(t, 11046, Distance(angels, murphys), 100)

	assert.Zero(t, Distance(angels, angels))
	assert.InDelta(t, Distance(angels, murphys), Distance(murphys, angels), 1e-6)
}

func TestBearing(t *testing.T) {
	origin := Vertex{0, 0}
	assert.InDelta(t, 0, Bearing(origin, Vertex{1, 0}), 1e-9, "north")
	assert.InDelta(t, 90, Bearing(origin, Vertex{0, 1}), 1e-9, "east")
	assert.InDelta(t, 180, Bearing(origin, Vertex{-1, 0}), 1e-9, "south")
	assert.InDelta(t, 270, Bearing(origin, Vertex{0, -1}), 1e-9, "west")
}

func TestTurnAngle(t *testing.T) {
	cases := []struct {
		from, to, want float64
	}{
		{0, 0, 0},
		{90, 0, 90},
		{10, 350, 20},
		{350, 10, 20},
		{0, 180, 180},
		{45, 270, 135},
	}
	for _, c := range cases {
		assert.InDelta(t, c.want, TurnAngle(c.from, c.to), 1e-9, "%v -> %v", c.from, c.to)
	}
}

func TestVertexJSON(t *testing.T) {
	data, err := json.Marshal([]Vertex{{Lat: 38.1, Lon: -120.4}})
	require.NoError(t, err)
	assert.JSONEq(t, `[[38.1,-120.4]]`, string(data))

	var back []Vertex
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, []Vertex{{Lat: 38.1, Lon: -120.4}}, back)

	var bad Vertex
	assert.Error(t, json.Unmarshal([]byte(`[1,2,3]`), &bad))
}

func TestVertexValid(t *testing.T) {
	assert.True(t, Vertex{45, 90}.Valid())
	assert.False(t, Vertex{91, 0}.Valid())
	assert.False(t, Vertex{0, -181}.Valid())
	assert.False(t, Vertex{math.NaN(), 0}.Valid())
	assert.Equal(t, "38.000000,-120.500000", Vertex{38, -120.5}.String())
}

func TestPathLength(t *testing.T) {
	path := []Vertex{{0, 0}, {0, 1}, {0, 2}}
	assert.InDelta(t, 2*111195, PathLength(path), 2)
	assert.Zero(t, PathLength(path[:1]))
	assert.Zero(t, PathLength(nil))
}
