package layer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roadtrace/internal/geo"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const featureCollection = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"name": "pass"},
     "geometry": {"type": "LineString", "coordinates": [[-120.1, 38.5], [-120.2, 38.6], [-120.3, 38.55]]}},
    {"type": "Feature", "properties": {},
     "geometry": {"type": "Point", "coordinates": [-119.9, 38.4]}}
  ]
}`

func TestLoad_GeoJSON(t *testing.T) {
	c, bound, err := Load(writeFile(t, "roads.geojson", featureCollection))
	require.NoError(t, err)
	require.Len(t, c, 2)
	assert.Equal(t, orb.Bound{Min: orb.Point{-120.3, 38.4}, Max: orb.Point{-119.9, 38.6}}, bound)

	vs, ok := FirstLine(c)
	require.True(t, ok)
	assert.Equal(t, []geo.Vertex{{Lat: 38.5, Lon: -120.1}, {Lat: 38.6, Lon: -120.2}, {Lat: 38.55, Lon: -120.3}}, vs)
}

func TestParseGeoJSON_FeatureAndGeometry(t *testing.T) {
	c, err := ParseGeoJSON([]byte(`{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[1,2]}}`))
	require.NoError(t, err)
	assert.Equal(t, orb.Collection{orb.Point{1, 2}}, c)

	c, err = ParseGeoJSON([]byte(`{"type":"MultiLineString","coordinates":[[[0,0],[1,1]],[[2,2],[3,3]]]}`))
	require.NoError(t, err)
	vs, ok := FirstLine(c)
	require.True(t, ok)
	assert.Equal(t, []geo.Vertex{{Lat: 0, Lon: 0}, {Lat: 1, Lon: 1}}, vs)

	_, err = ParseGeoJSON([]byte(`{"coordinates":[1,2]}`))
	assert.Error(t, err)
}

func TestLoad_WKT(t *testing.T) {
	c, _, err := Load(writeFile(t, "road.wkt", "LINESTRING (10 50, 10.5 50.2, 11 50)\n"))
	require.NoError(t, err)
	vs, ok := FirstLine(c)
	require.True(t, ok)
	assert.Len(t, vs, 3)
	assert.Equal(t, geo.Vertex{Lat: 50.2, Lon: 10.5}, vs[1])

	_, err = ParseWKT("CIRCLE (1 2, 3)")
	assert.Error(t, err)
}

const kmlDoc = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <Folder>
      <Placemark><name>start</name><Point><coordinates>-122.0,37.0,12</coordinates></Point></Placemark>
      <Placemark>
        <name>road</name>
        <LineString><coordinates>
          -122.0,37.0,0 -122.1,37.1,0
          bogus -122.2,37.0
        </coordinates></LineString>
      </Placemark>
    </Folder>
  </Document>
</kml>`

func TestLoad_KML(t *testing.T) {
	c, bound, err := Load(writeFile(t, "trip.kml", kmlDoc))
	require.NoError(t, err)
	require.Len(t, c, 2)
	assert.Equal(t, orb.Point{-122.0, 37.0}, c[0])
	assert.Equal(t, orb.LineString{{-122.0, 37.0}, {-122.1, 37.1}, {-122.2, 37.0}}, c[1])
	assert.Equal(t, orb.Point{-122.2, 37.0}, bound.Min)
}

func TestLoad_CSV(t *testing.T) {
	csv := "name, Latitude, LNG\na,45.0,7.5\nbad,north,east\nb,45.1,7.6\nshort\n"
	c, bound, err := Load(writeFile(t, "pts.csv", csv))
	require.NoError(t, err)
	assert.Equal(t, orb.Collection{orb.Point{7.5, 45.0}, orb.Point{7.6, 45.1}}, c)
	assert.Equal(t, orb.Point{7.6, 45.1}, bound.Max)

	_, ok := FirstLine(c)
	assert.False(t, ok)

	_, err = ParseCSV([]byte("a,b\n1,2\n"))
	assert.Error(t, err)
}

func TestLoad_Errors(t *testing.T) {
	_, _, err := Load(writeFile(t, "image.png", "x"))
	assert.ErrorIs(t, err, ErrUnsupported)

	_, _, err = Load(writeFile(t, "empty.csv", "lat,lon\n"))
	assert.ErrorIs(t, err, ErrEmpty)

	_, _, err = Load(filepath.Join(t.TempDir(), "missing.geojson"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("a/B.GeoJSON"))
	assert.True(t, Supported("x.csv"))
	assert.False(t, Supported("x.gpx"))
}
