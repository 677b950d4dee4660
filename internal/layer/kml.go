package layer

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

type kmlCoords struct {
	Coordinates string `xml:"coordinates"`
}

type kmlPlacemark struct {
	Points []kmlCoords `xml:"Point"`
	Lines  []kmlCoords `xml:"LineString"`
	Multi  struct {
		Points []kmlCoords `xml:"Point"`
		Lines  []kmlCoords `xml:"LineString"`
	} `xml:"MultiGeometry"`
}

// ParseKML extracts Point and LineString placemarks at any depth of
// Document and Folder nesting. Altitude is dropped.
func ParseKML(data []byte) (orb.Collection, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var c orb.Collection
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Placemark" {
			continue
		}
		var pm kmlPlacemark
		if err := dec.DecodeElement(&pm, &se); err != nil {
			return nil, err
		}
		points := append(pm.Points, pm.Multi.Points...)
		for _, p := range points {
			if ls := kmlCoordinates(p.Coordinates); len(ls) > 0 {
				c = append(c, ls[0])
			}
		}
		lines := append(pm.Lines, pm.Multi.Lines...)
		for _, l := range lines {
			if ls := kmlCoordinates(l.Coordinates); len(ls) >= 2 {
				c = append(c, ls)
			}
		}
	}
	return c, nil
}

// kmlCoordinates parses whitespace separated "lon,lat[,alt]" tuples,
// skipping malformed ones.
func kmlCoordinates(s string) orb.LineString {
	var ls orb.LineString
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(vals[0], 64)
		lat, err2 := strconv.ParseFloat(vals[1], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		ls = append(ls, orb.Point{lon, lat})
	}
	return ls
}
