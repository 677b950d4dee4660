package layer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

var (
	latColumns = []string{"lat", "latitude", "y"}
	lonColumns = []string{"lon", "lng", "long", "longitude", "x"}
)

// ParseCSV reads rows of a headed CSV as points. The latitude and longitude
// columns are found by name, case-insensitively; rows that do not parse are
// skipped.
func ParseCSV(data []byte) (orb.Collection, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, errors.New("csv: empty file")
	}

	idxLat, idxLon := column(recs[0], latColumns), column(recs[0], lonColumns)
	if idxLat < 0 || idxLon < 0 {
		return nil, errors.New("csv: latitude/longitude columns not found")
	}

	var c orb.Collection
	for _, row := range recs[1:] {
		if idxLat >= len(row) || idxLon >= len(row) {
			continue
		}
		lat, err1 := strconv.ParseFloat(strings.TrimSpace(row[idxLat]), 64)
		lon, err2 := strconv.ParseFloat(strings.TrimSpace(row[idxLon]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		c = append(c, orb.Point{lon, lat})
	}
	return c, nil
}

func column(header []string, names []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, n := range names {
			if h == n {
				return i
			}
		}
	}
	return -1
}
