// Package store persists completed road drafts as files: the canonical JSON
// record plus GeoJSON and KML exports of the same trace.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog/log"
	"github.com/twpayne/go-kml"
	"github.com/twpayne/go-polyline"

	"roadtrace/internal/draw"
	"roadtrace/internal/metrics"
)

// DefaultDir is used when no directory is configured.
const DefaultDir = "roads"

// Store writes drafts under a directory, three files per draft sharing one id.
type Store struct {
	dir    string
	newID  func() (uuid.UUID, error)
	lastID string
}

// Saved is a draft read back from disk.
type Saved struct {
	ID      string
	Path    string
	SavedAt time.Time
	Draft   draw.RoadDraft
}

// New creates a Store rooted at dir. The directory is created on first save.
func New(dir string) *Store {
	if dir == "" {
		dir = DefaultDir
	}
	return &Store{dir: dir, newID: uuid.NewV7}
}

func (s *Store) Dir() string { return s.dir }

// LastID returns the id of the most recent successful Save in this process.
func (s *Store) LastID() string { return s.lastID }

// Save implements draw.Saver.
func (s *Store) Save(ctx context.Context, d draw.RoadDraft) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id, err := s.newID()
	if err != nil {
		return fmt.Errorf("generate draft id: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	record, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	feature, err := encodeGeoJSON(d)
	if err != nil {
		return fmt.Errorf("encode geojson: %w", err)
	}
	placemark, err := encodeKML(id.String(), d)
	if err != nil {
		return fmt.Errorf("encode kml: %w", err)
	}

	for ext, data := range map[string][]byte{".json": record, ".geojson": feature, ".kml": placemark} {
		path := filepath.Join(s.dir, id.String()+ext)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	s.lastID = id.String()
	log.Info().Str("id", s.lastID).Str("dir", s.dir).Float64("length_m", d.LengthM).Msg("Road draft saved")
	return nil
}

// List reads every saved draft, newest first. Unreadable records are skipped.
func (s *Store) List() ([]Saved, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var out []Saved
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		saved, err := readSaved(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Skipping unreadable draft")
			continue
		}
		if info, err := e.Info(); err == nil {
			saved.SavedAt = info.ModTime()
		}
		out = append(out, saved)
	}
	// v7 ids sort by creation time.
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func readSaved(path string) (Saved, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Saved{}, err
	}
	var d draw.RoadDraft
	if err := json.Unmarshal(data, &d); err != nil {
		return Saved{}, err
	}
	return Saved{
		ID:    strings.TrimSuffix(filepath.Base(path), ".json"),
		Path:  path,
		Draft: d,
	}, nil
}

func encodeGeoJSON(d draw.RoadDraft) ([]byte, error) {
	ls := make(orb.LineString, len(d.Coordinates))
	coords := make([][]float64, len(d.Coordinates))
	for i, v := range d.Coordinates {
		ls[i] = v.Point()
		coords[i] = []float64{v.Lat, v.Lon}
	}
	f := geojson.NewFeature(ls)
	f.Properties = geojson.Properties{
		"length_m":         d.LengthM,
		"corner_count":     d.CornerCount,
		"twistiness":       d.Twistiness,
		"elevation_gain_m": d.ElevationGainM,
		"elevation_loss_m": d.ElevationLossM,
		"max_elevation_m":  d.MaxElevationM,
		"min_elevation_m":  d.MinElevationM,
		"polyline":         string(polyline.EncodeCoords(coords)),
	}
	fc := geojson.NewFeatureCollection().Append(f)
	return json.MarshalIndent(fc, "", "  ")
}

func encodeKML(id string, d draw.RoadDraft) ([]byte, error) {
	coords := make([]kml.Coordinate, len(d.Coordinates))
	for i, v := range d.Coordinates {
		coords[i] = kml.Coordinate{Lon: v.Lon, Lat: v.Lat}
	}
	desc := fmt.Sprintf("%.0f m, %d corners, twistiness %.1f, +%.0f/-%.0f m",
		d.LengthM, d.CornerCount, metrics.Display(d.Twistiness), d.ElevationGainM, d.ElevationLossM)
	k := kml.KML(
		kml.Document(
			kml.Placemark(
				kml.Name(id),
				kml.Description(desc),
				kml.LineString(
					kml.Tessellate(true),
					kml.Coordinates(coords...),
				),
			),
		),
	)
	var buf bytes.Buffer
	if err := k.WriteIndent(&buf, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
