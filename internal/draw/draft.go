package draw

import (
	"context"

	"roadtrace/internal/elevation"
	"roadtrace/internal/geo"
	"roadtrace/internal/metrics"
)

// RoadDraft is the finished trace handed to a Saver. It marshals to the
// flat JSON object persistence layers expect.
type RoadDraft struct {
	LengthM        float64      `json:"length_m"`
	CornerCount    uint         `json:"corner_count"`
	Twistiness     float64      `json:"twistiness"`
	ElevationGainM float64      `json:"elevation_gain_m"`
	ElevationLossM float64      `json:"elevation_loss_m"`
	MaxElevationM  float64      `json:"max_elevation_m"`
	MinElevationM  float64      `json:"min_elevation_m"`
	Coordinates    []geo.Vertex `json:"coordinates"`
}

// NewDraft merges metrics and an elevation profile over a copy of coords.
func NewDraft(m metrics.RoadMetrics, p elevation.Profile, coords []geo.Vertex) RoadDraft {
	return RoadDraft{
		LengthM:        m.LengthM,
		CornerCount:    m.CornerCount,
		Twistiness:     m.Twistiness,
		ElevationGainM: p.GainM,
		ElevationLossM: p.LossM,
		MaxElevationM:  p.MaxM,
		MinElevationM:  p.MinM,
		Coordinates:    append([]geo.Vertex(nil), coords...),
	}
}

func (d RoadDraft) Metrics() metrics.RoadMetrics {
	return metrics.RoadMetrics{LengthM: d.LengthM, CornerCount: d.CornerCount, Twistiness: d.Twistiness}
}

func (d RoadDraft) Elevation() elevation.Profile {
	return elevation.Profile{GainM: d.ElevationGainM, LossM: d.ElevationLossM, MaxM: d.MaxElevationM, MinM: d.MinElevationM}
}

// Saver receives each completed RoadDraft. Ownership passes to the Saver.
type Saver interface {
	Save(ctx context.Context, d RoadDraft) error
}

// SaverFunc adapts a function to Saver.
type SaverFunc func(ctx context.Context, d RoadDraft) error

func (f SaverFunc) Save(ctx context.Context, d RoadDraft) error { return f(ctx, d) }
