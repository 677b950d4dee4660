// Package elevation samples a traced path, looks up terrain heights and
// folds them into a gain/loss profile. Lookup failures degrade to the zero
// profile instead of surfacing errors.
package elevation

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"roadtrace/internal/geo"
)

// DefaultSampleEvery is the default sampling stride over path vertices.
const DefaultSampleEvery = 10

var (
	ErrLengthMismatch = errors.New("elevation: result count does not match request")
	ErrEmptyResult    = errors.New("elevation: empty result")
	ErrNonFinite      = errors.New("elevation: non-finite value in result")
)

// Provider resolves elevations (meters) for an ordered list of locations.
// Implementations must return one value per location, in request order.
type Provider interface {
	Lookup(ctx context.Context, locations []geo.Vertex) ([]float64, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, locations []geo.Vertex) ([]float64, error)

func (f ProviderFunc) Lookup(ctx context.Context, locations []geo.Vertex) ([]float64, error) {
	return f(ctx, locations)
}

// Profile summarizes elevation along a path. The zero value doubles as the
// failure result, so MaxM and MinM read 0 when no data was available.
type Profile struct {
	GainM float64 `json:"elevation_gain_m"`
	LossM float64 `json:"elevation_loss_m"`
	MaxM  float64 `json:"max_elevation_m"`
	MinM  float64 `json:"min_elevation_m"`
}

// Aggregator turns a path into a Profile through a Provider.
type Aggregator struct {
	provider    Provider
	sampleEvery int
	timeout     time.Duration
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithSampleEvery sets the sampling stride. Values below 1 keep the default.
func WithSampleEvery(n int) Option {
	return func(a *Aggregator) {
		if n >= 1 {
			a.sampleEvery = n
		}
	}
}

// WithTimeout bounds each lookup. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(a *Aggregator) { a.timeout = d }
}

// NewAggregator creates an Aggregator. A nil provider always yields the zero profile.
func NewAggregator(provider Provider, opts ...Option) *Aggregator {
	a := &Aggregator{
		provider:    provider,
		sampleEvery: DefaultSampleEvery,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate samples vs, looks the samples up and summarizes them. It never fails:
// any lookup problem returns the zero Profile.
func (a *Aggregator) Aggregate(ctx context.Context, vs []geo.Vertex) Profile {
	if a == nil || a.provider == nil || len(vs) == 0 {
		return Profile{}
	}
	samples := Sample(vs, a.sampleEvery)

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	start := time.Now()
	elevations, err := a.lookup(ctx, samples)
	if err != nil {
		log.Warn().Err(err).Int("samples", len(samples)).Dur("elapsed", time.Since(start)).
			Msg("Elevation lookup failed, using zero profile")
		return Profile{}
	}
	log.Debug().Int("samples", len(samples)).Dur("elapsed", time.Since(start)).Msg("Elevation lookup done")
	return Summarize(elevations)
}

func (a *Aggregator) lookup(ctx context.Context, samples []geo.Vertex) (res []float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, errors.New("elevation: provider panicked")
		}
	}()
	res, err = a.provider.Lookup(ctx, samples)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validate(res, len(samples)); err != nil {
		return nil, err
	}
	return res, nil
}

func validate(res []float64, want int) error {
	if len(res) == 0 {
		return ErrEmptyResult
	}
	if len(res) != want {
		return ErrLengthMismatch
	}
	for _, e := range res {
		if math.IsNaN(e) || math.IsInf(e, 0) {
			return ErrNonFinite
		}
	}
	return nil
}

// SampleIndices picks every n-th index of a path with count vertices. When that
// yields fewer than three indices on a path of three or more, the first, middle
// and last indices are merged in.
func SampleIndices(count, every int) []int {
	if count <= 0 {
		return nil
	}
	if every < 1 {
		every = DefaultSampleEvery
	}
	var idx []int
	for i := 0; i < count; i += every {
		idx = append(idx, i)
	}
	if len(idx) >= 3 || count < 3 {
		return idx
	}

	seen := make(map[int]bool, len(idx)+3)
	for _, i := range idx {
		seen[i] = true
	}
	for _, i := range []int{0, count / 2, count - 1} {
		if !seen[i] {
			seen[i] = true
			idx = append(idx, i)
		}
	}
	sort.Ints(idx)
	return idx
}

// Sample returns the vertices at SampleIndices, in path order.
func Sample(vs []geo.Vertex, every int) []geo.Vertex {
	idx := SampleIndices(len(vs), every)
	out := make([]geo.Vertex, len(idx))
	for i, j := range idx {
		out[i] = vs[j]
	}
	return out
}

// Summarize folds an ordered elevation series into a Profile.
func Summarize(elevations []float64) Profile {
	if len(elevations) == 0 {
		return Profile{}
	}
	p := Profile{MaxM: elevations[0], MinM: elevations[0]}
	for i := 1; i < len(elevations); i++ {
		diff := elevations[i] - elevations[i-1]
		if diff > 0 {
			p.GainM += diff
		} else {
			p.LossM -= diff
		}
		p.MaxM = math.Max(p.MaxM, elevations[i])
		p.MinM = math.Min(p.MinM, elevations[i])
	}
	return p
}
