package elevation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roadtrace/internal/geo"
)

type countingProvider struct {
	calls [][]geo.Vertex
	err   error
}

func (p *countingProvider) Lookup(ctx context.Context, locations []geo.Vertex) ([]float64, error) {
	p.calls = append(p.calls, locations)
	if p.err != nil {
		return nil, p.err
	}
	out := make([]float64, len(locations))
	for i, v := range locations {
		out[i] = v.Lat * 10
	}
	return out, nil
}

func TestCachedProvider_ForwardsOnlyMisses(t *testing.T) {
	next := &countingProvider{}
	p := NewCachedProvider(next, time.Hour)
	ctx := context.Background()

	a := geo.Vertex{Lat: 1, Lon: 0}
	b := geo.Vertex{Lat: 2, Lon: 0}
	c := geo.Vertex{Lat: 3, Lon: 0}

	got, err := p.Lookup(ctx, []geo.Vertex{a, b})
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20}, got)

	got, err = p.Lookup(ctx, []geo.Vertex{b, c, a})
	require.NoError(t, err)
	assert.Equal(t, []float64{20, 30, 10}, got)

	require.Len(t, next.calls, 2)
	assert.Equal(t, []geo.Vertex{c}, next.calls[1])

	_, err = p.Lookup(ctx, []geo.Vertex{a, b, c})
	require.NoError(t, err)
	assert.Len(t, next.calls, 2, "fully cached lookups never reach the provider")
}

func TestCachedProvider_PropagatesErrors(t *testing.T) {
	next := &countingProvider{err: errors.New("down")}
	p := NewCachedProvider(next, time.Hour)
	_, err := p.Lookup(context.Background(), []geo.Vertex{{Lat: 1}})
	assert.Error(t, err)
	assert.Zero(t, p.cache.Len())
}

func TestCache_Expiry(t *testing.T) {
	c := NewCache(time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	v := geo.Vertex{Lat: 38.123456, Lon: -120.5}
	c.Set(v, 812)
	got, ok := c.Get(geo.Vertex{Lat: 38.123461, Lon: -120.5})
	assert.True(t, ok, "keys are rounded to 1e-5 degrees")
	assert.Equal(t, 812.0, got)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get(v)
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}
