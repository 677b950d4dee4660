package elevation

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roadtrace/internal/geo"
)

func path(n int) []geo.Vertex {
	vs := make([]geo.Vertex, n)
	for i := range vs {
		vs[i] = geo.Vertex{Lat: 38 + float64(i)*0.001, Lon: -120}
	}
	return vs
}

func TestSummarize(t *testing.T) {
	p := Summarize([]float64{100, 150, 120, 180})
	assert.Equal(t, Profile{GainM: 110, LossM: 30, MaxM: 180, MinM: 100}, p)

	assert.Equal(t, Profile{}, Summarize(nil))
	assert.Equal(t, Profile{MaxM: 42, MinM: 42}, Summarize([]float64{42}))
	assert.Equal(t, Profile{LossM: 20, MaxM: -10, MinM: -30}, Summarize([]float64{-10, -30}))
}

func TestSampleIndices(t *testing.T) {
	assert.Nil(t, SampleIndices(0, 10))
	assert.Equal(t, []int{0}, SampleIndices(1, 10))
	assert.Equal(t, []int{0}, SampleIndices(2, 10))
	assert.Equal(t, []int{0, 1, 2}, SampleIndices(3, 10))
	assert.Equal(t, []int{0, 5, 10}, SampleIndices(12, 5))
	assert.Equal(t, []int{0, 6, 10, 11}, SampleIndices(12, 10))
	assert.Equal(t, []int{0, 10, 20}, SampleIndices(25, 10))
	assert.Equal(t, []int{0, 2, 4}, SampleIndices(5, 2))
	// stride below 1 falls back to the default
	assert.Equal(t, SampleIndices(40, DefaultSampleEvery), SampleIndices(40, 0))
}

func TestSampleIndices_AtLeastThree(t *testing.T) {
	for n := 3; n <= 60; n++ {
		for _, every := range []int{1, 2, 3, 7, 10, 25, 100, 1000} {
			idx := SampleIndices(n, every)
			require.GreaterOrEqual(t, len(idx), 3, "n=%d every=%d", n, every)
			for i := 1; i < len(idx); i++ {
				require.Less(t, idx[i-1], idx[i], "indices must be strictly increasing")
			}
			require.Less(t, idx[len(idx)-1], n)
		}
	}
}

func TestSample(t *testing.T) {
	vs := path(12)
	s := Sample(vs, 10)
	require.Len(t, s, 4)
	assert.Equal(t, []geo.Vertex{vs[0], vs[6], vs[10], vs[11]}, s)
}

func fixed(values ...float64) ProviderFunc {
	return func(ctx context.Context, locations []geo.Vertex) ([]float64, error) {
		return values, nil
	}
}

func TestAggregate(t *testing.T) {
	var got []geo.Vertex
	provider := ProviderFunc(func(ctx context.Context, locations []geo.Vertex) ([]float64, error) {
		got = locations
		return []float64{100, 150, 120, 180}, nil
	})
	a := NewAggregator(provider, WithSampleEvery(1))

	p := a.Aggregate(context.Background(), path(4))
	assert.Equal(t, Profile{GainM: 110, LossM: 30, MaxM: 180, MinM: 100}, p)
	assert.Equal(t, path(4), got)
}

func TestAggregate_FailuresYieldZeroProfile(t *testing.T) {
	ctx := context.Background()
	vs := path(4)

	cases := map[string]Provider{
		"error": ProviderFunc(func(ctx context.Context, locations []geo.Vertex) ([]float64, error) {
			return nil, errors.New("connection refused")
		}),
		"mismatch": fixed(1, 2),
		"empty":    fixed(),
		"nan":      fixed(1, math.NaN(), 3, 4),
		"panic": ProviderFunc(func(ctx context.Context, locations []geo.Vertex) ([]float64, error) {
			panic("boom")
		}),
	}
	for name, provider := range cases {
		t.Run(name, func(t *testing.T) {
			a := NewAggregator(provider, WithSampleEvery(1))
			assert.Equal(t, Profile{}, a.Aggregate(ctx, vs))
		})
	}

	assert.Equal(t, Profile{}, NewAggregator(nil).Aggregate(ctx, vs))
	assert.Equal(t, Profile{}, NewAggregator(fixed(1)).Aggregate(ctx, nil))
}

func TestAggregate_Timeout(t *testing.T) {
	slow := ProviderFunc(func(ctx context.Context, locations []geo.Vertex) ([]float64, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	a := NewAggregator(slow, WithTimeout(20*time.Millisecond))

	start := time.Now()
	p := a.Aggregate(context.Background(), path(5))
	assert.Equal(t, Profile{}, p)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestAggregate_LateSuccessAfterTimeoutDiscarded(t *testing.T) {
	late := ProviderFunc(func(ctx context.Context, locations []geo.Vertex) ([]float64, error) {
		<-ctx.Done()
		return []float64{1, 2, 3}, nil
	})
	a := NewAggregator(late, WithTimeout(10*time.Millisecond))
	assert.Equal(t, Profile{}, a.Aggregate(context.Background(), path(3)))
}
