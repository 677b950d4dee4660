package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roadtrace/internal/draw"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 15.0, cfg.Metrics.CornerThresholdDeg)
	assert.Equal(t, 10, cfg.Elevation.SampleEvery)
	assert.Equal(t, 720*time.Hour, cfg.Elevation.CacheTTL)
	trigger, err := cfg.PanTrigger()
	require.NoError(t, err)
	assert.Equal(t, draw.ShiftHold, trigger)
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roadtrace.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
metrics:
  corner_threshold_deg: 20
elevation:
  timeout: 3s
  enabled: false
drawing:
  pan_trigger: native-drag
store:
  dir: /tmp/roads
`), 0o644))

	cfg, err := Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, 20.0, cfg.Metrics.CornerThresholdDeg)
	assert.Equal(t, 5.0, cfg.Metrics.MinSegmentM, "unset keys keep defaults")
	assert.Equal(t, 3*time.Second, cfg.Elevation.Timeout)
	assert.False(t, cfg.Elevation.Enabled)
	assert.Equal(t, "/tmp/roads", cfg.Store.Dir)
	trigger, err := cfg.PanTrigger()
	require.NoError(t, err)
	assert.Equal(t, draw.NativeDrag, trigger)
}

func TestLoad_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")
	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load(path, false)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_Invalid(t *testing.T) {
	for name, body := range map[string]string{
		"syntax":    "metrics: [",
		"threshold": "metrics:\n  corner_threshold_deg: -1\n",
		"sampling":  "elevation:\n  sample_every: 0\n",
		"trigger":   "drawing:\n  pan_trigger: wiggle\n",
		"view":      "view:\n  min_lat: 10\n  max_lat: 10\n",
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := Load(path, false)
			assert.Error(t, err)
		})
	}
}
