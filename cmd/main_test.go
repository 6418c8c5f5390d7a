package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/treemap/internal/config"
	"github.com/UnknownOlympus/treemap/internal/events"
	"github.com/UnknownOlympus/treemap/internal/geometry"
	"github.com/UnknownOlympus/treemap/internal/repository"
	"github.com/UnknownOlympus/treemap/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		env     string
		enabled slog.Level
		muted   slog.Level
	}{
		{envLocal, slog.LevelDebug, slog.LevelDebug - 1},
		{envDev, slog.LevelInfo, slog.LevelDebug},
		{envProd, slog.LevelWarn, slog.LevelInfo},
		{"", slog.LevelError, slog.LevelWarn},
	}
	for _, tc := range tests {
		t.Run("env="+tc.env, func(t *testing.T) {
			logger := setupLogger(tc.env)

			assert.True(t, logger.Enabled(ctx, tc.enabled))
			assert.False(t, logger.Enabled(ctx, tc.muted))
		})
	}
}

func TestDropTime(t *testing.T) {
	assert.True(t, dropTime(nil, slog.String(slog.TimeKey, "now")).Equal(slog.Attr{}))
	assert.Equal(t, "msg", dropTime(nil, slog.String(slog.MessageKey, "msg")).Value.String())
}

func TestNewServiceArea(t *testing.T) {
	t.Run("postgis source uses the repository", func(t *testing.T) {
		cfg := &config.Config{BoundarySource: config.BoundarySourcePostGIS}

		area, err := newServiceArea(cfg, mocks.NewInterface(t))

		require.NoError(t, err)
		assert.IsType(t, &repository.ServiceArea{}, area)
	})

	t.Run("geojson source loads an index", func(t *testing.T) {
		defer filet.CleanUp(t)
		f := filet.TmpFile(t, "", `{"type":"FeatureCollection","features":[{"type":"Feature",
			"properties":{"name":"Center City"},
			"geometry":{"type":"Polygon","coordinates":[[[-75.2,39.9],[-75.1,39.9],[-75.1,40.0],[-75.2,40.0],[-75.2,39.9]]]}}]}`)
		cfg := &config.Config{BoundarySource: config.BoundarySourceGeoJSON, BoundaryFile: f.Name()}

		area, err := newServiceArea(cfg, mocks.NewInterface(t))
		require.NoError(t, err)

		p, err := geometry.NewPoint(-75.1652, 39.9526)
		require.NoError(t, err)
		inside, err := area.Contains(t.Context(), p)
		require.NoError(t, err)
		assert.True(t, inside)
	})

	t.Run("missing geojson file", func(t *testing.T) {
		cfg := &config.Config{BoundarySource: config.BoundarySourceGeoJSON, BoundaryFile: "/nonexistent/areas.geojson"}

		area, err := newServiceArea(cfg, mocks.NewInterface(t))

		require.Nil(t, area)
		require.ErrorContains(t, err, "failed to load boundaries")
	})
}

func TestNewPublisher(t *testing.T) {
	t.Run("no brokers disables events", func(t *testing.T) {
		pub, closeFn := newPublisher(&config.Config{}, slog.Default())
		defer closeFn()

		assert.IsType(t, events.NopPublisher{}, pub)
	})

	t.Run("brokers select kafka", func(t *testing.T) {
		cfg := &config.Config{Kafka: config.KafkaConfig{Brokers: []string{"localhost:9092"}, Topic: "trees"}}

		pub, closeFn := newPublisher(cfg, slog.Default())
		defer closeFn()

		assert.IsType(t, &events.KafkaPublisher{}, pub)
	})
}
