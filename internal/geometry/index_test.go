package geometry_test

import (
	"testing"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/treemap/internal/geometry"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Two unit squares side by side; the western one has a hole in its middle.
const boundariesJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"name": "West"},
      "geometry": {
        "type": "Polygon",
        "coordinates": [
          [[0, 0], [1, 0], [1, 1], [0, 1], [0, 0]],
          [[0.4, 0.4], [0.6, 0.4], [0.6, 0.6], [0.4, 0.6], [0.4, 0.4]]
        ]
      }
    },
    {
      "type": "Feature",
      "properties": {"name": "East"},
      "geometry": {
        "type": "MultiPolygon",
        "coordinates": [[[[2, 0], [3, 0], [3, 1], [2, 1], [2, 0]]]]
      }
    },
    {
      "type": "Feature",
      "properties": {"name": "Marker"},
      "geometry": {"type": "Point", "coordinates": [5, 5]}
    }
  ]
}`

func mustPoint(t *testing.T, lon, lat float64) geometry.Point {
	t.Helper()
	p, err := geometry.NewPoint(lon, lat)
	require.NoError(t, err)
	return p
}

func TestLoadGeoJSON(t *testing.T) {
	defer filet.CleanUp(t)

	f := filet.TmpFile(t, "", boundariesJSON)
	idx, err := geometry.LoadGeoJSON(f.Name())
	require.NoError(t, err)
	assert.Equal(t, 2, idx.Size())

	tests := []struct {
		name     string
		lon, lat float64
		want     string
	}{
		{"inside west", 0.1, 0.1, "West"},
		{"inside east", 2.5, 0.5, "East"},
		{"inside hole", 0.5, 0.5, ""},
		{"between", 1.5, 0.5, ""},
		{"far away", -75.16, 39.95, ""},
		{"past the pole", 0.5, 123, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustPoint(t, tt.lon, tt.lat)
			found := idx.Lookup(p)

			ok, err := idx.Contains(t.Context(), p)
			require.NoError(t, err)

			if tt.want == "" {
				assert.Empty(t, found)
				assert.False(t, ok)
				return
			}
			require.Len(t, found, 1)
			assert.Equal(t, tt.want, found[0].Name)
			assert.True(t, ok)
		})
	}
}

func TestLoadGeoJSON_Errors(t *testing.T) {
	defer filet.CleanUp(t)

	t.Run("missing file", func(t *testing.T) {
		_, err := geometry.LoadGeoJSON(filet.TmpDir(t, "") + "/missing.geojson")

		require.ErrorContains(t, err, "failed to read boundary file")
	})

	t.Run("not a feature collection", func(t *testing.T) {
		f := filet.TmpFile(t, "", `{"type": "Feature"}`)
		_, err := geometry.LoadGeoJSON(f.Name())

		require.ErrorContains(t, err, "not a feature collection")
	})

	t.Run("no polygons", func(t *testing.T) {
		f := filet.TmpFile(t, "", `{"type": "FeatureCollection", "features": []}`)
		_, err := geometry.LoadGeoJSON(f.Name())

		require.ErrorIs(t, err, geometry.ErrEmptyBoundaries)
	})

	t.Run("malformed json", func(t *testing.T) {
		f := filet.TmpFile(t, "", `{`)
		_, err := geometry.LoadGeoJSON(f.Name())

		require.ErrorContains(t, err, "failed to decode boundary file")
	})
}

func TestNewIndex(t *testing.T) {
	t.Run("boundaries without vertices are skipped", func(t *testing.T) {
		_, err := geometry.NewIndex([]geometry.Boundary{{Name: "empty", Polygon: orb.MultiPolygon{{}}}})

		require.ErrorIs(t, err, geometry.ErrEmptyBoundaries)
	})

	t.Run("polygon built in code", func(t *testing.T) {
		square := orb.Polygon{{{10, 10}, {11, 10}, {11, 11}, {10, 11}, {10, 10}}}
		idx, err := geometry.NewIndex([]geometry.Boundary{{Name: "Square", Polygon: orb.MultiPolygon{square}}})
		require.NoError(t, err)

		inside, err := idx.Contains(t.Context(), mustPoint(t, 10.5, 10.5))
		require.NoError(t, err)
		assert.True(t, inside)

		outside, err := idx.Contains(t.Context(), mustPoint(t, 12, 10.5))
		require.NoError(t, err)
		assert.False(t, outside)
	})
}
