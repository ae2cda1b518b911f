package geo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"eventpulse/internal/model"
)

var (
	nairobi = model.GeoPoint{Latitude: -1.2921, Longitude: 36.8219}
	london  = model.GeoPoint{Latitude: 51.5074, Longitude: -0.1278}
	paris   = model.GeoPoint{Latitude: 48.8566, Longitude: 2.3522}
)

func TestDistanceZeroForSamePoint(t *testing.T) {
	t.Parallel()

	for _, p := range []model.GeoPoint{nairobi, london, {Latitude: 0, Longitude: 0}, {Latitude: -90, Longitude: 180}} {
		require.Zero(t, Distance(p, p))
	}
}

func TestDistanceSymmetry(t *testing.T) {
	t.Parallel()

	require.Equal(t, Distance(london, nairobi), Distance(nairobi, london))
	require.Equal(t, Distance(paris, london), Distance(london, paris))
}

func TestDistanceKnownPairs(t *testing.T) {
	t.Parallel()

	// London–Paris is ~344 km great-circle.
	require.InDelta(t, 344, Distance(london, paris), 5)
	// Antipodal-ish span stays below half the circumference.
	require.Less(t, Distance(model.GeoPoint{Latitude: 0, Longitude: 0}, model.GeoPoint{Latitude: 0, Longitude: 180}), 20100.0)
	require.Greater(t, Distance(model.GeoPoint{Latitude: 0, Longitude: 0}, model.GeoPoint{Latitude: 0, Longitude: 180}), 19900.0)
}

func TestDistanceCrossesHemispheres(t *testing.T) {
	t.Parallel()

	// Points either side of the equator and prime meridian; no branch on sign.
	a := model.GeoPoint{Latitude: -0.5, Longitude: -0.5}
	b := model.GeoPoint{Latitude: 0.5, Longitude: 0.5}
	d := Distance(a, b)
	require.Greater(t, d, 0.0)
	require.InDelta(t, 157, d, 2)
}

func TestBoundsAroundSupersetOfRadius(t *testing.T) {
	t.Parallel()

	const radius = 25.0
	center := nairobi
	box := BoundsAround(center, radius)

	// Sweep a grid of offsets; every point within the true radius must be
	// inside the box.
	for dLat := -0.5; dLat <= 0.5; dLat += 0.05 {
		for dLon := -0.5; dLon <= 0.5; dLon += 0.05 {
			p := model.GeoPoint{Latitude: center.Latitude + dLat, Longitude: center.Longitude + dLon}
			if Distance(center, p) <= radius {
				require.True(t, box.Contains(p), "point %+v within %.0fkm excluded by box", p, radius)
			}
		}
	}
}

func TestBoundsAroundPolarGuard(t *testing.T) {
	t.Parallel()

	box := BoundsAround(model.GeoPoint{Latitude: 90, Longitude: 0}, 10)
	// All longitudes pass near the pole.
	require.True(t, box.Contains(model.GeoPoint{Latitude: 89.99, Longitude: 179}))
	require.True(t, box.Contains(model.GeoPoint{Latitude: 89.99, Longitude: -179}))
	require.False(t, box.Contains(model.GeoPoint{Latitude: 80, Longitude: 0}))
}

func TestCandidates(t *testing.T) {
	t.Parallel()

	events := []model.Event{
		{ID: "near", Latitude: nairobi.Latitude + 0.01, Longitude: nairobi.Longitude},
		{ID: "far", Latitude: 0, Longitude: 0},
	}

	got := Candidates(nairobi, 5, events)
	require.Len(t, got, 1)
	require.Equal(t, "near", got[0].ID)
}
