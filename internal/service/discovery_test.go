package service

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"eventpulse/internal/metrics"
	"eventpulse/internal/model"
)

// fakeEventSource serves a fixed event set.
type fakeEventSource struct {
	events []model.Event
}

func (f *fakeEventSource) ListUpcoming(_ context.Context, now time.Time) ([]model.Event, error) {
	var out []model.Event
	for _, ev := range f.events {
		if !ev.StartsAt.Before(now) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeEventSource) List(_ context.Context, _ model.EventFilter) ([]model.Event, error) {
	return f.events, nil
}

// fakeViews serves fixed counters.
type fakeViews struct {
	counts map[string]int64
}

func (f *fakeViews) Counter(_ context.Context, id string) (int64, error) { return f.counts[id], nil }

func (f *fakeViews) Counters(_ context.Context, ids []string) (map[string]int64, error) {
	out := make(map[string]int64, len(ids))
	for _, id := range ids {
		out[id] = f.counts[id]
	}
	return out, nil
}

func (f *fakeViews) Increment(_ context.Context, id string) error {
	f.counts[id]++
	return nil
}

func newDiscovery(events []model.Event, counts map[string]int64) *DiscoveryService {
	if counts == nil {
		counts = map[string]int64{}
	}
	return NewDiscoveryService(
		&fakeEventSource{events: events},
		&fakeViews{counts: counts},
		metrics.New(prometheus.NewRegistry()),
	)
}

var nairobiCenter = model.GeoPoint{Latitude: -1.2921, Longitude: 36.8219}

func TestNearbyReturnsOnlyEventsWithinRadius(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	events := []model.Event{
		{ID: "at-center", Latitude: nairobiCenter.Latitude, Longitude: nairobiCenter.Longitude, StartsAt: now.Add(time.Hour)},
		{ID: "null-island", Latitude: 0, Longitude: 0, StartsAt: now.Add(time.Hour)},
	}

	got, err := newDiscovery(events, nil).Nearby(context.Background(), nairobiCenter, 5, now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "at-center", got[0].Event.ID)
	require.InDelta(t, 0, got[0].DistanceKm, 0.001)
}

func TestNearbyExcludesPastEvents(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	events := []model.Event{
		{ID: "yesterday", Latitude: nairobiCenter.Latitude, Longitude: nairobiCenter.Longitude, StartsAt: now.Add(-24 * time.Hour)},
		{ID: "tomorrow", Latitude: nairobiCenter.Latitude, Longitude: nairobiCenter.Longitude, StartsAt: now.Add(24 * time.Hour)},
	}

	got, err := newDiscovery(events, nil).Nearby(context.Background(), nairobiCenter, 5, now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "tomorrow", got[0].Event.ID)
}

func TestNearbyOrdersBySoonestStart(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	// The farthest event starts first; date ordering must win over distance.
	events := []model.Event{
		{ID: "close-later", Latitude: nairobiCenter.Latitude + 0.001, Longitude: nairobiCenter.Longitude, StartsAt: now.Add(48 * time.Hour)},
		{ID: "far-sooner", Latitude: nairobiCenter.Latitude + 0.03, Longitude: nairobiCenter.Longitude, StartsAt: now.Add(2 * time.Hour)},
		{ID: "mid", Latitude: nairobiCenter.Latitude - 0.01, Longitude: nairobiCenter.Longitude, StartsAt: now.Add(24 * time.Hour)},
	}

	got, err := newDiscovery(events, nil).Nearby(context.Background(), nairobiCenter, 10, now)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "far-sooner", got[0].Event.ID)
	require.Equal(t, "mid", got[1].Event.ID)
	require.Equal(t, "close-later", got[2].Event.ID)
}

func TestNearbyRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	now := time.Now()
	svc := newDiscovery(nil, nil)

	cases := []struct {
		name   string
		center model.GeoPoint
		radius float64
	}{
		{"latitude out of range", model.GeoPoint{Latitude: 91, Longitude: 0}, 10},
		{"longitude out of range", model.GeoPoint{Latitude: 0, Longitude: -181}, 10},
		{"zero radius", nairobiCenter, 0},
		{"negative radius", nairobiCenter, -3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Nearby(context.Background(), tc.center, tc.radius, now)
			require.ErrorIs(t, err, model.ErrInvalidParameters)
		})
	}
}

func TestTrendingRanksByViewsWithIDTieBreak(t *testing.T) {
	t.Parallel()

	events := []model.Event{{ID: "A"}, {ID: "B"}, {ID: "C"}, {ID: "D"}}
	counts := map[string]int64{"A": 50, "B": 80, "C": 10, "D": 80}

	got, err := newDiscovery(events, counts).Trending(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// B and D tie at 80; B wins on the lower ID, then A at 50.
	require.Equal(t, "B", got[0].ID)
	require.Equal(t, "D", got[1].ID)
	require.Equal(t, "A", got[2].ID)
	require.Equal(t, int64(80), got[0].Views)
	require.Equal(t, int64(50), got[2].Views)
}

func TestTrendingTruncatesAndTolerates(t *testing.T) {
	t.Parallel()

	svc := newDiscovery([]model.Event{{ID: "solo"}}, map[string]int64{"solo": 7})

	got, err := svc.Trending(context.Background(), DefaultTrendingN)
	require.NoError(t, err)
	require.Len(t, got, 1)

	_, err = svc.Trending(context.Background(), 0)
	require.ErrorIs(t, err, model.ErrInvalidParameters)
	_, err = svc.Trending(context.Background(), -1)
	require.ErrorIs(t, err, model.ErrInvalidParameters)
}
