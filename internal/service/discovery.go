// Package service implements business logic and orchestration between the
// HTTP handlers and the storage layers.
package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"eventpulse/internal/geo"
	"eventpulse/internal/metrics"
	"eventpulse/internal/model"
	"eventpulse/internal/popularity"
)

// Defaults for the discovery query surface.
const (
	DefaultRadiusKm  = 10.0
	DefaultTrendingN = 3
)

// EventSource lists event records for the discovery queries.
type EventSource interface {
	ListUpcoming(ctx context.Context, now time.Time) ([]model.Event, error)
	List(ctx context.Context, filter model.EventFilter) ([]model.Event, error)
}

// DiscoveryService serves the nearby and trending queries. Both are
// read-only over snapshots; a slightly stale view is acceptable.
type DiscoveryService struct {
	events  EventSource
	views   popularity.Store
	metrics *metrics.Metrics
}

// NewDiscoveryService constructs a DiscoveryService.
func NewDiscoveryService(events EventSource, views popularity.Store, m *metrics.Metrics) *DiscoveryService {
	return &DiscoveryService{events: events, views: views, metrics: m}
}

// Nearby returns future events within radiusKm of center, soonest first,
// each with its exact great-circle distance. Candidates come from the cheap
// bounding-box prefilter and are refined with the haversine distance.
func (s *DiscoveryService) Nearby(ctx context.Context, center model.GeoPoint, radiusKm float64, now time.Time) ([]model.EventDistance, error) {
	if !center.Valid() || radiusKm <= 0 {
		return nil, model.ErrInvalidParameters
	}

	upcoming, err := s.events.ListUpcoming(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}

	var results []model.EventDistance
	for _, ev := range geo.Candidates(center, radiusKm, upcoming) {
		d := geo.Distance(center, ev.Point())
		if d <= radiusKm {
			results = append(results, model.EventDistance{Event: ev, DistanceKm: d})
		}
	}

	// Soonest events surface first; ordering by date is the contract,
	// not a side effect of the scan.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Event.StartsAt.Before(results[j].Event.StartsAt)
	})

	s.metrics.NearbyQueries.Inc()
	return results, nil
}

// Trending returns the topN most viewed events, ties broken by lower event
// ID so the ordering is deterministic. Past events are not filtered out.
func (s *DiscoveryService) Trending(ctx context.Context, topN int) ([]model.Event, error) {
	if topN <= 0 {
		return nil, model.ErrInvalidParameters
	}

	events, err := s.events.List(ctx, model.EventFilter{})
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	ids := make([]string, len(events))
	for i, ev := range events {
		ids[i] = ev.ID
	}
	counts, err := s.views.Counters(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("read view counters: %w", err)
	}

	ranked := rankByViews(events, counts)
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	s.metrics.TrendingQueries.Inc()
	return ranked, nil
}

// rankByViews orders events by view count descending, ties by lower event
// ID. It also stamps the counter onto each returned event.
func rankByViews(events []model.Event, counts map[string]int64) []model.Event {
	ranked := make([]model.Event, len(events))
	for i, ev := range events {
		ev.Views = counts[ev.ID]
		ranked[i] = ev
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Views != ranked[j].Views {
			return ranked[i].Views > ranked[j].Views
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked
}
