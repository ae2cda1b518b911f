package service

import (
	"context"
	"log/slog"
	"strings"

	"eventpulse/internal/model"
	"eventpulse/internal/popularity"
)

// EventStore handles persistence for event records.
type EventStore interface {
	Create(ctx context.Context, req model.CreateEventRequest, createdBy string) (*model.Event, error)
	List(ctx context.Context, filter model.EventFilter) ([]model.Event, error)
	GetByID(ctx context.Context, id string) (*model.Event, error)
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, id string) error
	GetCreator(ctx context.Context, eventID string) (string, error)
}

// EventService implements event record CRUD and the read-path view
// tracking that feeds trending.
type EventService struct {
	store EventStore
	views popularity.Store
	log   *slog.Logger
}

// NewEventService constructs an EventService.
func NewEventService(store EventStore, views popularity.Store, log *slog.Logger) *EventService {
	return &EventService{store: store, views: views, log: log}
}

// CreateEvent validates the request and publishes the event.
func (s *EventService) CreateEvent(ctx context.Context, req model.CreateEventRequest, userID string) (*model.Event, error) {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return nil, model.ErrInvalidParameters
	}
	point := model.GeoPoint{Latitude: req.Latitude, Longitude: req.Longitude}
	if !point.Valid() {
		return nil, model.ErrInvalidParameters
	}
	if req.StartsAt.IsZero() {
		return nil, model.ErrInvalidParameters
	}
	if req.Capacity <= 0 || req.Capacity > 100_000 {
		return nil, model.ErrInvalidParameters
	}
	return s.store.Create(ctx, req, userID)
}

// ListEvents returns events, optionally filtered by category and search.
func (s *EventService) ListEvents(ctx context.Context, filter model.EventFilter) ([]model.Event, error) {
	return s.store.List(ctx, filter)
}

// GetEvent returns a single event and bumps its view counter. The counter
// write is best effort; a popularity-store failure never hides the event.
func (s *EventService) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	event, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.views.Increment(ctx, id); err != nil {
		s.log.Warn("view counter increment failed", "event_id", id, "error", err)
	}
	if n, err := s.views.Counter(ctx, id); err == nil {
		event.Views = n
	}
	return event, nil
}

// UpdateEvent rewrites an event's mutable fields. Creator only.
func (s *EventService) UpdateEvent(ctx context.Context, id string, req model.CreateEventRequest, userID string) (*model.Event, error) {
	event, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.CreatedBy != userID {
		return nil, model.ErrForbidden
	}

	req.Title = strings.TrimSpace(req.Title)
	point := model.GeoPoint{Latitude: req.Latitude, Longitude: req.Longitude}
	if req.Title == "" || !point.Valid() || req.StartsAt.IsZero() || req.Capacity <= 0 {
		return nil, model.ErrInvalidParameters
	}

	event.Title = req.Title
	event.Description = req.Description
	event.LocationName = req.LocationName
	event.Latitude = req.Latitude
	event.Longitude = req.Longitude
	event.CategorySlug = req.CategorySlug
	event.StartsAt = req.StartsAt
	event.Capacity = req.Capacity

	if err := s.store.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// DeleteEvent removes an event. Creator only.
func (s *EventService) DeleteEvent(ctx context.Context, id, userID string) error {
	creator, err := s.store.GetCreator(ctx, id)
	if err != nil {
		return err
	}
	if creator != userID {
		return model.ErrForbidden
	}
	return s.store.Delete(ctx, id)
}
