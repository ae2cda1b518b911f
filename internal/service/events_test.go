package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"eventpulse/internal/model"
	"eventpulse/internal/popularity"
)

// fakeEventStore keeps events in a map.
type fakeEventStore struct {
	events map[string]model.Event
	nextID int
}

func (f *fakeEventStore) Create(_ context.Context, req model.CreateEventRequest, createdBy string) (*model.Event, error) {
	f.nextID++
	ev := model.Event{
		ID:        string(rune('a' + f.nextID - 1)),
		Title:     req.Title,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		StartsAt:  req.StartsAt,
		CreatedBy: createdBy,
		Capacity:  req.Capacity,
	}
	f.events[ev.ID] = ev
	return &ev, nil
}

func (f *fakeEventStore) List(_ context.Context, _ model.EventFilter) ([]model.Event, error) {
	var out []model.Event
	for _, ev := range f.events {
		out = append(out, ev)
	}
	return out, nil
}

func (f *fakeEventStore) GetByID(_ context.Context, id string) (*model.Event, error) {
	ev, ok := f.events[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return &ev, nil
}

func (f *fakeEventStore) Update(_ context.Context, event *model.Event) error {
	if _, ok := f.events[event.ID]; !ok {
		return model.ErrNotFound
	}
	f.events[event.ID] = *event
	return nil
}

func (f *fakeEventStore) Delete(_ context.Context, id string) error {
	if _, ok := f.events[id]; !ok {
		return model.ErrNotFound
	}
	delete(f.events, id)
	return nil
}

func (f *fakeEventStore) GetCreator(_ context.Context, id string) (string, error) {
	ev, ok := f.events[id]
	if !ok {
		return "", model.ErrNotFound
	}
	return ev.CreatedBy, nil
}

func newEventService() (*EventService, *fakeEventStore, *popularity.Memory) {
	store := &fakeEventStore{events: make(map[string]model.Event)}
	views := popularity.NewMemory()
	svc := NewEventService(store, views, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return svc, store, views
}

func validCreateRequest() model.CreateEventRequest {
	return model.CreateEventRequest{
		Title:    "Harbour Market",
		Latitude: -1.28, Longitude: 36.82,
		StartsAt: time.Now().Add(48 * time.Hour),
		Capacity: 100,
	}
}

func TestCreateEventValidation(t *testing.T) {
	t.Parallel()

	svc, _, _ := newEventService()
	ctx := context.Background()

	ev, err := svc.CreateEvent(ctx, validCreateRequest(), "owner")
	require.NoError(t, err)
	require.Equal(t, "owner", ev.CreatedBy)

	bad := []func(*model.CreateEventRequest){
		func(r *model.CreateEventRequest) { r.Title = "   " },
		func(r *model.CreateEventRequest) { r.Latitude = 123 },
		func(r *model.CreateEventRequest) { r.Longitude = -200 },
		func(r *model.CreateEventRequest) { r.StartsAt = time.Time{} },
		func(r *model.CreateEventRequest) { r.Capacity = 0 },
		func(r *model.CreateEventRequest) { r.Capacity = 200_000 },
	}
	for _, mutate := range bad {
		req := validCreateRequest()
		mutate(&req)
		_, err := svc.CreateEvent(ctx, req, "owner")
		require.ErrorIs(t, err, model.ErrInvalidParameters)
	}
}

func TestGetEventBumpsViews(t *testing.T) {
	t.Parallel()

	svc, _, views := newEventService()
	ctx := context.Background()

	created, err := svc.CreateEvent(ctx, validCreateRequest(), "owner")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = svc.GetEvent(ctx, created.ID)
		require.NoError(t, err)
	}

	got, err := svc.GetEvent(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, int64(4), got.Views)

	n, err := views.Counter(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, int64(4), n)

	_, err = svc.GetEvent(ctx, "missing")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestUpdateAndDeleteCreatorOnly(t *testing.T) {
	t.Parallel()

	svc, _, _ := newEventService()
	ctx := context.Background()

	created, err := svc.CreateEvent(ctx, validCreateRequest(), "owner")
	require.NoError(t, err)

	req := validCreateRequest()
	req.Title = "Renamed"
	_, err = svc.UpdateEvent(ctx, created.ID, req, "intruder")
	require.ErrorIs(t, err, model.ErrForbidden)

	updated, err := svc.UpdateEvent(ctx, created.ID, req, "owner")
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Title)

	require.ErrorIs(t, svc.DeleteEvent(ctx, created.ID, "intruder"), model.ErrForbidden)
	require.NoError(t, svc.DeleteEvent(ctx, created.ID, "owner"))
	require.ErrorIs(t, svc.DeleteEvent(ctx, created.ID, "owner"), model.ErrNotFound)
}
