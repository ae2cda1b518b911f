// Package repository implements the database queries for event records.
// It uses pgx directly (no ORM) for transparency and performance.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"eventpulse/internal/model"
)

const eventColumns = `id, title, description, location_name, latitude, longitude,
	category_slug, starts_at, created_by, capacity, sold, created_at`

// EventRepository handles persistence for event records. It also serves as
// the event-record source consumed by discovery and registration: upcoming
// listings, creator lookups, and capacity snapshots.
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts a new event and returns it with a generated UUID.
func (r *EventRepository) Create(ctx context.Context, req model.CreateEventRequest, createdBy string) (*model.Event, error) {
	event := &model.Event{
		ID:           uuid.New().String(),
		Title:        req.Title,
		Description:  req.Description,
		LocationName: req.LocationName,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		CategorySlug: req.CategorySlug,
		StartsAt:     req.StartsAt,
		CreatedBy:    createdBy,
		Capacity:     req.Capacity,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO events (id, title, description, location_name, latitude, longitude,
			category_slug, starts_at, created_by, capacity, sold, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 0, $11)`,
		event.ID, event.Title, event.Description, event.LocationName, event.Latitude,
		event.Longitude, event.CategorySlug, event.StartsAt, event.CreatedBy,
		event.Capacity, event.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return event, nil
}

// List returns events ordered by creation time descending, optionally
// narrowed by category slug and a title/description substring.
func (r *EventRepository) List(ctx context.Context, filter model.EventFilter) ([]model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events`
	var (
		clauses []string
		args    []any
	)
	if filter.CategorySlug != "" {
		args = append(args, filter.CategorySlug)
		clauses = append(clauses, fmt.Sprintf("category_slug = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		clauses = append(clauses, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	for i, c := range clauses {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ListUpcoming returns events starting at or after now, the snapshot nearby
// search filters against.
func (r *EventRepository) ListUpcoming(ctx context.Context, now time.Time) ([]model.Event, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+eventColumns+` FROM events WHERE starts_at >= $1 ORDER BY starts_at ASC`,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// GetByID returns a single event or model.ErrNotFound.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	var e model.Event
	err := r.db.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`,
		id,
	).Scan(&e.ID, &e.Title, &e.Description, &e.LocationName, &e.Latitude, &e.Longitude,
		&e.CategorySlug, &e.StartsAt, &e.CreatedBy, &e.Capacity, &e.Sold, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &e, nil
}

// Update rewrites the mutable fields of an event.
func (r *EventRepository) Update(ctx context.Context, event *model.Event) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE events SET title = $2, description = $3, location_name = $4, latitude = $5,
			longitude = $6, category_slug = $7, starts_at = $8, capacity = $9
		 WHERE id = $1`,
		event.ID, event.Title, event.Description, event.LocationName, event.Latitude,
		event.Longitude, event.CategorySlug, event.StartsAt, event.Capacity,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// Delete removes an event; registrations cascade.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// GetCreator returns the user ID that published the event.
func (r *EventRepository) GetCreator(ctx context.Context, eventID string) (string, error) {
	var creator string
	err := r.db.QueryRow(ctx, `SELECT created_by FROM events WHERE id = $1`, eventID).Scan(&creator)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", model.ErrNotFound
		}
		return "", fmt.Errorf("get event creator: %w", err)
	}
	return creator, nil
}

// GetCapacity returns a point-in-time inventory snapshot for the event.
func (r *EventRepository) GetCapacity(ctx context.Context, eventID string) (model.CapacitySnapshot, error) {
	snap := model.CapacitySnapshot{EventID: eventID}
	err := r.db.QueryRow(ctx, `SELECT capacity, sold FROM events WHERE id = $1`, eventID).
		Scan(&snap.Quantity, &snap.Sold)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.CapacitySnapshot{}, model.ErrNotFound
		}
		return model.CapacitySnapshot{}, fmt.Errorf("get event capacity: %w", err)
	}
	return snap, nil
}

func scanEvents(rows pgx.Rows) ([]model.Event, error) {
	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.LocationName, &e.Latitude,
			&e.Longitude, &e.CategorySlug, &e.StartsAt, &e.CreatedBy, &e.Capacity, &e.Sold,
			&e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
