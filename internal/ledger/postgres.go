package ledger

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

// Postgres is a Ledger backed by the events and registrations tables.
//
// Join and Leave serialise per event with a pessimistic row lock:
// SELECT ... FOR UPDATE on the event row blocks any concurrent transaction
// taking the same lock until this one commits or rolls back. Two goroutines
// racing for the last ticket therefore read the sold counter one after the
// other, and the loser sees it already incremented. Rows of different
// events carry independent locks, so unrelated events never contend.
type Postgres struct {
	db *pgxpool.Pool
}

// NewPostgres constructs a Postgres ledger.
func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

// Join implements Ledger.
func (p *Postgres) Join(ctx context.Context, eventID, userID string, attendee model.Attendee) (*model.Registration, error) {
	attendee, err := normalizeAttendee(attendee)
	if err != nil {
		return nil, err
	}

	tx, err := p.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	// Lock the event row; this is the per-event serialisation point.
	var capacity, sold int
	err = tx.QueryRow(ctx,
		`SELECT capacity, sold FROM events WHERE id = $1 FOR UPDATE`,
		eventID,
	).Scan(&capacity, &sold)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = model.ErrNotFound
			return nil, err
		}
		return nil, fmt.Errorf("lock event row: %w", err)
	}

	var dup bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM registrations WHERE event_id = $1 AND user_id = $2)`,
		eventID, userID,
	).Scan(&dup)
	if err != nil {
		return nil, fmt.Errorf("check duplicate: %w", err)
	}
	if dup {
		err = model.ErrAlreadyRegistered
		return nil, err
	}

	if sold >= capacity {
		err = model.ErrCapacityExceeded
		return nil, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE events SET sold = sold + 1 WHERE id = $1`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("increment sold: %w", err)
	}

	reg := model.Registration{
		ID:            uuid.New().String(),
		EventID:       eventID,
		UserID:        userID,
		AttendeeName:  attendee.Name,
		AttendeeEmail: attendee.Email,
		AttendeePhone: attendee.Phone,
		CreatedAt:     time.Now().UTC(),
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO registrations (id, event_id, user_id, attendee_name, attendee_email, attendee_phone, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		reg.ID, reg.EventID, reg.UserID, reg.AttendeeName, reg.AttendeeEmail, reg.AttendeePhone, reg.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert registration: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return &reg, nil
}

// Leave implements Ledger. The registration is hard-deleted and the ticket
// released in the same transaction, under the same event row lock as Join.
func (p *Postgres) Leave(ctx context.Context, eventID, userID string) error {
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var one int
	err = tx.QueryRow(ctx,
		`SELECT 1 FROM events WHERE id = $1 FOR UPDATE`,
		eventID,
	).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = model.ErrNotFound
			return err
		}
		return fmt.Errorf("lock event row: %w", err)
	}

	tag, err := tx.Exec(ctx,
		`DELETE FROM registrations WHERE event_id = $1 AND user_id = $2`,
		eventID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	if tag.RowsAffected() == 0 {
		err = model.ErrNotRegistered
		return err
	}

	// Floor at zero; sold should never go negative if the join invariant held.
	_, err = tx.Exec(ctx,
		`UPDATE events SET sold = GREATEST(sold - 1, 0) WHERE id = $1`,
		eventID,
	)
	if err != nil {
		return fmt.Errorf("decrement sold: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// IsRegistered implements Ledger.
func (p *Postgres) IsRegistered(ctx context.Context, eventID, userID string) (bool, error) {
	var registered bool
	err := p.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM registrations WHERE event_id = $1 AND user_id = $2)`,
		eventID, userID,
	).Scan(&registered)
	if err != nil {
		return false, fmt.Errorf("check registration: %w", err)
	}
	return registered, nil
}

// ListForEvent implements Ledger.
func (p *Postgres) ListForEvent(ctx context.Context, eventID string) ([]model.Registration, error) {
	rows, err := p.db.Query(ctx,
		`SELECT id, event_id, user_id, attendee_name, attendee_email, attendee_phone, created_at
		 FROM registrations
		 WHERE event_id = $1
		 ORDER BY created_at DESC`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var regs []model.Registration
	for rows.Next() {
		var reg model.Registration
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.AttendeeName, &reg.AttendeeEmail, &reg.AttendeePhone, &reg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

// ListForUser implements Ledger.
func (p *Postgres) ListForUser(ctx context.Context, userID string) ([]string, error) {
	rows, err := p.db.Query(ctx,
		`SELECT event_id FROM registrations WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list user registrations: %w", err)
	}
	defer rows.Close()

	var eventIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan event id: %w", err)
		}
		eventIDs = append(eventIDs, id)
	}
	return eventIDs, rows.Err()
}
