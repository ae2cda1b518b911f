// Package ledger is the authoritative record of who is registered for which
// event. It owns the Registration lifecycle end to end and enforces the two
// invariants of the engine: at most one registration per (event, user) pair,
// and sold never exceeding capacity at the moment of a join.
package ledger

import (
	"context"
	"strings"

	"eventpulse/internal/model"
)

// Ledger exposes atomic capacity-aware join/leave plus the derived views.
// A (event, user) pair is either Unregistered or Registered; Join and Leave
// are the only transitions.
type Ledger interface {
	// Join registers the user for the event. It fails with
	// model.ErrAlreadyRegistered if a registration exists, with
	// model.ErrCapacityExceeded if the event is sold out, with
	// model.ErrInvalidAttendee on a bad payload, and with
	// model.ErrNotFound for an unknown event. The capacity check and
	// the sold increment happen atomically per event.
	Join(ctx context.Context, eventID, userID string, attendee model.Attendee) (*model.Registration, error)

	// Leave removes the user's registration and releases the ticket.
	// Fails with model.ErrNotRegistered when no registration exists.
	Leave(ctx context.Context, eventID, userID string) error

	// IsRegistered reports the current state for the pair. Pure lookup.
	IsRegistered(ctx context.Context, eventID, userID string) (bool, error)

	// ListForEvent returns the event's registrations ordered by
	// registration time descending.
	ListForEvent(ctx context.Context, eventID string) ([]model.Registration, error)

	// ListForUser returns the IDs of events the user is registered for.
	ListForUser(ctx context.Context, userID string) ([]string, error)
}

// normalizeAttendee validates and canonicalizes the registration payload:
// the name is trimmed and must be at least 2 characters, the email must
// contain an @ and is stored lowercase.
func normalizeAttendee(a model.Attendee) (model.Attendee, error) {
	a.Name = strings.TrimSpace(a.Name)
	if len(a.Name) < 2 {
		return model.Attendee{}, model.ErrInvalidAttendee
	}

	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	if !strings.Contains(a.Email, "@") {
		return model.Attendee{}, model.ErrInvalidAttendee
	}

	a.Phone = strings.TrimSpace(a.Phone)
	return a, nil
}
