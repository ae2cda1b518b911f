package model

import "errors"

// Sentinel errors for every recoverable condition the engine surfaces.
// Handlers map these to HTTP statuses with errors.Is.
var (
	// ErrInvalidParameters is returned for malformed query input
	// (bad coordinates, non-positive radius or topN).
	ErrInvalidParameters = errors.New("invalid parameters")

	// ErrInvalidAttendee is returned when a registration payload fails
	// validation (name too short, email without @).
	ErrInvalidAttendee = errors.New("invalid attendee details")

	// ErrAlreadyRegistered is returned when the user already holds a
	// registration for the event.
	ErrAlreadyRegistered = errors.New("already registered for this event")

	// ErrNotRegistered is returned when unregistering without a prior
	// registration.
	ErrNotRegistered = errors.New("not registered for this event")

	// ErrCapacityExceeded is returned when the event has no tickets left.
	ErrCapacityExceeded = errors.New("event capacity exceeded")

	// ErrForbidden is returned when the caller lacks permission,
	// e.g. reading the registrant list of someone else's event.
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthenticated is returned when no valid identity accompanies
	// a request that requires one.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNotFound is returned when the referenced event does not exist.
	ErrNotFound = errors.New("not found")
)
