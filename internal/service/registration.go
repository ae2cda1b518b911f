package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventpulse/internal/ledger"
	"eventpulse/internal/metrics"
	"eventpulse/internal/model"
	"eventpulse/internal/notifier"
)

// EventDirectory looks up the event records the registration flow needs.
type EventDirectory interface {
	GetByID(ctx context.Context, id string) (*model.Event, error)
	GetCreator(ctx context.Context, eventID string) (string, error)
}

// RegistrationService orchestrates the ledger with the external
// collaborators: the event directory and the confirmation mailer.
type RegistrationService struct {
	ledger        ledger.Ledger
	events        EventDirectory
	notifier      notifier.Notifier
	log           *slog.Logger
	metrics       *metrics.Metrics
	notifyTimeout time.Duration
}

// NewRegistrationService constructs a RegistrationService.
func NewRegistrationService(
	l ledger.Ledger,
	events EventDirectory,
	n notifier.Notifier,
	log *slog.Logger,
	m *metrics.Metrics,
	notifyTimeout time.Duration,
) *RegistrationService {
	return &RegistrationService{
		ledger:        l,
		events:        events,
		notifier:      n,
		log:           log,
		metrics:       m,
		notifyTimeout: notifyTimeout,
	}
}

// Register joins the user to the event and sends a confirmation. The mail
// is best effort: a delivery failure is logged and swallowed, never rolled
// back into a registration failure.
func (s *RegistrationService) Register(ctx context.Context, eventID, userID string, attendee model.Attendee) (*model.RegistrationResult, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	reg, err := s.ledger.Join(ctx, eventID, userID, attendee)
	if err != nil {
		if errors.Is(err, model.ErrCapacityExceeded) {
			s.metrics.CapacityRejections.Inc()
		}
		return nil, err
	}
	s.metrics.RegistrationsTotal.Inc()

	notifyCtx, cancel := context.WithTimeout(ctx, s.notifyTimeout)
	defer cancel()
	if err := s.notifier.SendRegistrationConfirmation(notifyCtx, reg.AttendeeEmail, *event); err != nil {
		s.metrics.NotifierFailures.Inc()
		s.log.Warn("confirmation mail failed",
			"event_id", eventID,
			"registration_id", reg.ID,
			"error", err,
		)
	}

	return &model.RegistrationResult{Attending: true, Registration: reg}, nil
}

// Unregister removes the user's registration and releases the ticket.
func (s *RegistrationService) Unregister(ctx context.Context, eventID, userID string) (*model.RegistrationResult, error) {
	if err := s.ledger.Leave(ctx, eventID, userID); err != nil {
		return nil, err
	}
	s.metrics.UnregistrationsTotal.Inc()
	return &model.RegistrationResult{Attending: false}, nil
}

// Registrations lists the event's registrants, newest first. Only the
// event's creator may see the list.
func (s *RegistrationService) Registrations(ctx context.Context, eventID, requesterID string) ([]model.Registration, error) {
	creator, err := s.events.GetCreator(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if requesterID != creator {
		return nil, model.ErrForbidden
	}

	regs, err := s.ledger.ListForEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return regs, nil
}

// RegisteredEvents returns the IDs of events the user is registered for.
func (s *RegistrationService) RegisteredEvents(ctx context.Context, userID string) ([]string, error) {
	return s.ledger.ListForUser(ctx, userID)
}
