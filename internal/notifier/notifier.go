// Package notifier delivers registration confirmation mail through the
// external mailer collaborator. Delivery is best effort: callers bound it
// with a timeout and never fail a registration over it.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"eventpulse/internal/model"
)

// Notifier sends a registration confirmation for an event.
type Notifier interface {
	SendRegistrationConfirmation(ctx context.Context, email string, event model.Event) error
}

// Mailer posts confirmation requests to an HTTP mailer endpoint.
type Mailer struct {
	url    string
	client *http.Client
}

// NewMailer constructs a Mailer for the given endpoint. The client timeout
// is a hard ceiling; callers normally pass a tighter context deadline.
func NewMailer(url string, timeout time.Duration) *Mailer {
	return &Mailer{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type confirmationPayload struct {
	To            string    `json:"to"`
	EventTitle    string    `json:"event_title"`
	EventDate     time.Time `json:"event_date"`
	EventLocation string    `json:"event_location"`
}

// SendRegistrationConfirmation implements Notifier.
func (m *Mailer) SendRegistrationConfirmation(ctx context.Context, email string, event model.Event) error {
	body, err := json.Marshal(confirmationPayload{
		To:            email,
		EventTitle:    event.Title,
		EventDate:     event.StartsAt,
		EventLocation: event.LocationName,
	})
	if err != nil {
		return fmt.Errorf("marshal confirmation: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build mailer request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("send confirmation: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("mailer responded %d", resp.StatusCode)
	}
	return nil
}

// Nop is a Notifier that drops everything, used when no mailer is configured.
type Nop struct{}

// SendRegistrationConfirmation implements Notifier.
func (Nop) SendRegistrationConfirmation(context.Context, string, model.Event) error {
	return nil
}
