package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"eventpulse/internal/model"
)

// Register handles POST /events/{id}/register
func (h *EventHandler) Register(w http.ResponseWriter, r *http.Request) {
	var attendee model.Attendee
	if err := decodeJSON(r, &attendee); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.registrations.Register(r.Context(), chi.URLParam(r, "id"), UserID(r.Context()), attendee)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// Unregister handles POST /events/{id}/unregister
func (h *EventHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	result, err := h.registrations.Unregister(r.Context(), chi.URLParam(r, "id"), UserID(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ListRegistrations handles GET /events/{id}/registrations
// Only the event's creator may read the registrant list.
func (h *EventHandler) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	regs, err := h.registrations.Registrations(r.Context(), chi.URLParam(r, "id"), UserID(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if regs == nil {
		regs = []model.Registration{}
	}
	writeJSON(w, http.StatusOK, regs)
}

// RegisteredEvents handles GET /me/events
func (h *EventHandler) RegisteredEvents(w http.ResponseWriter, r *http.Request) {
	eventIDs, err := h.registrations.RegisteredEvents(r.Context(), UserID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list registered events")
		return
	}
	if eventIDs == nil {
		eventIDs = []string{}
	}
	writeJSON(w, http.StatusOK, eventIDs)
}
