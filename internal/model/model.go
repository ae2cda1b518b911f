// Package model defines the core domain types for the event discovery
// and registration engine.
package model

import "time"

// GeoPoint is a position in decimal degrees.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the point lies within the WGS84 coordinate ranges.
func (p GeoPoint) Valid() bool {
	return p.Latitude >= -90 && p.Latitude <= 90 &&
		p.Longitude >= -180 && p.Longitude <= 180
}

// Event represents a published event with a fixed location, start time,
// and ticket inventory. Views is populated from the popularity store on
// read paths that carry it; it is zero elsewhere.
type Event struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	LocationName string    `json:"location_name"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	CategorySlug string    `json:"category,omitempty"`
	StartsAt     time.Time `json:"date"`
	CreatedBy    string    `json:"created_by"`
	Capacity     int       `json:"capacity"`
	Sold         int       `json:"sold"`
	Views        int64     `json:"views"`
	CreatedAt    time.Time `json:"created_at"`
}

// Point returns the event's location as a GeoPoint.
func (e *Event) Point() GeoPoint {
	return GeoPoint{Latitude: e.Latitude, Longitude: e.Longitude}
}

// Remaining returns the number of available tickets.
func (e *Event) Remaining() int {
	return e.Capacity - e.Sold
}

// IsFull returns true when no tickets remain.
func (e *Event) IsFull() bool {
	return e.Sold >= e.Capacity
}

// EventDistance pairs an event with its computed distance from a query point.
type EventDistance struct {
	Event      Event   `json:"event"`
	DistanceKm float64 `json:"distance_km"`
}

// Attendee is the contact information supplied when registering.
type Attendee struct {
	Name  string `json:"attendee_name"`
	Email string `json:"attendee_email"`
	Phone string `json:"attendee_phone,omitempty"`
}

// Registration records a user's attendance of an event. The (EventID, UserID)
// pair is unique: a user holds at most one active registration per event.
type Registration struct {
	ID            string    `json:"id"`
	EventID       string    `json:"event_id"`
	UserID        string    `json:"user_id"`
	AttendeeName  string    `json:"attendee_name"`
	AttendeeEmail string    `json:"attendee_email"`
	AttendeePhone string    `json:"attendee_phone,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Key returns the natural unique key of the registration.
func (r *Registration) Key() RegistrationKey {
	return RegistrationKey{EventID: r.EventID, UserID: r.UserID}
}

// RegistrationKey identifies a registration by its (event, user) pair.
type RegistrationKey struct {
	EventID string
	UserID  string
}

// CapacitySnapshot is a point-in-time view of an event's ticket inventory.
type CapacitySnapshot struct {
	EventID  string
	Quantity int
	Sold     int
}

// RegistrationResult summarises the outcome of a register or unregister call.
type RegistrationResult struct {
	Attending    bool          `json:"is_attending"`
	Registration *Registration `json:"registration,omitempty"`
}

// EventFilter narrows an event listing.
type EventFilter struct {
	CategorySlug string
	Search       string
}

// CreateEventRequest is the payload for publishing a new event.
type CreateEventRequest struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	LocationName string    `json:"location_name"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	CategorySlug string    `json:"category,omitempty"`
	StartsAt     time.Time `json:"date"`
	Capacity     int       `json:"capacity"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
