package ledger

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"eventpulse/internal/model"
)

// CapacitySource supplies the ticket inventory of an event. The memory
// ledger reads quantity through it and owns the sold counter itself, as the
// sole writer of capacity.
type CapacitySource interface {
	GetCapacity(ctx context.Context, eventID string) (model.CapacitySnapshot, error)
}

// Memory is an in-process Ledger guarded by per-event mutexes. Joins on
// different events never contend with each other.
type Memory struct {
	capacity CapacitySource
	now      func() time.Time

	mu     sync.Mutex // guards the events map, not the per-event state
	events map[string]*eventState
}

type eventState struct {
	mu     sync.Mutex
	seeded bool
	sold   int
	regs   map[string]memReg // by user ID
	seq    uint64
}

type memReg struct {
	reg model.Registration
	seq uint64
}

// MemoryOption customises a Memory ledger.
type MemoryOption func(*Memory)

// WithClock overrides the registration timestamp source (useful for tests).
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) {
		if now != nil {
			m.now = now
		}
	}
}

// NewMemory constructs a Memory ledger backed by the given capacity source.
func NewMemory(capacity CapacitySource, opts ...MemoryOption) *Memory {
	m := &Memory{
		capacity: capacity,
		now:      func() time.Time { return time.Now().UTC() },
		events:   make(map[string]*eventState),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) state(eventID string) *eventState {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.events[eventID]
	if !ok {
		st = &eventState{regs: make(map[string]memReg)}
		m.events[eventID] = st
	}
	return st
}

// Join implements Ledger. The duplicate check, the capacity check, and the
// sold increment all run under the event's mutex, so two concurrent joins
// for the last ticket resolve to exactly one success.
func (m *Memory) Join(ctx context.Context, eventID, userID string, attendee model.Attendee) (*model.Registration, error) {
	attendee, err := normalizeAttendee(attendee)
	if err != nil {
		return nil, err
	}

	st := m.state(eventID)
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, dup := st.regs[userID]; dup {
		return nil, model.ErrAlreadyRegistered
	}

	snap, err := m.capacity.GetCapacity(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !st.seeded {
		st.sold = snap.Sold
		st.seeded = true
	}
	if st.sold >= snap.Quantity {
		return nil, model.ErrCapacityExceeded
	}

	st.seq++
	reg := model.Registration{
		ID:            uuid.New().String(),
		EventID:       eventID,
		UserID:        userID,
		AttendeeName:  attendee.Name,
		AttendeeEmail: attendee.Email,
		AttendeePhone: attendee.Phone,
		CreatedAt:     m.now(),
	}
	st.regs[userID] = memReg{reg: reg, seq: st.seq}
	st.sold++

	return &reg, nil
}

// Leave implements Ledger.
func (m *Memory) Leave(ctx context.Context, eventID, userID string) error {
	st := m.state(eventID)
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.regs[userID]; !ok {
		return model.ErrNotRegistered
	}
	delete(st.regs, userID)
	if st.sold > 0 {
		st.sold--
	}
	return nil
}

// IsRegistered implements Ledger.
func (m *Memory) IsRegistered(ctx context.Context, eventID, userID string) (bool, error) {
	st := m.state(eventID)
	st.mu.Lock()
	defer st.mu.Unlock()

	_, ok := st.regs[userID]
	return ok, nil
}

// ListForEvent implements Ledger. Newest registrations first.
func (m *Memory) ListForEvent(ctx context.Context, eventID string) ([]model.Registration, error) {
	st := m.state(eventID)
	st.mu.Lock()
	defer st.mu.Unlock()

	entries := make([]memReg, 0, len(st.regs))
	for _, e := range st.regs {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].seq > entries[j].seq
	})

	regs := make([]model.Registration, len(entries))
	for i, e := range entries {
		regs[i] = e.reg
	}
	return regs, nil
}

// ListForUser implements Ledger.
func (m *Memory) ListForUser(ctx context.Context, userID string) ([]string, error) {
	m.mu.Lock()
	states := make(map[string]*eventState, len(m.events))
	for id, st := range m.events {
		states[id] = st
	}
	m.mu.Unlock()

	var eventIDs []string
	for id, st := range states {
		st.mu.Lock()
		_, ok := st.regs[userID]
		st.mu.Unlock()
		if ok {
			eventIDs = append(eventIDs, id)
		}
	}
	sort.Strings(eventIDs)
	return eventIDs, nil
}

// Sold returns the current sold counter for an event. Zero for events the
// ledger has not seen.
func (m *Memory) Sold(eventID string) int {
	st := m.state(eventID)
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.sold
}
