// Package popularity tracks per-event view counters used by trending
// ranking. The engine reads counters; increments happen on event reads.
package popularity

import "context"

// Store exposes monotonically increasing view counters keyed by event ID.
type Store interface {
	// Counter returns the current view count. Unknown events count zero.
	Counter(ctx context.Context, eventID string) (int64, error)

	// Counters returns the view counts for a batch of events. Every
	// requested ID is present in the result.
	Counters(ctx context.Context, eventIDs []string) (map[string]int64, error)

	// Increment bumps the view counter by one.
	Increment(ctx context.Context, eventID string) error
}
