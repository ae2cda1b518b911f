package popularity

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const viewsKeyPrefix = "event:views:"

// Redis is a Store backed by a Redis instance, one counter key per event.
type Redis struct {
	client *redis.Client
}

// NewRedis connects to the given Redis URL and verifies the connection.
// Returns nil if the URL is empty (Redis not configured).
func NewRedis(ctx context.Context, url string) (*Redis, error) {
	if url == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &Redis{client: client}, nil
}

// Counter implements Store.
func (r *Redis) Counter(ctx context.Context, eventID string) (int64, error) {
	n, err := r.client.Get(ctx, viewsKeyPrefix+eventID).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get counter: %w", err)
	}
	return n, nil
}

// Counters implements Store using a single MGET round trip.
func (r *Redis) Counters(ctx context.Context, eventIDs []string) (map[string]int64, error) {
	out := make(map[string]int64, len(eventIDs))
	if len(eventIDs) == 0 {
		return out, nil
	}

	keys := make([]string, len(eventIDs))
	for i, id := range eventIDs {
		keys[i] = viewsKeyPrefix + id
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("mget counters: %w", err)
	}

	for i, v := range values {
		var n int64
		if s, ok := v.(string); ok {
			n, _ = strconv.ParseInt(s, 10, 64)
		}
		out[eventIDs[i]] = n
	}
	return out, nil
}

// Increment implements Store.
func (r *Redis) Increment(ctx context.Context, eventID string) error {
	if err := r.client.Incr(ctx, viewsKeyPrefix+eventID).Err(); err != nil {
		return fmt.Errorf("incr counter: %w", err)
	}
	return nil
}

// Health checks the Redis connection.
func (r *Redis) Health(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}
