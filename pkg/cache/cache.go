package cache

import (
	"context"
	"time"
)

// Default TTLs for cached artifacts.
const (
	// TTLResult is the lifetime of cached decyclification results.
	// Results are pure functions of their input, so the TTL exists only to
	// bound cache growth.
	TTLResult = 7 * 24 * time.Hour

	// TTLSchedule is the lifetime of cached schedule batch sequences.
	TTLSchedule = 24 * time.Hour
)

// Cache stores computed artifacts keyed by opaque strings.
// Implementations: [FileCache] for CLI usage, [RedisCache] for the server,
// [NullCache] to disable caching.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a time-to-live. A non-positive ttl stores the
	// entry without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Keyer generates cache keys for the engine's artifacts.
type Keyer interface {
	// ResultKey generates a key for a decyclification result, derived from
	// the graph hash and the start node.
	ResultKey(graphHash, start string) string

	// ScheduleKey generates a key for a schedule batch sequence, derived
	// from the graph hash, iterator mode, and cycle count.
	ScheduleKey(graphHash, mode string, cycles int) string
}

// DefaultKeyer is the standard key scheme: prefix plus a SHA-256 digest of
// the key components.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// ResultKey generates a key for a decyclification result.
func (k *DefaultKeyer) ResultKey(graphHash, start string) string {
	return hashKey("result", graphHash, start)
}

// ScheduleKey generates a key for a schedule batch sequence.
func (k *DefaultKeyer) ScheduleKey(graphHash, mode string, cycles int) string {
	return hashKey("schedule", graphHash, mode, cycles)
}
