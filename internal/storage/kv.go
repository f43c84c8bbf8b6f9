// Package storage persists small string values with an optional expiry.
package storage

import "time"

// KV is a key-value store whose entries may expire. Expired entries are
// reported as absent; callers never check expiry themselves.
type KV interface {
	// Get returns the value for key and whether a live entry exists.
	Get(key string) (string, bool, error)

	// Set stores value under key. A ttl <= 0 means the entry never expires.
	Set(key, value string, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error

	Close() error
}

// expiry converts a ttl into an absolute deadline; zero means none.
func expiry(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return now.Add(ttl)
}
