package cache

import "time"

// NoExpiration keeps an item until it is deleted.
const NoExpiration time.Duration = -1

// CacheService defines the behavior for caching mechanisms
type CacheService interface {
	// Get retrieves a value from the cache
	// Returns value, true if found
	// Returns nil, false if not found
	Get(key string) (interface{}, bool)

	// Set adds a value to the cache with a duration
	Set(key string, value interface{}, duration time.Duration)

	// Add stores the value only if the key is absent and reports whether it did.
	Add(key string, value interface{}, duration time.Duration) bool

	// Increment adds n to an int64 counter, creating it at zero, and returns
	// the new value.
	Increment(key string, n int64) int64

	// Delete removes a value from the cache
	Delete(key string)

	// Flush removes all items
	Flush()
}
