// Package cache provides the keyed response cache backing the stats
// fetchers. Entries carry their fetch timestamp so staleness is an explicit
// check against the configured TTL instead of an ambient side effect.
package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Entry is a single cached API response.
type Entry struct {
	Payload   json.RawMessage `json:"payload"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// Expired reports whether the entry is stale at the given instant.
func (e *Entry) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.FetchedAt) >= ttl
}

// Store is a keyed cache of remote API responses.
// Get returns (nil, nil) on a miss.
type Store interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, key string, entry *Entry) error
	// Clear drops every entry ("Refresh All").
	Clear(ctx context.Context) error
}
