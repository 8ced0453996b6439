package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryExpired(t *testing.T) {
	fetched := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	entry := &Entry{FetchedAt: fetched}
	ttl := 1800 * time.Second

	assert.False(t, entry.Expired(fetched.Add(time.Second), ttl))
	assert.False(t, entry.Expired(fetched.Add(1799*time.Second), ttl))
	assert.True(t, entry.Expired(fetched.Add(1800*time.Second), ttl))
	assert.True(t, entry.Expired(fetched.Add(time.Hour), ttl))
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	missing, err := store.Get(ctx, "profile:alice")
	require.NoError(t, err)
	assert.Nil(t, missing)

	entry := &Entry{
		Payload:   json.RawMessage(`{"totalSolved":42}`),
		FetchedAt: time.Now(),
	}
	require.NoError(t, store.Set(ctx, "profile:alice", entry))

	got, err := store.Get(ctx, "profile:alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.JSONEq(t, `{"totalSolved":42}`, string(got.Payload))

	require.NoError(t, store.Clear(ctx))

	cleared, err := store.Get(ctx, "profile:alice")
	require.NoError(t, err)
	assert.Nil(t, cleared)
}
