package token

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)

	issued := NewToken("user-1", "abc", "")
	require.NoError(t, store.Put(ctx, issued))

	got, err := store.Get(ctx, issued.ID)
	require.NoError(t, err)
	assert.Equal(t, "abc", got.Value)
	assert.Equal(t, Bearer, got.Type)
	assert.True(t, got.ExpiresAt.IsZero())

	got.Value = "mutated"
	again, err := store.Get(ctx, issued.ID)
	require.NoError(t, err)
	assert.Equal(t, "abc", again.Value)

	require.NoError(t, store.Revoke(ctx, issued.ID))
	_, err = store.Get(ctx, issued.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Revoke(ctx, issued.ID), ErrNotFound)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	fresh := NewToken("user-1", "abc", Basic)
	require.NoError(t, store.Put(ctx, fresh))
	assert.False(t, fresh.ExpiresAt.IsZero())

	stale := NewToken("user-2", "def", Bearer)
	stale.ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, store.Put(ctx, stale))

	_, err := store.Get(ctx, fresh.ID)
	assert.NoError(t, err)
	_, err = store.Get(ctx, stale.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestType_Scheme(t *testing.T) {
	assert.Equal(t, "Bearer", Bearer.Scheme())
	assert.Equal(t, "Basic", Basic.Scheme())
	assert.Equal(t, "Bearer", Type("").Scheme())
}

func TestTTLFor(t *testing.T) {
	now := time.Now()
	assert.Equal(t, time.Duration(0), ttlFor(&Token{}, now))
	assert.Equal(t, time.Second, ttlFor(&Token{ExpiresAt: now.Add(-time.Hour)}, now))
	assert.Equal(t, time.Minute, ttlFor(&Token{ExpiresAt: now.Add(time.Minute)}, now))
}
