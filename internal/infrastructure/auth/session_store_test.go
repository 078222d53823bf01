package auth

import (
	"context"
	"testing"
	"time"

	"debt-ledger/internal/pkg/apperrors"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemorySessionStore()
	store.now = func() time.Time { return now }

	token, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Save(ctx, "tok", time.Minute))
	token, _ = store.Load(ctx)
	assert.Equal(t, "tok", token)

	now = now.Add(time.Minute)
	token, _ = store.Load(ctx)
	assert.Empty(t, token, "token must expire with its ttl")

	require.NoError(t, store.Save(ctx, "tok2", 0))
	require.NoError(t, store.Clear(ctx))
	token, _ = store.Load(ctx)
	assert.Empty(t, token)
}

func TestRedisSessionStore_Unreachable(t *testing.T) {
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	store := NewRedisSessionStore(client)

	assert.ErrorIs(t, store.Save(ctx, "tok", time.Minute), apperrors.ErrInternalServer)
	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, apperrors.ErrInternalServer)
	assert.ErrorIs(t, store.Clear(ctx), apperrors.ErrInternalServer)
}

func TestNewRedisSessionStore_NilClientPanics(t *testing.T) {
	assert.Panics(t, func() { NewRedisSessionStore(nil) })
}
