package cart

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gereacosta1/OnePointMotors/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and returns a RedisStore instance
func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	store := NewRedisStore(client)

	cleanup := func() {
		client.Close()
	}

	return store, mr, cleanup
}

func testCart(sessionID string) *domain.Cart {
	return &domain.Cart{
		SessionID: sessionID,
		Items: []domain.CartItem{
			{ID: "1", Name: "Pro Max", Price: 1299, Slug: "pro-max", Quantity: 2},
			{ID: "2", Name: "Sport", Price: 1599, Slug: "sport", Quantity: 1},
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestRedisStore_SaveGetRoundTrip(t *testing.T) {
	store, _, cleanup := setupTestRedis(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testCart("s1")))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", got.SessionID)
	require.Len(t, got.Items, 2)
	assert.Equal(t, 2, got.Items[0].Quantity)
}

func TestRedisStore_MissingCart(t *testing.T) {
	store, _, cleanup := setupTestRedis(t)
	defer cleanup()

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestRedisStore_SaveSetsTTL(t *testing.T) {
	store, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	require.NoError(t, store.Save(context.Background(), testCart("s1")))

	ttl := mr.TTL(cartKey("s1"))
	assert.Greater(t, ttl, time.Duration(0))
}

func TestRedisStore_UnknownVersionTreatedAsMissing(t *testing.T) {
	store, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	blob, err := json.Marshal(persistedCart{
		Version: 99,
		Cart:    *testCart("s1"),
	})
	require.NoError(t, err)
	mr.Set(cartKey("s1"), string(blob))

	_, err = store.Get(context.Background(), "s1")
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestRedisStore_Delete(t *testing.T) {
	store, _, cleanup := setupTestRedis(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testCart("s1")))
	require.NoError(t, store.Delete(ctx, "s1"))

	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrCartNotFound)
}
