package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/gereacosta1/OnePointMotors/internal/domain"
	"github.com/redis/go-redis/v9"
)

// persistedCartVersion tags the serialized blob so a future schema change can
// migrate or discard old carts safely.
const persistedCartVersion = 1

type persistedCart struct {
	Version int         `json:"version"`
	Cart    domain.Cart `json:"cart"`
}

// RedisStore persists session carts in Redis with a TTL, so carts survive
// server restarts but abandoned ones eventually expire.
type RedisStore struct {
	client  *redis.Client
	baseTTL time.Duration
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client:  client,
		baseTTL: 24 * time.Hour,
	}
}

func (r *RedisStore) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	key := cartKey(sessionID)

	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var blob persistedCart
	if err2 := json.Unmarshal(data, &blob); err2 != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err2)
	}
	if blob.Version != persistedCartVersion {
		// Unknown layout, treat as absent rather than guessing.
		return nil, ErrCartNotFound
	}

	return &blob.Cart, nil
}

func (r *RedisStore) Save(ctx context.Context, cart *domain.Cart) error {
	key := cartKey(cart.SessionID)

	blob, err := json.Marshal(persistedCart{
		Version: persistedCartVersion,
		Cart:    *cart,
	})
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	jitter := time.Duration(rand.Intn(30)) * time.Minute
	ttl := r.baseTTL + jitter
	if err := r.client.Set(ctx, key, blob, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}
