package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/seeacid/stardeadIA/internal/domain"
	apperrors "github.com/seeacid/stardeadIA/pkg/errors"
)

const keyPrefix = "cart:"

// snapshotVersion is the current cart snapshot schema version. Snapshots
// with a different version are treated as malformed.
const snapshotVersion = 1

// snapshot is the stored cart envelope.
type snapshot struct {
	Version int         `json:"version"`
	Cart    domain.Cart `json:"cart"`
}

// CartRepository implements repository.CartRepository using Redis. Each cart
// is a single JSON snapshot under one key with a sliding TTL.
type CartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartRepository creates a new Redis-backed cart repository.
func NewCartRepository(client *redis.Client, ttl time.Duration) *CartRepository {
	return &CartRepository{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves a cart snapshot by cart ID from Redis.
func (r *CartRepository) Get(ctx context.Context, cartID string) (*domain.Cart, error) {
	key := keyPrefix + cartID

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("cart", cartID)
		}
		return nil, fmt.Errorf("redis get cart: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal cart snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("cart snapshot version %d not supported", snap.Version)
	}

	return &snap.Cart, nil
}

// Save persists a cart snapshot to Redis with the configured TTL.
func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	key := keyPrefix + cart.ID

	data, err := json.Marshal(snapshot{Version: snapshotVersion, Cart: *cart})
	if err != nil {
		return fmt.Errorf("marshal cart snapshot: %w", err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set cart: %w", err)
	}

	return nil
}

// Delete removes the cart snapshot for the cart ID from Redis.
func (r *CartRepository) Delete(ctx context.Context, cartID string) error {
	key := keyPrefix + cartID

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del cart: %w", err)
	}

	return nil
}
