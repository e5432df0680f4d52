package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// BalanceCache implements usecase.BalanceCache using Redis.
type BalanceCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewBalanceCache creates a new BalanceCache.
func NewBalanceCache(client *redis.Client, ttl time.Duration) *BalanceCache {
	return &BalanceCache{
		client: client,
		prefix: "coin:balance:",
		ttl:    ttl,
	}
}

// GetBalance retrieves a cached balance. The second return is false on a miss.
func (c *BalanceCache) GetBalance(ctx context.Context, userID string) (int64, bool, error) {
	val, err := c.client.Get(ctx, c.prefix+userID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}

		return 0, false, err
	}

	balance, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, err
	}

	return balance, true, nil
}

// SetBalance stores a balance with the configured TTL.
func (c *BalanceCache) SetBalance(ctx context.Context, userID string, balance int64) error {
	return c.client.Set(ctx, c.prefix+userID, strconv.FormatInt(balance, 10), c.ttl).Err()
}

// Invalidate drops the cached balance for a user.
func (c *BalanceCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, c.prefix+userID).Err()
}
