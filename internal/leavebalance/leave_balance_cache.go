package leavebalance

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const BalanceKeyPrefix = "leave:balances:"

func GetBalanceCacheKey(employeeID string, year int) string {
	return fmt.Sprintf("%s%s:%d", BalanceKeyPrefix, employeeID, year)
}

// Cache holds the read view of an employee's balances for a year. Misses and
// failures are treated alike: the caller falls back to the database.
type Cache interface {
	Get(ctx context.Context, employeeID string, year int) ([]BalanceResponse, bool)
	Set(ctx context.Context, employeeID string, year int, balances []BalanceResponse)
	Invalidate(ctx context.Context, employeeID string, year int)
}

type redisCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCache returns a redis-backed cache, or a no-op cache when rdb is nil.
func NewCache(rdb *redis.Client, ttl time.Duration, logger ...*zap.Logger) Cache {
	if rdb == nil {
		return noopCache{}
	}
	l := zap.L().Named("leavebalance.cache")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavebalance.cache")
	}
	return &redisCache{rdb: rdb, ttl: ttl, logger: l}
}

func (c *redisCache) Get(ctx context.Context, employeeID string, year int) ([]BalanceResponse, bool) {
	cached, err := c.rdb.Get(ctx, GetBalanceCacheKey(employeeID, year)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("balance cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var resp []BalanceResponse
	if err := json.Unmarshal([]byte(cached), &resp); err != nil {
		return nil, false
	}
	return resp, true
}

func (c *redisCache) Set(ctx context.Context, employeeID string, year int, balances []BalanceResponse) {
	data, err := json.Marshal(balances)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, GetBalanceCacheKey(employeeID, year), data, c.ttl).Err(); err != nil {
		c.logger.Warn("balance cache write failed", zap.Error(err))
	}
}

func (c *redisCache) Invalidate(ctx context.Context, employeeID string, year int) {
	key := GetBalanceCacheKey(employeeID, year)
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		c.logger.Error("failed to invalidate balance cache", zap.String("key", key), zap.Error(err))
	}
}

type noopCache struct{}

func (noopCache) Get(context.Context, string, int) ([]BalanceResponse, bool) { return nil, false }
func (noopCache) Set(context.Context, string, int, []BalanceResponse)        {}
func (noopCache) Invalidate(context.Context, string, int)                    {}
