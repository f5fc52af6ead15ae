package leavebalance_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go-hris-leave/internal/leavebalance"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestCache(t *testing.T) {
	ctx := context.Background()
	employeeID := "7b0c5f6e-54a1-4e0e-9f2e-3f3c1d6a9a10"
	cacheKey := leavebalance.GetBalanceCacheKey(employeeID, 2024)

	t.Run("hit", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		cache := leavebalance.NewCache(rdb, time.Minute)

		want := []leavebalance.BalanceResponse{{PolicyName: "Annual", Year: 2024, RemainingDays: days(4)}}
		raw, _ := json.Marshal(want)
		mock.ExpectGet(cacheKey).SetVal(string(raw))

		got, ok := cache.Get(ctx, employeeID, 2024)
		assert.True(t, ok)
		assert.Len(t, got, 1)
		assert.Equal(t, "Annual", got[0].PolicyName)
		assert.True(t, got[0].RemainingDays.Equal(days(4)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("miss", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		cache := leavebalance.NewCache(rdb, time.Minute)
		mock.ExpectGet(cacheKey).RedisNil()

		_, ok := cache.Get(ctx, employeeID, 2024)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("set and invalidate", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		cache := leavebalance.NewCache(rdb, time.Minute)

		balances := []leavebalance.BalanceResponse{{PolicyName: "Sick", Year: 2024}}
		raw, _ := json.Marshal(balances)
		mock.ExpectSet(cacheKey, raw, time.Minute).SetVal("OK")
		mock.ExpectDel(cacheKey).SetVal(1)

		cache.Set(ctx, employeeID, 2024, balances)
		cache.Invalidate(ctx, employeeID, 2024)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nil client is a no-op", func(t *testing.T) {
		cache := leavebalance.NewCache(nil, time.Minute)
		cache.Set(ctx, employeeID, 2024, nil)
		_, ok := cache.Get(ctx, employeeID, 2024)
		assert.False(t, ok)
	})
}
