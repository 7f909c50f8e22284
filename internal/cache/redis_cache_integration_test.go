package cache

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"retailpos/backend/internal/domain"
)

func TestRedisReportCacheRoundTrip(t *testing.T) {
	addr := os.Getenv("RETAILPOS_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set RETAILPOS_TEST_REDIS_ADDR to run redis integration test")
	}

	ctx := context.Background()
	c := NewRedisReportCache(addr, "", 0)
	t.Cleanup(func() {
		_ = c.Close()
	})
	require.NoError(t, c.Ping(ctx))

	key := fmt.Sprintf("report:daily:test-%d", time.Now().UnixNano())
	t.Cleanup(func() {
		_ = c.Invalidate(context.Background(), key)
	})

	_, found, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.False(t, found)

	report := &domain.DailyReport{
		Date:         "2026-08-30",
		Transactions: 3,
		GrossSales:   1050,
		Refunds:      700,
		NetSales:     350,
		ByPayment: []domain.DailyReportPayment{
			{PaymentMethod: domain.PaymentMethodEWallet, Transactions: 2, Total: 350},
		},
	}
	require.NoError(t, c.Set(ctx, key, report, time.Minute))

	got, found, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, report, got)

	require.NoError(t, c.Invalidate(ctx, key))
	_, found, err = c.Get(ctx, key)
	require.NoError(t, err)
	require.False(t, found)
}
