package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	c := NewWithClient(redis.NewClient(&redis.Options{Addr: srv.Addr()}))
	t.Cleanup(func() { c.Close() })

	return c, srv
}

func TestCache_JSONRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	type entry struct {
		Tier  string `json:"tier"`
		Score int    `json:"score"`
	}

	require.NoError(t, c.SetJSON(ctx, VerificationKey("ctr-1"), entry{Tier: "gold", Score: 100}, time.Minute))

	var got entry
	require.NoError(t, c.GetJSON(ctx, VerificationKey("ctr-1"), &got))
	require.Equal(t, entry{Tier: "gold", Score: 100}, got)

	exists, err := c.Exists(ctx, VerificationKey("ctr-1"))
	require.NoError(t, err)
	require.True(t, exists)

	require.NoError(t, c.Delete(ctx, VerificationKey("ctr-1")))
	require.ErrorIs(t, c.GetJSON(ctx, VerificationKey("ctr-1"), &got), ErrCacheMiss)
}

func TestCache_Expiry(t *testing.T) {
	c, srv := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	srv.FastForward(2 * time.Minute)

	_, err := c.Get(ctx, "k")
	require.ErrorIs(t, err, ErrCacheMiss)
}
