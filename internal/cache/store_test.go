package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string `json:"name"`
}

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStore(rdb, time.Minute), mr
}

func TestRedisStore_RoundTripAndTTL(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()

	_, ok, err := s.Get(ctx, DealKey("d1"))
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, DealKey("d1"), []byte(`{"name":"acme"}`)))
	assert.True(t, mr.Exists("cache:/api/deals/d1"))

	b, ok, err := s.Get(ctx, DealKey("d1"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"name":"acme"}`, string(b))

	mr.FastForward(2 * time.Minute)
	_, ok, err = s.Get(ctx, DealKey("d1"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInvalidate_RemovesOnlyDependents(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()
	for _, k := range []Key{MatchKey("m1"), MatchKey("m2"), DealBuyersKey("d1"), DealKey("d1")} {
		require.NoError(t, s.Set(ctx, k, []byte(`{}`)))
	}

	require.NoError(t, Invalidate(ctx, s, UpdateChecklist, Scope{DealID: "d1", MatchID: "m1"}))

	assert.False(t, mr.Exists("cache:/api/matches/m1"))
	assert.False(t, mr.Exists("cache:/api/deals/d1/buyers"))
	assert.True(t, mr.Exists("cache:/api/matches/m2"))
	assert.True(t, mr.Exists("cache:/api/deals/d1"))
}

func TestReadThrough(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	calls := 0
	load := func(context.Context) (payload, error) {
		calls++
		return payload{Name: "acme"}, nil
	}

	v, err := ReadThrough(ctx, s, DealKey("d1"), load)
	require.NoError(t, err)
	assert.Equal(t, "acme", v.Name)

	v, err = ReadThrough(ctx, s, DealKey("d1"), load)
	require.NoError(t, err)
	assert.Equal(t, "acme", v.Name)
	assert.Equal(t, 1, calls)

	require.NoError(t, Invalidate(ctx, s, UpdateDeal, Scope{DealID: "d1"}))
	_, err = ReadThrough(ctx, s, DealKey("d1"), load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestReadThrough_LoadErrorIsNotCached(t *testing.T) {
	s := NewMemoryStore()
	boom := errors.New("db down")

	_, err := ReadThrough(context.Background(), s, DealKey("d1"), func(context.Context) (payload, error) {
		return payload{}, boom
	})

	assert.ErrorIs(t, err, boom)
	assert.False(t, s.Has(DealKey("d1")))
}

func TestReadThrough_FillRacingInvalidationIsDropped(t *testing.T) {
	redisStore, _ := newRedisStore(t)
	stores := map[string]Store{"memory": NewMemoryStore(), "redis": redisStore}

	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			// the mutation commits and invalidates while the read is loading
			v, err := ReadThrough(ctx, s, DealKey("d1"), func(ctx context.Context) (payload, error) {
				require.NoError(t, Invalidate(ctx, s, UpdateDeal, Scope{DealID: "d1"}))
				return payload{Name: "before update"}, nil
			})
			require.NoError(t, err)
			assert.Equal(t, "before update", v.Name)

			_, ok, err := s.Get(ctx, DealKey("d1"))
			require.NoError(t, err)
			assert.False(t, ok, "stale fill must not be cached")

			// the next read fills normally
			_, err = ReadThrough(ctx, s, DealKey("d1"), func(context.Context) (payload, error) {
				return payload{Name: "after update"}, nil
			})
			require.NoError(t, err)
			b, ok, err := s.Get(ctx, DealKey("d1"))
			require.NoError(t, err)
			require.True(t, ok)
			assert.JSONEq(t, `{"name":"after update"}`, string(b))
		})
	}
}

func TestMemoryStore_ClearDropsInFlightFills(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_, err := ReadThrough(ctx, s, MatchKey("m1"), func(context.Context) (payload, error) {
		s.Clear()
		return payload{Name: "previous session"}, nil
	})
	require.NoError(t, err)
	assert.False(t, s.Has(MatchKey("m1")))
}

func TestRedisStore_SetIfVersion(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()

	ver, err := s.Version(ctx, DealKey("d1"))
	require.NoError(t, err)
	assert.Zero(t, ver)

	require.NoError(t, s.Delete(ctx, DealKey("d1")))
	assert.True(t, mr.Exists("cachever:/api/deals/d1"))

	ok, err := s.SetIfVersion(ctx, DealKey("d1"), []byte(`{}`), ver)
	require.NoError(t, err)
	assert.False(t, ok)

	ver, err = s.Version(ctx, DealKey("d1"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), ver)
	ok, err = s.SetIfVersion(ctx, DealKey("d1"), []byte(`{}`), ver)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, time.Minute, mr.TTL("cache:/api/deals/d1"))
}
