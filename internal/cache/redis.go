package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix     = "cache:"
	redisVersionPrefix = "cachever:"
)

// setIfVersion writes KEYS[1] only while the version counter KEYS[2] still
// holds ARGV[2]. A missing counter reads as 0.
var setIfVersion = redis.NewScript(`
local v = redis.call('GET', KEYS[2])
if (v or '0') ~= ARGV[2] then
	return 0
end
if ARGV[3] == '0' then
	redis.call('SET', KEYS[1], ARGV[1])
else
	redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
end
return 1
`)

// RedisStore keeps serialized responses in Redis with a fixed TTL.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, key Key) ([]byte, bool, error) {
	b, err := s.rdb.Get(ctx, redisKeyPrefix+key.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key Key, value []byte) error {
	return s.rdb.Set(ctx, redisKeyPrefix+key.String(), value, s.ttl).Err()
}

// Delete removes keys and bumps their version counters in one transaction.
func (s *RedisStore) Delete(ctx context.Context, keys ...Key) error {
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = redisKeyPrefix + k.String()
	}
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, names...)
		for _, k := range keys {
			ver := redisVersionPrefix + k.String()
			pipe.Incr(ctx, ver)
			pipe.Expire(ctx, ver, s.versionTTL())
		}
		return nil
	})
	return err
}

func (s *RedisStore) Version(ctx context.Context, key Key) (int64, error) {
	v, err := s.rdb.Get(ctx, redisVersionPrefix+key.String()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func (s *RedisStore) SetIfVersion(ctx context.Context, key Key, value []byte, version int64) (bool, error) {
	n, err := setIfVersion.Run(ctx, s.rdb,
		[]string{redisKeyPrefix + key.String(), redisVersionPrefix + key.String()},
		value, strconv.FormatInt(version, 10), s.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// versionTTL outlives any entry filled under the old version.
func (s *RedisStore) versionTTL() time.Duration {
	return max(2*s.ttl, time.Hour)
}
