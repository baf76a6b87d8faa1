package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestDispatcher_EnqueueEmail(t *testing.T) {
	rdb := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, NewDispatcher(rdb).EnqueueEmail(ctx, PasswordResetEmail("a@firm.com", "http://x/reset?token=t")))

	raw, err := rdb.RPop(ctx, QueueEmail).Result()
	require.NoError(t, err)
	var job Job
	require.NoError(t, json.Unmarshal([]byte(raw), &job))
	assert.Equal(t, JobEmail, job.Type)

	var p EmailJobPayload
	require.NoError(t, json.Unmarshal(job.Payload, &p))
	assert.Equal(t, "a@firm.com", p.ToEmail)
	assert.Equal(t, "password_reset", p.Kind)
	assert.Contains(t, p.Body, "token=t")
}

func TestPool_ProcessesJobs(t *testing.T) {
	rdb := newTestRedis(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var handled atomic.Int32
	pool := NewPool(rdb)
	pool.Register(QueueEmail, JobEmail, func(context.Context, json.RawMessage) error {
		handled.Add(1)
		return nil
	})
	pool.Start(ctx, 2)

	d := NewDispatcher(rdb)
	for i := 0; i < 3; i++ {
		require.NoError(t, d.EnqueueEmail(ctx, EmailJobPayload{ToEmail: "x@y.z"}))
	}
	assert.Eventually(t, func() bool { return handled.Load() == 3 }, 3*time.Second, 10*time.Millisecond)

	cancel()
	pool.Wait()
}

func TestPool_FailedJobGoesToDLQ(t *testing.T) {
	rdb := newTestRedis(t)
	ctx := context.Background()

	pool := NewPool(rdb)
	pool.Register(QueueEmail, JobEmail, func(context.Context, json.RawMessage) error {
		return errors.New("smtp: 550 mailbox unavailable")
	})

	job, _ := json.Marshal(Job{Type: JobEmail, Payload: json.RawMessage(`{"to_email":"x@y.z"}`)})
	pool.process(ctx, QueueEmail, string(job))
	pool.process(ctx, QueueEmail, "not json")
	unknown, _ := json.Marshal(Job{Type: "sms", Payload: json.RawMessage(`{}`)})
	pool.process(ctx, QueueEmail, string(unknown))

	n, err := DLQLength(ctx, rdb, QueueEmail)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	entries, err := PeekDLQ(ctx, rdb, QueueEmail, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	// newest first
	assert.Equal(t, "sms", entries[0].JobType)
	assert.Equal(t, "unknown", entries[1].JobType)
	assert.Equal(t, JobEmail, entries[2].JobType)
	assert.Contains(t, entries[2].Reason, "550")
}
