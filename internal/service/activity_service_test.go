package service

import (
	"context"
	"testing"
	"time"

	"dealflow/internal/cache"
	"dealflow/internal/dto"
	"dealflow/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityService_CompleteAndReopen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.seedDeal(t, "Sunrise Yoga")
	clock := time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)
	svc := &activityService{activities: repository.NewActivityRepository(f.db), store: f.store, now: func() time.Time { return clock }}
	f.prime(t, cache.ActivitiesKey(d.ID.String()))

	a, err := svc.Create(ctx, dto.CreateActivityRequest{DealID: d.ID.String(), Type: "task", Title: "Request tax returns"})
	require.NoError(t, err)
	assert.Equal(t, "pending", a.Status)
	assert.Nil(t, a.CompletedAt)
	assert.False(t, f.store.Has(cache.ActivitiesKey(d.ID.String())))

	completed := "completed"
	a, err = svc.Update(ctx, mustUUID(t, a.ID), dto.UpdateActivityRequest{Status: &completed})
	require.NoError(t, err)
	require.NotNil(t, a.CompletedAt)
	assert.True(t, clock.Equal(*a.CompletedAt))

	pending := "pending"
	a, err = svc.Update(ctx, mustUUID(t, a.ID), dto.UpdateActivityRequest{Status: &pending})
	require.NoError(t, err)
	assert.Nil(t, a.CompletedAt)

	list, err := f.activities.ListByEntity(ctx, d.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestActivityService_CreateRejectsBadID(t *testing.T) {
	f := newFixture(t)
	_, err := f.activities.Create(context.Background(), dto.CreateActivityRequest{DealID: "nope", Type: "note", Title: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
