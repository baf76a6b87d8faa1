package worker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"dealflow/internal/infra"
	"dealflow/internal/model"
	"dealflow/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestProcessReminders(t *testing.T) {
	db, err := infra.NewDatabase("sqlite::memory:")
	require.NoError(t, err)
	rdb := newTestRedis(t)
	ctx := context.Background()
	repo := repository.NewActivityRepository(db)

	now := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	soon := now.Add(2 * time.Hour)
	later := now.Add(48 * time.Hour)
	deal := model.Deal{CompanyName: "Acme", Stage: "valuation", HealthScore: 85, Owner: "o@firm.com"}
	require.NoError(t, db.Create(&deal).Error)

	dueSoon := &model.Activity{DealID: &deal.ID, Type: "task", Title: "Send CIM", Status: "pending", AssignedTo: strPtr("ana@firm.com"), DueDate: &soon}
	dueLater := &model.Activity{DealID: &deal.ID, Type: "task", Title: "Follow up", Status: "pending", AssignedTo: strPtr("ana@firm.com"), DueDate: &later}
	done := &model.Activity{DealID: &deal.ID, Type: "task", Title: "Done", Status: "completed", AssignedTo: strPtr("ana@firm.com"), DueDate: &soon}
	noEmail := &model.Activity{DealID: &deal.ID, Type: "task", Title: "Nameless", Status: "pending", AssignedTo: strPtr("Ana"), DueDate: &soon}
	for _, a := range []*model.Activity{dueSoon, dueLater, done, noEmail} {
		require.NoError(t, repo.Create(ctx, a))
	}

	cfg := ReminderCronConfig{
		Activities: repo,
		Dispatcher: NewDispatcher(rdb),
		Domain:     "https://app.dealflow.test/",
		Now:        func() time.Time { return now },
	}
	assert.Equal(t, 1, processReminders(ctx, cfg))

	raw, err := rdb.RPop(ctx, QueueEmail).Result()
	require.NoError(t, err)
	var job Job
	require.NoError(t, json.Unmarshal([]byte(raw), &job))
	var p EmailJobPayload
	require.NoError(t, json.Unmarshal(job.Payload, &p))
	assert.Equal(t, "ana@firm.com", p.ToEmail)
	assert.Contains(t, p.Body, "https://app.dealflow.test/deals/"+deal.ID.String())

	// reminded once only; the non-email assignee is marked too
	assert.Equal(t, 0, processReminders(ctx, cfg))
	got, err := repo.FindByID(ctx, noEmail.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.RemindedAt)
}

func TestProcessReminders_SkipsWhenBreakerOpen(t *testing.T) {
	cb := infra.NewCircuitBreaker(infra.CircuitBreakerConfig{Name: "smtp", FailureThreshold: 1, OpenTimeout: time.Hour})
	_ = cb.Execute(func() error { return assert.AnError })

	// Activities is nil: the tick must return before touching it
	assert.Equal(t, 0, processReminders(context.Background(), ReminderCronConfig{CB: cb, Now: time.Now}))
}
