package worker

// reminder_cron.go
// Background goroutine that emails the assignee of every pending activity
// due within the next 24 hours, once per activity.

import (
	"context"
	"strings"
	"time"

	"dealflow/internal/infra"
	"dealflow/internal/model"
	"dealflow/internal/repository"

	"github.com/rs/zerolog/log"
)

const (
	reminderTickInterval = time.Minute
	reminderLookahead    = 24 * time.Hour
	reminderBatchSize    = 50
)

// ReminderCronConfig holds all dependencies for the reminder goroutine.
type ReminderCronConfig struct {
	Activities repository.ActivityRepository
	Dispatcher *Dispatcher
	// CB is the mail breaker; ticks are skipped while it is open.
	CB     *infra.CircuitBreaker
	Domain string
	Now    func() time.Time
}

// StartReminderCron launches a goroutine that ticks every minute until ctx
// is cancelled.
func StartReminderCron(ctx context.Context, cfg ReminderCronConfig) {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	go func() {
		ticker := time.NewTicker(reminderTickInterval)
		defer ticker.Stop()

		log.Info().Msg("reminder_cron: started")
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("reminder_cron: shutting down")
				return
			case <-ticker.C:
				processReminders(ctx, cfg)
			}
		}
	}()
}

// processReminders returns the number of reminders queued.
func processReminders(ctx context.Context, cfg ReminderCronConfig) int {
	if cfg.CB != nil && cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("reminder_cron: mail circuit breaker is open, skipping tick")
		return 0
	}

	now := cfg.Now()
	due, err := cfg.Activities.ListDueForReminder(ctx, now.Add(reminderLookahead), reminderBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("reminder_cron: failed to query due activities")
		return 0
	}

	queued := 0
	for i := range due {
		a := &due[i]
		to := strings.TrimSpace(*a.AssignedTo)
		if strings.Contains(to, "@") {
			link := strings.TrimRight(cfg.Domain, "/") + activityPath(a)
			if err := cfg.Dispatcher.EnqueueEmail(ctx, ActivityReminderEmail(to, a.Title, *a.DueDate, link)); err != nil {
				// leave remindedAt unset so the next tick retries
				log.Error().Err(err).Str("activity_id", a.ID.String()).Msg("reminder_cron: enqueue failed")
				continue
			}
			queued++
		} else {
			log.Debug().Str("activity_id", a.ID.String()).Str("assigned_to", to).Msg("reminder_cron: assignee is not an email, skipping")
		}
		if err := cfg.Activities.MarkReminded(ctx, a.ID, now); err != nil {
			log.Error().Err(err).Str("activity_id", a.ID.String()).Msg("reminder_cron: mark reminded failed")
		}
	}
	if queued > 0 {
		log.Info().Int("count", queued).Msg("reminder_cron: reminders queued")
	}
	return queued
}

// activityPath is the web app page the activity is shown on.
func activityPath(a *model.Activity) string {
	switch {
	case a.DealID != nil:
		return "/deals/" + a.DealID.String()
	case a.BuyingPartyID != nil:
		return "/buyers/" + a.BuyingPartyID.String()
	}
	return "/"
}
