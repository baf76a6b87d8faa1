package worker

// email_worker.go
// Processes email jobs from QueueEmail: password reset links and activity
// reminders. Sends go through the SMTP circuit breaker.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dealflow/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	Kind    string `json:"kind"` // password_reset | activity_reminder
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Sender delivers one plain-text message. *infra.Mailer implements it.
type Sender interface {
	Send(to, subject, body string) error
}

type EmailWorker struct {
	mailer Sender
	cb     *infra.CircuitBreaker
}

func NewEmailWorker(mailer Sender, cb *infra.CircuitBreaker) *EmailWorker {
	return &EmailWorker{mailer: mailer, cb: cb}
}

var errEmptyRecipient = errors.New("email_worker: empty to_email")

// Process sends one email job. It is registered as the pool Handler for JobEmail.
func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("email_worker: invalid payload: %w", err)
	}
	if payload.ToEmail == "" {
		return errEmptyRecipient
	}

	err := w.cb.Execute(func() error {
		return w.mailer.Send(payload.ToEmail, payload.Subject, payload.Body)
	})
	if err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Str("kind", payload.Kind).Msg("email_worker: send failed")
		return err
	}
	log.Info().Str("to", payload.ToEmail).Str("kind", payload.Kind).Msg("email_worker: sent")
	return nil
}

// PasswordResetEmail builds the message carrying a reset link.
func PasswordResetEmail(to, link string) EmailJobPayload {
	return EmailJobPayload{
		Kind:    "password_reset",
		ToEmail: to,
		Subject: "Reset your password",
		Body: "We received a request to reset your password.\n\n" +
			"Open this link within one hour to choose a new one:\n" + link + "\n\n" +
			"If you did not ask for this, ignore this email.",
	}
}

// ActivityReminderEmail builds the reminder for an activity due soon.
func ActivityReminderEmail(to, title string, due time.Time, link string) EmailJobPayload {
	return EmailJobPayload{
		Kind:    "activity_reminder",
		ToEmail: to,
		Subject: "Reminder: " + title,
		Body: fmt.Sprintf("%q is due %s.\n\n%s",
			title, due.UTC().Format("Mon Jan 2 15:04 MST"), link),
	}
}
