package infra

import (
	"errors"
	"net/smtp"
	"testing"

	"dealflow/internal/config"

	"github.com/jordan-wright/email"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailer_DisabledDropsMessage(t *testing.T) {
	m := NewMailer(&config.Config{})
	m.send = func(*email.Email, string, smtp.Auth) error {
		t.Fatal("send must not be called without SMTP host")
		return nil
	}
	assert.False(t, m.Enabled())
	assert.NoError(t, m.Send("a@b.c", "hi", "body"))
}

func TestMailer_Send(t *testing.T) {
	m := NewMailer(&config.Config{SMTPHost: "mail.local", SMTPPort: 2525, MailFrom: "bot@dealflow.local"})
	var got *email.Email
	var gotAddr string
	m.send = func(e *email.Email, addr string, auth smtp.Auth) error {
		got, gotAddr = e, addr
		assert.Nil(t, auth)
		return nil
	}
	require.NoError(t, m.Send("broker@firm.com", "Reset", "link"))
	assert.Equal(t, "mail.local:2525", gotAddr)
	assert.Equal(t, []string{"broker@firm.com"}, got.To)
	assert.Equal(t, "bot@dealflow.local", got.From)
	assert.Equal(t, "link", string(got.Text))

	m.send = func(*email.Email, string, smtp.Auth) error { return errors.New("421") }
	assert.ErrorContains(t, m.Send("x@y.z", "s", "b"), "421")
}
