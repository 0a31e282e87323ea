package mailer_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taexpense/auth-service/pkg/mailer"
)

func TestSendEmailParams_Validate(t *testing.T) {
	t.Parallel()

	valid := mailer.SendEmailParams{
		SendTo:   "user@example.com",
		Subject:  "Your OTP Code",
		BodyHTML: "<p>123456</p>",
	}
	assert.NoError(t, valid.Validate())

	for name, params := range map[string]mailer.SendEmailParams{
		"missing recipient": {Subject: "s", BodyHTML: "b"},
		"bad recipient":     {SendTo: "nope", Subject: "s", BodyHTML: "b"},
		"missing subject":   {SendTo: "user@example.com", BodyHTML: "b"},
		"missing body":      {SendTo: "user@example.com", Subject: "s"},
	} {
		assert.ErrorIs(t, params.Validate(), mailer.ErrInvalidParams, name)
	}
}

func TestNewPostmarkClient_RequiresTokens(t *testing.T) {
	t.Parallel()

	_, err := mailer.NewPostmarkClient(mailer.Config{
		SenderEmail:  "no-reply@example.com",
		SupportEmail: "support@example.com",
	})
	assert.ErrorIs(t, err, mailer.ErrInvalidConfig)

	_, err = mailer.NewPostmarkClient(mailer.Config{
		PostmarkServerToken:  "server",
		PostmarkAccountToken: "account",
		SenderEmail:          "not-an-email",
		SupportEmail:         "support@example.com",
	})
	assert.ErrorIs(t, err, mailer.ErrInvalidConfig)
}

func TestConfig_Configured(t *testing.T) {
	t.Parallel()

	assert.False(t, mailer.Config{}.Configured())
	assert.False(t, mailer.Config{PostmarkServerToken: "s"}.Configured())
	assert.True(t, mailer.Config{PostmarkServerToken: "s", PostmarkAccountToken: "a"}.Configured())
}

func TestLogSender_SendEmail(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	sender := mailer.NewLogSender(slog.New(slog.NewTextHandler(&buf, nil)))

	err := sender.SendEmail(context.Background(), mailer.SendEmailParams{
		SendTo:   "user@example.com",
		Subject:  "Your OTP Code",
		BodyHTML: "<p>Your OTP is 123456.</p>",
		Tag:      "otp",
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "user@example.com")
	assert.Contains(t, buf.String(), "123456")
}

func TestLogSender_RejectsInvalidParams(t *testing.T) {
	t.Parallel()

	sender := mailer.NewLogSender(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	err := sender.SendEmail(context.Background(), mailer.SendEmailParams{})
	assert.ErrorIs(t, err, mailer.ErrInvalidParams)
}
