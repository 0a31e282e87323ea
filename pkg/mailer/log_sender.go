package mailer

import (
	"context"
	"log/slog"

	"github.com/taexpense/auth-service/pkg/logger"
)

// LogSender implements EmailSender for environments without a configured
// delivery transport. Messages are written to the application log instead of
// being delivered, which keeps local development and tests free of external
// dependencies.
type LogSender struct {
	log *slog.Logger
}

// NewLogSender creates a log-backed email sender.
func NewLogSender(log *slog.Logger) EmailSender {
	return &LogSender{log: log}
}

// SendEmail logs the message instead of delivering it. The body is logged in
// full; it contains nothing the recipient would not receive anyway.
func (s *LogSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "outbound email (delivery disabled)",
		slog.String("send_to", params.SendTo),
		slog.String("subject", params.Subject),
		slog.String("body_html", params.BodyHTML),
		slog.String("tag", params.Tag),
		logger.Component("mailer"),
	)
	return nil
}
