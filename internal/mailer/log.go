package mailer

import (
	"context"
	"log/slog"
)

// LogSender writes emails to the log instead of sending them. Used in development.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, email Email) error {
	if email.To == "" {
		return ErrNoRecipient
	}
	s.logger.InfoContext(ctx, "email (log delivery)",
		"to", email.To,
		"subject", email.Subject,
		"reminder_log_id", email.ReminderLogID,
		"html_bytes", len(email.HTML))
	return nil
}
