package mailer

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"lexdesk.app/deedwatch/common/logger"
)

type SendGridSender struct {
	client *sendgrid.Client
	from   *sgmail.Email
}

func NewSendGridSender(apiKey, fromName, fromEmail string) *SendGridSender {
	return &SendGridSender{
		client: sendgrid.NewSendClient(apiKey),
		from:   sgmail.NewEmail(fromName, fromEmail),
	}
}

func (s *SendGridSender) Send(ctx context.Context, email Email) error {
	if email.To == "" {
		return ErrNoRecipient
	}

	m := sgmail.NewSingleEmail(s.from, email.Subject, sgmail.NewEmail("", email.To), "", email.HTML)
	if email.ReminderLogID != 0 {
		m.SetCustomArg("reminder_log_id", fmt.Sprint(email.ReminderLogID))
	}

	res, err := s.client.SendWithContext(ctx, m)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid send: status %d: %s", res.StatusCode, logger.Truncate(res.Body, 300))
	}
	return nil
}
