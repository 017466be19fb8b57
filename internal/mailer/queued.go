package mailer

import (
	"context"
	"fmt"

	"lexdesk.app/deedwatch/common/logger"
	"lexdesk.app/deedwatch/internal/queue"
)

// QueuedSender hands emails to the mail stream; cmd/worker delivers them.
type QueuedSender struct {
	producer queue.Producer
}

func NewQueuedSender(producer queue.Producer) *QueuedSender {
	return &QueuedSender{producer: producer}
}

func (s *QueuedSender) Send(ctx context.Context, email Email) error {
	if email.To == "" {
		return ErrNoRecipient
	}
	if email.ReminderLogID == 0 {
		return fmt.Errorf("queued email requires a reminder log id")
	}

	msg := queue.MailMessage{
		ReminderLogID:  email.ReminderLogID,
		OrganizationID: email.OrganizationID,
		DeedID:         email.DeedID,
		To:             email.To,
		Subject:        email.Subject,
		HTML:           email.HTML,
		Traceparent:    logger.Traceparent(ctx),
		Attempt:        1,
	}

	return s.producer.Enqueue(ctx, msg)
}
