// Package mailer delivers reminder emails.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"lexdesk.app/deedwatch/core/config"
	"lexdesk.app/deedwatch/internal/queue"
)

var ErrNoRecipient = errors.New("email has no recipient")

// Email is a single-recipient HTML message. The reference ids are optional and let
// queued delivery deduplicate redeliveries by ledger entry.
type Email struct {
	To      string
	Subject string
	HTML    string

	ReminderLogID  int64
	OrganizationID int64
	DeedID         int64
}

type Sender interface {
	Send(ctx context.Context, email Email) error
}

// New builds the Sender for a delivery mode. The producer is only used by "queue".
func New(delivery string, cfg config.MailConfig, producer queue.Producer, logger *slog.Logger) (Sender, error) {
	switch delivery {
	case config.MailDeliveryLog:
		return NewLogSender(logger), nil
	case config.MailDeliverySendGrid:
		return NewSendGridSender(cfg.SendGridKey, cfg.FromName, cfg.FromEmail), nil
	case config.MailDeliveryQueue:
		if producer == nil {
			return nil, fmt.Errorf("queue delivery requires a producer")
		}
		return NewQueuedSender(producer), nil
	default:
		return nil, fmt.Errorf("unknown mail delivery %q", delivery)
	}
}
