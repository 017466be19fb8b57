// Package worker delivers queued reminder emails.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"lexdesk.app/deedwatch/common/logger"
	"lexdesk.app/deedwatch/internal/mailer"
	"lexdesk.app/deedwatch/internal/queue"
)

type Config struct {
	MaxAttempts int
	// ErrorBackoff is the pause after a failed stream read.
	ErrorBackoff time.Duration
}

type Worker struct {
	consumer Consumer
	claimer  DeliveryClaimer
	sender   mailer.Sender
	cfg      Config

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func New(consumer Consumer, claimer DeliveryClaimer, sender mailer.Sender, cfg Config) *Worker {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.ErrorBackoff <= 0 {
		cfg.ErrorBackoff = time.Second
	}
	return &Worker{
		consumer:  consumer,
		claimer:   claimer,
		sender:    sender,
		cfg:       cfg,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

func (w *Worker) Run(ctx context.Context) error {
	defer close(w.stoppedCh)

	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "deedwatch.worker.mail"})
	slog.InfoContext(ctx, "mail worker started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopCh:
			slog.InfoContext(ctx, "mail worker stopping")
			return nil
		default:
			if err := w.processOneBatch(ctx); err != nil {
				slog.ErrorContext(ctx, "batch processing error", "error", err)
				time.Sleep(w.cfg.ErrorBackoff)
			}
		}
	}
}

func (w *Worker) Stop() {
	close(w.stopCh)
	<-w.stoppedCh
}

func (w *Worker) processOneBatch(ctx context.Context) error {
	messages, err := w.consumer.Read(ctx)
	if err != nil {
		return fmt.Errorf("reading from stream: %w", err)
	}

	for _, msg := range messages {
		_ = w.Handle(ctx, msg)
	}
	return nil
}

// Handle delivers msg and routes failures to a retry or the DLQ. It always returns
// nil so the reclaimer can use it as its processor.
func (w *Worker) Handle(ctx context.Context, msg queue.Message) error {
	if err := w.processMessageSafe(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "mail delivery failed",
			"error", err,
			"message_id", msg.ID,
			"reminder_log_id", msg.ReminderLogID)
		w.handleFailedMessage(ctx, msg, err)
	}
	return nil
}

func (w *Worker) processMessageSafe(ctx context.Context, msg queue.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "panic recovered in mail delivery",
				"panic", r,
				"message_id", msg.ID)
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return w.ProcessMessage(ctx, msg)
}

// ProcessMessage sends one queued email. The delivery key is claimed first; if it
// is already held the email went out before (or is going out) and the message is
// simply acknowledged.
func (w *Worker) ProcessMessage(ctx context.Context, msg queue.Message) error {
	msgID := msg.ID
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		MessageID:      &msgID,
		ReminderLogID:  &msg.ReminderLogID,
		DeedID:         &msg.DeedID,
		OrganizationID: &msg.OrganizationID,
	})

	span := logger.StartRemoteSpan(ctx, msg.Traceparent, "mail.deliver",
		attribute.Int64("deedwatch.reminder_log_id", msg.ReminderLogID),
		attribute.Int("deedwatch.attempt", msg.Attempt))
	defer span.End()
	ctx = span.Context()

	claimed, err := w.claimer.Claim(ctx, msg.ReminderLogID)
	if err != nil {
		span.Fail(err)
		return err
	}
	if !claimed {
		slog.InfoContext(ctx, "reminder email already delivered, skipping", "attempt", msg.Attempt)
		w.ack(ctx, msg)
		return nil
	}

	err = w.sender.Send(ctx, mailer.Email{
		To:             msg.To,
		Subject:        msg.Subject,
		HTML:           msg.HTML,
		ReminderLogID:  msg.ReminderLogID,
		OrganizationID: msg.OrganizationID,
		DeedID:         msg.DeedID,
	})
	if err != nil {
		span.Fail(err)
		if relErr := w.claimer.Release(ctx, msg.ReminderLogID); relErr != nil {
			slog.WarnContext(ctx, "failed to release delivery key", "error", relErr)
		}
		return fmt.Errorf("sending email: %w", err)
	}

	slog.InfoContext(ctx, "reminder email delivered", "attempt", msg.Attempt)
	w.ack(ctx, msg)
	return nil
}

func (w *Worker) ack(ctx context.Context, msg queue.Message) {
	if err := w.consumer.Ack(ctx, msg); err != nil {
		// An unacked message is reclaimed later and stopped by the delivery key.
		slog.WarnContext(ctx, "failed to ACK message", "error", err, "message_id", msg.ID)
	}
}

func (w *Worker) handleFailedMessage(ctx context.Context, msg queue.Message, err error) {
	if msg.Attempt >= w.cfg.MaxAttempts {
		slog.ErrorContext(ctx, "max attempts reached, sending to DLQ",
			"message_id", msg.ID,
			"attempts", msg.Attempt)
		if dlqErr := w.consumer.SendDLQ(ctx, msg, err.Error()); dlqErr != nil {
			slog.ErrorContext(ctx, "failed to send to DLQ", "error", dlqErr)
		}
		return
	}

	slog.WarnContext(ctx, "requeuing failed mail",
		"message_id", msg.ID,
		"attempt", msg.Attempt)
	if requeueErr := w.consumer.Requeue(ctx, msg, err.Error()); requeueErr != nil {
		slog.ErrorContext(ctx, "failed to requeue message", "error", requeueErr)
	}
}
