package worker

import (
	"context"

	"lexdesk.app/deedwatch/internal/queue"
)

// Consumer is the part of queue.RedisConsumer the worker drives.
type Consumer interface {
	Read(ctx context.Context) ([]queue.Message, error)
	Ack(ctx context.Context, msg queue.Message) error
	Requeue(ctx context.Context, msg queue.Message, errMsg string) error
	SendDLQ(ctx context.Context, msg queue.Message, errMsg string) error
}

// DeliveryClaimer records that a ledger entry's email is being sent so a
// redelivered stream message cannot send it twice.
type DeliveryClaimer interface {
	Claim(ctx context.Context, reminderLogID int64) (bool, error)
	Release(ctx context.Context, reminderLogID int64) error
}
