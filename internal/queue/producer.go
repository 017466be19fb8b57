package queue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Producer queues reminder mail for the delivery worker.
type Producer interface {
	Enqueue(ctx context.Context, msg MailMessage) error
	Close() error
}

// streamMaxLen bounds the mail stream; delivered entries are only kept for inspection.
const streamMaxLen = 100_000

type redisProducer struct {
	client *redis.Client
	stream string
	logger *slog.Logger
}

func NewRedisProducer(client *redis.Client, stream string, logger *slog.Logger) Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisProducer{
		client: client,
		stream: stream,
		logger: logger,
	}
}

func (p *redisProducer) Enqueue(ctx context.Context, msg MailMessage) error {
	entryID, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: streamMaxLen,
		Approx: true,
		Values: messageValues(msg, msg.Attempt),
	}).Result()
	if err != nil {
		return fmt.Errorf("enqueue mail for ledger entry %d: %w", msg.ReminderLogID, err)
	}

	p.logger.InfoContext(ctx, "reminder mail queued",
		"reminder_log_id", msg.ReminderLogID,
		"stream", p.stream,
		"entry_id", entryID)
	return nil
}

func (p *redisProducer) Close() error {
	return p.client.Close()
}
