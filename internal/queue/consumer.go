package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"lexdesk.app/deedwatch/common/logger"
)

type ConsumerConfig struct {
	Stream       string
	Group        string
	Consumer     string
	DLQStream    string
	BatchSize    int64
	Block        time.Duration // XREADGROUP block time
	RequeueDelay time.Duration // pause before a failed mail goes back on the stream
}

// MessageProcessor handles one queue message.
type MessageProcessor func(ctx context.Context, msg Message) error

// RedisConsumer reads reminder mail from a stream through a consumer group.
type RedisConsumer struct {
	client *redis.Client
	cfg    ConsumerConfig
}

func NewRedisConsumer(ctx context.Context, client *redis.Client, cfg ConsumerConfig) (*RedisConsumer, error) {
	// Start at "0" so mail queued before the first worker ever ran is delivered.
	err := client.XGroupCreateMkStream(ctx, cfg.Stream, cfg.Group, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return nil, fmt.Errorf("creating consumer group %s: %w", cfg.Group, err)
	}
	return &RedisConsumer{client: client, cfg: cfg}, nil
}

// Read returns the next batch of never-delivered mail. Entries that cannot be
// decoded are acknowledged and dropped; stale pending entries are the reclaimer's.
func (c *RedisConsumer) Read(ctx context.Context) ([]Message, error) {
	streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    c.cfg.Group,
		Consumer: c.cfg.Consumer,
		Streams:  []string{c.cfg.Stream, ">"},
		Count:    c.cfg.BatchSize,
		Block:    c.cfg.Block,
	}).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("xreadgroup %s: %w", c.cfg.Stream, err)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "deedwatch.queue.consumer"})

	var batch []Message
	for _, s := range streams {
		for _, raw := range s.Messages {
			msg, err := ParseMessage(raw)
			if err != nil {
				slog.ErrorContext(ctx, "dropping undecodable mail", "error", err, "message_id", raw.ID)
				_ = c.Ack(ctx, Message{ID: raw.ID, Raw: raw})
				continue
			}
			batch = append(batch, msg)
		}
	}
	return batch, nil
}

func (c *RedisConsumer) Ack(ctx context.Context, msg Message) error {
	if err := c.client.XAck(ctx, c.cfg.Stream, c.cfg.Group, msg.ID).Err(); err != nil {
		return fmt.Errorf("xack %s: %w", msg.ID, err)
	}
	return nil
}

// Requeue puts a copy of msg back on the stream with the attempt counter bumped
// and acknowledges the original in the same MULTI.
func (c *RedisConsumer) Requeue(ctx context.Context, msg Message, errMsg string) error {
	if c.cfg.RequeueDelay > 0 {
		timer := time.NewTimer(c.cfg.RequeueDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	values := messageValues(msg.MailMessage, msg.Attempt+1)
	if errMsg != "" {
		values["last_error"] = errMsg
	}
	if err := c.move(ctx, msg, c.cfg.Stream, values); err != nil {
		return fmt.Errorf("requeue: %w", err)
	}

	slog.InfoContext(ctx, "mail requeued", "next_attempt", msg.Attempt+1, "reason", errMsg)
	return nil
}

// SendDLQ parks msg on the dead-letter stream.
func (c *RedisConsumer) SendDLQ(ctx context.Context, msg Message, errMsg string) error {
	values := messageValues(msg.MailMessage, msg.Attempt)
	values["error"] = errMsg
	values["source_id"] = msg.ID
	if err := c.move(ctx, msg, c.cfg.DLQStream, values); err != nil {
		return fmt.Errorf("dead-letter: %w", err)
	}

	slog.ErrorContext(ctx, "mail dead-lettered", "final_error", errMsg, "dlq_stream", c.cfg.DLQStream)
	return nil
}

func (c *RedisConsumer) move(ctx context.Context, msg Message, target string, values map[string]any) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.XAdd(ctx, &redis.XAddArgs{Stream: target, Values: values})
		pipe.XAck(ctx, c.cfg.Stream, c.cfg.Group, msg.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("moving %s to %s: %w", msg.ID, target, err)
	}
	return nil
}
