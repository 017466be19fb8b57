package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"lexdesk.app/deedwatch/common/logger"
	"lexdesk.app/deedwatch/internal/queue"
)

type ReclaimerConfig struct {
	Stream    string
	Group     string
	Consumer  string
	MinIdle   time.Duration
	Interval  time.Duration
	BatchSize int64
}

// Reclaimer takes over mail left pending by a worker that died between reading
// and acknowledging it. The delivery key keeps a reclaimed mail from going out
// twice when the dead worker had already sent it.
type Reclaimer struct {
	client    *redis.Client
	cfg       ReclaimerConfig
	consumer  Consumer
	processor queue.MessageProcessor

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func NewReclaimer(client *redis.Client, cfg ReclaimerConfig, consumer Consumer, processor queue.MessageProcessor) *Reclaimer {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 10
	}
	return &Reclaimer{
		client:    client,
		cfg:       cfg,
		consumer:  consumer,
		processor: processor,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

func (r *Reclaimer) Run(ctx context.Context) {
	defer close(r.stoppedCh)
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "deedwatch.worker.reclaimer"})

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopCh:
			return
		case <-ticker.C:
			n, err := r.sweep(ctx)
			if err != nil {
				slog.ErrorContext(ctx, "reclaim sweep failed", "error", err)
			} else if n > 0 {
				slog.InfoContext(ctx, "reclaimed stale mail", "count", n)
			}
		}
	}
}

func (r *Reclaimer) Stop() {
	close(r.stopCh)
	<-r.stoppedCh
}

// sweep walks the pending list with XAUTOCLAIM until the cursor wraps to 0-0.
func (r *Reclaimer) sweep(ctx context.Context) (int, error) {
	claimed := 0
	cursor := "0-0"
	for {
		msgs, next, err := r.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
			Stream:   r.cfg.Stream,
			Group:    r.cfg.Group,
			Consumer: r.cfg.Consumer,
			MinIdle:  r.cfg.MinIdle,
			Start:    cursor,
			Count:    r.cfg.BatchSize,
		}).Result()
		if err != nil {
			return claimed, fmt.Errorf("xautoclaim: %w", err)
		}

		for _, raw := range msgs {
			claimed++
			r.handle(ctx, raw)
		}

		if next == "0-0" || next == "" {
			return claimed, nil
		}
		cursor = next
	}
}

func (r *Reclaimer) handle(ctx context.Context, raw redis.XMessage) {
	msgID := raw.ID
	ctx = logger.WithLogFields(ctx, logger.LogFields{MessageID: &msgID})

	msg, err := queue.ParseMessage(raw)
	if err != nil {
		slog.ErrorContext(ctx, "dropping undecodable reclaimed mail", "error", err)
		_ = r.consumer.Ack(ctx, queue.Message{ID: raw.ID, Raw: raw})
		return
	}

	if err := r.processor(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "reclaimed mail failed", "error", err)
	}
}
