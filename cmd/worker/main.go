package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"lexdesk.app/deedwatch/common/logger"
	"lexdesk.app/deedwatch/common/otel"
	"lexdesk.app/deedwatch/core/config"
	"lexdesk.app/deedwatch/internal/mailer"
	"lexdesk.app/deedwatch/internal/queue"
	"lexdesk.app/deedwatch/internal/worker"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(config.ServiceTypeWorker)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	fmt.Printf("%s\n", banner)

	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	slog.InfoContext(ctx, "deedwatch mail worker starting",
		"env", cfg.Env,
		"delivery", cfg.Mail.WorkerDelivery,
		"consumer_group", cfg.Mail.Group,
		"consumer_name", cfg.Mail.Consumer)

	redisOpts, err := redis.ParseURL(cfg.Mail.RedisURL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	slog.InfoContext(ctx, "redis connected", "stream", cfg.Mail.Stream)

	consumer, err := queue.NewRedisConsumer(ctx, redisClient, queue.ConsumerConfig{
		Stream:       cfg.Mail.Stream,
		Group:        cfg.Mail.Group,
		Consumer:     cfg.Mail.Consumer,
		DLQStream:    cfg.Mail.DLQStream,
		BatchSize:    10,
		Block:        5 * time.Second,
		RequeueDelay: 2 * time.Second,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create consumer", "error", err)
		os.Exit(1)
	}

	sender, err := mailer.New(cfg.Mail.WorkerDelivery, cfg.Mail, nil, slog.Default())
	if err != nil {
		slog.ErrorContext(ctx, "failed to create mail sender", "error", err)
		os.Exit(1)
	}

	claimer := worker.NewRedisClaimer(redisClient, cfg.Mail.DeliveryKeyTTL)

	w := worker.New(consumer, claimer, sender, worker.Config{
		MaxAttempts: cfg.Mail.MaxAttempts,
	})

	reclaimer := worker.NewReclaimer(redisClient, worker.ReclaimerConfig{
		Stream:    cfg.Mail.Stream,
		Group:     cfg.Mail.Group,
		Consumer:  cfg.Mail.Consumer + "-reclaimer",
		MinIdle:   5 * time.Minute,
		Interval:  time.Minute,
		BatchSize: 10,
	}, consumer, w.Handle)

	go func() {
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			slog.ErrorContext(ctx, "worker stopped with error", "error", err)
		}
	}()
	go reclaimer.Run(ctx)

	slog.InfoContext(ctx, "worker initialized and running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down worker...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	stopped := make(chan struct{})
	go func() {
		reclaimer.Stop()
		w.Stop()
		close(stopped)
	}()

	select {
	case <-shutdownCtx.Done():
		slog.WarnContext(ctx, "shutdown timeout exceeded")
		cancel()
	case <-stopped:
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(ctx, "worker shutdown complete")
}

const banner = `
 ____  _____ _____ ____  __        ___  _____ ____ _   _
|  _ \| ____| ____|  _ \ \ \      / / \|_   _/ ___| | | |
| | | |  _| |  _| | | | | \ \ /\ / / _ \ | || |   | |_| |
| |_| | |___| |___| |_| |  \ V  V / ___ \| || |___|  _  |
|____/|_____|_____|____/    \_/\_/_/   \_\_| \____|_| |_|
                                               mail worker
`
