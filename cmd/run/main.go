// Command run performs a single reminder run and prints the results as JSON.
// It is meant for cron-style schedulers that cannot call the HTTP endpoint.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"lexdesk.app/deedwatch/common/id"
	"lexdesk.app/deedwatch/common/logger"
	"lexdesk.app/deedwatch/common/otel"
	"lexdesk.app/deedwatch/core/config"
	"lexdesk.app/deedwatch/core/db"
	"lexdesk.app/deedwatch/internal/http/dto"
	"lexdesk.app/deedwatch/internal/mailer"
	"lexdesk.app/deedwatch/internal/queue"
	"lexdesk.app/deedwatch/internal/service"
	"lexdesk.app/deedwatch/internal/storage"
	"lexdesk.app/deedwatch/internal/store"
)

func main() {
	os.Exit(run())
}

func run() int {
	orgID := flag.Int64("org", 0, "only process deeds of this organization (0 = all)")
	dryRun := flag.Bool("dry-run", false, "record the ledger but send no email and create no task")
	lookahead := flag.Int("lookahead", 0, "lookahead window in days (0 = REMINDER_LOOKAHEAD_DAYS)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(config.ServiceTypeRun)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		return 1
	}

	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		return 1
	}
	if telemetry != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := telemetry.Shutdown(shutdownCtx); err != nil {
				slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
			}
		}()
	}

	// stdout carries the JSON result.
	logger.SetupTo(cfg, os.Stderr)

	if err := id.Init(id.NodeRun); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		return 1
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		return 1
	}
	defer database.Close()

	var producer queue.Producer
	if cfg.Mail.Delivery == config.MailDeliveryQueue {
		redisOpts, err := redis.ParseURL(cfg.Mail.RedisURL)
		if err != nil {
			slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
			return 1
		}
		redisClient := redis.NewClient(redisOpts)
		defer redisClient.Close()
		producer = queue.NewRedisProducer(redisClient, cfg.Mail.Stream, slog.Default())
	}

	sender, err := mailer.New(cfg.Mail.Delivery, cfg.Mail, producer, slog.Default())
	if err != nil {
		slog.ErrorContext(ctx, "failed to create mail sender", "error", err)
		return 1
	}

	files, err := storage.New(cfg.Storage)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create document storage", "error", err)
		return 1
	}

	services := service.NewServices(store.NewStores(database.Queries()), files, sender, cfg.Reminder, time.Now)

	req := service.RunRequest{DryRun: *dryRun, LookaheadDays: *lookahead}
	if *orgID != 0 {
		req.OrgID = orgID
	}

	result, err := services.Reminders().Run(ctx, req)
	if err != nil {
		slog.ErrorContext(ctx, "reminder run failed", "error", err)
		if len(result.Results) == 0 {
			return 1
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if encErr := enc.Encode(dto.ToPartialRunResponse(result, err)); encErr != nil {
		slog.ErrorContext(ctx, "failed to write results", "error", encErr)
		return 1
	}

	if err != nil {
		return 1
	}
	return 0
}
