package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"lexdesk.app/deedwatch/common/id"
	"lexdesk.app/deedwatch/common/logger"
	"lexdesk.app/deedwatch/common/otel"
	"lexdesk.app/deedwatch/core/config"
	"lexdesk.app/deedwatch/core/db"
	"lexdesk.app/deedwatch/internal/http/middleware"
	httprouter "lexdesk.app/deedwatch/internal/http/router"
	"lexdesk.app/deedwatch/internal/mailer"
	"lexdesk.app/deedwatch/internal/queue"
	"lexdesk.app/deedwatch/internal/service"
	"lexdesk.app/deedwatch/internal/storage"
	"lexdesk.app/deedwatch/internal/store"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeServer)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger bridges into the OTel provider)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "deedwatch server starting",
		"env", cfg.Env,
		"service", cfg.OTel.ServiceName,
		"mail_delivery", cfg.Mail.Delivery,
		"timezone", cfg.Reminder.Timezone)

	if err := id.Init(id.NodeServer); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected", "auto_migrate", cfg.DB.AutoMigrate)

	var producer queue.Producer
	if cfg.Mail.Delivery == config.MailDeliveryQueue {
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
		slog.InfoContext(ctx, "redis connected", "stream", cfg.Mail.Stream)

		producer = queue.NewRedisProducer(redisClient, cfg.Mail.Stream, slog.Default())
		defer producer.Close()
	}

	sender, err := mailer.New(cfg.Mail.Delivery, cfg.Mail, producer, slog.Default())
	if err != nil {
		slog.ErrorContext(ctx, "failed to create mail sender", "error", err)
		os.Exit(1)
	}

	files, err := storage.New(cfg.Storage)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create document storage", "error", err)
		os.Exit(1)
	}

	stores := store.NewStores(database.Queries())
	services := service.NewServices(stores, files, sender, cfg.Reminder, time.Now)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, services *service.Services) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	httprouter.SetupRoutes(router, services, httprouter.RouterConfig{
		DashboardURL: cfg.DashboardURL,
		AdminAPIKey:  cfg.AdminAPIKey,
	})

	return router
}

const banner = `
 ____  _____ _____ ____  __        ___  _____ ____ _   _
|  _ \| ____| ____|  _ \ \ \      / / \|_   _/ ___| | | |
| | | |  _| |  _| | | | | \ \ /\ / / _ \ | || |   | |_| |
| |_| | |___| |___| |_| |  \ V  V / ___ \| || |___|  _  |
|____/|_____|_____|____/    \_/\_/_/   \_\_| \____|_| |_|
                                               server
`
