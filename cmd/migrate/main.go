// Command migrate applies or reports the embedded goose migrations.
//
//	migrate up
//	migrate status
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"lexdesk.app/deedwatch/common/logger"
	"lexdesk.app/deedwatch/core/config"
	"lexdesk.app/deedwatch/core/db"
)

func main() {
	ctx := context.Background()

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	cfg, err := config.Load(config.ServiceTypeRun)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}
	logger.Setup(cfg)

	// Migrations are applied explicitly below, never on open.
	cfg.DB.AutoMigrate = false
	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	switch command {
	case "up":
		err = database.Migrate(ctx)
	case "status":
		err = database.MigrationStatus(ctx)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q (want up or status)\n", command)
		database.Close()
		os.Exit(2)
	}

	if err != nil {
		slog.ErrorContext(ctx, "migration failed", "command", command, "error", err)
		database.Close()
		os.Exit(1)
	}
	slog.InfoContext(ctx, "migration complete", "command", command)
}
