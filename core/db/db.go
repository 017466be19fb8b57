// Package db owns the Postgres pool and the embedded schema migrations.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"lexdesk.app/deedwatch/core/db/sqlc"
)

type DB struct {
	pool *pgxpool.Pool
}

type Config struct {
	DSN      string
	MaxConns int32
	MinConns int32

	// AutoMigrate applies pending goose migrations when the pool is opened.
	AutoMigrate bool
}

// New opens and pings the pool. Every session runs in UTC so DATE columns and the
// civil dates the reminder engine compares never shift with the server's zone.
func New(ctx context.Context, cfg Config) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parsing DATABASE_URL: %w", err)
	}

	poolCfg.MaxConns = max(cfg.MaxConns, 1)
	poolCfg.MinConns = min(max(cfg.MinConns, 0), poolCfg.MaxConns)
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.ConnConfig.RuntimeParams["timezone"] = "UTC"
	if poolCfg.ConnConfig.RuntimeParams["application_name"] == "" {
		poolCfg.ConnConfig.RuntimeParams["application_name"] = "deedwatch"
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("opening pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	database := &DB{pool: pool}
	if cfg.AutoMigrate {
		if err := database.Migrate(ctx); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return database, nil
}

func (db *DB) Close() {
	db.pool.Close()
}

func (db *DB) Queries() *sqlc.Queries {
	return sqlc.New(db.pool)
}
