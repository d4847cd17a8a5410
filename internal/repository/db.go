// Package repository persists finished match results. The rules core never
// depends on it; hosts wire it in when a database URL is configured.
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/frontlinegame/frontline-server-go/internal/config"
)

// DB wraps the connection pool.
type DB struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewDB connects to the configured database and verifies the connection.
func NewDB(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database url is empty")
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{pool: pool, logger: logger}, nil
}

// Pool returns the underlying pool.
func (db *DB) Pool() *pgxpool.Pool { return db.pool }

// Close releases the pool.
func (db *DB) Close() {
	db.pool.Close()
}

// Migrate creates the schema when it does not exist yet.
func (db *DB) Migrate(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS match_results (
	match_id     TEXT PRIMARY KEY,
	player_a     TEXT NOT NULL,
	player_b     TEXT NOT NULL,
	winner       TEXT NOT NULL DEFAULT '',
	turns        INT  NOT NULL,
	duration_ms  BIGINT NOT NULL,
	finished_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate match_results: %w", err)
	}
	return nil
}
