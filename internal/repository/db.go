package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/mage-knight-digital/knight-engine-go/internal/config"
)

// NewDB opens a pgx connection pool and verifies it with a ping.
func NewDB(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*pgxpool.Pool, error) {
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

	logger.Info("database pool ready",
		zap.Int32("max_conns", poolCfg.MaxConns))
	return pool, nil
}

// Bootstrap creates the schema if it does not exist. Statements run one at
// a time because pgx's extended protocol rejects multi-statement strings.
func Bootstrap(ctx context.Context, pool *pgxpool.Pool) error {
	for _, ddl := range schemaDDL {
		if _, err := pool.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("bootstrap schema: %w", err)
		}
	}
	return nil
}

// Games are stored as their deterministic recipe: the seed, the players and
// the ordered action log. Replaying the log reproduces every state, so no
// state snapshots are persisted; per-action checksums detect divergence on
// resume.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS games (
    id          TEXT PRIMARY KEY,
    seed        BIGINT NOT NULL,
    players     JSONB NOT NULL,
    finished    BOOLEAN NOT NULL DEFAULT FALSE,
    checksum    TEXT NOT NULL DEFAULT '',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE TABLE IF NOT EXISTS game_actions (
    game_id     TEXT NOT NULL REFERENCES games(id) ON DELETE CASCADE,
    seq         INTEGER NOT NULL,
    player_id   TEXT NOT NULL,
    action      JSONB NOT NULL,
    checksum    TEXT NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (game_id, seq)
)`,
	`CREATE TABLE IF NOT EXISTS accounts (
    player_id     TEXT PRIMARY KEY,
    password_hash TEXT NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE TABLE IF NOT EXISTS content_sets (
    name       TEXT PRIMARY KEY,
    document   JSONB NOT NULL,
    loaded_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
}
