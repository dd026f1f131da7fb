package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/soportek/deskcore/internal/config"
)

const snapshotName = "deskcore"

const snapshotDDL = `
    CREATE TABLE IF NOT EXISTS snapshots (
        name     TEXT PRIMARY KEY,
        data     JSONB NOT NULL,
        saved_at TIMESTAMPTZ NOT NULL
    )`

// PostgresStore keeps the snapshot as a single JSONB row.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore establishes a connection pool and bootstraps the
// snapshot table.
func NewPostgresStore(ctx context.Context, cfg config.PostgresConfig, logger *zap.Logger) (*PostgresStore, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if _, err := pool.Exec(ctx, snapshotDDL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("bootstrap snapshot table: %w", err)
	}

	logger.Info("connected to postgres")
	return &PostgresStore{pool: pool}, nil
}

// Load fetches and decodes the stored snapshot.
func (p *PostgresStore) Load(ctx context.Context) (*Snapshot, error) {
	const query = `SELECT data FROM snapshots WHERE name=$1`

	var raw []byte
	if err := p.pool.QueryRow(ctx, query, snapshotName).Scan(&raw); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

// Save upserts the snapshot row.
func (p *PostgresStore) Save(ctx context.Context, snap *Snapshot) error {
	const query = `
        INSERT INTO snapshots (name, data, saved_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (name) DO UPDATE SET data=EXCLUDED.data, saved_at=EXCLUDED.saved_at`

	snap.SavedAt = time.Now()
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if _, err := p.pool.Exec(ctx, query, snapshotName, raw, snap.SavedAt); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Close releases pool resources.
func (p *PostgresStore) Close() {
	if p != nil && p.pool != nil {
		p.pool.Close()
	}
}
