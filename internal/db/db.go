// Package db provides a pgxpool-based connection pool with schema bootstrap,
// prepared statement registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/matchday-data/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New ensures the schema exists, then creates and validates a connection
// pool whose connections carry the prepared statements below.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	if cfg.DBPoolMaxConns > 0 {
		poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	}
	if cfg.DBPoolMaxLife > 0 {
		poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	}
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Statements reference the tables, so the schema must exist before the
	// first pooled connection prepares them.
	if err := bootstrap(ctx, poolCfg.ConnConfig); err != nil {
		return nil, err
	}

	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// Schema is the document schema. Documents live in JSONB; seq keeps
// ingestion order across upserts.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS ` + config.MatchesTable + ` (
		seq        BIGSERIAL,
		id         TEXT PRIMARY KEY,
		match_date TEXT,
		doc        JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS matches_match_date_idx ON ` + config.MatchesTable + ` (match_date)`,
	`CREATE TABLE IF NOT EXISTS ` + config.PlayersTable + ` (
		seq        BIGSERIAL,
		id         TEXT PRIMARY KEY,
		doc        JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

func bootstrap(ctx context.Context, connCfg *pgx.ConnConfig) error {
	conn, err := pgx.ConnectConfig(ctx, connCfg.Copy())
	if err != nil {
		return fmt.Errorf("connect for schema bootstrap: %w", err)
	}
	defer conn.Close(context.Background())

	for _, stmt := range Schema {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// registerPreparedStatements registers all statements the API and ingestion
// layers use. Prepared statements eliminate parse overhead on every request.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// Matches
		"match_insert": "INSERT INTO " + config.MatchesTable + " (id, match_date, doc) VALUES ($1, $2, $3)",
		"match_upsert": `INSERT INTO ` + config.MatchesTable + ` (id, match_date, doc) VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE SET
				match_date = EXCLUDED.match_date,
				doc = EXCLUDED.doc,
				updated_at = NOW()`,
		"match_delete_all": "DELETE FROM " + config.MatchesTable,
		"match_list":       "SELECT id, doc FROM " + config.MatchesTable + " ORDER BY seq",
		"match_by_id":      "SELECT doc FROM " + config.MatchesTable + " WHERE id = $1",
		"match_count":      "SELECT COUNT(*) FROM " + config.MatchesTable,

		// Players
		"player_insert":     "INSERT INTO " + config.PlayersTable + " (id, doc) VALUES ($1, $2)",
		"player_delete_all": "DELETE FROM " + config.PlayersTable,
		"player_by_id":      "SELECT doc FROM " + config.PlayersTable + " WHERE id = $1",
		"player_count":      "SELECT COUNT(*) FROM " + config.PlayersTable,

		// Rebuild signal
		"notify_rebuilt": "SELECT pg_notify('" + config.RebuildChannel + "', $1)",

		// Catch-up sweep
		"dataset_version": `SELECT
			(SELECT COUNT(*)::text || ':' || COALESCE(MAX(updated_at)::text, '') FROM ` + config.MatchesTable + `)
			|| '|' ||
			(SELECT COUNT(*)::text || ':' || COALESCE(MAX(updated_at)::text, '') FROM ` + config.PlayersTable + `)`,
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
