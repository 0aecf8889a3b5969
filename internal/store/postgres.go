package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/matchday-data/internal/provider"
)

const uniqueViolation = "23505"

// Postgres stores documents as JSONB rows. Statement names refer to the
// prepared statements registered by package db.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a store on top of a pool created by db.New.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (s *Postgres) DeleteAllMatches(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, "match_delete_all")
	if err != nil {
		return 0, fmt.Errorf("delete matches: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s *Postgres) InsertMatch(ctx context.Context, m provider.Match) error {
	doc, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode match %s: %w", m.ID, err)
	}
	if _, err := s.pool.Exec(ctx, "match_insert", m.ID, m.Info.MatchDate, doc); err != nil {
		return fmt.Errorf("insert match %s: %w", m.ID, mapPgError(err))
	}
	return nil
}

func (s *Postgres) UpsertMatch(ctx context.Context, m provider.Match) error {
	doc, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode match %s: %w", m.ID, err)
	}
	if _, err := s.pool.Exec(ctx, "match_upsert", m.ID, m.Info.MatchDate, doc); err != nil {
		return fmt.Errorf("upsert match %s: %w", m.ID, err)
	}
	return nil
}

func (s *Postgres) ListMatches(ctx context.Context) ([]provider.Match, error) {
	rows, err := s.pool.Query(ctx, "match_list")
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	var out []provider.Match
	for rows.Next() {
		var (
			id  string
			doc []byte
		)
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		var m provider.Match
		if err := json.Unmarshal(doc, &m); err != nil {
			return nil, fmt.Errorf("decode match %s: %w", id, err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Postgres) GetMatch(ctx context.Context, id string) (provider.Match, bool, error) {
	var m provider.Match
	found, err := s.getDoc(ctx, "match_by_id", id, &m)
	if err != nil {
		return provider.Match{}, false, fmt.Errorf("get match %s: %w", id, err)
	}
	return m, found, nil
}

func (s *Postgres) CountMatches(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, "match_count").Scan(&n); err != nil {
		return 0, fmt.Errorf("count matches: %w", err)
	}
	return n, nil
}

func (s *Postgres) DeleteAllPlayers(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, "player_delete_all")
	if err != nil {
		return 0, fmt.Errorf("delete players: %w", err)
	}
	return tag.RowsAffected(), nil
}

// InsertPlayers sends every insert in one batch inside a transaction, so a
// failure leaves the collection empty rather than half written.
func (s *Postgres) InsertPlayers(ctx context.Context, players []provider.PlayerProfile) error {
	if len(players) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, p := range players {
		doc, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encode player %s: %w", p.ID, err)
		}
		batch.Queue("player_insert", p.ID, doc)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin player insert: %w", err)
	}
	defer tx.Rollback(context.Background())

	br := tx.SendBatch(ctx, batch)
	for _, p := range players {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("insert player %s: %w", p.ID, mapPgError(err))
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("close player batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit player insert: %w", err)
	}
	return nil
}

func (s *Postgres) GetPlayer(ctx context.Context, id string) (provider.PlayerProfile, bool, error) {
	var p provider.PlayerProfile
	found, err := s.getDoc(ctx, "player_by_id", id, &p)
	if err != nil {
		return provider.PlayerProfile{}, false, fmt.Errorf("get player %s: %w", id, err)
	}
	return p, found, nil
}

func (s *Postgres) CountPlayers(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, "player_count").Scan(&n); err != nil {
		return 0, fmt.Errorf("count players: %w", err)
	}
	return n, nil
}

// NotifyRebuilt signals API instances that a collection was rebuilt.
func (s *Postgres) NotifyRebuilt(ctx context.Context, collection string) error {
	if _, err := s.pool.Exec(ctx, "notify_rebuilt", collection); err != nil {
		return fmt.Errorf("notify rebuilt %s: %w", collection, err)
	}
	return nil
}

// DatasetVersion combines row counts and last write times of both tables.
// A rebuild rewrites every row, so the value changes with each run.
func (s *Postgres) DatasetVersion(ctx context.Context) (string, error) {
	var v string
	if err := s.pool.QueryRow(ctx, "dataset_version").Scan(&v); err != nil {
		return "", fmt.Errorf("dataset version: %w", err)
	}
	return v, nil
}

func (s *Postgres) getDoc(ctx context.Context, stmt, id string, out interface{}) (bool, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx, stmt, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(doc, out); err != nil {
		return false, fmt.Errorf("decode: %w", err)
	}
	return true, nil
}

func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", ErrDuplicateID, pgErr.Detail)
	}
	return err
}
