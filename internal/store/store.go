// Package store persists the two document collections: matches and player
// profiles. Postgres is the production backend; Memory backs tests and
// dry-run ingestion.
package store

import (
	"context"
	"errors"

	"github.com/albapepper/matchday-data/internal/provider"
)

// ErrDuplicateID is returned when an insert collides with an existing id.
var ErrDuplicateID = errors.New("duplicate document id")

// MatchStore is the match collection.
type MatchStore interface {
	// DeleteAllMatches empties the collection and returns how many
	// documents were removed.
	DeleteAllMatches(ctx context.Context) (int64, error)
	InsertMatch(ctx context.Context, m provider.Match) error
	// UpsertMatch replaces the document with the same id, or inserts it.
	UpsertMatch(ctx context.Context, m provider.Match) error
	// ListMatches returns every document in ingestion order.
	ListMatches(ctx context.Context) ([]provider.Match, error)
	GetMatch(ctx context.Context, id string) (provider.Match, bool, error)
	CountMatches(ctx context.Context) (int, error)
}

// PlayerStore is the player profile collection.
type PlayerStore interface {
	DeleteAllPlayers(ctx context.Context) (int64, error)
	// InsertPlayers writes all profiles in one batch.
	InsertPlayers(ctx context.Context, players []provider.PlayerProfile) error
	GetPlayer(ctx context.Context, id string) (provider.PlayerProfile, bool, error)
	CountPlayers(ctx context.Context) (int, error)
}

// Store is both collections.
type Store interface {
	MatchStore
	PlayerStore
}
