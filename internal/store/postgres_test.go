package store

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/matchday-data/internal/config"
	"github.com/albapepper/matchday-data/internal/db"
	"github.com/albapepper/matchday-data/internal/provider"
)

// newTestPostgres connects to TEST_DATABASE_URL. The tables are emptied, so
// point it at a scratch database.
func newTestPostgres(t *testing.T) *Postgres {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	pool, err := db.New(t.Context(), &config.Config{
		DatabaseURL:    url,
		DBPoolMinConns: 1,
		DBPoolMaxConns: 2,
	})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	s := NewPostgres(pool.Pool)
	_, err = s.DeleteAllMatches(t.Context())
	require.NoError(t, err)
	_, err = s.DeleteAllPlayers(t.Context())
	require.NoError(t, err)
	return s
}

func TestPostgres_Matches(t *testing.T) {
	s := newTestPostgres(t)
	ctx := t.Context()

	require.NoError(t, s.InsertMatch(ctx, testMatch("A1", "2024-08-17")))
	require.NoError(t, s.InsertMatch(ctx, testMatch("A2", "2024-08-18")))
	require.ErrorIs(t, s.InsertMatch(ctx, testMatch("A1", "2024-08-17")), ErrDuplicateID)
	require.NoError(t, s.UpsertMatch(ctx, testMatch("A1", "2024-09-01")))

	all, err := s.ListMatches(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "A1", all[0].ID)
	assert.Equal(t, "2024-09-01", *all[0].Info.MatchDate)

	_, ok, err := s.GetMatch(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.NotifyRebuilt(ctx, config.MatchesTable))
}

func TestPostgres_Players(t *testing.T) {
	s := newTestPostgres(t)
	ctx := t.Context()

	require.NoError(t, s.InsertPlayers(ctx, []provider.PlayerProfile{{ID: "1", Name: "One"}, {ID: "2"}}))

	count, err := s.CountPlayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	p, ok, err := s.GetPlayer(ctx, "1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "One", p.Name)
}
