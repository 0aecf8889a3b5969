package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/matchday-data/internal/provider"
)

func testMatch(id, day string) provider.Match {
	return provider.Match{
		ID:      id,
		Info:    provider.MatchInfo{ID: id, MatchDate: provider.StringPtr(day), Status: provider.StatusScheduled},
		Lineups: provider.NewLineups(),
		Events:  []provider.Event{},
	}
}

func TestMemory_MatchLifecycle(t *testing.T) {
	ctx := t.Context()
	s := NewMemory()

	require.NoError(t, s.InsertMatch(ctx, testMatch("A1", "2024-08-17")))
	require.NoError(t, s.InsertMatch(ctx, testMatch("A2", "2024-08-18")))
	require.ErrorIs(t, s.InsertMatch(ctx, testMatch("A1", "2024-08-19")), ErrDuplicateID)

	replaced := testMatch("A1", "2024-09-01")
	replaced.Info.Status = provider.StatusFinished
	require.NoError(t, s.UpsertMatch(ctx, replaced))
	require.NoError(t, s.UpsertMatch(ctx, testMatch("B1", "2024-09-02")))

	all, err := s.ListMatches(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "A1", all[0].ID, "upsert keeps ingestion position")
	assert.Equal(t, "Finished", all[0].Info.Status)
	assert.Equal(t, "B1", all[2].ID)

	got, ok, err := s.GetMatch(ctx, "A2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2024-08-18", *got.Info.MatchDate)

	_, ok, err = s.GetMatch(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := s.DeleteAllMatches(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	count, err := s.CountMatches(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMemory_ReturnedDocumentsAreCopies(t *testing.T) {
	ctx := t.Context()
	s := NewMemory()
	require.NoError(t, s.InsertMatch(ctx, testMatch("A1", "2024-08-17")))

	got, _, err := s.GetMatch(ctx, "A1")
	require.NoError(t, err)
	got.Events = append(got.Events, provider.Event{ID: "x"})

	again, _, err := s.GetMatch(ctx, "A1")
	require.NoError(t, err)
	assert.Empty(t, again.Events)
}

func TestMemory_InsertPlayers(t *testing.T) {
	ctx := t.Context()
	s := NewMemory()

	players := []provider.PlayerProfile{{ID: "1", Name: "One"}, {ID: "2", Name: "Two"}}
	require.NoError(t, s.InsertPlayers(ctx, players))

	err := s.InsertPlayers(ctx, []provider.PlayerProfile{{ID: "3"}, {ID: "1"}})
	require.ErrorIs(t, err, ErrDuplicateID)

	count, err := s.CountPlayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "failed batch writes nothing")

	p, ok, err := s.GetPlayer(ctx, "2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Two", p.Name)

	n, err := s.DeleteAllPlayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, ok, err = s.GetPlayer(ctx, "2")
	require.NoError(t, err)
	assert.False(t, ok)
}
