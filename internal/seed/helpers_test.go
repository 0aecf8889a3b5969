package seed

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/albapepper/matchday-data/internal/provider/easycoach"
	"github.com/albapepper/matchday-data/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeSource serves canned listings and details. A listing without a
// details entry fails its detail fetch.
type fakeSource struct {
	listings []easycoach.Listing
	listErr  error
	details  map[string]*easycoach.MatchDetail
	fetched  []string
}

func (f *fakeSource) ListMatches(_ context.Context) ([]easycoach.Listing, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listings, nil
}

func (f *fakeSource) GetMatch(_ context.Context, matchID string) (*easycoach.MatchDetail, error) {
	f.fetched = append(f.fetched, matchID)
	d, ok := f.details[matchID]
	if !ok {
		return nil, errors.New("connection reset")
	}
	return d, nil
}

// failingClear is a store whose clear always fails.
type failingClear struct {
	*store.Memory
}

func (failingClear) DeleteAllMatches(context.Context) (int64, error) {
	return 0, errors.New("database is read-only")
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// scenarioBreakdown has one home goal at 44:50.
const scenarioBreakdown = `{
	"home_team_id": 1,
	"away_team_id": 2,
	"home_label": "Maccabi&#039;s",
	"away_label": "Hapoel",
	"home_team_score": 1,
	"away_team_score": 0,
	"match_date": "2025-10-25 10:00:00",
	"first_half_start": 100,
	"second_half_start": 3000,
	"home_team_players": [
		{"player_id": 7001, "fname": "Avi", "lname": "Cohen", "number": 9, "position": "ST",
		 "is_sub": 0, "game_time": 90,
		 "events": {"goals": [{"start_minute": 44, "start_second": 50, "event_id": 1}]}}
	],
	"away_team_players": [
		{"player_id": 8001, "fname": "Omer", "lname": "Katz", "number": 4, "is_sub": 1, "game_time": 15}
	]
}`
