package easycoach

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKickoff(t *testing.T) {
	tests := []struct {
		name        string
		date, hour  string
		wantDate    string
		wantKickoff string
		wantNil     bool
	}{
		{name: "date and time", date: "17/08/24", hour: "08:30", wantDate: "2024-08-17", wantKickoff: "2024-08-17T08:30:00"},
		{name: "no leading zeros", date: "7/8/24", hour: "19:05", wantDate: "2024-08-07", wantKickoff: "2024-08-07T19:05:00"},
		{name: "missing time is midnight", date: "01/01/25", wantDate: "2025-01-01", wantKickoff: "2025-01-01T00:00:00"},
		{name: "unparsable date is kept raw", date: "TBD", hour: "08:30", wantDate: "TBD", wantKickoff: "TBD"},
		{name: "out of range day is kept raw", date: "32/01/24", wantDate: "32/01/24", wantKickoff: "32/01/24"},
		{name: "missing date", date: "", hour: "08:30", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matchDate, kickoff := ParseKickoff(tt.date, tt.hour)
			if tt.wantNil {
				assert.Nil(t, matchDate)
				assert.Nil(t, kickoff)
				return
			}
			require.NotNil(t, matchDate)
			require.NotNil(t, kickoff)
			assert.Equal(t, tt.wantDate, *matchDate)
			assert.Equal(t, tt.wantKickoff, *kickoff)
		})
	}
}

func TestParseScore(t *testing.T) {
	tests := []struct {
		result     string
		home, away int
		ok         bool
	}{
		{result: "2-1", home: 2, away: 1, ok: true},
		{result: " 0 - 3 ", home: 0, away: 3, ok: true},
		{result: "10-10", home: 10, away: 10, ok: true},
		{result: ""},
		{result: "2"},
		{result: "a-b"},
		{result: "2-"},
		{result: "1-2-3"},
		{result: "2:1"},
	}

	for _, tt := range tests {
		t.Run(tt.result, func(t *testing.T) {
			home, away := ParseScore(tt.result)
			if !tt.ok {
				assert.Nil(t, home)
				assert.Nil(t, away)
				return
			}
			require.NotNil(t, home)
			require.NotNil(t, away)
			assert.Equal(t, tt.home, *home)
			assert.Equal(t, tt.away, *away)
		})
	}
}

const detailJSON = `{
	"status": "ok",
	"teams": [
		{"players": [
			{"player_id": 11, "player_name": "שחקן", "player_name_en": "Keeper One", "shirt_number": "1", "goalkeeper": "1", "captain": "0", "main": "1"},
			{"player_id": "12", "player_name": "Striker", "shirt_number": 9, "goalkeeper": "0", "captain": "1", "main": "1"},
			{"player_id": "13", "shirt_number": null, "main": "0"}
		]},
		{"players": [
			{"player_id": "21", "player_name": "Away Sub", "shirt_number": "14", "main": 0}
		]}
	],
	"match_details": {"video": {"pano_hls": "https://d1.cloudfront.net/pano.m3u8"}}
}`

func TestNormalizeMatch_WithDetail(t *testing.T) {
	var detail MatchDetail
	require.NoError(t, json.Unmarshal([]byte(detailJSON), &detail))

	listing := Listing{
		GameID:        "A1",
		Date:          "17/08/24",
		Hour:          "08:30",
		Result:        "2-1",
		TeamAID:       "100",
		TeamAName:     "הפועל",
		TeamANameEN:   "Hapoel",
		TeamBID:       "200",
		TeamBName:     "Maccabi",
		FixtureName:   "ליגה",
		FixtureNameEN: "Premier",
		StadiumName:   "Bloomfield",
	}

	m := NormalizeMatch(listing, &detail, []string{"cloudfront"})

	assert.Equal(t, "A1", m.ID)
	assert.Equal(t, "A1", m.Info.ID)
	assert.Equal(t, "Hapoel", m.Info.HomeTeam.Name)
	assert.Equal(t, "Maccabi", m.Info.AwayTeam.Name)
	assert.Nil(t, m.Info.HomeTeam.Logo)
	assert.Equal(t, "Premier", m.Info.CompetitionName)
	assert.Equal(t, "Scheduled", m.Info.Status)
	require.NotNil(t, m.Info.Stadium)
	assert.Equal(t, "Bloomfield", *m.Info.Stadium)
	require.NotNil(t, m.Info.HomeScore)
	assert.Equal(t, 2, *m.Info.HomeScore)
	assert.Equal(t, 1, *m.Info.AwayScore)
	assert.Equal(t, "2024-08-17", *m.Info.MatchDate)
	assert.Equal(t, "2024-08-17T08:30:00", *m.Info.KickoffTime)
	require.NotNil(t, m.Info.VideoID)
	assert.Equal(t, "https://d1.cloudfront.net/pano.m3u8", *m.Info.VideoID)
	assert.Empty(t, m.Events)
	assert.NotNil(t, m.Events)

	home := m.Lineups.Home
	require.Len(t, home.Starters, 2)
	require.Len(t, home.Substitutes, 1)
	assert.Equal(t, "11", home.Starters[0].ID)
	assert.Equal(t, "Keeper One", *home.Starters[0].NameEN)
	assert.Equal(t, 1, home.Starters[0].ShirtNumber)
	require.NotNil(t, home.Starters[0].Position)
	assert.Equal(t, "GK", *home.Starters[0].Position)
	assert.Nil(t, home.Starters[1].Position)
	assert.True(t, home.Starters[1].Captain)
	assert.Nil(t, home.Starters[1].NameEN)
	assert.Equal(t, "Unknown", home.Substitutes[0].Name)
	assert.Equal(t, 0, home.Substitutes[0].ShirtNumber)
	assert.Nil(t, home.Substitutes[0].GameTime)

	// main sent as a number is not the string "1": substitute.
	require.Len(t, m.Lineups.Away.Substitutes, 1)
	assert.Empty(t, m.Lineups.Away.Starters)
	assert.Equal(t, 14, m.Lineups.Away.Substitutes[0].ShirtNumber)
}

func TestNormalizeMatch_WithoutDetail(t *testing.T) {
	listing := Listing{GameID: "A2", Date: "18/08/24", TeamAName: "Home", Status: "Finished"}

	m := NormalizeMatch(listing, nil, []string{"cloudfront"})

	assert.Nil(t, m.Info.HomeScore)
	assert.Nil(t, m.Info.AwayScore)
	assert.Nil(t, m.Info.VideoID)
	assert.Nil(t, m.Info.Stadium)
	assert.Equal(t, "Home", m.Info.HomeTeam.Name)
	assert.Equal(t, "Unknown", m.Info.AwayTeam.Name)
	assert.Equal(t, "Unknown", m.Info.CompetitionName)
	assert.Equal(t, "Finished", m.Info.Status)
	assert.Equal(t, "2024-08-18T00:00:00", *m.Info.KickoffTime)
	assert.Empty(t, m.Lineups.Home.Starters)
	assert.NotNil(t, m.Lineups.Away.Substitutes)
}

func TestNormalizeMatch_DropsVideoOutsideAllowList(t *testing.T) {
	detail := &MatchDetail{Status: "ok"}
	detail.MatchDetails.Video.PanoHLS = "https://example.com/stream.m3u8"

	m := NormalizeMatch(Listing{GameID: "A3"}, detail, []string{"cloudfront"})

	assert.Nil(t, m.Info.VideoID)
}

func TestNormalizeMatch_PlayerListedTwiceKeepsFirstRow(t *testing.T) {
	var detail MatchDetail
	require.NoError(t, json.Unmarshal([]byte(`{"status": "ok", "teams": [{"players": [
		{"player_id": "5", "player_name": "First", "shirt_number": "7", "main": "1"},
		{"player_id": 5, "player_name": "Second", "shirt_number": "8", "main": "0"},
		{"player_id": "6", "main": "0"}
	]}]}`), &detail))

	m := NormalizeMatch(Listing{GameID: "A4"}, &detail, nil)

	home := m.Lineups.Home
	require.Len(t, home.Starters, 1)
	assert.Equal(t, "First", home.Starters[0].Name)
	assert.Equal(t, 7, home.Starters[0].ShirtNumber)
	require.Len(t, home.Substitutes, 1)
	assert.Equal(t, "6", home.Substitutes[0].ID)
}

func TestNormalizeMatch_FlagsMustBeStrings(t *testing.T) {
	var detail MatchDetail
	require.NoError(t, json.Unmarshal([]byte(`{"status": "ok", "teams": [{"players": [
		{"player_id": "1", "main": 1, "goalkeeper": 1, "captain": true},
		{"player_id": "2", "main": "1", "goalkeeper": "1", "captain": "1"}
	]}]}`), &detail))

	m := NormalizeMatch(Listing{GameID: "A5"}, &detail, nil)

	home := m.Lineups.Home
	require.Len(t, home.Starters, 1)
	require.Len(t, home.Substitutes, 1)
	assert.Equal(t, "2", home.Starters[0].ID)
	assert.True(t, home.Starters[0].Captain)
	require.NotNil(t, home.Starters[0].Position)

	numeric := home.Substitutes[0]
	assert.Equal(t, "1", numeric.ID)
	assert.False(t, numeric.Captain)
	assert.Nil(t, numeric.Position)
}
