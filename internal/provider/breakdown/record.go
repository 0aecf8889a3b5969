// Package breakdown reads the manually curated breakdown export of a single
// match and turns it into a canonical match document with a second-precision
// event timeline synchronized to the match video.
package breakdown

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/albapepper/matchday-data/internal/provider"
)

// ErrNotFound is returned by Load when the breakdown file does not exist.
var ErrNotFound = errors.New("breakdown file not found")

// Record is the breakdown export.
type Record struct {
	HomeTeamID      provider.FlexString `json:"home_team_id"`
	AwayTeamID      provider.FlexString `json:"away_team_id"`
	HomeLabel       *string             `json:"home_label"`
	AwayLabel       *string             `json:"away_label"`
	HomeTeamScore   provider.FlexInt    `json:"home_team_score"`
	AwayTeamScore   provider.FlexInt    `json:"away_team_score"`
	MatchDate       *string             `json:"match_date"` // "YYYY-MM-DD HH:MM:SS"
	FirstHalfStart  provider.FlexInt    `json:"first_half_start"`
	SecondHalfStart provider.FlexInt    `json:"second_half_start"`
	HomeTeamPlayers []Player            `json:"home_team_players"`
	AwayTeamPlayers []Player            `json:"away_team_players"`
}

// Player is one player row of the export. Events is kept raw because the
// export sometimes sends a list or null instead of a category mapping.
type Player struct {
	PlayerID provider.FlexString `json:"player_id"`
	FName    string              `json:"fname"`
	LName    string              `json:"lname"`
	Number   provider.FlexInt    `json:"number"`
	Position provider.FlexString `json:"position"`
	IsSub    provider.Token      `json:"is_sub"`
	GameTime provider.FlexInt    `json:"game_time"`
	Events   json.RawMessage     `json:"events"`
}

// DisplayName joins given and family names.
func (p Player) DisplayName() string {
	return strings.TrimSpace(p.FName + " " + p.LName)
}

// Starter reports whether is_sub is the number 0. Any other value,
// including the string "0", marks a substitute.
func (p Player) Starter() bool {
	return p.IsSub.IsNumber(0)
}

// EventRecord is one timed occurrence inside a player's event categories.
type EventRecord struct {
	StartMinute provider.FlexInt    `json:"start_minute"`
	StartSecond provider.FlexInt    `json:"start_second"`
	EventID     provider.FlexString `json:"event_id"`
}

// playerEvents is the category mapping of Player.Events.
type playerEvents struct {
	Goals   []EventRecord `json:"goals"`
	Yellows []EventRecord `json:"yellows"`
	Reds    []EventRecord `json:"reds"`
}

// events decodes the category mapping. ok is false when the raw value is not
// a JSON object; an absent value is an empty mapping.
func (p Player) events() (playerEvents, bool) {
	var out playerEvents
	raw := bytes.TrimSpace(p.Events)
	if len(raw) == 0 {
		return out, true
	}
	if raw[0] != '{' {
		return out, false
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return playerEvents{}, false
	}
	return out, true
}

// Load reads and decodes the breakdown file at path.
func Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read breakdown file: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode breakdown file %s: %w", path, err)
	}
	return &rec, nil
}
