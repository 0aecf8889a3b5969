// Package provider defines canonical document types that every source
// normalizes into. These structs are the contract between provider packages,
// the seed runners and the read API. Providers output Match documents
// that the seeders fold into PlayerProfile documents.
//
// Adding a new source means writing one more normalization function that
// returns a Match. The seed runners and storage never change.
package provider

// Default display values used when a source omits a field.
const (
	UnknownName     = "Unknown"
	UnknownPosition = "Unknown"
	StatusScheduled = "Scheduled"
	StatusFinished  = "Finished"
	PositionKeeper  = "GK"
	HomeSide        = "home"
	AwaySide        = "away"
)

// EventKind is the type of a timeline event.
type EventKind string

const (
	EventGoal       EventKind = "goal"
	EventYellowCard EventKind = "yellow_card"
	EventRedCard    EventKind = "red_card"
)

// Team is the team descriptor embedded in a match.
type Team struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Logo *string `json:"logo"`
}

// MatchInfo is the header of a match document.
type MatchInfo struct {
	ID              string  `json:"id"`
	HomeTeam        Team    `json:"home_team"`
	AwayTeam        Team    `json:"away_team"`
	KickoffTime     *string `json:"kickoff_time"`
	CompetitionName string  `json:"competition_name"`
	HomeScore       *int    `json:"home_score"`
	AwayScore       *int    `json:"away_score"`
	Status          string  `json:"status"`
	Stadium         *string `json:"stadium"`
	MatchDate       *string `json:"match_date"` // "YYYY-MM-DD", or the raw source value
	VideoID         *string `json:"pixellot_id"`
}

// LineupPlayer is one entry of a team sheet.
type LineupPlayer struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	NameEN      *string `json:"name_en,omitempty"`
	ShirtNumber int     `json:"shirt_number"`
	Position    *string `json:"position"`
	Captain     bool    `json:"captain"`
	GameTime    *int    `json:"game_time,omitempty"` // real minutes, breakdown source only
}

// TeamLineup is one side's team sheet. A player appears in at most one list.
type TeamLineup struct {
	Starters    []LineupPlayer `json:"first_11"`
	Substitutes []LineupPlayer `json:"substitutes"`
}

// All returns starters followed by substitutes.
func (l TeamLineup) All() []LineupPlayer {
	out := make([]LineupPlayer, 0, len(l.Starters)+len(l.Substitutes))
	out = append(out, l.Starters...)
	return append(out, l.Substitutes...)
}

// Lineups holds both team sheets of a match.
type Lineups struct {
	Home TeamLineup `json:"home"`
	Away TeamLineup `json:"away"`
}

// NewLineups returns lineups with empty, non-nil lists so documents encode
// as [] rather than null.
func NewLineups() Lineups {
	return Lineups{
		Home: TeamLineup{Starters: []LineupPlayer{}, Substitutes: []LineupPlayer{}},
		Away: TeamLineup{Starters: []LineupPlayer{}, Substitutes: []LineupPlayer{}},
	}
}

// Event is one timeline entry. Timestamp is match-clock seconds,
// VideoTimestamp the matching second of the external video.
type Event struct {
	ID             string    `json:"id"`
	Minute         int       `json:"minute"`
	PlayerID       string    `json:"player_id"`
	PlayerName     string    `json:"player_name"`
	TeamID         string    `json:"team_id"`
	Kind           EventKind `json:"event_type"`
	Timestamp      int       `json:"timestamp"`
	VideoTimestamp int       `json:"video_timestamp"`
}

// BreakdownData records where each half starts in the video timeline.
type BreakdownData struct {
	FirstHalfStart  *int `json:"first_half_start"`
	SecondHalfStart *int `json:"second_half_start"`
}

// Match is the canonical match document.
type Match struct {
	ID        string         `json:"id"`
	Info      MatchInfo      `json:"match_info"`
	Lineups   Lineups        `json:"lineups"`
	Events    []Event        `json:"events"`
	Breakdown *BreakdownData `json:"breakdown_data,omitempty"`
}

// Skills is the six-attribute radar profile of a player, each in [1,10].
type Skills struct {
	Passing   int `json:"passing"`
	Dribbling int `json:"dribbling"`
	Speed     int `json:"speed"`
	Strength  int `json:"strength"`
	Vision    int `json:"vision"`
	Defending int `json:"defending"`
}

// Appearance is one match's worth of a player's participation.
type Appearance struct {
	MatchID       string  `json:"match_id"`
	MatchDate     *string `json:"match_date"`
	PlayerTeam    string  `json:"player_team"`
	Opponent      string  `json:"opponent"`
	HomeAway      string  `json:"home_away"`
	Competition   string  `json:"competition"`
	MinutesPlayed *int    `json:"minutes_played"`
	Started       bool    `json:"started"`
	Goals         int     `json:"goals"`
	YellowCards   int     `json:"yellow_cards"`
	RedCards      int     `json:"red_cards"`
}

// TotalStats are career totals summed over all appearances.
type TotalStats struct {
	Matches       int `json:"matches"`
	Goals         int `json:"goals"`
	YellowCards   int `json:"yellow_cards"`
	RedCards      int `json:"red_cards"`
	MinutesPlayed int `json:"minutes_played"`
}

// PlayerProfile is the canonical player document.
type PlayerProfile struct {
	ID            string       `json:"_id"`
	Name          string       `json:"name"`
	Position      string       `json:"position"`
	ShirtNumber   int          `json:"shirt_number"`
	TeamID        string       `json:"team_id"`
	TeamName      string       `json:"team_name"`
	IsCaptain     bool         `json:"is_captain"`
	MatchesPlayed []Appearance `json:"matches_played"`
	TotalStats    TotalStats   `json:"total_stats"`
	Skills        Skills       `json:"skills"`
}

// StringPtr returns nil for an empty string, otherwise a pointer to s.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// IntPtr returns a pointer to n.
func IntPtr(n int) *int {
	return &n
}
