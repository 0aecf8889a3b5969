package easycoach

import "github.com/albapepper/matchday-data/internal/provider"

// LeagueResponse is the /league payload.
type LeagueResponse struct {
	Status  string    `json:"status"`
	Matches []Listing `json:"matches"`
}

// Listing is one match row of the league list. Team and fixture names come
// in a localized form and an optional English form.
type Listing struct {
	GameID        provider.FlexString `json:"game_id"`
	Date          string              `json:"date"` // "DD/MM/YY"
	Hour          string              `json:"hour"` // "HH:MM"
	Result        provider.FlexString `json:"result"`
	Status        string              `json:"status"`
	TeamAID       provider.FlexString `json:"team_a_id"`
	TeamAName     string              `json:"team_a_name"`
	TeamANameEN   string              `json:"team_a_name_en"`
	TeamBID       provider.FlexString `json:"team_b_id"`
	TeamBName     string              `json:"team_b_name"`
	TeamBNameEN   string              `json:"team_b_name_en"`
	FixtureName   string              `json:"fixture_name"`
	FixtureNameEN string              `json:"fixture_name_en"`
	StadiumName   string              `json:"stadium_name"`
	StadiumNameEN string              `json:"stadium_name_en"`
}

// MatchDetail is the /match payload. Teams[0] is home, Teams[1] away.
type MatchDetail struct {
	Status       string       `json:"status"`
	Teams        []TeamDetail `json:"teams"`
	MatchDetails struct {
		Video struct {
			PanoHLS string `json:"pano_hls"`
		} `json:"video"`
	} `json:"match_details"`
}

// TeamDetail is one side of a match detail.
type TeamDetail struct {
	Players []DetailPlayer `json:"players"`
}

// DetailPlayer is a team-sheet entry. Flags are the strings "1" or "0".
type DetailPlayer struct {
	PlayerID     provider.FlexString `json:"player_id"`
	PlayerName   *string             `json:"player_name"`
	PlayerNameEN string              `json:"player_name_en"`
	ShirtNumber  provider.FlexInt    `json:"shirt_number"`
	Goalkeeper   provider.Token      `json:"goalkeeper"`
	Captain      provider.Token      `json:"captain"`
	Main         provider.Token      `json:"main"`
}
