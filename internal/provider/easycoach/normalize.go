package easycoach

import (
	"strconv"
	"strings"
	"time"

	"github.com/albapepper/matchday-data/internal/provider"
)

const (
	listDateLayout = "2/1/06" // DD/MM/YY, leading zeros optional
	isoDateLayout  = "2006-01-02"
)

// NormalizeMatch maps a league listing plus its optional detail payload into
// a canonical match document. A nil detail yields empty lineups and no video.
//
// Starters are the players whose main flag is the string "1". A player id
// listed twice on a side keeps its first row. The only position this
// source can express is goalkeeper. A video stream is kept only when its URL
// contains one of cdnHosts.
func NormalizeMatch(l Listing, detail *MatchDetail, cdnHosts []string) provider.Match {
	id := l.GameID.String()
	matchDate, kickoff := ParseKickoff(l.Date, l.Hour)
	home, away := ParseScore(l.Result.String())

	info := provider.MatchInfo{
		ID: id,
		HomeTeam: provider.Team{
			ID:   l.TeamAID.String(),
			Name: firstNonEmpty(l.TeamANameEN, l.TeamAName, provider.UnknownName),
		},
		AwayTeam: provider.Team{
			ID:   l.TeamBID.String(),
			Name: firstNonEmpty(l.TeamBNameEN, l.TeamBName, provider.UnknownName),
		},
		KickoffTime:     kickoff,
		CompetitionName: firstNonEmpty(l.FixtureNameEN, l.FixtureName, provider.UnknownName),
		HomeScore:       home,
		AwayScore:       away,
		Status:          firstNonEmpty(l.Status, provider.StatusScheduled),
		Stadium:         provider.StringPtr(firstNonEmpty(l.StadiumNameEN, l.StadiumName)),
		MatchDate:       matchDate,
	}

	lineups := provider.NewLineups()
	if detail != nil {
		if len(detail.Teams) > 0 {
			lineups.Home = teamLineup(detail.Teams[0])
		}
		if len(detail.Teams) > 1 {
			lineups.Away = teamLineup(detail.Teams[1])
		}
		info.VideoID = acceptVideo(detail.MatchDetails.Video.PanoHLS, cdnHosts)
	}

	return provider.Match{
		ID:      id,
		Info:    info,
		Lineups: lineups,
		Events:  []provider.Event{},
	}
}

// ParseKickoff combines a DD/MM/YY date and an HH:MM time into a match date
// ("YYYY-MM-DD") and an ISO kickoff ("YYYY-MM-DDTHH:MM:00"). A missing time
// means midnight. An unparsable date is returned verbatim for both values;
// an empty date yields nil for both.
func ParseKickoff(date, hour string) (matchDate, kickoff *string) {
	if date == "" {
		return nil, nil
	}

	t, err := time.Parse(listDateLayout, date)
	if err != nil {
		raw := date
		return &raw, &raw
	}

	day := t.Format(isoDateLayout)
	ko := day + "T00:00:00"
	if hour != "" {
		ko = day + "T" + hour + ":00"
	}
	return &day, &ko
}

// ParseScore parses an "H-A" result. Anything other than exactly one dash
// between two integers yields nil for both sides.
func ParseScore(result string) (home, away *int) {
	if strings.Count(result, "-") != 1 {
		return nil, nil
	}
	parts := strings.SplitN(result, "-", 2)
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, nil
	}
	a, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, nil
	}
	return &h, &a
}

func teamLineup(team TeamDetail) provider.TeamLineup {
	lineup := provider.TeamLineup{
		Starters:    []provider.LineupPlayer{},
		Substitutes: []provider.LineupPlayer{},
	}
	seen := make(map[string]bool, len(team.Players))
	for _, p := range team.Players {
		id := p.PlayerID.String()
		if id != "" {
			if seen[id] {
				continue
			}
			seen[id] = true
		}
		name := provider.UnknownName
		if p.PlayerName != nil {
			name = *p.PlayerName
		}
		entry := provider.LineupPlayer{
			ID:          id,
			Name:        name,
			NameEN:      provider.StringPtr(p.PlayerNameEN),
			ShirtNumber: p.ShirtNumber.Or(0),
			Captain:     provider.Flag(p.Captain),
		}
		if provider.Flag(p.Goalkeeper) {
			entry.Position = provider.StringPtr(provider.PositionKeeper)
		}

		if provider.Flag(p.Main) {
			lineup.Starters = append(lineup.Starters, entry)
		} else {
			lineup.Substitutes = append(lineup.Substitutes, entry)
		}
	}
	return lineup
}

// acceptVideo keeps a stream URL only if it points at an allowed CDN.
func acceptVideo(streamURL string, cdnHosts []string) *string {
	if streamURL == "" {
		return nil
	}
	for _, host := range cdnHosts {
		if host != "" && strings.Contains(streamURL, host) {
			return &streamURL
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
