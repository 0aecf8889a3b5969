package breakdown

import (
	"strings"
	"time"

	"github.com/albapepper/matchday-data/internal/provider"
)

const (
	sourceDateLayout  = "2006-01-02 15:04:05"
	kickoffLayout     = "2006-01-02T15:04:05"
	defaultMatchDate  = "2025-10-25 10:00:00"
	fallbackMatchDay  = "2025-10-25"
	defaultHomeLabel  = "Home Team"
	defaultAwayLabel  = "Away Team"
	escapedApostrophe = "&#039;"
)

// MatchOptions carries the values the export does not contain.
type MatchOptions struct {
	MatchID     string
	Competition string
	VideoURL    string
}

// NormalizeMatch builds the canonical document for the breakdown match.
//
// Starters are the players with is_sub == 0. A player id listed twice on a
// side keeps its first row. Minutes played are carried verbatim. Team
// labels get exactly one entity substitution (&#039; to ').
func NormalizeMatch(opts MatchOptions, rec *Record, events []provider.Event) provider.Match {
	if events == nil {
		events = []provider.Event{}
	}

	raw := defaultMatchDate
	if rec.MatchDate != nil {
		raw = *rec.MatchDate
	}
	var kickoff, day string
	if t, err := time.Parse(sourceDateLayout, raw); err == nil {
		kickoff = t.Format(kickoffLayout)
		day = t.Format("2006-01-02")
	} else {
		kickoff = raw
		day = fallbackMatchDay
	}

	info := provider.MatchInfo{
		ID: opts.MatchID,
		HomeTeam: provider.Team{
			ID:   rec.HomeTeamID.String(),
			Name: unescapeLabel(rec.HomeLabel, defaultHomeLabel),
		},
		AwayTeam: provider.Team{
			ID:   rec.AwayTeamID.String(),
			Name: unescapeLabel(rec.AwayLabel, defaultAwayLabel),
		},
		KickoffTime:     &kickoff,
		CompetitionName: opts.Competition,
		HomeScore:       score(rec.HomeTeamScore),
		AwayScore:       score(rec.AwayTeamScore),
		Status:          provider.StatusFinished,
		MatchDate:       &day,
		VideoID:         provider.StringPtr(opts.VideoURL),
	}

	return provider.Match{
		ID:   opts.MatchID,
		Info: info,
		Lineups: provider.Lineups{
			Home: teamLineup(rec.HomeTeamPlayers),
			Away: teamLineup(rec.AwayTeamPlayers),
		},
		Events: events,
		Breakdown: &provider.BreakdownData{
			FirstHalfStart:  rec.FirstHalfStart.Ptr(),
			SecondHalfStart: rec.SecondHalfStart.Ptr(),
		},
	}
}

func teamLineup(players []Player) provider.TeamLineup {
	lineup := provider.TeamLineup{
		Starters:    []provider.LineupPlayer{},
		Substitutes: []provider.LineupPlayer{},
	}
	seen := make(map[string]bool, len(players))
	for _, p := range players {
		id := p.PlayerID.String()
		if id != "" {
			if seen[id] {
				continue
			}
			seen[id] = true
		}
		entry := provider.LineupPlayer{
			ID:          id,
			Name:        p.DisplayName(),
			ShirtNumber: p.Number.Or(0),
			Position:    p.Position.Ptr(),
			GameTime:    p.GameTime.Ptr(),
		}
		if p.Starter() {
			lineup.Starters = append(lineup.Starters, entry)
		} else {
			lineup.Substitutes = append(lineup.Substitutes, entry)
		}
	}
	return lineup
}

// score defaults an absent score to 0 but keeps an explicit null as nil.
func score(n provider.FlexInt) *int {
	if !n.Present {
		return provider.IntPtr(0)
	}
	return n.Ptr()
}

func unescapeLabel(label *string, fallback string) string {
	if label == nil {
		return fallback
	}
	return strings.ReplaceAll(*label, escapedApostrophe, "'")
}
