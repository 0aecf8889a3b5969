package seed

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/albapepper/matchday-data/internal/provider"
	"github.com/albapepper/matchday-data/internal/store"
)

const (
	// missingDateSortKey places appearances without a date last in the
	// newest-first history.
	missingDateSortKey = "1900-01-01"
	defaultCompetition = "League"
)

// PlayerAggregator folds every stored match into one profile per player.
type PlayerAggregator struct {
	matches store.MatchStore
	players store.PlayerStore
	skills  *SkillGenerator
	logger  *slog.Logger
}

// NewPlayerAggregator creates an aggregator. A nil skills generator uses an
// unseeded one.
func NewPlayerAggregator(matches store.MatchStore, players store.PlayerStore, skills *SkillGenerator, logger *slog.Logger) *PlayerAggregator {
	if skills == nil {
		skills = NewSkillGenerator(nil)
	}
	return &PlayerAggregator{matches: matches, players: players, skills: skills, logger: logger}
}

// Run reads all matches, aggregates profiles and replaces the player
// collection with them in one bulk insert.
func (a *PlayerAggregator) Run(ctx context.Context) (SeedResult, error) {
	var result SeedResult

	matches, err := a.matches.ListMatches(ctx)
	if err != nil {
		return result, fmt.Errorf("list matches: %w", err)
	}
	a.logger.Info("Aggregating players", "matches", len(matches))

	profiles := Aggregate(matches, a.skills)

	removed, err := a.players.DeleteAllPlayers(ctx)
	if err != nil {
		return result, fmt.Errorf("clear players: %w", err)
	}
	a.logger.Info("Cleared player collection", "removed", removed)

	if len(profiles) == 0 {
		a.logger.Info("No players found to insert")
		return result, nil
	}
	if err := a.players.InsertPlayers(ctx, profiles); err != nil {
		return result, fmt.Errorf("insert players: %w", err)
	}
	result.PlayersInserted = len(profiles)

	var appearances, goals int
	for _, p := range profiles {
		appearances += p.TotalStats.Matches
		goals += p.TotalStats.Goals
	}
	a.logger.Info("Player aggregation complete",
		"players", len(profiles), "appearances", appearances, "goals", goals)
	return result, nil
}

// profileTable keeps profiles in first-encounter order.
type profileTable struct {
	order []string
	byID  map[string]*provider.PlayerProfile
}

func (t *profileTable) get(id string) *provider.PlayerProfile {
	return t.byID[id]
}

func (t *profileTable) add(p *provider.PlayerProfile) {
	t.order = append(t.order, p.ID)
	t.byID[p.ID] = p
}

func (t *profileTable) profiles() []provider.PlayerProfile {
	out := make([]provider.PlayerProfile, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, *t.byID[id])
	}
	return out
}

type matchSide struct {
	label    string
	team     provider.Team
	opponent provider.Team
	lineup   provider.TeamLineup
}

// Aggregate builds player profiles from matches in the order given.
// Profiles come back in first-encounter order, each with its appearance
// history sorted newest first.
func Aggregate(matches []provider.Match, skills *SkillGenerator) []provider.PlayerProfile {
	table := &profileTable{byID: make(map[string]*provider.PlayerProfile)}

	for _, m := range matches {
		sides := []matchSide{
			{provider.HomeSide, m.Info.HomeTeam, m.Info.AwayTeam, m.Lineups.Home},
			{provider.AwaySide, m.Info.AwayTeam, m.Info.HomeTeam, m.Lineups.Away},
		}
		for _, side := range sides {
			addSide(table, m, side, skills)
		}
	}

	out := table.profiles()
	for i := range out {
		sortHistory(out[i].MatchesPlayed)
	}
	return out
}

func addSide(table *profileTable, m provider.Match, side matchSide, skills *SkillGenerator) {
	teamName := orUnknown(side.team.Name)
	opponentName := orUnknown(side.opponent.Name)
	competition := m.Info.CompetitionName
	if competition == "" {
		competition = defaultCompetition
	}

	// One appearance per player per side, even if a stored lineup lists the
	// player twice.
	seen := make(map[string]bool)
	starters := len(side.lineup.Starters)
	for i, entry := range side.lineup.All() {
		if entry.ID == "" || seen[entry.ID] {
			continue
		}
		seen[entry.ID] = true

		profile := table.get(entry.ID)
		if profile == nil {
			profile = newProfile(entry, skills)
			table.add(profile)
		} else if observed := positionOf(entry); observed != provider.UnknownPosition &&
			profile.Position == provider.UnknownPosition {
			profile.Position = observed
			profile.Skills = skills.Generate(observed)
		}
		profile.TeamID = side.team.ID
		profile.TeamName = teamName

		app := provider.Appearance{
			MatchID:       m.ID,
			MatchDate:     m.Info.MatchDate,
			PlayerTeam:    teamName,
			Opponent:      opponentName,
			HomeAway:      side.label,
			Competition:   competition,
			MinutesPlayed: entry.GameTime,
			Started:       i < starters,
		}

		for _, ev := range m.Events {
			if ev.PlayerID != entry.ID {
				continue
			}
			switch ev.Kind {
			case provider.EventGoal:
				app.Goals++
				profile.TotalStats.Goals++
			case provider.EventYellowCard:
				app.YellowCards++
				profile.TotalStats.YellowCards++
			case provider.EventRedCard:
				app.RedCards++
				profile.TotalStats.RedCards++
			}
		}

		profile.MatchesPlayed = append(profile.MatchesPlayed, app)
		profile.TotalStats.Matches++
		if app.MinutesPlayed != nil {
			profile.TotalStats.MinutesPlayed += *app.MinutesPlayed
		}
	}
}

func newProfile(entry provider.LineupPlayer, skills *SkillGenerator) *provider.PlayerProfile {
	name := entry.Name
	if entry.NameEN != nil && *entry.NameEN != "" {
		name = *entry.NameEN
	}
	position := positionOf(entry)
	return &provider.PlayerProfile{
		ID:            entry.ID,
		Name:          orUnknown(name),
		Position:      position,
		ShirtNumber:   entry.ShirtNumber,
		IsCaptain:     entry.Captain,
		MatchesPlayed: []provider.Appearance{},
		Skills:        skills.Generate(position),
	}
}

func positionOf(entry provider.LineupPlayer) string {
	if entry.Position == nil || *entry.Position == "" {
		return provider.UnknownPosition
	}
	return *entry.Position
}

// sortHistory orders appearances newest first. Equal dates keep their
// processing order.
func sortHistory(history []provider.Appearance) {
	sort.SliceStable(history, func(i, j int) bool {
		return dateKey(history[i]) > dateKey(history[j])
	})
}

func dateKey(a provider.Appearance) string {
	if a.MatchDate == nil || *a.MatchDate == "" {
		return missingDateSortKey
	}
	return *a.MatchDate
}

func orUnknown(s string) string {
	if s == "" {
		return provider.UnknownName
	}
	return s
}
