package breakdown

import (
	"fmt"
	"sort"

	"github.com/albapepper/matchday-data/internal/provider"
)

const halfLength = 45

// category binds an event category of the export to its canonical kind and
// id prefix. Order matters: it is the tie-break order within a player.
type category struct {
	prefix string
	kind   provider.EventKind
	pick   func(playerEvents) []EventRecord
}

var categories = []category{
	{prefix: "goal", kind: provider.EventGoal, pick: func(e playerEvents) []EventRecord { return e.Goals }},
	{prefix: "yellow", kind: provider.EventYellowCard, pick: func(e playerEvents) []EventRecord { return e.Yellows }},
	{prefix: "red", kind: provider.EventRedCard, pick: func(e playerEvents) []EventRecord { return e.Reds }},
}

// VideoTimestamp maps a match clock position to a second of the match video.
// Minutes before 45 are offset from the first-half start, the rest from the
// second-half start.
func VideoTimestamp(minute, second, firstHalfStart, secondHalfStart int) int {
	if minute < halfLength {
		return firstHalfStart + minute*60 + second
	}
	return secondHalfStart + (minute-halfLength)*60 + second
}

// ExtractEvents flattens the per-player event categories of rec into one
// timeline sorted by minute. Ties keep source order: home before away, then
// goals, yellows, reds, then list order. Players whose events value is not
// an object are skipped.
func ExtractEvents(rec *Record) []provider.Event {
	if rec == nil {
		return []provider.Event{}
	}

	first := rec.FirstHalfStart.Or(0)
	second := rec.SecondHalfStart.Or(0)

	events := make([]provider.Event, 0)
	sides := []struct {
		teamID  string
		players []Player
	}{
		{teamID: rec.HomeTeamID.String(), players: rec.HomeTeamPlayers},
		{teamID: rec.AwayTeamID.String(), players: rec.AwayTeamPlayers},
	}

	for _, side := range sides {
		for _, p := range side.players {
			pe, ok := p.events()
			if !ok {
				continue
			}
			playerID := p.PlayerID.String()
			name := p.DisplayName()

			for _, cat := range categories {
				for _, r := range cat.pick(pe) {
					minute := r.StartMinute.Or(0)
					sec := r.StartSecond.Or(0)
					events = append(events, provider.Event{
						ID:             fmt.Sprintf("%s_%s_%s", cat.prefix, playerID, r.EventID.String()),
						Minute:         minute,
						PlayerID:       playerID,
						PlayerName:     name,
						TeamID:         side.teamID,
						Kind:           cat.kind,
						Timestamp:      minute*60 + sec,
						VideoTimestamp: VideoTimestamp(minute, sec, first, second),
					})
				}
			}
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Minute < events[j].Minute
	})
	return events
}
