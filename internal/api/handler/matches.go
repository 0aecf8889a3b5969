package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/matchday-data/internal/cache"
	"github.com/albapepper/matchday-data/internal/provider"
)

const defaultSummaryStatus = "scheduled"

// MatchSummary is a match as listed on the fixtures page.
type MatchSummary struct {
	ID          string        `json:"id"`
	HomeTeam    provider.Team `json:"home_team"`
	AwayTeam    provider.Team `json:"away_team"`
	HomeScore   *int          `json:"home_score"`
	AwayScore   *int          `json:"away_score"`
	MatchDate   string        `json:"match_date"`
	KickoffTime *string       `json:"kickoff_time"`
	Status      string        `json:"status"`
	Stadium     *string       `json:"stadium"`
	VideoID     *string       `json:"pixellot_id"`
}

// MatchesResponse groups summaries by match date. Keys encode in date order.
type MatchesResponse struct {
	MatchesByDay map[string][]MatchSummary `json:"matches_by_day"`
}

// MatchDetailResponse is a full match document. BreakdownData is {} for
// matches without breakdown metadata.
type MatchDetailResponse struct {
	MatchInfo     provider.MatchInfo `json:"match_info"`
	Lineups       provider.Lineups   `json:"lineups"`
	Events        []provider.Event   `json:"events"`
	BreakdownData interface{}        `json:"breakdown_data"`
}

// GetMatches lists all matches grouped by day. Matches without a date are
// left out.
// @Summary List matches by day
// @Description Returns match summaries grouped by match date, in date order.
// @Tags matches
// @Produce json
// @Success 200 {object} MatchesResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /matches [get]
func (h *Handler) GetMatches(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, cache.MatchListKey(), "",
		func(ctx context.Context) (interface{}, bool, error) {
			matches, err := h.store.ListMatches(ctx)
			if err != nil {
				return nil, false, err
			}
			return GroupByDay(matches), true, nil
		})
}

// GetMatch returns one match with lineups, events and breakdown data.
// @Summary Get match
// @Description Returns the full match document.
// @Tags matches
// @Produce json
// @Param matchID path string true "Match ID"
// @Success 200 {object} MatchDetailResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /matches/{matchID} [get]
func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "matchID")
	h.serveCached(w, r, cache.MatchKey(id), "Match",
		func(ctx context.Context) (interface{}, bool, error) {
			m, ok, err := h.store.GetMatch(ctx, id)
			if err != nil || !ok {
				return nil, ok, err
			}
			return NewMatchDetail(m), true, nil
		})
}

// GroupByDay builds the fixtures listing from stored matches.
func GroupByDay(matches []provider.Match) MatchesResponse {
	byDay := make(map[string][]MatchSummary)
	for _, m := range matches {
		info := m.Info
		if info.MatchDate == nil || *info.MatchDate == "" {
			continue
		}
		status := info.Status
		if status == "" {
			status = defaultSummaryStatus
		}
		byDay[*info.MatchDate] = append(byDay[*info.MatchDate], MatchSummary{
			ID:          m.ID,
			HomeTeam:    info.HomeTeam,
			AwayTeam:    info.AwayTeam,
			HomeScore:   info.HomeScore,
			AwayScore:   info.AwayScore,
			MatchDate:   *info.MatchDate,
			KickoffTime: info.KickoffTime,
			Status:      status,
			Stadium:     info.Stadium,
			VideoID:     info.VideoID,
		})
	}
	return MatchesResponse{MatchesByDay: byDay}
}

// NewMatchDetail shapes a stored match for the detail endpoint.
func NewMatchDetail(m provider.Match) MatchDetailResponse {
	resp := MatchDetailResponse{
		MatchInfo:     m.Info,
		Lineups:       m.Lineups,
		Events:        m.Events,
		BreakdownData: struct{}{},
	}
	if resp.Events == nil {
		resp.Events = []provider.Event{}
	}
	if m.Breakdown != nil {
		resp.BreakdownData = m.Breakdown
	}
	return resp
}
