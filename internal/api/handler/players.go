package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/matchday-data/internal/cache"
)

// GetPlayer returns one aggregated player profile.
// @Summary Get player
// @Description Returns the player profile with match history, totals and skills.
// @Tags players
// @Produce json
// @Param playerID path string true "Player ID"
// @Success 200 {object} provider.PlayerProfile
// @Failure 404 {object} respond.ErrorResponse
// @Router /players/{playerID} [get]
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "playerID")
	h.serveCached(w, r, cache.PlayerKey(id), "Player",
		func(ctx context.Context) (interface{}, bool, error) {
			p, ok, err := h.store.GetPlayer(ctx, id)
			if err != nil || !ok {
				return nil, ok, err
			}
			return p, true, nil
		})
}
