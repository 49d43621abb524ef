package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// PlayerDependencies defines the interface for player reads.
type PlayerDependencies interface {
	Players(ctx context.Context) ([]PlayerEntry, error)
	Player(ctx context.Context, id string) (Player, error)
}

// PlayersHandler handles player requests.
type PlayersHandler struct {
	deps PlayerDependencies
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps PlayerDependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

// HandleList handles GET /api/v1/players.
func (h *PlayersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_players"
	players, err := h.deps.Players(r.Context())
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, players)
}

// HandleGet handles GET /api/v1/players/{id}.
func (h *PlayersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_player"
	p, err := h.deps.Player(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, p)
}
