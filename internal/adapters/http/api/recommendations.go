package api

import (
	"context"
	"net/http"
)

// RecommendationDependencies defines the interface for recommendation flow.
type RecommendationDependencies interface {
	Recommendations(ctx context.Context) ([]Candidate, error)
	Current(ctx context.Context) (Candidate, error)
	Accept(ctx context.Context, key string) (Decision, error)
	Skip(ctx context.Context, key string) (Decision, error)
	Reset(ctx context.Context) error
}

// RecommendationsHandler handles recommendation requests.
type RecommendationsHandler struct {
	deps RecommendationDependencies
}

// NewRecommendationsHandler creates a new recommendations handler.
func NewRecommendationsHandler(deps RecommendationDependencies) *RecommendationsHandler {
	return &RecommendationsHandler{deps: deps}
}

// decisionRequest mirrors the OpenAPI schema for accept and skip. An empty
// key targets the current recommendation.
type decisionRequest struct {
	MatchKey string `json:"match_key"`
}

// HandleList handles GET /api/v1/recommendations.
func (h *RecommendationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_recommendations"
	cands, err := h.deps.Recommendations(r.Context())
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	if cands == nil {
		cands = []Candidate{}
	}
	writeJSON(w, http.StatusOK, cands)
}

// HandleCurrent handles GET /api/v1/recommendations/current.
func (h *RecommendationsHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	const op = "api.current_recommendation"
	c, err := h.deps.Current(r.Context())
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// HandleAccept handles POST /api/v1/recommendations/accept.
func (h *RecommendationsHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "api.accept_recommendation", h.deps.Accept)
}

// HandleSkip handles POST /api/v1/recommendations/skip.
func (h *RecommendationsHandler) HandleSkip(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "api.skip_recommendation", h.deps.Skip)
}

func (h *RecommendationsHandler) decide(w http.ResponseWriter, r *http.Request, op string,
	fn func(ctx context.Context, key string) (Decision, error),
) {
	var req decisionRequest
	if err := decode(r, &req); err != nil {
		fail(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	d, err := fn(r.Context(), req.MatchKey)
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// HandleReset handles POST /api/v1/recommendations/reset.
func (h *RecommendationsHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	const op = "api.reset_recommendations"
	if err := h.deps.Reset(r.Context()); err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "reset"})
}
