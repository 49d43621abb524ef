package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/okian/padelmatch/internal/domain/planner"
)

// PairDependencies defines the interface for pair reads and evaluations.
type PairDependencies interface {
	Pairs(ctx context.Context, limit int) ([]PairEntry, error)
	Pair(ctx context.Context, a, b string) (PairEntry, error)
	Evaluate(ctx context.Context, pair1, pair2 [2]string) (Evaluation, error)
}

// PairsHandler handles pair requests.
type PairsHandler struct {
	deps     PairDependencies
	maxLimit int
}

// NewPairsHandler creates a new pairs handler.
func NewPairsHandler(deps PairDependencies, maxLimit int) *PairsHandler {
	return &PairsHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleList handles GET /api/v1/pairs?limit=N. Without a limit the whole
// allowed page is returned.
func (h *PairsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_pairs"
	n := h.maxLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		n, err = strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		if n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
			return
		}
	}
	entries, err := h.deps.Pairs(r.Context(), n)
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// HandleGet handles GET /api/v1/pairs/{a}/{b}.
func (h *PairsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_pair"
	e, err := h.deps.Pair(r.Context(), chi.URLParam(r, "a"), chi.URLParam(r, "b"))
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// HandleEvaluate handles GET /api/v1/evaluate?pair1=a,b&pair2=c,d.
func (h *PairsHandler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	const op = "api.evaluate"
	q := r.URL.Query()
	p1, ok1 := parsePair(q.Get("pair1"))
	p2, ok2 := parsePair(q.Get("pair2"))
	if !ok1 || !ok2 {
		fail(w, WrapKind(op, planner.ErrIncompleteSelection, ErrBadRequest))
		return
	}
	e, err := h.deps.Evaluate(r.Context(), p1, p2)
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// parsePair reads "a,b".
func parsePair(s string) ([2]string, bool) {
	a, b, ok := strings.Cut(s, ",")
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if !ok || a == "" || b == "" || strings.Contains(b, ",") {
		return [2]string{}, false
	}
	return [2]string{a, b}, true
}
