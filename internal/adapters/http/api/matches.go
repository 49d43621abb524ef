package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

// MatchDependencies defines the interface for the working form and the
// planned matches.
type MatchDependencies interface {
	Form(ctx context.Context) (Form, error)
	UpdateForm(ctx context.Context, f Form) (Form, error)
	ClearForm(ctx context.Context) error
	Matches(ctx context.Context) ([]PlannedMatch, error)
	CreateMatch(ctx context.Context, f *Form) (PlannedMatch, error)
	RemoveMatch(ctx context.Context, key string) (bool, error)
}

// MatchesHandler handles form and match requests.
type MatchesHandler struct {
	deps MatchDependencies
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(deps MatchDependencies) *MatchesHandler {
	return &MatchesHandler{deps: deps}
}

type removeResponse struct {
	Key     string `json:"key"`
	Removed bool   `json:"removed"`
}

// HandleGetForm handles GET /api/v1/form.
func (h *MatchesHandler) HandleGetForm(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_form"
	f, err := h.deps.Form(r.Context())
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// HandlePutForm handles PUT /api/v1/form.
func (h *MatchesHandler) HandlePutForm(w http.ResponseWriter, r *http.Request) {
	const op = "api.put_form"
	var in Form
	if err := decode(r, &in); err != nil {
		fail(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	f, err := h.deps.UpdateForm(r.Context(), in)
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// HandleClearForm handles DELETE /api/v1/form.
func (h *MatchesHandler) HandleClearForm(w http.ResponseWriter, r *http.Request) {
	const op = "api.clear_form"
	if err := h.deps.ClearForm(r.Context()); err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "cleared"})
}

// HandleList handles GET /api/v1/matches.
func (h *MatchesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_matches"
	ms, err := h.deps.Matches(r.Context())
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	if ms == nil {
		ms = []PlannedMatch{}
	}
	writeJSON(w, http.StatusOK, ms)
}

// HandleCreate handles POST /api/v1/matches. Without a body the working
// form is used.
func (h *MatchesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_match"
	var in *Form
	if err := decode(r, &in); err != nil {
		fail(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	m, err := h.deps.CreateMatch(r.Context(), in)
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

// HandleRemove handles DELETE /api/v1/matches/{key}. Removing an unknown key
// succeeds with removed=false.
func (h *MatchesHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	const op = "api.remove_match"
	key := chi.URLParam(r, "key")
	if k, err := url.PathUnescape(key); err == nil {
		key = k
	}
	removed, err := h.deps.RemoveMatch(r.Context(), key)
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, removeResponse{Key: key, Removed: removed})
}
