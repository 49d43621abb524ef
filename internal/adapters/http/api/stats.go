package api

import (
	"maps"
	"net/http"
)

// StatsProvider exposes service statistics.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsHandler serves the service statistics plus the API's own settings.
type StatsHandler struct {
	statsProvider StatsProvider
	api           map[string]any
}

// NewStatsHandler creates a stats handler. api is reported under the "api" key.
func NewStatsHandler(statsProvider StatsProvider, api map[string]any) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider, api: api}
}

// HandleStats handles GET /stats.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, _ *http.Request) {
	out := make(map[string]any)
	maps.Copy(out, h.statsProvider.GetStats())
	if len(h.api) > 0 {
		out["api"] = h.api
	}
	writeJSON(w, http.StatusOK, out)
}
