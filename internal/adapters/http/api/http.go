// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/okian/padelmatch/internal/adapters/repository"
	service "github.com/okian/padelmatch/internal/app"
	"github.com/okian/padelmatch/internal/domain/model"
	"github.com/okian/padelmatch/internal/domain/planner"
	"github.com/okian/padelmatch/internal/domain/recommend"
	"github.com/okian/padelmatch/internal/domain/scoring"
	"github.com/okian/padelmatch/internal/domain/types"
	"github.com/okian/padelmatch/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	PlayerDependencies
	PairDependencies
	RecommendationDependencies
	MatchDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler          *HealthHandler
	statsHandler           *StatsHandler
	playersHandler         *PlayersHandler
	pairsHandler           *PairsHandler
	recommendationsHandler *RecommendationsHandler
	matchesHandler         *MatchesHandler

	token          string
	corsOrigins    []string
	rateLimitRPS   float64
	rateLimitBurst int
	maxPairLimit   int
	logger         logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		corsOrigins:  []string{"*"},
		maxPairLimit: 100,
		logger:       logger.Get().Named("api"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(statsProvider, map[string]any{
		"auth":           s.token != "",
		"rateLimitRPS":   s.rateLimitRPS,
		"rateLimitBurst": s.rateLimitBurst,
		"maxPairLimit":   s.maxPairLimit,
	})
	s.playersHandler = NewPlayersHandler(deps)
	s.pairsHandler = NewPairsHandler(deps, s.maxPairLimit)
	s.recommendationsHandler = NewRecommendationsHandler(deps)
	s.matchesHandler = NewMatchesHandler(deps)
	return s
}

// Register attaches all HTTP routes to r.
func (s *Server) Register(ctx context.Context, r chi.Router) {
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}).Handler)

	// Operational routes stay open.
	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/metrics", s.healthHandler.HandleHealth)

	r.Group(func(r chi.Router) {
		if s.rateLimitRPS > 0 {
			r.Use(RateLimitMiddleware(s.rateLimitRPS, s.rateLimitBurst))
		}
		if s.token != "" {
			r.Use(AuthMiddleware(s.token))
		}

		r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/players", MetricsMiddleware(s.playersHandler.HandleList, "players"))
			r.Get("/players/{id}", MetricsMiddleware(s.playersHandler.HandleGet, "player"))

			r.Get("/pairs", MetricsMiddleware(s.pairsHandler.HandleList, "pairs"))
			r.Get("/pairs/{a}/{b}", MetricsMiddleware(s.pairsHandler.HandleGet, "pair"))
			r.Get("/evaluate", MetricsMiddleware(s.pairsHandler.HandleEvaluate, "evaluate"))

			r.Route("/recommendations", func(r chi.Router) {
				r.Get("/", MetricsMiddleware(s.recommendationsHandler.HandleList, "recommendations"))
				r.Get("/current", MetricsMiddleware(s.recommendationsHandler.HandleCurrent, "recommendations_current"))
				r.Post("/accept", MetricsMiddleware(s.recommendationsHandler.HandleAccept, "recommendations_accept"))
				r.Post("/skip", MetricsMiddleware(s.recommendationsHandler.HandleSkip, "recommendations_skip"))
				r.Post("/reset", MetricsMiddleware(s.recommendationsHandler.HandleReset, "recommendations_reset"))
			})

			r.Get("/form", MetricsMiddleware(s.matchesHandler.HandleGetForm, "form"))
			r.Put("/form", MetricsMiddleware(s.matchesHandler.HandlePutForm, "form"))
			r.Delete("/form", MetricsMiddleware(s.matchesHandler.HandleClearForm, "form"))

			r.Get("/matches", MetricsMiddleware(s.matchesHandler.HandleList, "matches"))
			r.Post("/matches", MetricsMiddleware(s.matchesHandler.HandleCreate, "matches"))
			r.Delete("/matches/{key}", MetricsMiddleware(s.matchesHandler.HandleRemove, "match"))
		})
	})

	s.logger.Info(ctx, "api routes registered",
		logger.Bool("auth", s.token != ""),
		logger.Float64("rateLimitRPS", s.rateLimitRPS),
	)
}

// Router returns a chi router with every route registered.
func (s *Server) Router(ctx context.Context) chi.Router {
	r := chi.NewRouter()
	s.Register(ctx, r)
	return r
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// fail writes err with the status its kind maps to.
func fail(w http.ResponseWriter, err error) {
	status, code := classify(err)
	writeError(w, status, code, err)
}

// decode reads an optional JSON body into v. An empty body leaves v untouched.
func decode(r *http.Request, v any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Compile-time check that the service satisfies the handler contracts.
var _ Dependencies = (*service.Service)(nil)

// Aliases used in handler contracts.
type (
	PlayerEntry  = types.PlayerEntry
	PairEntry    = repository.Entry
	Player       = model.Player
	Evaluation   = scoring.MatchEvaluation
	Candidate    = recommend.Candidate
	Decision     = service.Decision
	Form         = planner.Form
	PlannedMatch = planner.PlannedMatch
)
