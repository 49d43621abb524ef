// Package service wires the roster, the pair store and the planning session
// and implements the dependencies required by the HTTP API.
//
// Static roster reads go straight to the registry and the store. Every
// session read or change is a command executed by a single worker, so the
// planner only ever sees one writer.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/padelmatch/internal/adapters/mq/queue"
	"github.com/okian/padelmatch/internal/adapters/mq/worker"
	"github.com/okian/padelmatch/internal/adapters/repository"
	"github.com/okian/padelmatch/internal/domain/dedupe"
	"github.com/okian/padelmatch/internal/domain/model"
	"github.com/okian/padelmatch/internal/domain/planner"
	"github.com/okian/padelmatch/internal/domain/recommend"
	"github.com/okian/padelmatch/internal/domain/roster"
	"github.com/okian/padelmatch/pkg/logger"
	"github.com/okian/padelmatch/pkg/metrics"
)

const (
	defaultQueueSize    = 1024
	defaultMaxPairLimit = 100
	stopTimeout         = 5 * time.Second
)

// Service implements the API dependencies for the match planner.
type Service struct {
	mu sync.RWMutex

	// Core components
	registry *roster.Registry
	store    repository.Store
	planner  *planner.Planner
	queue    *queue.InMemoryQueue
	worker   *worker.InMemoryWorker

	// Configuration
	queueSize      int
	dismissedMax   int
	candidateLimit int
	maxPairLimit   int
	rosterPath     string
	players        []model.Player
	pairStats      []model.PairStats
	plannerOpts    []planner.Option

	// State
	started   bool
	stopCh    chan struct{}
	planned   atomic.Int64
	dismissed atomic.Int64

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithQueueSize sets the capacity of the command queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDismissedMax bounds the dismissed set. Zero keeps it unbounded.
func WithDismissedMax(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.dismissedMax = n
		}
	}
}

// WithCandidateLimit sets the maximum number of recommendations.
func WithCandidateLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.candidateLimit = n
		}
	}
}

// WithMaxPairLimit caps the size of a pair ranking page.
func WithMaxPairLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxPairLimit = n
		}
	}
}

// WithRosterPath loads the roster from a YAML file instead of the built-in one.
func WithRosterPath(path string) Option {
	return func(s *Service) {
		s.rosterPath = path
	}
}

// WithRoster uses the given players and pair records.
func WithRoster(players []model.Player, stats []model.PairStats) Option {
	return func(s *Service) {
		s.players = players
		s.pairStats = stats
	}
}

// WithPlannerOptions passes extra options to the planner.
func WithPlannerOptions(opts ...planner.Option) Option {
	return func(s *Service) {
		s.plannerOpts = append(s.plannerOpts, opts...)
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		queueSize:      defaultQueueSize,
		candidateLimit: recommend.DefaultLimit,
		maxPairLimit:   defaultMaxPairLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the roster, the store and the session and starts the worker.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting planner service...")

	reg, err := s.loadRoster()
	if err != nil {
		s.logger.Error(ctx, "failed to load roster", logger.String("path", s.rosterPath), logger.Error(err))
		return err
	}
	pairs := reg.AllPairMetrics()
	store, err := repository.NewTreapStore(ctx, repository.WithPairs(pairs))
	if err != nil {
		return fmt.Errorf("seed pair store: %w", err)
	}
	metrics.UpdateRosterSize(reg.PlayerCount(), len(pairs))

	opts := []planner.Option{
		planner.WithGenerator(recommend.New(recommend.WithLimit(s.candidateLimit))),
		planner.WithDismissedSet(dedupe.NewInMemorySet(dedupe.WithMaxSize(s.dismissedMax))),
		planner.WithGenerationObserver(observeGeneration),
	}
	s.registry = reg
	s.store = store
	s.planner = planner.New(reg, append(opts, s.plannerOpts...)...)
	s.planned.Store(0)
	s.dismissed.Store(0)
	metrics.UpdatePlannerState(0, 0)

	s.queue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.worker = worker.NewInMemoryWorker(s.queue,
		worker.WithName("planner"),
		worker.WithLogger(s.logger),
	)
	go s.worker.Run(context.WithoutCancel(ctx))

	s.stopCh = make(chan struct{})
	s.started = true
	s.logger.Info(ctx, "planner service started",
		logger.Int("players", reg.PlayerCount()),
		logger.Int("pairs", len(pairs)),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dismissedMax", s.dismissedMax),
		logger.Int("candidateLimit", s.candidateLimit),
	)
	return nil
}

func (s *Service) loadRoster() (*roster.Registry, error) {
	players, stats := s.players, s.pairStats
	switch {
	case s.rosterPath != "":
		rf, err := repository.LoadRoster(s.rosterPath)
		if err != nil {
			return nil, err
		}
		players, stats = rf.Players, rf.PairStats
	case len(players) == 0:
		players, stats = roster.DefaultPlayers(), roster.DefaultPairStats()
	}
	reg, err := roster.New(players, stats)
	if err != nil {
		return nil, fmt.Errorf("build roster: %w", err)
	}
	return reg, nil
}

// Stop gracefully shuts down the service. Commands still queued are failed.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	s.logger.Info(ctx, "stopping planner service...")

	close(s.stopCh)
	if err := s.worker.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "worker did not stop cleanly", logger.Error(err))
	}
	_ = s.queue.Close()

	s.started = false
	s.logger.Info(ctx, "planner service stopped")
}

// exec runs fn on the worker and waits for its result.
func (s *Service) exec(ctx context.Context, op string, fn func(p *planner.Planner) error) error {
	s.mu.RLock()
	started, q, stopCh := s.started, s.queue, s.stopCh
	s.mu.RUnlock()
	if !started {
		return ErrNotStarted
	}

	c := queue.NewCommand(ctx, op, func(context.Context) error {
		err := fn(s.planner)
		s.observeState()
		return err
	})
	if !q.Enqueue(ctx, c) {
		if err := ctx.Err(); err != nil {
			metrics.RecordPlannerOp(op, "canceled")
			return err
		}
		if q.IsClosed() {
			metrics.RecordPlannerOp(op, "stopped")
			return ErrStopped
		}
		metrics.RecordPlannerOp(op, "backpressure")
		s.logger.Warn(ctx, "command queue full", logger.String("op", op))
		return fmt.Errorf("%w: %w", ErrBackpressure, queue.ErrFull)
	}

	// Once queued, the command either runs to completion or is dropped by
	// its own context check, so only its result decides the outcome.
	var err error
	select {
	case err = <-c.Done():
	case <-stopCh:
		// The worker drains queued commands on stop; prefer its answer.
		select {
		case err = <-c.Done():
		case <-time.After(stopTimeout):
			err = ErrStopped
		}
	}
	switch {
	case errors.Is(err, worker.ErrStopped):
		err = fmt.Errorf("%w: %w", ErrStopped, err)
	case errors.Is(err, queue.ErrCanceled) && ctx.Err() != nil:
		err = fmt.Errorf("%w: %w", ctx.Err(), err)
	}
	metrics.RecordPlannerOp(op, outcome(err))
	if err != nil {
		s.logger.Debug(ctx, "planner command failed", logger.String("op", op), logger.Error(err))
	}
	return err
}

// observeState publishes session sizes. Only the worker calls it.
func (s *Service) observeState() {
	planned := len(s.planner.Planned())
	dismissed := len(s.planner.Dismissed())
	s.planned.Store(int64(planned))
	s.dismissed.Store(int64(dismissed))
	metrics.UpdatePlannerState(planned, dismissed)
}

func observeGeneration(n int, st recommend.Stats, took time.Duration) {
	metrics.RecordCandidateGeneration(n, float64(took.Microseconds())/1000)
	metrics.RecordEvaluations(st.Evaluated, st.Rejected)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded), errors.Is(err, queue.ErrCanceled):
		return "canceled"
	case errors.Is(err, ErrStopped):
		return "stopped"
	case errors.Is(err, worker.ErrPanic):
		return "panic"
	default:
		return "rejected"
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"queueSize":      s.queueSize,
		"dismissedMax":   s.dismissedMax,
		"candidateLimit": s.candidateLimit,
	}

	if s.started {
		ctx := context.Background()
		stats["queueLength"] = s.queue.Len()
		stats["players"] = s.registry.PlayerCount()
		stats["pairs"] = s.store.Count(ctx)
		stats["plannedMatches"] = int(s.planned.Load())
		stats["dismissedKeys"] = int(s.dismissed.Load())
	}

	return stats
}
