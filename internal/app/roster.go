package service

import (
	"context"
	"fmt"

	"github.com/okian/padelmatch/internal/adapters/repository"
	"github.com/okian/padelmatch/internal/domain/model"
	"github.com/okian/padelmatch/internal/domain/planner"
	"github.com/okian/padelmatch/internal/domain/roster"
	"github.com/okian/padelmatch/internal/domain/scoring"
	"github.com/okian/padelmatch/internal/domain/types"
	"github.com/okian/padelmatch/pkg/logger"
)

// The roster is read-only after Start, so these reads skip the command queue.

func (s *Service) components() (*roster.Registry, repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, ErrNotStarted
	}
	return s.registry, s.store, nil
}

// Players returns the individual ranking.
func (s *Service) Players(ctx context.Context) ([]types.PlayerEntry, error) {
	reg, _, err := s.components()
	if err != nil {
		return nil, err
	}
	return reg.RankPlayers(), nil
}

// Player returns one player.
func (s *Service) Player(ctx context.Context, id string) (model.Player, error) {
	reg, _, err := s.components()
	if err != nil {
		return model.Player{}, err
	}
	p, ok := reg.Player(id)
	if !ok {
		return model.Player{}, fmt.Errorf("%w: player %s", ErrNotFound, id)
	}
	return *p, nil
}

// Pairs returns the top of the pair ranking. A limit outside 1..max is
// clamped to the configured maximum.
func (s *Service) Pairs(ctx context.Context, limit int) ([]repository.Entry, error) {
	_, store, err := s.components()
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > s.maxPairLimit {
		limit = s.maxPairLimit
	}
	return store.TopN(ctx, limit)
}

// Pair returns the ranked metrics of the pair a/b.
func (s *Service) Pair(ctx context.Context, a, b string) (repository.Entry, error) {
	_, store, err := s.components()
	if err != nil {
		return repository.Entry{}, err
	}
	key, ok := types.PairKey(a, b)
	if !ok {
		return repository.Entry{}, fmt.Errorf("%w: pair %s/%s", ErrNotFound, a, b)
	}
	e, err := store.Get(ctx, key)
	if err != nil {
		return repository.Entry{}, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return e, nil
}

// Evaluate assesses an arbitrary matchup without touching the session.
func (s *Service) Evaluate(ctx context.Context, pair1, pair2 [2]string) (scoring.MatchEvaluation, error) {
	reg, _, err := s.components()
	if err != nil {
		return scoring.MatchEvaluation{}, err
	}
	for _, pair := range [][2]string{pair1, pair2} {
		if pair[0] == "" || pair[1] == "" {
			return scoring.MatchEvaluation{}, fmt.Errorf("%w: both pairs need two players", planner.ErrIncompleteSelection)
		}
	}
	if _, ok := types.MatchKey(pair1, pair2); !ok {
		return scoring.MatchEvaluation{}, planner.ErrSharedPlayer
	}
	m1, ok := reg.PairMetrics(pair1[0], pair1[1])
	if !ok {
		return scoring.MatchEvaluation{}, fmt.Errorf("%w: %s/%s", planner.ErrUnknownPair, pair1[0], pair1[1])
	}
	m2, ok := reg.PairMetrics(pair2[0], pair2[1])
	if !ok {
		return scoring.MatchEvaluation{}, fmt.Errorf("%w: %s/%s", planner.ErrUnknownPair, pair2[0], pair2[1])
	}
	e, _ := scoring.EvaluateMatch(&m1, &m2)
	s.logger.Debug(ctx, "evaluated matchup",
		logger.String("key", e.Key),
		logger.Float64("fairness", e.Fairness),
	)
	return e, nil
}
