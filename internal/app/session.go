package service

import (
	"context"

	"github.com/okian/padelmatch/internal/domain/planner"
	"github.com/okian/padelmatch/internal/domain/recommend"
	"github.com/okian/padelmatch/pkg/logger"
)

// Decision is the outcome of accepting or skipping a recommendation.
type Decision struct {
	Candidate recommend.Candidate  `json:"candidate"`
	Form      planner.Form         `json:"form"`
	Next      *recommend.Candidate `json:"next,omitempty"`
}

// Recommendations returns the current candidates.
func (s *Service) Recommendations(ctx context.Context) ([]recommend.Candidate, error) {
	var out []recommend.Candidate
	err := s.exec(ctx, "recommendations", func(p *planner.Planner) error {
		out = p.Candidates()
		return nil
	})
	return out, err
}

// Current returns the top candidate or planner.ErrNoRecommendation.
func (s *Service) Current(ctx context.Context) (recommend.Candidate, error) {
	var out recommend.Candidate
	err := s.exec(ctx, "current", func(p *planner.Planner) error {
		c, ok := p.Current()
		if !ok {
			return planner.ErrNoRecommendation
		}
		out = c
		return nil
	})
	return out, err
}

// Accept loads a recommendation into the working form. An empty key accepts
// the current one.
func (s *Service) Accept(ctx context.Context, key string) (Decision, error) {
	var d Decision
	err := s.exec(ctx, "accept", func(p *planner.Planner) error {
		c, err := p.AcceptRecommendation(key)
		if err != nil {
			return err
		}
		d = decide(p, c)
		return nil
	})
	if err == nil {
		s.logger.Info(ctx, "recommendation accepted", logger.String("key", d.Candidate.Key))
	}
	return d, err
}

// Skip dismisses a recommendation. An empty key skips the current one.
func (s *Service) Skip(ctx context.Context, key string) (Decision, error) {
	var d Decision
	err := s.exec(ctx, "skip", func(p *planner.Planner) error {
		c, err := p.SkipRecommendation(key)
		if err != nil {
			return err
		}
		d = decide(p, c)
		return nil
	})
	if err == nil {
		s.logger.Debug(ctx, "recommendation skipped", logger.String("key", d.Candidate.Key))
	}
	return d, err
}

func decide(p *planner.Planner, c recommend.Candidate) Decision {
	d := Decision{Candidate: c, Form: p.Form()}
	if next, ok := p.Current(); ok {
		d.Next = &next
	}
	return d
}

// Reset makes every dismissed recommendation eligible again.
func (s *Service) Reset(ctx context.Context) error {
	err := s.exec(ctx, "reset", func(p *planner.Planner) error {
		p.ResetRecommendations()
		return nil
	})
	if err == nil {
		s.logger.Info(ctx, "recommendations reset")
	}
	return err
}

// Form returns the working form.
func (s *Service) Form(ctx context.Context) (planner.Form, error) {
	var f planner.Form
	err := s.exec(ctx, "form", func(p *planner.Planner) error {
		f = p.Form()
		return nil
	})
	return f, err
}

// UpdateForm replaces the working form and returns it normalized.
func (s *Service) UpdateForm(ctx context.Context, f planner.Form) (planner.Form, error) {
	var out planner.Form
	err := s.exec(ctx, "update_form", func(p *planner.Planner) error {
		p.UpdateForm(f)
		out = p.Form()
		return nil
	})
	return out, err
}

// ClearForm empties the working form.
func (s *Service) ClearForm(ctx context.Context) error {
	return s.exec(ctx, "clear_form", func(p *planner.Planner) error {
		p.ClearForm()
		return nil
	})
}

// Matches returns the planned matches in creation order.
func (s *Service) Matches(ctx context.Context) ([]planner.PlannedMatch, error) {
	var out []planner.PlannedMatch
	err := s.exec(ctx, "matches", func(p *planner.Planner) error {
		out = p.Planned()
		return nil
	})
	return out, err
}

// CreateMatch plans the match described by f, or by the working form when f
// is nil.
func (s *Service) CreateMatch(ctx context.Context, f *planner.Form) (planner.PlannedMatch, error) {
	var m planner.PlannedMatch
	err := s.exec(ctx, "create_match", func(p *planner.Planner) error {
		var err error
		if f == nil {
			m, err = p.CreateFromForm()
		} else {
			m, err = p.CreateMatch(*f)
		}
		return err
	})
	if err != nil {
		s.logger.Warn(ctx, "match rejected", logger.Error(err))
		return planner.PlannedMatch{}, err
	}
	s.logger.Info(ctx, "match planned",
		logger.String("key", m.Key),
		logger.String("provenance", string(m.Provenance)),
		logger.Float64("fairness", m.Evaluation.Fairness),
	)
	return m, nil
}

// RemoveMatch deletes a planned match. It reports whether one was removed.
func (s *Service) RemoveMatch(ctx context.Context, key string) (bool, error) {
	var removed bool
	err := s.exec(ctx, "remove_match", func(p *planner.Planner) error {
		removed = p.RemoveMatch(key)
		return nil
	})
	if err == nil && removed {
		s.logger.Info(ctx, "match removed", logger.String("key", key))
	}
	return removed, err
}
