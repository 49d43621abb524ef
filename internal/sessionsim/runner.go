// Package sessionsim drives a planning session against a running service over
// HTTP and checks the session invariants along the way.
package sessionsim

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/okian/padelmatch/pkg/logger"
)

// ErrInvariant is returned when the service broke a session invariant.
var ErrInvariant = errors.New("session invariant violated")

// recorder collects violations from concurrent goroutines.
type recorder struct {
	mu         sync.Mutex
	violations []string
}

func (r *recorder) add(vs ...string) {
	if len(vs) == 0 {
		return
	}
	r.mu.Lock()
	r.violations = append(r.violations, vs...)
	r.mu.Unlock()
	for _, v := range vs {
		logger.Get().Warn(context.Background(), "invariant violated", logger.String("detail", v))
	}
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.violations...)
}

func applyDefaults(cfg *Config) {
	if cfg.Rounds <= 0 {
		cfg.Rounds = DefaultRounds
	}
	if cfg.SkipRatio < 0 || cfg.SkipRatio > 1 {
		cfg.SkipRatio = DefaultSkipRatio
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Readers < 0 {
		cfg.Readers = 0
	}
	if cfg.ReadRate <= 0 {
		cfg.ReadRate = DefaultReadRate
	}
	if cfg.Retries <= 0 {
		cfg.Retries = DefaultRetries
	}
}

// Run executes the complete session. The returned stats are valid even when
// an error is returned.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	applyDefaults(cfg)
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get().Named("sessionsim")

	log.Info(ctx, "starting session simulation",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("rounds", cfg.Rounds),
		logger.Float64("skipRatio", cfg.SkipRatio),
		logger.Int("readers", cfg.Readers),
		logger.Float64("readRate", cfg.ReadRate),
		logger.Bool("auth", cfg.Token != ""),
	)

	client := NewClient(cfg.BaseURL, cfg.Token, cfg.Timeout, WithRateLimitRetries(cfg.Retries))
	if err := client.Health(ctx); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	rec := &recorder{}
	driven := make(chan struct{})
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(driven)
		return drive(gctx, client, cfg, stats, rec)
	})
	// Readers share one budget so they cannot starve the driver on a rate
	// limited server. They count 429s instead of retrying.
	reader := NewClient(cfg.BaseURL, cfg.Token, cfg.Timeout,
		WithRequestLimiter(rate.NewLimiter(rate.Limit(cfg.ReadRate), 1)))
	var reads, throttled atomic.Int64
	for i := 0; i < cfg.Readers; i++ {
		g.Go(func() error {
			return read(gctx, reader, driven, rec, &reads, &throttled)
		})
	}
	err := g.Wait()

	stats.Reads = reads.Load()
	stats.Throttled = throttled.Load()
	stats.Violations = rec.list()
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	if err != nil {
		return stats, err
	}
	if len(stats.Violations) > 0 {
		return stats, fmt.Errorf("%w: %d violations, first: %s", ErrInvariant, len(stats.Violations), stats.Violations[0])
	}
	log.Info(ctx, "session simulation completed")
	return stats, nil
}

// drive walks the recommendations round by round.
func drive(ctx context.Context, c *Client, cfg *Config, stats *Stats, rec *recorder) error {
	log := logger.Get().Named("sessionsim")
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	existing, err := c.Matches(ctx)
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}
	planned := make(map[string]bool, len(existing))
	for _, m := range existing {
		planned[m.Key] = true
	}
	dismissed := make(map[string]bool)
	forms := make(map[string]Form)
	var created []string

	for round := 1; round <= cfg.Rounds; round++ {
		cands, err := c.Recommendations(ctx)
		if err != nil {
			return fmt.Errorf("round %d: list recommendations: %w", round, err)
		}
		rec.add(verifyCandidates(cands, planned, dismissed)...)

		cur, err := c.Current(ctx)
		if IsCode(err, codeNoRecommendation) {
			log.Info(ctx, "recommendations exhausted", logger.Int("round", round))
			stats.Exhausted = true
			break
		}
		if err != nil {
			return fmt.Errorf("round %d: current recommendation: %w", round, err)
		}
		if len(cands) > 0 && cands[0].Key != cur.Key {
			rec.add(fmt.Sprintf("current %s is not the first candidate %s", cur.Key, cands[0].Key))
		}
		stats.Rounds++

		if rng.Float64() < cfg.SkipRatio {
			d, err := c.Skip(ctx, cur.Key)
			if err != nil {
				return fmt.Errorf("round %d: skip %s: %w", round, cur.Key, err)
			}
			stats.Skipped++
			dismissed[cur.Key] = true
			if d.Next != nil && dismissed[d.Next.Key] {
				rec.add(fmt.Sprintf("skipped key %s offered next", d.Next.Key))
			}
			log.Debug(ctx, "skipped", logger.Int("round", round), logger.String("key", cur.Key))
			continue
		}

		d, err := c.Accept(ctx, cur.Key)
		if err != nil {
			return fmt.Errorf("round %d: accept %s: %w", round, cur.Key, err)
		}
		stats.Accepted++
		form := d.Form
		form.Court = cfg.Court
		if _, err := c.UpdateForm(ctx, form); err != nil {
			return fmt.Errorf("round %d: update form: %w", round, err)
		}
		m, err := c.CreateMatch(ctx, nil)
		if err != nil {
			return fmt.Errorf("round %d: create %s: %w", round, cur.Key, err)
		}
		stats.Created++
		if m.Key != cur.Key {
			rec.add(fmt.Sprintf("accepted %s but planned %s", cur.Key, m.Key))
		}
		if m.Provenance != "recommended" {
			rec.add(fmt.Sprintf("match %s planned as %s", m.Key, m.Provenance))
		}
		planned[m.Key] = true
		forms[m.Key] = form
		created = append(created, m.Key)

		if _, err := c.CreateMatch(ctx, &form); !IsCode(err, codeDuplicateMatch) {
			rec.add(fmt.Sprintf("planning %s twice was not rejected: %v", m.Key, err))
		}
		log.Debug(ctx, "planned", logger.Int("round", round), logger.String("key", m.Key))
	}

	matches, err := c.Matches(ctx)
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}
	rec.add(verifyMatches(matches, planned)...)

	if len(created) > 0 {
		if err := replan(ctx, c, created[0], forms[created[0]], rec); err != nil {
			return err
		}
		stats.Removed++
		stats.Created++
	}

	if err := c.Reset(ctx); err != nil {
		return fmt.Errorf("reset recommendations: %w", err)
	}
	cands, err := c.Recommendations(ctx)
	if err != nil {
		return fmt.Errorf("list recommendations after reset: %w", err)
	}
	rec.add(verifyCandidates(cands, planned)...)
	return nil
}

// replan removes key, checks that a second removal is a no-op and plans the
// same matchup again from a manual form.
func replan(ctx context.Context, c *Client, key string, form Form, rec *recorder) error {
	removed, err := c.RemoveMatch(ctx, key)
	if err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	if !removed {
		rec.add(fmt.Sprintf("planned match %s was not removed", key))
	}
	if again, err := c.RemoveMatch(ctx, key); err != nil || again {
		rec.add(fmt.Sprintf("second removal of %s: removed=%v err=%v", key, again, err))
	}
	m, err := c.CreateMatch(ctx, &form)
	if err != nil {
		rec.add(fmt.Sprintf("removed match %s could not be planned again: %v", key, err))
		return nil
	}
	if m.Provenance != "manual" {
		rec.add(fmt.Sprintf("re-planned match %s has provenance %s", key, m.Provenance))
	}
	return nil
}

// read polls the read-only routes until the driver is done.
func read(ctx context.Context, c *Client, done <-chan struct{}, rec *recorder, reads, throttled *atomic.Int64) error {
	for {
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			return nil
		default:
		}

		cands, err := c.Recommendations(ctx)
		switch {
		case IsCode(err, codeRateLimited):
			throttled.Add(1)
		case err != nil && ctx.Err() == nil:
			return fmt.Errorf("reader: list recommendations: %w", err)
		case err == nil:
			reads.Add(1)
			rec.add(verifyCandidates(cands)...)
		}

		pairs, err := c.Pairs(ctx, 20)
		switch {
		case IsCode(err, codeRateLimited):
			throttled.Add(1)
		case err != nil && ctx.Err() == nil:
			return fmt.Errorf("reader: list pairs: %w", err)
		case err == nil:
			reads.Add(1)
			rec.add(verifyPairRanking(pairs)...)
		}

		select {
		case <-done:
			return nil
		case <-ctx.Done():
			return nil
		case <-time.After(readerPause):
		}
	}
}

// displayFinalStats logs the final session statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	logger.Get().Info(ctx, "final statistics",
		logger.Int("rounds", stats.Rounds),
		logger.Int("accepted", stats.Accepted),
		logger.Int("skipped", stats.Skipped),
		logger.Int("created", stats.Created),
		logger.Int("removed", stats.Removed),
		logger.Bool("exhausted", stats.Exhausted),
		logger.Any("reads", stats.Reads),
		logger.Any("throttled", stats.Throttled),
		logger.Int("violations", len(stats.Violations)),
		logger.Duration("duration", stats.Duration),
	)
}
