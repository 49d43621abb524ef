package planner

import (
	"time"

	"github.com/google/uuid"

	"github.com/okian/padelmatch/internal/domain/dedupe"
	"github.com/okian/padelmatch/internal/domain/recommend"
)

// Option applies a configuration option to the Planner.
type Option func(*Planner)

// WithGenerator replaces the default candidate generator.
func WithGenerator(g *recommend.Generator) Option {
	return func(p *Planner) {
		if g != nil {
			p.gen = g
		}
	}
}

// WithDismissedSet replaces the default unbounded dismissed set.
func WithDismissedSet(s dedupe.Set) Option {
	return func(p *Planner) {
		if s != nil {
			p.dismissed = s
		}
	}
}

// WithClock sets the time source used for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Planner) {
		if now != nil {
			p.now = now
		}
	}
}

// WithIDGenerator sets the planned match id source.
func WithIDGenerator(f func() uuid.UUID) Option {
	return func(p *Planner) {
		if f != nil {
			p.newID = f
		}
	}
}

// WithGenerationObserver registers a callback invoked after every candidate
// generation run.
func WithGenerationObserver(f func(n int, st recommend.Stats, took time.Duration)) Option {
	return func(p *Planner) {
		p.observe = f
	}
}
