// Package repository holds the ranked pair store and the roster file loader.
package repository

import (
	"context"

	"github.com/okian/padelmatch/internal/domain/scoring"
)

// Entry is a row of the pair ranking.
type Entry struct {
	Rank int                 `json:"rank"`
	Pair scoring.PairMetrics `json:"pair"`
}

// Store provides read/write access to the pair ranking.
type Store interface {
	// Put inserts or replaces the metrics of a pair.
	Put(ctx context.Context, m scoring.PairMetrics) error

	// Get returns the ranked entry of a pair key.
	// Returns ErrNotFound if the key is unknown.
	Get(ctx context.Context, key string) (Entry, error)

	// TopN returns the top-N entries ordered by score desc, key asc.
	TopN(ctx context.Context, n int) ([]Entry, error)

	// All returns every pair in rank order.
	All(ctx context.Context) []scoring.PairMetrics

	// Count returns the number of pairs tracked.
	Count(ctx context.Context) int
}
