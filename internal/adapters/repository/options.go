package repository

import "github.com/okian/padelmatch/internal/domain/scoring"

// Option applies a configuration option to the TreapStore.
type Option func(*TreapStore)

// WithPairs seeds the store.
func WithPairs(pairs []scoring.PairMetrics) Option {
	return func(s *TreapStore) {
		s.seed = append(s.seed, pairs...)
	}
}
