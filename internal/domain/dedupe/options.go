package dedupe

// Option applies a configuration option to the in-memory set.
type Option func(*inMemorySet)

// WithMaxSize bounds the number of keys kept.
// If maxSize > 0 the oldest key is evicted when the set is full.
// If maxSize <= 0 the set is unbounded.
func WithMaxSize(maxSize int) Option {
	return func(s *inMemorySet) {
		s.maxSize = maxSize
	}
}
