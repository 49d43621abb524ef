package recommend

// Default candidate filter values.
const (
	DefaultLimit       = 25
	DefaultMinDiff     = 3.2
	DefaultMaxDiff     = 10.5
	DefaultMinFairness = 0.48
)

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithLimit caps the number of candidates produced. Values below 1 are ignored.
func WithLimit(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.limit = n
		}
	}
}

// WithDiffRange sets the accepted score gap between strong and underdog.
func WithDiffRange(lo, hi float64) Option {
	return func(g *Generator) {
		if lo >= 0 && hi >= lo {
			g.minDiff, g.maxDiff = lo, hi
		}
	}
}

// WithMinFairness sets the fairness floor.
func WithMinFairness(f float64) Option {
	return func(g *Generator) {
		if f >= 0 && f <= 1 {
			g.minFairness = f
		}
	}
}
