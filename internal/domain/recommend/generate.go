// Package recommend proposes balanced matchups from the ranked pairs.
package recommend

import (
	"sort"

	"github.com/okian/padelmatch/internal/domain/scoring"
)

// KeySet is the read side of a set of match keys.
type KeySet interface {
	Contains(key string) bool
}

// Candidate is a recommended matchup.
type Candidate struct {
	scoring.MatchEvaluation
	Highlight int `json:"highlight"`
}

// Stats describes one generation run.
type Stats struct {
	Evaluated int
	Rejected  int
	Excluded  int
	Truncated bool
}

// Generator produces candidates. It holds no session state.
type Generator struct {
	limit       int
	minDiff     float64
	maxDiff     float64
	minFairness float64
}

// New creates a generator with the default filter.
func New(opts ...Option) *Generator {
	g := &Generator{
		limit:       DefaultLimit,
		minDiff:     DefaultMinDiff,
		maxDiff:     DefaultMaxDiff,
		minFairness: DefaultMinFairness,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Limit returns the candidate cap.
func (g *Generator) Limit() int { return g.limit }

// Generate scans pairs from the strongest down. For each strong pair it
// tries every lower ranked disjoint pair, weakest first, and keeps the
// matchups whose gap and fairness pass the filter and whose key is not in
// any of the exclude sets. Scanning stops once the limit is reached.
//
// The result is ordered by highlight descending, gap ascending, intensity
// descending and finally match key.
func (g *Generator) Generate(pairs []scoring.PairMetrics, exclude ...KeySet) ([]Candidate, Stats) {
	ranked := make([]scoring.PairMetrics, len(pairs))
	copy(ranked, pairs)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Key < ranked[j].Key
	})

	var st Stats
	out := make([]Candidate, 0, g.limit)
scan:
	for i := range ranked {
		strong := &ranked[i]
		for j := len(ranked) - 1; j > i; j-- {
			if len(out) >= g.limit {
				st.Truncated = true
				break scan
			}
			underdog := &ranked[j]
			if strong.SharesPlayer(underdog) {
				continue
			}
			e, ok := scoring.EvaluateMatch(strong, underdog)
			if !ok {
				continue
			}
			st.Evaluated++
			if excluded(e.Key, exclude) {
				st.Excluded++
				continue
			}
			if !g.accepts(&e) {
				st.Rejected++
				continue
			}
			out = append(out, Candidate{MatchEvaluation: e, Highlight: e.HighlightScore()})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := &out[i], &out[j]
		if a.Highlight != b.Highlight {
			return a.Highlight > b.Highlight
		}
		if a.Diff != b.Diff {
			return a.Diff < b.Diff
		}
		if a.Intensity != b.Intensity {
			return a.Intensity > b.Intensity
		}
		return a.Key < b.Key
	})
	return out, st
}

func (g *Generator) accepts(e *scoring.MatchEvaluation) bool {
	return e.Diff >= g.minDiff && e.Diff <= g.maxDiff && e.Fairness >= g.minFairness
}

func excluded(key string, sets []KeySet) bool {
	for _, s := range sets {
		if s != nil && s.Contains(key) {
			return true
		}
	}
	return false
}
