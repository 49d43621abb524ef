package repository

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/okian/padelmatch/internal/domain/scoring"
	"github.com/okian/padelmatch/internal/domain/types"
	"github.com/okian/padelmatch/pkg/metrics"
)

// Treap-based, in-memory Store implementation.
//
// Ordering: score DESC, then pair key ASC. "less" means ranks earlier, so an
// in-order traversal yields the ranking from best to worst. Priorities are a
// hash of the key, which keeps the tree balanced in expectation and the shape
// deterministic for a given set of keys.

// scoreScale controls fixed-point scaling from float64.
const scoreScale = 1_000_000

type scoreFP int64

func toFixedPoint(x float64) scoreFP {
	if math.IsNaN(x) {
		return 0
	}
	scaled := math.Round(x * scoreScale)
	if scaled > math.MaxInt64 {
		return scoreFP(math.MaxInt64)
	}
	if scaled < math.MinInt64 {
		return scoreFP(math.MinInt64)
	}
	return scoreFP(scaled)
}

type node struct {
	key   string
	score scoreFP
	prio  uint64
	left  *node
	right *node
	size  int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

// less returns true if (aScore, aKey) should appear before (bScore, bKey).
func less(aScore scoreFP, aKey string, bScore scoreFP, bKey string) bool {
	if aScore != bScore {
		return aScore > bScore
	}
	return aKey < bKey
}

func rotateRight(y *node) *node {
	x := y.left
	y.left = x.right
	x.right = y
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	x.right = y.left
	y.left = x
	fix(x)
	fix(y)
	return y
}

func insert(n *node, key string, score scoreFP) *node {
	if n == nil {
		return &node{key: key, score: score, prio: xxhash.Sum64String(key), size: 1}
	}
	if less(score, key, n.score, n.key) {
		n.left = insert(n.left, key, score)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, key, score)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func deleteNode(n *node, key string, score scoreFP) *node {
	if n == nil {
		return nil
	}
	switch {
	case score == n.score && key == n.key:
		// Rotate the higher priority child up until n is a leaf.
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = deleteNode(n.right, key, score)
		} else {
			n = rotateLeft(n)
			n.left = deleteNode(n.left, key, score)
		}
	case less(score, key, n.score, n.key):
		n.left = deleteNode(n.left, key, score)
	default:
		n.right = deleteNode(n.right, key, score)
	}
	fix(n)
	return n
}

// walk visits nodes in rank order until visit returns false.
func walk(n *node, visit func(*node) bool) bool {
	if n == nil {
		return true
	}
	if !walk(n.left, visit) {
		return false
	}
	if !visit(n) {
		return false
	}
	return walk(n.right, visit)
}

// TreapStore is an in-memory ranked pair store safe for concurrent use.
type TreapStore struct {
	mu    sync.RWMutex
	root  *node
	byKey map[string]scoring.PairMetrics
	seed  []scoring.PairMetrics
}

// NewTreapStore constructs a store. Pairs passed via WithPairs are inserted
// immediately.
func NewTreapStore(ctx context.Context, opts ...Option) (*TreapStore, error) {
	s := &TreapStore{byKey: make(map[string]scoring.PairMetrics)}
	for _, opt := range opts {
		opt(s)
	}
	for _, m := range s.seed {
		if err := s.Put(ctx, m); err != nil {
			return nil, err
		}
	}
	s.seed = nil
	return s, nil
}

// Put implements Store.Put in O(log n) expected time.
func (s *TreapStore) Put(ctx context.Context, m scoring.PairMetrics) error {
	if _, _, ok := types.SplitPairKey(m.Key); !ok {
		return fmt.Errorf("%w: key %q", ErrInvalidPair, m.Key)
	}
	ns := toFixedPoint(m.Score)

	s.mu.Lock()
	if old, ok := s.byKey[m.Key]; ok {
		s.root = deleteNode(s.root, m.Key, toFixedPoint(old.Score))
	}
	s.byKey[m.Key] = m
	s.root = insert(s.root, m.Key, ns)
	count := len(s.byKey)
	s.mu.Unlock()

	metrics.UpdateRepositoryRecordsTotal(count)
	return nil
}

// Get returns the ranked entry for key.
func (s *TreapStore) Get(ctx context.Context, key string) (Entry, error) {
	start := time.Now()
	defer observe(start)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.byKey[key]; !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	var found Entry
	r := ranker{}
	walk(s.root, func(n *node) bool {
		rank := r.next(n.score)
		if n.key == key {
			found = Entry{Rank: rank, Pair: s.byKey[key]}
			return false
		}
		return true
	})
	return found, nil
}

// TopN returns the top n entries. Equal scores share a rank and the next
// distinct score takes the following rank.
func (s *TreapStore) TopN(ctx context.Context, n int) ([]Entry, error) {
	start := time.Now()
	defer observe(start)

	if n < 1 {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, 0, min(n, len(s.byKey)))
	r := ranker{}
	walk(s.root, func(nd *node) bool {
		if len(out) >= n {
			return false
		}
		out = append(out, Entry{Rank: r.next(nd.score), Pair: s.byKey[nd.key]})
		return true
	})
	return out, nil
}

// All returns every pair in rank order.
func (s *TreapStore) All(ctx context.Context) []scoring.PairMetrics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]scoring.PairMetrics, 0, len(s.byKey))
	walk(s.root, func(n *node) bool {
		out = append(out, s.byKey[n.key])
		return true
	})
	return out
}

// Count returns the number of pairs.
func (s *TreapStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byKey)
}

// ranker assigns dense ranks while walking in rank order.
type ranker struct {
	rank  int
	last  scoreFP
	begun bool
}

func (r *ranker) next(score scoreFP) int {
	if !r.begun || score != r.last {
		r.rank++
		r.last = score
		r.begun = true
	}
	return r.rank
}

func observe(start time.Time) {
	metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
}
