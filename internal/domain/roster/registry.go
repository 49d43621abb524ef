// Package roster holds the immutable player roster and pair history and
// resolves identifiers into pair metrics.
package roster

import (
	"fmt"
	"sort"
	"strings"

	"github.com/okian/padelmatch/internal/domain/model"
	"github.com/okian/padelmatch/internal/domain/scoring"
	"github.com/okian/padelmatch/internal/domain/types"
)

// Registry is a read-only view of the roster. It is safe for concurrent use
// once constructed.
type Registry struct {
	players []model.Player
	byID    map[string]*model.Player
	stats   map[string]*model.PairStats
}

// New validates players and pair stats and builds a registry.
func New(players []model.Player, stats []model.PairStats) (*Registry, error) {
	if len(players) == 0 {
		return nil, ErrEmptyRoster
	}
	r := &Registry{
		players: make([]model.Player, len(players)),
		byID:    make(map[string]*model.Player, len(players)),
		stats:   make(map[string]*model.PairStats, len(stats)),
	}
	copy(r.players, players)
	for i := range r.players {
		p := &r.players[i]
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if strings.Contains(p.ID, types.PairSep) || strings.Contains(p.ID, types.MatchSep) {
			return nil, fmt.Errorf("%w: %q", ErrReservedID, p.ID)
		}
		if _, dup := r.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePlayer, p.ID)
		}
		r.byID[p.ID] = p
	}
	for i := range stats {
		s := stats[i]
		if err := s.Validate(); err != nil {
			return nil, err
		}
		for _, id := range []string{s.PlayerA, s.PlayerB} {
			if _, ok := r.byID[id]; !ok {
				return nil, fmt.Errorf("%w %s in pair stats", ErrUnknownPlayer, id)
			}
		}
		key, _ := types.PairKey(s.PlayerA, s.PlayerB)
		if _, dup := r.stats[key]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePairStat, key)
		}
		s.Key = key
		r.stats[key] = &s
	}
	return r, nil
}

// Player returns the player with the given id.
func (r *Registry) Player(id string) (*model.Player, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// Players returns the roster in load order.
func (r *Registry) Players() []model.Player {
	out := make([]model.Player, len(r.players))
	copy(out, r.players)
	return out
}

// PlayerCount returns the number of players.
func (r *Registry) PlayerCount() int { return len(r.players) }

// PairStats returns the history record of {a, b}, if any.
func (r *Registry) PairStats(a, b string) (*model.PairStats, bool) {
	key, ok := types.PairKey(a, b)
	if !ok {
		return nil, false
	}
	s, ok := r.stats[key]
	return s, ok
}

// PairMetrics resolves two player ids and computes the pair metrics. ok is
// false when an id is unknown or both ids are the same.
func (r *Registry) PairMetrics(a, b string) (scoring.PairMetrics, bool) {
	pa, ok := r.byID[a]
	if !ok {
		return scoring.PairMetrics{}, false
	}
	pb, ok := r.byID[b]
	if !ok {
		return scoring.PairMetrics{}, false
	}
	rec, _ := r.PairStats(a, b)
	return scoring.ComputePairMetrics(pa, pb, rec)
}

// AllPairMetrics computes every unordered pair of the roster, ordered by score
// descending and then by key.
func (r *Registry) AllPairMetrics() []scoring.PairMetrics {
	n := len(r.players)
	out := make([]scoring.PairMetrics, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if m, ok := r.PairMetrics(r.players[i].ID, r.players[j].ID); ok {
				out = append(out, m)
			}
		}
	}
	SortPairs(out)
	return out
}

// SortPairs orders pairs by score descending, ties by key.
func SortPairs(pairs []scoring.PairMetrics) {
	sort.SliceStable(pairs, func(i, j int) bool {
		if pairs[i].Score != pairs[j].Score {
			return pairs[i].Score > pairs[j].Score
		}
		return pairs[i].Key < pairs[j].Key
	})
}

// RankPlayers returns the individual ranking: rating descending, then form
// descending, then id.
func (r *Registry) RankPlayers() []types.PlayerEntry {
	ps := r.Players()
	sort.SliceStable(ps, func(i, j int) bool {
		if ps[i].Rating != ps[j].Rating {
			return ps[i].Rating > ps[j].Rating
		}
		if ps[i].Form != ps[j].Form {
			return ps[i].Form > ps[j].Form
		}
		return ps[i].ID < ps[j].ID
	})
	out := make([]types.PlayerEntry, len(ps))
	for i, p := range ps {
		out[i] = types.PlayerEntry{Rank: i + 1, ID: p.ID, Name: p.Name, Rating: p.Rating, Form: p.Form}
	}
	return out
}
