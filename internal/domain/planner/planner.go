// Package planner holds the match planning session: the working form, the
// dismissed recommendations and the planned matches.
//
// A Planner is not safe for concurrent use. Callers serialize access, which
// also guarantees that candidates are computed against a consistent view of
// the dismissed and planned sets.
package planner

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/padelmatch/internal/domain/dedupe"
	"github.com/okian/padelmatch/internal/domain/model"
	"github.com/okian/padelmatch/internal/domain/recommend"
	"github.com/okian/padelmatch/internal/domain/scoring"
	"github.com/okian/padelmatch/internal/domain/types"
)

// Roster is the read-only data the planner needs.
type Roster interface {
	Player(id string) (*model.Player, bool)
	PairMetrics(a, b string) (scoring.PairMetrics, bool)
	AllPairMetrics() []scoring.PairMetrics
}

// Planner owns the session state.
type Planner struct {
	roster    Roster
	pairs     []scoring.PairMetrics
	gen       *recommend.Generator
	dismissed dedupe.Set
	planned   []PlannedMatch
	index     plannedKeys
	form      Form
	pending   string

	now     func() time.Time
	newID   func() uuid.UUID
	observe func(n int, st recommend.Stats, took time.Duration)
}

// plannedKeys is the key set of planned matches.
type plannedKeys map[string]struct{}

func (k plannedKeys) Contains(key string) bool {
	_, ok := k[key]
	return ok
}

// New creates an empty session over roster.
func New(roster Roster, opts ...Option) *Planner {
	p := &Planner{
		roster: roster,
		index:  make(plannedKeys),
		now:    time.Now,
		newID:  uuid.New,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.gen == nil {
		p.gen = recommend.New()
	}
	if p.dismissed == nil {
		p.dismissed = dedupe.NewInMemorySet()
	}
	p.pairs = roster.AllPairMetrics()
	return p
}

// Candidates returns the current recommendations.
func (p *Planner) Candidates() []recommend.Candidate {
	start := time.Now()
	out, st := p.gen.Generate(p.pairs, p.dismissed, p.index)
	if p.observe != nil {
		p.observe(len(out), st, time.Since(start))
	}
	return out
}

// Current returns the top recommendation, if any.
func (p *Planner) Current() (recommend.Candidate, bool) {
	cands := p.Candidates()
	if len(cands) == 0 {
		return recommend.Candidate{}, false
	}
	return cands[0], true
}

// find returns the candidate with key, or the current one when key is empty.
func (p *Planner) find(key string) (recommend.Candidate, error) {
	if key == "" {
		c, ok := p.Current()
		if !ok {
			return recommend.Candidate{}, ErrNoRecommendation
		}
		return c, nil
	}
	for _, c := range p.Candidates() {
		if c.Key == key {
			return c, nil
		}
	}
	return recommend.Candidate{}, fmt.Errorf("%w: %s", ErrNoRecommendation, key)
}

// AcceptRecommendation copies the recommended pairs into the form, appends
// the evaluation summary to the notes, dismisses the key and remembers it as
// pending. An empty key accepts the current recommendation.
func (p *Planner) AcceptRecommendation(key string) (recommend.Candidate, error) {
	c, err := p.find(key)
	if err != nil {
		return recommend.Candidate{}, err
	}
	p.form.Pair1 = p.driveFirst(c.Strong.Players())
	p.form.Pair2 = p.driveFirst(c.Underdog.Players())
	p.form.Notes = appendNote(p.form.Notes, c.Summary)
	p.dismissed.SeenAndRecord(c.Key)
	p.pending = c.Key
	return c, nil
}

// SkipRecommendation dismisses a recommendation without touching the form.
// An empty key skips the current recommendation.
func (p *Planner) SkipRecommendation(key string) (recommend.Candidate, error) {
	c, err := p.find(key)
	if err != nil {
		return recommend.Candidate{}, err
	}
	p.dismissed.SeenAndRecord(c.Key)
	return c, nil
}

// ResetRecommendations makes every dismissed recommendation eligible again.
// Planned matches stay excluded.
func (p *Planner) ResetRecommendations() {
	p.dismissed.Reset()
	p.pending = ""
}

// CreateMatch validates f and plans the match it describes. On success the
// key is dismissed and the form and pending key are cleared.
func (p *Planner) CreateMatch(f Form) (PlannedMatch, error) {
	f = normalize(f)
	for _, pair := range [][2]string{f.Pair1, f.Pair2} {
		if pair[0] == "" || pair[1] == "" {
			return PlannedMatch{}, fmt.Errorf("%w: both pairs need two players", ErrIncompleteSelection)
		}
	}
	key, ok := types.MatchKey(f.Pair1, f.Pair2)
	if !ok {
		return PlannedMatch{}, ErrSharedPlayer
	}
	m1, ok := p.roster.PairMetrics(f.Pair1[0], f.Pair1[1])
	if !ok {
		return PlannedMatch{}, fmt.Errorf("%w: %s/%s", ErrUnknownPair, f.Pair1[0], f.Pair1[1])
	}
	m2, ok := p.roster.PairMetrics(f.Pair2[0], f.Pair2[1])
	if !ok {
		return PlannedMatch{}, fmt.Errorf("%w: %s/%s", ErrUnknownPair, f.Pair2[0], f.Pair2[1])
	}
	if p.index.Contains(key) {
		return PlannedMatch{}, fmt.Errorf("%w: %s", ErrDuplicateMatch, key)
	}
	eval, ok := scoring.EvaluateMatch(&m1, &m2)
	if !ok {
		return PlannedMatch{}, ErrSharedPlayer
	}

	prov := ProvenanceManual
	if key == p.pending {
		prov = ProvenanceRecommended
	}
	pm := PlannedMatch{
		ID:          p.newID(),
		Key:         key,
		Pair1:       m1,
		Pair2:       m2,
		Evaluation:  eval,
		Court:       f.Court,
		ScheduledAt: f.ScheduledAt,
		Notes:       f.Notes,
		Provenance:  prov,
		CreatedAt:   p.now(),
	}
	p.planned = append(p.planned, pm)
	p.index[key] = struct{}{}
	p.dismissed.SeenAndRecord(key)
	p.form = Form{}
	p.pending = ""
	return pm, nil
}

// CreateFromForm plans the match described by the working form.
func (p *Planner) CreateFromForm() (PlannedMatch, error) {
	return p.CreateMatch(p.form)
}

// RemoveMatch deletes the planned match with key and makes the key eligible
// for recommendation again, whether or not it was planned. It reports whether
// a match was removed.
func (p *Planner) RemoveMatch(key string) bool {
	p.dismissed.Unrecord(key)
	if !p.index.Contains(key) {
		return false
	}
	for i := range p.planned {
		if p.planned[i].Key == key {
			p.planned = append(p.planned[:i], p.planned[i+1:]...)
			break
		}
	}
	delete(p.index, key)
	return true
}

// Form returns the working form.
func (p *Planner) Form() Form { return p.form }

// UpdateForm replaces the working form.
func (p *Planner) UpdateForm(f Form) { p.form = normalize(f) }

// ClearForm empties the working form and forgets the pending key.
func (p *Planner) ClearForm() {
	p.form = Form{}
	p.pending = ""
}

// Planned returns the planned matches in creation order.
func (p *Planner) Planned() []PlannedMatch {
	out := make([]PlannedMatch, len(p.planned))
	copy(out, p.planned)
	return out
}

// Dismissed returns the dismissed keys, oldest first.
func (p *Planner) Dismissed() []string { return p.dismissed.Keys() }

// Pending returns the key of the last accepted recommendation not yet created.
func (p *Planner) Pending() string { return p.pending }

// driveFirst orders a pair so a drive-side player comes first.
func (p *Planner) driveFirst(ids [2]string) [2]string {
	first, ok1 := p.roster.Player(ids[0])
	second, ok2 := p.roster.Player(ids[1])
	if ok1 && ok2 && first.PreferredSide != model.SideDrive && second.PreferredSide == model.SideDrive {
		return [2]string{ids[1], ids[0]}
	}
	return ids
}

func appendNote(notes, note string) string {
	if note == "" || strings.Contains(notes, note) {
		return notes
	}
	if strings.TrimSpace(notes) == "" {
		return note
	}
	return strings.TrimRight(notes, "\n") + "\n" + note
}

func normalize(f Form) Form {
	for i := range f.Pair1 {
		f.Pair1[i] = strings.TrimSpace(f.Pair1[i])
		f.Pair2[i] = strings.TrimSpace(f.Pair2[i])
	}
	f.Court = strings.TrimSpace(f.Court)
	return f
}
