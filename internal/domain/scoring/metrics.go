// Package scoring derives pair strength metrics and evaluates matchups.
//
// Everything here is a pure function of roster data: no I/O, no state.
// The constants below are fixed design values and are reproduced as-is.
package scoring

import (
	"math"

	"github.com/okian/padelmatch/internal/domain/model"
	"github.com/okian/padelmatch/internal/domain/types"
)

// Tier buckets a pair's composite score.
type Tier string

// Tiers from strongest to weakest.
const (
	TierElite       Tier = "Élite"
	TierStrong      Tier = "Fuerte"
	TierCompetitive Tier = "Competitiva"
	TierGrowing     Tier = "En crecimiento"
)

const (
	sideComplementMixed = 0.96
	sideComplementSame  = 0.68

	aggressivenessGapCap = 0.6
	experienceCapMatches = 24
	pointsDiffCap        = 18
	syntheticMatchShare  = 0.6
	syntheticLevelPivot  = 6.5
)

// PairMetrics is the derived, display-ready view of a pair. Values are
// rounded: score to 1 decimal, rates to 2 decimals.
type PairMetrics struct {
	Key                   string           `json:"key"`
	PlayerA               string           `json:"player_a"`
	PlayerB               string           `json:"player_b"`
	Label                 string           `json:"label"`
	Score                 float64          `json:"score"`
	Tier                  Tier             `json:"tier"`
	Synergy               float64          `json:"synergy"`
	Experience            int              `json:"experience"`
	WinRate               float64          `json:"win_rate"`
	TieBreak              float64          `json:"tie_break"`
	Momentum              float64          `json:"momentum"`
	Reliability           float64          `json:"reliability"`
	Style                 model.Style      `json:"style"`
	Trend                 model.Trend      `json:"trend"`
	BaseLevel             float64          `json:"base_level"`
	Defense               float64          `json:"defense"`
	NetCoverage           float64          `json:"net_coverage"`
	SideComplement        float64          `json:"side_complement"`
	AggressivenessBalance float64          `json:"aggressiveness_balance"`
	Aggressiveness        float64          `json:"aggressiveness"`
	PointsDiff            int              `json:"points_diff"`
	History               *model.PairStats `json:"history,omitempty"`
}

// Components holds the unrounded intermediate values of the pair formula.
type Components struct {
	BaseLevel             float64
	MomentumRaw           float64
	ReliabilityRaw        float64
	AggressivenessRaw     float64
	AggressivenessBalance float64
	DefenseCoverage       float64
	NetCoverage           float64
	SideComplement        float64

	PairMatches   int
	PairWinRatio  float64
	ChemistryRaw  float64
	TieBreakRatio float64
	PointsDiff    int
	Trend         model.Trend
	Style         model.Style
	Historical    bool

	Synergy             float64
	WinRate             float64
	TieBreak            float64
	Momentum            float64
	Reliability         float64
	Defense             float64
	Net                 float64
	ExperienceFactor    float64
	AggressivenessScore float64

	Score float64
}

// ComputeComponents runs the pair formula without any presentation rounding.
// rec may be nil, in which case the history is estimated from the players.
func ComputeComponents(a, b *model.Player, rec *model.PairStats) Components {
	var c Components
	c.BaseLevel = mean(a.Rating, b.Rating)
	c.MomentumRaw = mean(a.Form, b.Form)
	c.ReliabilityRaw = mean(a.Consistency, b.Consistency)
	c.AggressivenessRaw = mean(a.Aggressiveness, b.Aggressiveness)
	c.AggressivenessBalance = 1 - math.Min(math.Abs(a.Aggressiveness-b.Aggressiveness), aggressivenessGapCap)
	c.DefenseCoverage = mean(a.Defense, b.Defense)
	c.NetCoverage = mean(a.NetPlay, b.NetPlay)
	c.SideComplement = sideComplementSame
	if a.PreferredSide != b.PreferredSide {
		c.SideComplement = sideComplementMixed
	}

	if rec != nil {
		c.Historical = true
		c.PairMatches = rec.Matches
		c.PairWinRatio = mean(a.WinRate, b.WinRate)
		if rec.Matches > 0 {
			c.PairWinRatio = float64(rec.Wins) / float64(rec.Matches)
		}
		c.ChemistryRaw = rec.Chemistry
		c.TieBreakRatio = rec.TieBreakWinRate
		c.PointsDiff = rec.PointsDiff
		c.Trend = rec.Trend
		c.Style = rec.Style
	} else {
		c.PairMatches = int(math.Round(mean(float64(a.MatchesPlayed), float64(b.MatchesPlayed)) * syntheticMatchShare))
		c.PairWinRatio = mean(a.WinRate, b.WinRate)
		c.ChemistryRaw = 0.58 + 0.16*c.SideComplement + 0.14*c.ReliabilityRaw + 0.12*c.AggressivenessBalance
		c.TieBreakRatio = mean(a.Clutch, b.Clutch)
		c.PointsDiff = int(math.Round((c.BaseLevel - syntheticLevelPivot) * 4))
		c.Trend = syntheticTrend(c.MomentumRaw)
		c.Style = syntheticStyle(c.AggressivenessRaw, c.DefenseCoverage)
	}

	c.Synergy = clamp(c.ChemistryRaw, 0.45, 0.95)
	c.WinRate = clamp(c.PairWinRatio, 0.4, 0.92)
	c.TieBreak = clamp(c.TieBreakRatio, 0.38, 0.9)
	c.Momentum = clamp(c.MomentumRaw, 0.45, 0.9)
	c.Reliability = clamp(c.ReliabilityRaw, 0.5, 0.92)
	c.Defense = clamp(c.DefenseCoverage, 0.45, 0.9)
	c.Net = clamp(c.NetCoverage, 0.45, 0.9)
	c.ExperienceFactor = clamp(math.Min(float64(c.PairMatches), experienceCapMatches)/experienceCapMatches, 0.15, 1)
	c.AggressivenessScore = clamp(c.AggressivenessRaw, 0.4, 0.9)

	c.Score = 52 +
		c.BaseLevel*3.6 +
		c.Momentum*8.5 +
		c.Reliability*6.4 +
		c.Synergy*11 +
		c.WinRate*13.5 +
		c.TieBreak*5.2 +
		c.Defense*4.2 +
		c.Net*3.5 +
		c.ExperienceFactor*5 +
		c.SideComplement*2.2 +
		c.AggressivenessBalance*2.4 +
		math.Min(float64(c.PointsDiff), pointsDiffCap)*0.35 +
		c.AggressivenessScore*2.1
	return c
}

func syntheticTrend(momentum float64) model.Trend {
	switch {
	case momentum > 0.72:
		return model.TrendUp
	case momentum < 0.58:
		return model.TrendDown
	default:
		return model.TrendSteady
	}
}

func syntheticStyle(aggressiveness, defense float64) model.Style {
	switch {
	case aggressiveness > 0.62:
		return model.StyleOffensive
	case defense > 0.74:
		return model.StyleControl
	default:
		return model.StyleBalanced
	}
}

// TierFor maps a composite score to its tier.
func TierFor(score float64) Tier {
	switch {
	case score >= 90:
		return TierElite
	case score >= 83:
		return TierStrong
	case score >= 76:
		return TierCompetitive
	default:
		return TierGrowing
	}
}

// ComputePairMetrics derives the metrics of the pair {a, b}. It returns
// ok=false when either player is missing or both are the same player; that is
// a "not yet computable" condition, not an error.
//
// The label keeps the names in the order given; the ids are sorted.
func ComputePairMetrics(a, b *model.Player, rec *model.PairStats) (PairMetrics, bool) {
	if a == nil || b == nil {
		return PairMetrics{}, false
	}
	key, ok := types.PairKey(a.ID, b.ID)
	if !ok {
		return PairMetrics{}, false
	}
	c := ComputeComponents(a, b, rec)

	first, second := a.ID, b.ID
	if second < first {
		first, second = second, first
	}
	score := round(c.Score, 1)
	return PairMetrics{
		Key:                   key,
		PlayerA:               first,
		PlayerB:               second,
		Label:                 a.Name + " / " + b.Name,
		Score:                 score,
		Tier:                  TierFor(score),
		Synergy:               round(c.Synergy, 2),
		Experience:            int(math.Round(c.ExperienceFactor * experienceCapMatches)),
		WinRate:               round(c.WinRate, 2),
		TieBreak:              round(c.TieBreak, 2),
		Momentum:              round(c.Momentum, 2),
		Reliability:           round(c.Reliability, 2),
		Style:                 c.Style,
		Trend:                 c.Trend,
		BaseLevel:             round(c.BaseLevel, 2),
		Defense:               round(c.Defense, 2),
		NetCoverage:           round(c.Net, 2),
		SideComplement:        c.SideComplement,
		AggressivenessBalance: round(c.AggressivenessBalance, 2),
		Aggressiveness:        round(c.AggressivenessScore, 2),
		PointsDiff:            c.PointsDiff,
		History:               rec,
	}, true
}

// SharesPlayer reports whether two pairs have a player in common.
func (m *PairMetrics) SharesPlayer(o *PairMetrics) bool {
	return m.PlayerA == o.PlayerA || m.PlayerA == o.PlayerB ||
		m.PlayerB == o.PlayerA || m.PlayerB == o.PlayerB
}

// Players returns the sorted ids of the pair.
func (m *PairMetrics) Players() [2]string {
	return [2]string{m.PlayerA, m.PlayerB}
}
