package scoring

import (
	"math"
	"strings"

	"github.com/okian/padelmatch/internal/domain/types"
)

// Narrative clauses, in evaluation order.
const (
	NoteControlledGap   = "Controlled level gap"
	NoteAspiringInForm  = "Aspiring pair in good form"
	NoteCompatible      = "Compatible chemistry"
	NoteIntenseDuel     = "Intense duel expected"
	NoteBalancedDefault = "Balanced matchup per metrics"
)

const (
	idealDiff      = 5.2
	minExpectGames = 6
)

// MatchEvaluation is the fairness assessment of two pairs playing each other.
// Strong holds the pair with the higher (or equal) score.
type MatchEvaluation struct {
	Key              string      `json:"key"`
	Strong           PairMetrics `json:"strong"`
	Underdog         PairMetrics `json:"underdog"`
	Diff             float64     `json:"diff"`
	Intensity        float64     `json:"intensity"`
	Fairness         float64     `json:"fairness"`
	ExpectedGames    int         `json:"expected_games"`
	DiffScore        float64     `json:"diff_score"`
	SynergyScore     float64     `json:"synergy_score"`
	ExperienceScore  float64     `json:"experience_score"`
	IntensityScore   float64     `json:"intensity_score"`
	UnderdogMomentum float64     `json:"underdog_momentum"`
	ReliabilityScore float64     `json:"reliability_score"`
	Notes            []string    `json:"notes"`
	Summary          string      `json:"summary"`
}

// EvaluateMatch scores how competitive a match between one and two would be.
// It returns ok=false when either pair is missing or the pairs share a player.
func EvaluateMatch(one, two *PairMetrics) (MatchEvaluation, bool) {
	if one == nil || two == nil || one.Key == "" || two.Key == "" {
		return MatchEvaluation{}, false
	}
	if one.SharesPlayer(two) {
		return MatchEvaluation{}, false
	}

	strong, underdog := one, two
	if two.Score > one.Score {
		strong, underdog = two, one
	}

	e := MatchEvaluation{
		Key:      types.MatchKeyOf(strong.Key, underdog.Key),
		Strong:   *strong,
		Underdog: *underdog,
		// Scores carry one decimal, so the gap does too.
		Diff: round(strong.Score-underdog.Score, 1),
	}
	e.DiffScore = clamp(1-math.Abs(e.Diff-idealDiff)/7.5, 0, 1)
	e.SynergyScore = clamp(1-math.Abs(strong.Synergy-underdog.Synergy)/0.5, 0, 1)
	e.ExperienceScore = clamp(1-math.Abs(float64(strong.Experience-underdog.Experience))/18, 0, 1)
	e.Intensity = mean(strong.Score, underdog.Score)
	e.IntensityScore = clamp((e.Intensity-62)/20, 0, 1)
	e.UnderdogMomentum = clamp(mean(underdog.Momentum, underdog.WinRate), 0, 1)
	e.ReliabilityScore = clamp(1-math.Abs(strong.Reliability-underdog.Reliability)/0.45, 0, 1)

	e.Fairness = clamp(
		0.45*e.DiffScore+
			0.15*e.SynergyScore+
			0.12*e.ExperienceScore+
			0.12*e.IntensityScore+
			0.10*e.UnderdogMomentum+
			0.06*e.ReliabilityScore,
		0, 1)

	games := int(math.Round(8 + e.IntensityScore*4 - (e.Diff-4.5)*0.55))
	e.ExpectedGames = max(minExpectGames, games)

	e.Notes = narrative(&e)
	e.Summary = strings.Join(e.Notes, ". ") + "."
	return e, true
}

func narrative(e *MatchEvaluation) []string {
	var notes []string
	add := func(cond bool, note string) {
		if !cond {
			return
		}
		for _, n := range notes {
			if n == note {
				return
			}
		}
		notes = append(notes, note)
	}
	add(e.Diff <= 6, NoteControlledGap)
	add(e.UnderdogMomentum >= 0.6, NoteAspiringInForm)
	add(e.SynergyScore >= 0.7, NoteCompatible)
	add(e.IntensityScore >= 0.6, NoteIntenseDuel)
	if len(notes) == 0 {
		notes = append(notes, NoteBalancedDefault)
	}
	return notes
}

// HighlightScore is the 0-100 display score of an evaluation.
func (e *MatchEvaluation) HighlightScore() int {
	return int(math.Round(e.Fairness * 100))
}
