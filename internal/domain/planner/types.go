package planner

import (
	"time"

	"github.com/google/uuid"

	"github.com/okian/padelmatch/internal/domain/scoring"
)

// Provenance tells how a planned match came to be.
type Provenance string

// Known provenances.
const (
	ProvenanceRecommended Provenance = "recommended"
	ProvenanceManual      Provenance = "manual"
)

// Form is the working selection used to create a match.
type Form struct {
	Pair1       [2]string  `json:"pair1"`
	Pair2       [2]string  `json:"pair2"`
	Court       string     `json:"court,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// Empty reports whether no field of the form is set.
func (f *Form) Empty() bool {
	return f.Pair1 == [2]string{} && f.Pair2 == [2]string{} &&
		f.Court == "" && f.ScheduledAt == nil && f.Notes == ""
}

// PlannedMatch is a match committed to the session.
type PlannedMatch struct {
	ID          uuid.UUID               `json:"id"`
	Key         string                  `json:"key"`
	Pair1       scoring.PairMetrics     `json:"pair1"`
	Pair2       scoring.PairMetrics     `json:"pair2"`
	Evaluation  scoring.MatchEvaluation `json:"evaluation"`
	Court       string                  `json:"court,omitempty"`
	ScheduledAt *time.Time              `json:"scheduled_at,omitempty"`
	Notes       string                  `json:"notes,omitempty"`
	Provenance  Provenance              `json:"provenance"`
	CreatedAt   time.Time               `json:"created_at"`
}
