// Package model contains domain models passed between layers.
package model

// RecentResultsLen bounds Player.RecentResults.
const RecentResultsLen = 5

// Side is the court side a player prefers to cover.
type Side string

// Known sides. The zero value means no preference.
const (
	SideUnset    Side = ""
	SideDrive    Side = "drive"
	SideBackhand Side = "backhand"
)

// Valid reports whether s is a known side or unset.
func (s Side) Valid() bool {
	switch s {
	case SideUnset, SideDrive, SideBackhand:
		return true
	}
	return false
}

// Result is a single match outcome.
type Result string

// Match outcomes.
const (
	Win  Result = "W"
	Loss Result = "L"
)

// Player is immutable roster data loaded once at startup.
// All rates are in [0,1].
type Player struct {
	ID             string   `json:"id" koanf:"id"`
	Name           string   `json:"name" koanf:"name"`
	Rating         float64  `json:"rating" koanf:"rating"`                 // skill level
	Form           float64  `json:"form" koanf:"form"`                     // recent momentum
	Consistency    float64  `json:"consistency" koanf:"consistency"`       // reliability
	Aggressiveness float64  `json:"aggressiveness" koanf:"aggressiveness"` // attacking bias
	Defense        float64  `json:"defense" koanf:"defense"`
	NetPlay        float64  `json:"net_play" koanf:"net_play"`
	PreferredSide  Side     `json:"preferred_side,omitempty" koanf:"preferred_side"`
	WinRate        float64  `json:"win_rate" koanf:"win_rate"`
	MatchesPlayed  int      `json:"matches_played" koanf:"matches_played"`
	Clutch         float64  `json:"clutch" koanf:"clutch"` // tie-break win rate
	Streak         int      `json:"streak" koanf:"streak"` // signed: positive wins, negative losses
	RecentResults  []Result `json:"recent_results,omitempty" koanf:"recent_results"`
}
