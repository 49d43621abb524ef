// Package model contains domain models passed between layers.
package model

// Trend describes where a pair's results are heading.
type Trend string

// Known trends.
const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendSteady Trend = "steady"
)

// Style is the dominant playing style of a pair.
type Style string

// Known styles.
const (
	StyleOffensive Style = "offensive"
	StyleControl   Style = "control"
	StyleBalanced  Style = "balanced"
)

// PairStats is the recorded history of two players playing together.
// Key is the canonical unordered pair key of PlayerA and PlayerB.
type PairStats struct {
	Key             string  `json:"key" koanf:"-"`
	PlayerA         string  `json:"player_a" koanf:"player_a"`
	PlayerB         string  `json:"player_b" koanf:"player_b"`
	Matches         int     `json:"matches" koanf:"matches"`
	Wins            int     `json:"wins" koanf:"wins"`
	Chemistry       float64 `json:"chemistry" koanf:"chemistry"`
	TieBreakWinRate float64 `json:"tie_break_win_rate" koanf:"tie_break_win_rate"`
	PointsDiff      int     `json:"points_diff" koanf:"points_diff"`
	Trend           Trend   `json:"trend" koanf:"trend"`
	Style           Style   `json:"style" koanf:"style"`
}
