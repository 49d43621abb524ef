package model

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel kinds for invalid roster data.
var (
	ErrInvalidPlayer    = errors.New("invalid player")
	ErrInvalidPairStats = errors.New("invalid pair stats")
)

func unitRange(name string, v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("%s %.3f out of [0,1]", name, v)
	}
	return nil
}

// Validate checks the invariants of a roster player.
func (p *Player) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidPlayer)
	}
	rates := []struct {
		name string
		v    float64
	}{
		{"form", p.Form},
		{"consistency", p.Consistency},
		{"aggressiveness", p.Aggressiveness},
		{"defense", p.Defense},
		{"net_play", p.NetPlay},
		{"win_rate", p.WinRate},
		{"clutch", p.Clutch},
	}
	for _, r := range rates {
		if err := unitRange(r.name, r.v); err != nil {
			return fmt.Errorf("%w %s: %v", ErrInvalidPlayer, p.ID, err)
		}
	}
	if !p.PreferredSide.Valid() {
		return fmt.Errorf("%w %s: unknown side %q", ErrInvalidPlayer, p.ID, p.PreferredSide)
	}
	if p.MatchesPlayed < 0 {
		return fmt.Errorf("%w %s: negative matches_played", ErrInvalidPlayer, p.ID)
	}
	if len(p.RecentResults) > RecentResultsLen {
		return fmt.Errorf("%w %s: more than %d recent results", ErrInvalidPlayer, p.ID, RecentResultsLen)
	}
	for _, r := range p.RecentResults {
		if r != Win && r != Loss {
			return fmt.Errorf("%w %s: unknown result %q", ErrInvalidPlayer, p.ID, r)
		}
	}
	return nil
}

// Validate checks the invariants of a pair history record.
func (s *PairStats) Validate() error {
	if s.PlayerA == "" || s.PlayerB == "" || s.PlayerA == s.PlayerB {
		return fmt.Errorf("%w: needs two distinct players", ErrInvalidPairStats)
	}
	if s.Matches < 0 || s.Wins < 0 || s.Wins > s.Matches {
		return fmt.Errorf("%w %s/%s: wins %d of %d matches", ErrInvalidPairStats, s.PlayerA, s.PlayerB, s.Wins, s.Matches)
	}
	if err := unitRange("chemistry", s.Chemistry); err != nil {
		return fmt.Errorf("%w %s/%s: %v", ErrInvalidPairStats, s.PlayerA, s.PlayerB, err)
	}
	if err := unitRange("tie_break_win_rate", s.TieBreakWinRate); err != nil {
		return fmt.Errorf("%w %s/%s: %v", ErrInvalidPairStats, s.PlayerA, s.PlayerB, err)
	}
	switch s.Trend {
	case TrendUp, TrendDown, TrendSteady:
	default:
		return fmt.Errorf("%w %s/%s: unknown trend %q", ErrInvalidPairStats, s.PlayerA, s.PlayerB, s.Trend)
	}
	switch s.Style {
	case StyleOffensive, StyleControl, StyleBalanced:
	default:
		return fmt.Errorf("%w %s/%s: unknown style %q", ErrInvalidPairStats, s.PlayerA, s.PlayerB, s.Style)
	}
	return nil
}
