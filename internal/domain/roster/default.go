package roster

import "github.com/okian/padelmatch/internal/domain/model"

// DefaultPlayers is the built-in demo roster used when no roster file is configured.
func DefaultPlayers() []model.Player {
	return []model.Player{
		{
			ID:             "alba",
			Name:           "Alba Ruiz",
			Rating:         8.4,
			Form:           0.82,
			Consistency:    0.78,
			Aggressiveness: 0.66,
			Defense:        0.72,
			NetPlay:        0.81,
			PreferredSide:  model.SideDrive,
			WinRate:        0.74,
			MatchesPlayed:  46,
			Clutch:         0.68,
			Streak:         4,
			RecentResults:  []model.Result{model.Win, model.Win, model.Win, model.Loss, model.Win},
		},
		{
			ID:             "bruno",
			Name:           "Bruno Castro",
			Rating:         8.1,
			Form:           0.76,
			Consistency:    0.74,
			Aggressiveness: 0.58,
			Defense:        0.79,
			NetPlay:        0.7,
			PreferredSide:  model.SideBackhand,
			WinRate:        0.71,
			MatchesPlayed:  52,
			Clutch:         0.63,
			Streak:         2,
			RecentResults:  []model.Result{model.Win, model.Loss, model.Win, model.Win, model.Win},
		},
		{
			ID:             "carla",
			Name:           "Carla Méndez",
			Rating:         7.8,
			Form:           0.71,
			Consistency:    0.69,
			Aggressiveness: 0.71,
			Defense:        0.61,
			NetPlay:        0.77,
			PreferredSide:  model.SideDrive,
			WinRate:        0.66,
			MatchesPlayed:  38,
			Clutch:         0.59,
			Streak:         1,
			RecentResults:  []model.Result{model.Loss, model.Win, model.Win, model.Loss, model.Win},
		},
		{
			ID:             "diego",
			Name:           "Diego Navarro",
			Rating:         7.6,
			Form:           0.64,
			Consistency:    0.72,
			Aggressiveness: 0.45,
			Defense:        0.83,
			NetPlay:        0.58,
			PreferredSide:  model.SideBackhand,
			WinRate:        0.63,
			MatchesPlayed:  41,
			Clutch:         0.61,
			Streak:         -1,
			RecentResults:  []model.Result{model.Win, model.Loss, model.Loss, model.Win, model.Loss},
		},
		{
			ID:             "elena",
			Name:           "Elena Soto",
			Rating:         7.3,
			Form:           0.79,
			Consistency:    0.61,
			Aggressiveness: 0.62,
			Defense:        0.57,
			NetPlay:        0.72,
			PreferredSide:  model.SideDrive,
			WinRate:        0.6,
			MatchesPlayed:  29,
			Clutch:         0.55,
			Streak:         3,
			RecentResults:  []model.Result{model.Loss, model.Win, model.Win, model.Win, model.Win},
		},
		{
			ID:             "fran",
			Name:           "Fran Ortega",
			Rating:         7.0,
			Form:           0.58,
			Consistency:    0.66,
			Aggressiveness: 0.52,
			Defense:        0.68,
			NetPlay:        0.6,
			PreferredSide:  model.SideBackhand,
			WinRate:        0.55,
			MatchesPlayed:  34,
			Clutch:         0.5,
			Streak:         -2,
			RecentResults:  []model.Result{model.Win, model.Loss, model.Win, model.Loss, model.Loss},
		},
		{
			ID:             "gala",
			Name:           "Gala Prieto",
			Rating:         6.8,
			Form:           0.68,
			Consistency:    0.57,
			Aggressiveness: 0.74,
			Defense:        0.52,
			NetPlay:        0.66,
			PreferredSide:  model.SideDrive,
			WinRate:        0.52,
			MatchesPlayed:  22,
			Clutch:         0.47,
			Streak:         1,
			RecentResults:  []model.Result{model.Loss, model.Loss, model.Win, model.Win, model.Win},
		},
		{
			ID:             "hugo",
			Name:           "Hugo Lara",
			Rating:         6.5,
			Form:           0.55,
			Consistency:    0.62,
			Aggressiveness: 0.41,
			Defense:        0.71,
			NetPlay:        0.52,
			PreferredSide:  model.SideBackhand,
			WinRate:        0.49,
			MatchesPlayed:  27,
			Clutch:         0.52,
			Streak:         -1,
			RecentResults:  []model.Result{model.Win, model.Loss, model.Loss, model.Win, model.Loss},
		},
		{
			ID:             "irene",
			Name:           "Irene Vidal",
			Rating:         6.2,
			Form:           0.73,
			Consistency:    0.55,
			Aggressiveness: 0.57,
			Defense:        0.55,
			NetPlay:        0.61,
			PreferredSide:  model.SideUnset,
			WinRate:        0.47,
			MatchesPlayed:  18,
			Clutch:         0.44,
			Streak:         2,
			RecentResults:  []model.Result{model.Loss, model.Loss, model.Loss, model.Win, model.Win},
		},
		{
			ID:             "javi",
			Name:           "Javi Romero",
			Rating:         5.9,
			Form:           0.5,
			Consistency:    0.6,
			Aggressiveness: 0.48,
			Defense:        0.63,
			NetPlay:        0.5,
			PreferredSide:  model.SideDrive,
			WinRate:        0.42,
			MatchesPlayed:  25,
			Clutch:         0.41,
			Streak:         -3,
			RecentResults:  []model.Result{model.Win, model.Loss, model.Loss, model.Loss, model.Loss},
		},
		{
			ID:             "lola",
			Name:           "Lola Fuentes",
			Rating:         5.6,
			Form:           0.62,
			Consistency:    0.52,
			Aggressiveness: 0.66,
			Defense:        0.48,
			NetPlay:        0.57,
			PreferredSide:  model.SideBackhand,
			WinRate:        0.4,
			MatchesPlayed:  14,
			Clutch:         0.39,
			Streak:         0,
			RecentResults:  []model.Result{model.Loss, model.Win, model.Loss, model.Win, model.Loss},
		},
		{
			ID:             "mario",
			Name:           "Mario Gil",
			Rating:         5.3,
			Form:           0.47,
			Consistency:    0.58,
			Aggressiveness: 0.39,
			Defense:        0.6,
			NetPlay:        0.46,
			PreferredSide:  model.SideUnset,
			WinRate:        0.37,
			MatchesPlayed:  19,
			Clutch:         0.36,
			Streak:         -1,
			RecentResults:  []model.Result{model.Loss, model.Loss, model.Win, model.Loss, model.Loss},
		},
	}
}

// DefaultPairStats is the recorded history that goes with DefaultPlayers.
func DefaultPairStats() []model.PairStats {
	return []model.PairStats{
		{PlayerA: "alba", PlayerB: "bruno", Matches: 28, Wins: 21, Chemistry: 0.91, TieBreakWinRate: 0.7, PointsDiff: 24, Trend: model.TrendUp, Style: model.StyleOffensive},
		{PlayerA: "carla", PlayerB: "diego", Matches: 17, Wins: 10, Chemistry: 0.78, TieBreakWinRate: 0.58, PointsDiff: 9, Trend: model.TrendSteady, Style: model.StyleBalanced},
		{PlayerA: "elena", PlayerB: "fran", Matches: 12, Wins: 6, Chemistry: 0.69, TieBreakWinRate: 0.5, PointsDiff: 1, Trend: model.TrendUp, Style: model.StyleBalanced},
		{PlayerA: "gala", PlayerB: "hugo", Matches: 9, Wins: 4, Chemistry: 0.64, TieBreakWinRate: 0.44, PointsDiff: -4, Trend: model.TrendDown, Style: model.StyleControl},
		{PlayerA: "irene", PlayerB: "javi", Matches: 6, Wins: 2, Chemistry: 0.57, TieBreakWinRate: 0.4, PointsDiff: -9, Trend: model.TrendSteady, Style: model.StyleControl},
	}
}
