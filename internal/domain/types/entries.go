package types

// PlayerEntry is a row of the individual ranking.
type PlayerEntry struct {
	Rank   int     `json:"rank"`
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
	Form   float64 `json:"form"`
}

// PairEntry is a row of the pair ranking.
type PairEntry struct {
	Rank  int     `json:"rank"`
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Score float64 `json:"score"`
	Tier  string  `json:"tier"`
}
