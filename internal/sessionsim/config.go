package sessionsim

import "time"

// Config holds configuration for a simulated planning session.
type Config struct {
	BaseURL   string        // Base URL of the service
	Token     string        // Bearer token, empty when auth is off
	Rounds    int           // Number of accept/skip decisions
	SkipRatio float64       // Share of rounds that skip instead of accept
	Seed      uint64        // Seed for the decision sequence
	Readers   int           // Concurrent read-only clients
	ReadRate  float64       // Requests per second shared by all readers
	Retries   int           // Retries of a rate limited driver request
	Timeout   time.Duration // HTTP request timeout
	Court     string        // Court written into created matches
}

// Candidate is the subset of a recommendation the simulator checks.
type Candidate struct {
	Key       string  `json:"key"`
	Diff      float64 `json:"diff"`
	Fairness  float64 `json:"fairness"`
	Highlight int     `json:"highlight"`
}

// Form is the working form.
type Form struct {
	Pair1 [2]string `json:"pair1"`
	Pair2 [2]string `json:"pair2"`
	Court string    `json:"court,omitempty"`
	Notes string    `json:"notes,omitempty"`
}

// Decision is the response to accept and skip.
type Decision struct {
	Candidate Candidate  `json:"candidate"`
	Form      Form       `json:"form"`
	Next      *Candidate `json:"next,omitempty"`
}

// Match is a planned match.
type Match struct {
	ID         string `json:"id"`
	Key        string `json:"key"`
	Court      string `json:"court,omitempty"`
	Provenance string `json:"provenance"`
}

// PairEntry is one row of the pair ranking.
type PairEntry struct {
	Rank int `json:"rank"`
	Pair struct {
		Key   string  `json:"key"`
		Score float64 `json:"score"`
	} `json:"pair"`
}

// Stats holds session statistics.
type Stats struct {
	Rounds     int
	Accepted   int
	Skipped    int
	Created    int
	Removed    int
	Exhausted  bool
	Reads      int64
	Throttled  int64
	Violations []string
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}
