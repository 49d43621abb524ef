package sessionsim

import "time"

// Candidate filter the service applies.
const (
	MinDiff     = 3.2
	MaxDiff     = 10.5
	MinFairness = 0.48
)

// Defaults for Config fields left zero.
const (
	DefaultRounds    = 8
	DefaultSkipRatio = 0.3
	DefaultTimeout   = 10 * time.Second
	DefaultRetries   = 10
	DefaultReadRate  = 10.0
	readerPause      = 20 * time.Millisecond
	minRetryWait     = 100 * time.Millisecond
	maxRetryWait     = 5 * time.Second
)

// Error codes returned by the API.
const (
	codeNoRecommendation = "no_recommendation"
	codeDuplicateMatch   = "duplicate_match"
	codeRateLimited      = "rate_limited"
)
