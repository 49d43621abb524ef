package repository

import "errors"

// Sentinel kinds for store and loader errors.
var (
	ErrNotFound     = errors.New("pair not found")
	ErrInvalidLimit = errors.New("invalid ranking limit")
	ErrInvalidPair  = errors.New("invalid pair metrics")
	ErrRosterLoad   = errors.New("roster load failed")
)
