package roster

import "errors"

// Sentinel kinds for roster errors.
var (
	ErrEmptyRoster       = errors.New("roster has no players")
	ErrDuplicatePlayer   = errors.New("duplicate player id")
	ErrReservedID        = errors.New("player id contains a reserved separator")
	ErrUnknownPlayer     = errors.New("unknown player")
	ErrDuplicatePairStat = errors.New("duplicate pair stats")
)
