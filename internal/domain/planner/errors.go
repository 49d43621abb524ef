package planner

import (
	"errors"
	"fmt"
)

// Sentinel kinds for planner errors. None of them change planner state.
var (
	ErrIncompleteSelection = errors.New("incomplete selection")
	ErrSharedPlayer        = fmt.Errorf("%w: pairs share a player", ErrIncompleteSelection)
	ErrUnknownPair         = errors.New("pair cannot be resolved")
	ErrDuplicateMatch      = errors.New("match already planned")
	ErrNoRecommendation    = errors.New("no recommendation available")
)
