package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted   = errors.New("service not started")
	ErrStopped      = errors.New("service stopped")
	ErrBackpressure = errors.New("backpressure")
	ErrNotFound     = errors.New("not found")
)
