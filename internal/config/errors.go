package config

import (
	"errors"
)

// Sentinel errors wrapped by Validate and Load.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
