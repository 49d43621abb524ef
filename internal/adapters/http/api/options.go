package api

import "github.com/okian/padelmatch/pkg/logger"

// Option configures a Server.
type Option func(*Server)

// WithToken requires "Authorization: Bearer <token>" on business routes.
// An empty token disables authentication.
func WithToken(token string) Option {
	return func(s *Server) {
		s.token = token
	}
}

// WithCORSOrigins sets the allowed CORS origins.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.corsOrigins = origins
		}
	}
}

// WithRateLimit enables per-client rate limiting. A zero rate disables it.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		if rps >= 0 && burst >= 0 {
			s.rateLimitRPS = rps
			s.rateLimitBurst = burst
		}
	}
}

// WithMaxPairLimit caps the limit accepted by the pair ranking.
func WithMaxPairLimit(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxPairLimit = n
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}
