package session

import (
	"math/rand/v2"

	"github.com/rs/zerolog"
)

// Option configures a Session at Start.
type Option func(*Session)

// WithRand sets the random source used to shuffle the queue.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rng = r }
}

// WithRecorder sets where per-question correctness is persisted.
func WithRecorder(r ProgressRecorder) Option {
	return func(s *Session) { s.recorder = r }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithID overrides the generated session id.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}
