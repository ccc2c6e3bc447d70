package lookupsession

import (
	"time"

	"github.com/KirkDiggler/pokedex-api/internal/errors"
)

const (
	errInputNil     = "input cannot be nil"
	errSessionNil   = "session cannot be nil"
	errSessionIDNil = "session ID cannot be empty"
)

func validateSession(s *Session) error {
	if s == nil {
		return errors.InvalidArgument(errSessionNil)
	}
	if s.ID == "" {
		return errors.InvalidArgument(errSessionIDNil)
	}
	return nil
}

func ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return DefaultTTL
	}
	return ttl
}
