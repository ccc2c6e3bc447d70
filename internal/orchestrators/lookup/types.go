package lookup

import (
	"github.com/KirkDiggler/pokedex-api/internal/entities/pokemon"
	lookupsession "github.com/KirkDiggler/pokedex-api/internal/repositories/lookup_session"
)

// CreateSessionInput contains parameters for starting a widget session
type CreateSessionInput struct{}

// CreateSessionOutput contains the new session
type CreateSessionOutput struct {
	Session *lookupsession.Session
}

// LoadDefaultInput runs the page-load lookup on a session
type LoadDefaultInput struct {
	SessionID string
}

// LoadDefaultOutput contains the session after the default lookup
type LoadDefaultOutput struct {
	Session *lookupsession.Session

	// Result is set when the lookup succeeded and was applied
	Result *pokemon.Pokemon

	// LookupError is the user-facing failure, if any. It is already
	// reflected in Session.
	LookupError error

	// Stale is set when a newer lookup superseded this one; Session is the
	// stored state, untouched by this lookup
	Stale bool
}

// SearchInput contains a user query for a session
type SearchInput struct {
	SessionID string
	Query     string
}

// SearchOutput contains the session after the search
type SearchOutput struct {
	Session *lookupsession.Session

	// Result is set when the lookup succeeded and was applied
	Result *pokemon.Pokemon

	// LookupError is the validation or lookup failure shown to the user
	LookupError error

	// Stale is set when a newer lookup superseded this one
	Stale bool
}

// GetSessionInput identifies a session
type GetSessionInput struct {
	SessionID string
}

// GetSessionOutput contains the stored session
type GetSessionOutput struct {
	Session *lookupsession.Session
}

// LookupInput is a stateless lookup by name or id
type LookupInput struct {
	Identifier string
}

// LookupOutput contains the looked up record
type LookupOutput struct {
	Pokemon *pokemon.Pokemon
}
