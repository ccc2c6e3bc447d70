// Package lookupsession provides repository interface and types for widget sessions
package lookupsession

import (
	"context"
	"time"

	"github.com/KirkDiggler/pokedex-api/internal/entities/pokemon"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=lookupsessionmock github.com/KirkDiggler/pokedex-api/internal/repositories/lookup_session Repository

// DefaultTTL is how long an untouched session lives
const DefaultTTL = 30 * time.Minute

// Session is the state of one lookup widget: its active result and UI status
type Session struct {
	ID string `json:"id"`

	Status  pokemon.Status `json:"status"`
	Message string         `json:"message,omitempty"`
	Title   string         `json:"title,omitempty"`

	// Query is echoed back into the search box; cleared after a successful search
	Query string `json:"query,omitempty"`

	// Result is the active lookup result, nil when nothing is displayed
	Result *pokemon.Pokemon `json:"result,omitempty"`

	CardVisible bool `json:"card_visible"`
	Placeholder bool `json:"placeholder"`

	// Busy is true strictly while the latest lookup is in flight
	Busy bool `json:"busy"`

	// Seq numbers lookups; only the completion carrying the latest Seq is applied
	Seq uint64 `json:"seq"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Card derives the render model for this session
func (s *Session) Card() *pokemon.Card {
	return &pokemon.Card{
		Title:          s.Title,
		Visible:        s.CardVisible,
		Result:         s.Result.Clone(),
		Placeholder:    s.Placeholder,
		Status:         s.Status,
		Message:        s.Message,
		SearchDisabled: s.Busy,
	}
}

// Clone returns a deep copy of the session
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.Result = s.Result.Clone()
	return &out
}

// CreateInput contains parameters for creating a session
type CreateInput struct {
	Session *Session
	TTL     time.Duration
}

// CreateOutput contains the result of creating a session
type CreateOutput struct {
	Session *Session
}

// GetInput contains parameters for retrieving a session
type GetInput struct {
	ID string
}

// GetOutput contains the result of retrieving a session
type GetOutput struct {
	Session *Session
}

// UpdateInput replaces a stored session and refreshes its TTL
type UpdateInput struct {
	Session *Session
	TTL     time.Duration
}

// UpdateOutput contains the stored session
type UpdateOutput struct {
	Session *Session
}

// DeleteInput contains parameters for deleting a session
type DeleteInput struct {
	ID string
}

// DeleteOutput contains the result of deleting a session
type DeleteOutput struct {
	Deleted bool
}

// Repository defines the interface for widget session storage
type Repository interface {
	// Create stores a new session; AlreadyExists if the id is taken
	Create(ctx context.Context, input *CreateInput) (*CreateOutput, error)

	// Get retrieves a session; NotFound if missing or expired
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// Update replaces an existing session; NotFound if missing or expired
	Update(ctx context.Context, input *UpdateInput) (*UpdateOutput, error)

	// Delete removes a session
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)
}
