package lookupsession

import (
	"context"
	"sync"

	"github.com/KirkDiggler/pokedex-api/internal/errors"
	"github.com/KirkDiggler/pokedex-api/internal/pkg/clock"
)

// InMemoryRepository implements Repository using in-memory storage. Expired
// sessions are dropped lazily on access.
type InMemoryRepository struct {
	mu    sync.RWMutex
	clock clock.Clock
	store map[string]*Session
}

// NewInMemory creates a new in-memory repository. A nil clock uses real time.
func NewInMemory(c clock.Clock) *InMemoryRepository {
	if c == nil {
		c = clock.New()
	}
	return &InMemoryRepository{
		clock: c,
		store: make(map[string]*Session),
	}
}

// Ensure InMemoryRepository implements Repository
var _ Repository = (*InMemoryRepository)(nil)

// Create stores a new session
func (r *InMemoryRepository) Create(_ context.Context, input *CreateInput) (*CreateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if err := validateSession(input.Session); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	if existing, ok := r.store[input.Session.ID]; ok && now.Before(existing.ExpiresAt) {
		return nil, errors.AlreadyExists("session already exists").WithMeta("session_id", input.Session.ID)
	}

	session := input.Session.Clone()
	session.CreatedAt = now
	session.UpdatedAt = now
	session.ExpiresAt = now.Add(ttlOrDefault(input.TTL))
	r.store[session.ID] = session

	return &CreateOutput{Session: session.Clone()}, nil
}

// Get retrieves a session by id
func (r *InMemoryRepository) Get(_ context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if input.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDNil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.liveLocked(input.ID)
	if !ok {
		return nil, errors.NotFound("session not found").WithMeta("session_id", input.ID)
	}

	// Return a copy to prevent external modification
	return &GetOutput{Session: session.Clone()}, nil
}

// Update replaces an existing session
func (r *InMemoryRepository) Update(_ context.Context, input *UpdateInput) (*UpdateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if err := validateSession(input.Session); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.liveLocked(input.Session.ID); !ok {
		return nil, errors.NotFound("session not found").WithMeta("session_id", input.Session.ID)
	}

	now := r.clock.Now()
	session := input.Session.Clone()
	session.UpdatedAt = now
	session.ExpiresAt = now.Add(ttlOrDefault(input.TTL))
	r.store[session.ID] = session

	return &UpdateOutput{Session: session.Clone()}, nil
}

// Delete removes a session
func (r *InMemoryRepository) Delete(_ context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if input.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDNil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.liveLocked(input.ID)
	delete(r.store, input.ID)

	return &DeleteOutput{Deleted: ok}, nil
}

// liveLocked returns the session if present and unexpired, evicting it otherwise
func (r *InMemoryRepository) liveLocked(id string) (*Session, bool) {
	session, ok := r.store[id]
	if !ok {
		return nil, false
	}
	if !r.clock.Now().Before(session.ExpiresAt) {
		delete(r.store, id)
		return nil, false
	}
	return session, true
}
