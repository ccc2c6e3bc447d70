package lookupsession

import (
	"context"
	"encoding/json"

	"github.com/KirkDiggler/pokedex-api/internal/errors"
	"github.com/KirkDiggler/pokedex-api/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/pokedex-api/internal/redis"
)

// Key pattern: lookup_session:{id}
const sessionKeyPrefix = "lookup_session:"

// RedisConfig holds the configuration for the Redis repository
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedis creates a new Redis repository for widget sessions
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Create stores a new session with the specified TTL
func (r *redisRepository) Create(ctx context.Context, input *CreateInput) (*CreateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if err := validateSession(input.Session); err != nil {
		return nil, err
	}

	ttl := ttlOrDefault(input.TTL)
	session := input.Session.Clone()
	now := r.clock.Now()
	session.CreatedAt = now
	session.UpdatedAt = now
	session.ExpiresAt = now.Add(ttl)

	data, err := json.Marshal(session)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal session")
	}

	created, err := r.client.SetNX(ctx, r.buildKey(session.ID), data, ttl).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to store session in Redis")
	}
	if !created {
		return nil, errors.AlreadyExists("session already exists").WithMeta("session_id", session.ID)
	}

	return &CreateOutput{Session: session}, nil
}

// Get retrieves a session by id
func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if input.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDNil)
	}

	data, err := r.client.Get(ctx, r.buildKey(input.ID)).Bytes()
	if err != nil {
		if errors.Is(err, redisclient.Nil) {
			return nil, errors.NotFound("session not found").WithMeta("session_id", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get session from Redis")
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal session")
	}

	return &GetOutput{Session: &session}, nil
}

// Update replaces a session that still exists, refreshing its TTL
func (r *redisRepository) Update(ctx context.Context, input *UpdateInput) (*UpdateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if err := validateSession(input.Session); err != nil {
		return nil, err
	}

	ttl := ttlOrDefault(input.TTL)
	session := input.Session.Clone()
	now := r.clock.Now()
	session.UpdatedAt = now
	session.ExpiresAt = now.Add(ttl)

	data, err := json.Marshal(session)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal session")
	}

	updated, err := r.client.SetXX(ctx, r.buildKey(session.ID), data, ttl).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update session in Redis")
	}
	if !updated {
		return nil, errors.NotFound("session not found").WithMeta("session_id", session.ID)
	}

	return &UpdateOutput{Session: session}, nil
}

// Delete removes a session
func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if input.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDNil)
	}

	n, err := r.client.Del(ctx, r.buildKey(input.ID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete session from Redis")
	}

	return &DeleteOutput{Deleted: n > 0}, nil
}

func (r *redisRepository) buildKey(id string) string {
	return sessionKeyPrefix + id
}
