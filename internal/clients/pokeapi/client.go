// Package pokeapi is the location for the PokeAPI client
package pokeapi

//go:generate mockgen -destination=mock/mock_client.go -package=pokeapimock github.com/KirkDiggler/pokedex-api/internal/clients/pokeapi Client

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/KirkDiggler/pokedex-api/internal/entities/pokemon"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
)

const (
	// DefaultBaseURL is the public PokeAPI v2 root
	DefaultBaseURL = "https://pokeapi.co/api/v2"

	// DefaultHTTPTimeout bounds a single lookup
	DefaultHTTPTimeout = 30 * time.Second

	pokemonPath = "/pokemon/{identifier}"
	userAgent   = "pokedex-api/1.0"
)

// Client defines the interface for PokeAPI interactions
type Client interface {
	// GetPokemon fetches a Pokémon by name or numeric id. The identifier is
	// lower-cased before the request. Any non-2xx status is reported as
	// NotFound; transport failures as Unavailable.
	GetPokemon(ctx context.Context, identifier string) (*pokemon.Pokemon, error)
}

// Config contains configuration options for the PokeAPI client.
type Config struct {
	// BaseURL for the API (optional, defaults to https://pokeapi.co/api/v2)
	BaseURL string
	// HTTPTimeout for API requests (optional, defaults to 30 seconds)
	HTTPTimeout time.Duration
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = DefaultHTTPTimeout
	}

	vb := errors.NewValidationBuilder()
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		vb.InvalidField("BaseURL", "must be an absolute URL")
	}
	if cfg.HTTPTimeout < 0 {
		vb.InvalidField("HTTPTimeout", "must not be negative")
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return vb.Build()
}

type client struct {
	http *resty.Client
}

// New creates a new PokeAPI client with the given configuration.
func New(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.HTTPTimeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", userAgent)

	return &client{http: httpClient}, nil
}

func (c *client) GetPokemon(ctx context.Context, identifier string) (*pokemon.Pokemon, error) {
	apiID := strings.ToLower(strings.TrimSpace(identifier))
	if apiID == "" {
		return nil, errors.InvalidArgument("identifier is required")
	}

	slog.DebugContext(ctx, "Calling PokeAPI", "identifier", apiID)

	var body PokemonResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("identifier", apiID).
		ExpectContentType("application/json").
		SetResult(&body).
		Get(pokemonPath)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.WrapWithCode(err, errors.CodeCanceled, "pokeapi request canceled").
				WithMeta("identifier", apiID)
		}
		// a 2xx with an undecodable body also lands here
		if resp != nil && resp.IsSuccess() {
			return nil, errors.Wrapf(err, "failed to decode pokeapi response for %q", apiID).
				WithMeta("identifier", apiID)
		}
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "pokeapi request failed").
			WithMeta("identifier", apiID)
	}

	if !resp.IsSuccess() {
		slog.DebugContext(ctx, "PokeAPI returned non-success status",
			"identifier", apiID,
			"status", resp.StatusCode())
		return nil, errors.NotFoundf("pokemon %q not found", apiID).
			WithMeta("identifier", apiID).
			WithMeta("status", resp.StatusCode())
	}

	return convertPokemon(apiID, &body)
}
