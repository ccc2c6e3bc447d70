package pokeapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/pokedex-api/internal/clients/pokeapi"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
	"github.com/KirkDiggler/pokedex-api/internal/testutils"
)

type ClientTestSuite struct {
	suite.Suite
	api    *testutils.FakePokeAPI
	client pokeapi.Client
	ctx    context.Context
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) SetupTest() {
	s.api = testutils.NewFakePokeAPI(s.T())
	s.ctx = context.Background()

	client, err := pokeapi.New(&pokeapi.Config{
		BaseURL:     s.api.URL(),
		HTTPTimeout: 5 * time.Second,
	})
	s.Require().NoError(err)
	s.client = client
}

func (s *ClientTestSuite) TestGetPokemon_Pikachu() {
	result, err := s.client.GetPokemon(s.ctx, "pikachu")
	s.Require().NoError(err)

	s.Equal(testutils.CreateTestPikachu(), result)
	s.Equal([]string{"/pokemon/pikachu"}, s.api.Requested())
}

func (s *ClientTestSuite) TestGetPokemon_LowercasesIdentifier() {
	result, err := s.client.GetPokemon(s.ctx, "  PikaChu ")
	s.Require().NoError(err)

	s.Equal("pikachu", result.Identifier)
	s.Equal([]string{"/pokemon/pikachu"}, s.api.Requested())
}

func (s *ClientTestSuite) TestGetPokemon_NumericID() {
	result, err := s.client.GetPokemon(s.ctx, "25")
	s.Require().NoError(err)

	s.Equal("pikachu", result.Name)
	s.Equal(25, result.ID)
	s.Equal("25", result.Identifier)
}

func (s *ClientTestSuite) TestGetPokemon_SpriteFallback() {
	result, err := s.client.GetPokemon(s.ctx, "sprigatito")
	s.Require().NoError(err)

	s.Equal(testutils.SprigatitoFrontURL, result.SpriteURL)
	s.Equal(0.4, result.HeightMeters)
	s.Equal(4.1, result.WeightKg)
	s.Equal([]string{"overgrow", "protean"}, result.Abilities)
}

func (s *ClientTestSuite) TestGetPokemon_NonSuccessIsNotFound() {
	testCases := []struct {
		name       string
		identifier string
		status     int
	}{
		{name: "unknown pokemon", identifier: "notapokemon123", status: http.StatusNotFound},
		{name: "server error", identifier: "boom", status: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			result, err := s.client.GetPokemon(s.ctx, tc.identifier)
			s.Require().Error(err)
			s.Nil(result)
			s.True(errors.IsNotFound(err))
			s.Equal(tc.status, errors.GetMeta(err)["status"])
			s.Equal(tc.identifier, errors.GetMeta(err)["identifier"])
		})
	}
}

func (s *ClientTestSuite) TestGetPokemon_EscapesIdentifier() {
	_, err := s.client.GetPokemon(s.ctx, "mr mime/../x")
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))

	requested := s.api.Requested()
	s.Require().Len(requested, 1)
	s.Equal("/pokemon/mr%20mime%2F..%2Fx", requested[0])
}

func (s *ClientTestSuite) TestGetPokemon_EmptyIdentifier() {
	_, err := s.client.GetPokemon(s.ctx, "   ")
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Empty(s.api.Requested())
}

func (s *ClientTestSuite) TestGetPokemon_TransportFailureIsUnavailable() {
	down := httptest.NewServer(http.NotFoundHandler())
	baseURL := down.URL
	down.Close()

	client, err := pokeapi.New(&pokeapi.Config{BaseURL: baseURL, HTTPTimeout: time.Second})
	s.Require().NoError(err)

	_, err = client.GetPokemon(s.ctx, "pikachu")
	s.Require().Error(err)
	s.True(errors.IsUnavailable(err))
}

func (s *ClientTestSuite) TestGetPokemon_Canceled() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := s.client.GetPokemon(ctx, "pikachu")
	s.Require().Error(err)
	s.True(errors.IsCanceled(err))
}

func (s *ClientTestSuite) TestGetPokemon_MalformedBody() {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 25}`))
	}))
	defer bad.Close()

	client, err := pokeapi.New(&pokeapi.Config{BaseURL: bad.URL})
	s.Require().NoError(err)

	_, err = client.GetPokemon(s.ctx, "pikachu")
	s.Require().Error(err)
	s.Equal(errors.CodeInternal, errors.GetCode(err))
}

func (s *ClientTestSuite) TestConfigValidate() {
	testCases := []struct {
		name    string
		cfg     *pokeapi.Config
		wantErr bool
		wantURL string
	}{
		{
			name:    "defaults",
			cfg:     &pokeapi.Config{},
			wantURL: pokeapi.DefaultBaseURL,
		},
		{
			name:    "trailing slash trimmed",
			cfg:     &pokeapi.Config{BaseURL: "https://example.test/api/v2/"},
			wantURL: "https://example.test/api/v2",
		},
		{
			name:    "relative url rejected",
			cfg:     &pokeapi.Config{BaseURL: "pokeapi.co"},
			wantErr: true,
		},
		{
			name:    "negative timeout rejected",
			cfg:     &pokeapi.Config{HTTPTimeout: -time.Second},
			wantErr: true,
		},
		{
			name:    "nil config",
			cfg:     nil,
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := tc.cfg.Validate()
			if tc.wantErr {
				s.Error(err)
				s.True(errors.IsInvalidArgument(err))
				return
			}
			s.NoError(err)
			s.Equal(tc.wantURL, tc.cfg.BaseURL)
			s.Equal(pokeapi.DefaultHTTPTimeout, tc.cfg.HTTPTimeout)
		})
	}
}
