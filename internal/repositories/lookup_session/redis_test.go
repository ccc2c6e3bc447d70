package lookupsession_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/pokedex-api/internal/entities/pokemon"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
	"github.com/KirkDiggler/pokedex-api/internal/pkg/clock"
	lookupsession "github.com/KirkDiggler/pokedex-api/internal/repositories/lookup_session"
	"github.com/KirkDiggler/pokedex-api/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr    *miniredis.Miniredis
	clock *clock.Frozen
	repo  lookupsession.Repository
	ctx   context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, mr := testutils.CreateTestRedisClient(s.T())
	s.mr = mr
	s.clock = clock.NewFrozen(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))

	repo, err := lookupsession.NewRedis(&lookupsession.RedisConfig{
		Client: client,
		Clock:  s.clock,
	})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TestNewRedis_RequiresDependencies() {
	_, err := lookupsession.NewRedis(&lookupsession.RedisConfig{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	_, err = lookupsession.NewRedis(nil)
	s.Require().Error(err)
}

func (s *RedisRepositoryTestSuite) TestCreateAndGet() {
	out, err := s.repo.Create(s.ctx, &lookupsession.CreateInput{
		Session: &lookupsession.Session{
			ID:     "sess_1",
			Status: pokemon.StatusIdle,
			Result: testutils.CreateTestPikachu(),
		},
	})
	s.Require().NoError(err)
	s.Equal(s.clock.Now(), out.Session.CreatedAt)
	s.Equal(s.clock.Now().Add(lookupsession.DefaultTTL), out.Session.ExpiresAt)

	s.True(s.mr.Exists("lookup_session:sess_1"))
	s.Equal(lookupsession.DefaultTTL, s.mr.TTL("lookup_session:sess_1"))

	got, err := s.repo.Get(s.ctx, &lookupsession.GetInput{ID: "sess_1"})
	s.Require().NoError(err)
	s.Equal("sess_1", got.Session.ID)
	s.Equal(pokemon.StatusIdle, got.Session.Status)
	s.Require().NotNil(got.Session.Result)
	s.Equal("pikachu", got.Session.Result.Name)
	s.Equal(25, got.Session.Result.ID)
	s.Equal([]string{"static", "lightning-rod"}, got.Session.Result.Abilities)
	s.True(got.Session.CreatedAt.Equal(out.Session.CreatedAt))
}

func (s *RedisRepositoryTestSuite) TestCreate_AlreadyExists() {
	input := &lookupsession.CreateInput{Session: &lookupsession.Session{ID: "sess_dup"}}

	_, err := s.repo.Create(s.ctx, input)
	s.Require().NoError(err)

	_, err = s.repo.Create(s.ctx, input)
	s.Require().Error(err)
	s.True(errors.IsAlreadyExists(err))
}

func (s *RedisRepositoryTestSuite) TestCreate_Validation() {
	testCases := []struct {
		name  string
		input *lookupsession.CreateInput
	}{
		{name: "nil input", input: nil},
		{name: "nil session", input: &lookupsession.CreateInput{}},
		{name: "empty id", input: &lookupsession.CreateInput{Session: &lookupsession.Session{}}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.repo.Create(s.ctx, tc.input)
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *RedisRepositoryTestSuite) TestGet_NotFound() {
	_, err := s.repo.Get(s.ctx, &lookupsession.GetInput{ID: "missing"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestGet_Expired() {
	_, err := s.repo.Create(s.ctx, &lookupsession.CreateInput{
		Session: &lookupsession.Session{ID: "sess_ttl"},
		TTL:     time.Minute,
	})
	s.Require().NoError(err)

	s.mr.FastForward(2 * time.Minute)

	_, err = s.repo.Get(s.ctx, &lookupsession.GetInput{ID: "sess_ttl"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestUpdate_RefreshesTTL() {
	_, err := s.repo.Create(s.ctx, &lookupsession.CreateInput{
		Session: &lookupsession.Session{ID: "sess_up"},
		TTL:     time.Minute,
	})
	s.Require().NoError(err)

	s.mr.FastForward(40 * time.Second)
	s.clock.Advance(40 * time.Second)

	out, err := s.repo.Update(s.ctx, &lookupsession.UpdateInput{
		Session: &lookupsession.Session{
			ID:      "sess_up",
			Status:  pokemon.StatusError,
			Message: "Pokémon not found. Check the name or ID.",
			Seq:     2,
		},
		TTL: time.Minute,
	})
	s.Require().NoError(err)
	s.Equal(s.clock.Now().Add(time.Minute), out.Session.ExpiresAt)
	s.Equal(time.Minute, s.mr.TTL("lookup_session:sess_up"))

	got, err := s.repo.Get(s.ctx, &lookupsession.GetInput{ID: "sess_up"})
	s.Require().NoError(err)
	s.Equal(pokemon.StatusError, got.Session.Status)
	s.Equal(uint64(2), got.Session.Seq)
	s.Nil(got.Session.Result)
}

func (s *RedisRepositoryTestSuite) TestUpdate_NotFound() {
	_, err := s.repo.Update(s.ctx, &lookupsession.UpdateInput{
		Session: &lookupsession.Session{ID: "ghost"},
	})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
	s.False(s.mr.Exists("lookup_session:ghost"))
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	_, err := s.repo.Create(s.ctx, &lookupsession.CreateInput{Session: &lookupsession.Session{ID: "sess_del"}})
	s.Require().NoError(err)

	out, err := s.repo.Delete(s.ctx, &lookupsession.DeleteInput{ID: "sess_del"})
	s.Require().NoError(err)
	s.True(out.Deleted)

	out, err = s.repo.Delete(s.ctx, &lookupsession.DeleteInput{ID: "sess_del"})
	s.Require().NoError(err)
	s.False(out.Deleted)
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
