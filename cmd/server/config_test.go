package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/pokedex-api/internal/errors"
)

type ConfigTestSuite struct {
	suite.Suite
}

func envFrom(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func changedSet(names ...string) func(string) bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return func(name string) bool { return set[name] }
}

func (s *ConfigTestSuite) TestResolve_Defaults() {
	cfg, err := resolveServerConfig(defaultServerConfig(), changedSet(), envFrom(nil))
	s.Require().NoError(err)
	s.Equal(defaultServerConfig(), cfg)
}

func (s *ConfigTestSuite) TestResolve_Precedence() {
	flags := defaultServerConfig()
	flags.HTTPPort = 9090
	flags.ErrorCard = "placeholder"
	env := envFrom(map[string]string{
		envErrorCard:   "hide",
		envRedisAddr:   "localhost:6379",
		envHTTPTimeout: "5s",
		envNameOnly:    "true",
		envDefault:     "eevee",
	})

	cfg, err := resolveServerConfig(flags, changedSet("http-port", "error-card"), env)
	s.Require().NoError(err)
	s.Equal(9090, cfg.HTTPPort, "flag wins")
	s.Equal("placeholder", cfg.ErrorCard, "flag wins over env")
	s.Equal("localhost:6379", cfg.RedisAddr, "env fills unset flag")
	s.Equal(5*time.Second, cfg.HTTPTimeout)
	s.True(cfg.NameOnly)
	s.Equal("eevee", cfg.DefaultIdentifier)
	s.Equal(50051, cfg.GRPCPort, "default fills the rest")
}

func (s *ConfigTestSuite) TestResolve_ZeroValueFlagsWinOverEnv() {
	flags := defaultServerConfig()
	flags.NameOnly = false
	flags.RedisAddr = ""
	env := envFrom(map[string]string{
		envNameOnly:  "true",
		envRedisAddr: "redis:6379",
	})

	cfg, err := resolveServerConfig(flags, changedSet("name-only", "redis-addr"), env)
	s.Require().NoError(err)
	s.False(cfg.NameOnly, "--name-only=false wins over env")
	s.Empty(cfg.RedisAddr, "--redis-addr \"\" wins over env")
}

func (s *ConfigTestSuite) TestResolve_UnchangedFlagValuesAreIgnored() {
	flags := defaultServerConfig()
	flags.RedisAddr = "stale:6379"

	cfg, err := resolveServerConfig(flags, changedSet(), envFrom(map[string]string{
		envRedisAddr: "redis:6379",
	}))
	s.Require().NoError(err)
	s.Equal("redis:6379", cfg.RedisAddr)
}

func (s *ConfigTestSuite) TestResolve_IgnoresUnparseableEnv() {
	cfg, err := resolveServerConfig(defaultServerConfig(), changedSet(), envFrom(map[string]string{
		envHTTPTimeout: "soon",
		envNameOnly:    "maybe",
	}))
	s.Require().NoError(err)
	s.Equal(defaultServerConfig().HTTPTimeout, cfg.HTTPTimeout)
	s.False(cfg.NameOnly)
}

func (s *ConfigTestSuite) TestResolve_Invalid() {
	testCases := []struct {
		name    string
		modify  func(cfg *serverConfig)
		changed []string
		env     map[string]string
		field   string
	}{
		{
			name:    "bad error card flag",
			modify:  func(cfg *serverConfig) { cfg.ErrorCard = "explode" },
			changed: []string{"error-card"},
			field:   "error-card",
		},
		{
			name:  "bad error card env",
			env:   map[string]string{envErrorCard: "explode"},
			field: "error-card",
		},
		{
			name:    "same ports",
			modify:  func(cfg *serverConfig) { cfg.GRPCPort, cfg.HTTPPort = 8080, 8080 },
			changed: []string{"port", "http-port"},
			field:   "http-port",
		},
		{
			name:    "port out of range",
			modify:  func(cfg *serverConfig) { cfg.GRPCPort = 70000 },
			changed: []string{"port"},
			field:   "port",
		},
		{
			name:  "bad log level",
			env:   map[string]string{envLogLevel: "loud"},
			field: "log-level",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			flags := defaultServerConfig()
			if tc.modify != nil {
				tc.modify(&flags)
			}
			_, err := resolveServerConfig(flags, changedSet(tc.changed...), envFrom(tc.env))
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
			s.Contains(err.Error(), tc.field)
		})
	}
}

func (s *ConfigTestSuite) TestApplyChangedFlags() {
	values := defaultServerConfig()
	values.HTTPPort = 9000
	values.RedisAddr = "redis:6379"

	cfg := serverConfig{GRPCPort: 1234}
	applyChangedFlags(&cfg, changedSet("http-port"), values)

	s.Equal(9000, cfg.HTTPPort)
	s.Equal(1234, cfg.GRPCPort)
	s.Empty(cfg.RedisAddr)
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}
