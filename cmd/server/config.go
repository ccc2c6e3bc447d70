package main

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"dario.cat/mergo"

	"github.com/KirkDiggler/pokedex-api/internal/clients/pokeapi"
	"github.com/KirkDiggler/pokedex-api/internal/entities/pokemon"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
	"github.com/KirkDiggler/pokedex-api/internal/orchestrators/lookup"
)

// Environment variables; they override the defaults and lose to flags given
// on the command line
const (
	envRedisAddr     = "POKEDEX_REDIS_ADDR"
	envRedisPassword = "POKEDEX_REDIS_PASSWORD"
	envBaseURL       = "POKEDEX_BASE_URL"
	envErrorCard     = "POKEDEX_ERROR_CARD"
	envDefault       = "POKEDEX_DEFAULT"
	envLogLevel      = "POKEDEX_LOG_LEVEL"
	envHTTPTimeout   = "POKEDEX_HTTP_TIMEOUT"
	envNameOnly      = "POKEDEX_NAME_ONLY"
)

type serverConfig struct {
	GRPCPort int
	HTTPPort int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	BaseURL     string
	HTTPTimeout time.Duration

	DefaultIdentifier string
	NameOnly          bool
	ErrorCard         string
	SessionTTL        time.Duration

	LogLevel string
}

func defaultServerConfig() serverConfig {
	return serverConfig{
		GRPCPort:          50051,
		HTTPPort:          8080,
		BaseURL:           pokeapi.DefaultBaseURL,
		HTTPTimeout:       pokeapi.DefaultHTTPTimeout,
		DefaultIdentifier: pokemon.DefaultIdentifier,
		ErrorCard:         string(pokemon.ErrorCardHide),
		SessionTTL:        lookup.DefaultSessionTTL,
		LogLevel:          "info",
	}
}

// envServerConfig reads the environment. Unparseable values are ignored.
func envServerConfig(lookupEnv func(string) (string, bool)) serverConfig {
	var cfg serverConfig

	if v, ok := lookupEnv(envRedisAddr); ok {
		cfg.RedisAddr = v
	}
	if v, ok := lookupEnv(envRedisPassword); ok {
		cfg.RedisPassword = v
	}
	if v, ok := lookupEnv(envBaseURL); ok {
		cfg.BaseURL = v
	}
	if v, ok := lookupEnv(envErrorCard); ok {
		cfg.ErrorCard = v
	}
	if v, ok := lookupEnv(envDefault); ok {
		cfg.DefaultIdentifier = v
	}
	if v, ok := lookupEnv(envLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := lookupEnv(envHTTPTimeout); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.HTTPTimeout = d
		}
	}
	if v, ok := lookupEnv(envNameOnly); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.NameOnly = b
		}
	}

	return cfg
}

// resolveServerConfig layers the defaults, the environment and the flags
// given on the command line, in increasing precedence. A changed flag wins
// even when it is set to its zero value.
func resolveServerConfig(
	flags serverConfig,
	changed func(string) bool,
	lookupEnv func(string) (string, bool),
) (serverConfig, error) {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	if changed == nil {
		changed = func(string) bool { return false }
	}

	cfg := defaultServerConfig()
	if err := mergo.Merge(&cfg, envServerConfig(lookupEnv), mergo.WithOverride); err != nil {
		return serverConfig{}, errors.Wrap(err, "failed to merge environment config")
	}
	applyChangedFlags(&cfg, changed, flags)

	if err := cfg.validate(); err != nil {
		return serverConfig{}, err
	}
	return cfg, nil
}

func (c *serverConfig) validate() error {
	vb := errors.NewValidationBuilder()

	if c.GRPCPort <= 0 || c.GRPCPort > 65535 {
		vb.InvalidField("port", "must be between 1 and 65535")
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		vb.InvalidField("http-port", "must be between 1 and 65535")
	}
	if c.GRPCPort == c.HTTPPort {
		vb.InvalidField("http-port", "must differ from the gRPC port")
	}
	if !pokemon.ErrorCardPolicy(c.ErrorCard).IsValid() {
		vb.InvalidField("error-card", "must be hide or placeholder")
	}
	if _, ok := parseLogLevel(c.LogLevel); !ok {
		vb.InvalidField("log-level", "must be debug, info, warn or error")
	}

	return vb.Build()
}

func parseLogLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

func newLogger(level string) *slog.Logger {
	lvl, _ := parseLogLevel(level)
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
