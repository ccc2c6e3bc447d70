package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/pokedex-api/internal/clients/pokeapi"
	"github.com/KirkDiggler/pokedex-api/internal/entities/pokemon"
	"github.com/KirkDiggler/pokedex-api/internal/handlers/grpc/v1alpha1"
	"github.com/KirkDiggler/pokedex-api/internal/handlers/web"
	"github.com/KirkDiggler/pokedex-api/internal/hub"
	"github.com/KirkDiggler/pokedex-api/internal/orchestrators/lookup"
	"github.com/KirkDiggler/pokedex-api/internal/pkg/clock"
	"github.com/KirkDiggler/pokedex-api/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/pokedex-api/internal/redis"
	lookupsession "github.com/KirkDiggler/pokedex-api/internal/repositories/lookup_session"
)

const shutdownTimeout = 30 * time.Second

var flagValues = defaultServerConfig()

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC and HTTP servers",
	Long:  `Start the lookup service over gRPC and the widget over HTTP.`,
	RunE:  runServer,
}

func init() {
	f := serverCmd.Flags()
	f.IntVar(&flagValues.GRPCPort, "port", flagValues.GRPCPort, "gRPC server port")
	f.IntVar(&flagValues.HTTPPort, "http-port", flagValues.HTTPPort, "HTTP server port")
	f.StringVar(&flagValues.RedisAddr, "redis-addr", "", "Redis address for sessions; in-memory when empty")
	f.StringVar(&flagValues.RedisPassword, "redis-password", "", "Redis password")
	f.IntVar(&flagValues.RedisDB, "redis-db", 0, "Redis database")
	f.StringVar(&flagValues.BaseURL, "base-url", flagValues.BaseURL, "PokeAPI base URL")
	f.DurationVar(&flagValues.HTTPTimeout, "http-timeout", flagValues.HTTPTimeout, "PokeAPI request timeout")
	f.StringVar(&flagValues.DefaultIdentifier, "default", flagValues.DefaultIdentifier, "Pokémon loaded when the widget opens")
	f.BoolVar(&flagValues.NameOnly, "name-only", false, "Reject numeric ids in searches")
	f.StringVar(&flagValues.ErrorCard, "error-card", flagValues.ErrorCard, "Card after a failed lookup: hide or placeholder")
	f.DurationVar(&flagValues.SessionTTL, "session-ttl", flagValues.SessionTTL, "Widget session lifetime")
	f.StringVar(&flagValues.LogLevel, "log-level", flagValues.LogLevel, "Log level: debug, info, warn, error")
}

// applyChangedFlags copies the flags given on the command line into cfg
func applyChangedFlags(cfg *serverConfig, changed func(string) bool, values serverConfig) {
	set := func(name string, apply func()) {
		if changed(name) {
			apply()
		}
	}

	set("port", func() { cfg.GRPCPort = values.GRPCPort })
	set("http-port", func() { cfg.HTTPPort = values.HTTPPort })
	set("redis-addr", func() { cfg.RedisAddr = values.RedisAddr })
	set("redis-password", func() { cfg.RedisPassword = values.RedisPassword })
	set("redis-db", func() { cfg.RedisDB = values.RedisDB })
	set("base-url", func() { cfg.BaseURL = values.BaseURL })
	set("http-timeout", func() { cfg.HTTPTimeout = values.HTTPTimeout })
	set("default", func() { cfg.DefaultIdentifier = values.DefaultIdentifier })
	set("name-only", func() { cfg.NameOnly = values.NameOnly })
	set("error-card", func() { cfg.ErrorCard = values.ErrorCard })
	set("session-ttl", func() { cfg.SessionTTL = values.SessionTTL })
	set("log-level", func() { cfg.LogLevel = values.LogLevel })
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveServerConfig(flagValues, cmd.Flags().Changed, nil)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal, gracefully stopping...")
		cancel()
	}()

	sessionRepo, closeRepo, err := newSessionRepository(ctx, &cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	pokeClient, err := pokeapi.New(&pokeapi.Config{
		BaseURL:     cfg.BaseURL,
		HTTPTimeout: cfg.HTTPTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create pokeapi client: %w", err)
	}

	statusHub := hub.New(&hub.Config{Logger: logger})

	lookupService, err := lookup.NewOrchestrator(&lookup.Config{
		Client:            pokeClient,
		SessionRepo:       sessionRepo,
		IDGenerator:       idgen.NewUUID("sess"),
		Publisher:         statusHub,
		Logger:            logger,
		DefaultIdentifier: cfg.DefaultIdentifier,
		NameOnly:          cfg.NameOnly,
		ErrorCard:         pokemon.ErrorCardPolicy(cfg.ErrorCard),
		SessionTTL:        cfg.SessionTTL,
	})
	if err != nil {
		return fmt.Errorf("failed to create lookup service: %w", err)
	}

	grpcServer, err := newGRPCServer(logger, lookupService)
	if err != nil {
		return err
	}

	httpServer, err := newHTTPServer(&cfg, logger, lookupService, statusHub)
	if err != nil {
		return err
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	errChan := make(chan error, 2)
	go func() {
		log.Printf("gRPC server starting on port %d...", cfg.GRPCPort)
		if err := grpcServer.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve gRPC: %w", err)
		}
	}()
	go func() {
		log.Printf("HTTP server starting on port %d...", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("failed to serve HTTP: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		log.Println("Shutting down servers...")
		shutdown(grpcServer, httpServer)
		return nil
	case err := <-errChan:
		shutdown(grpcServer, httpServer)
		return err
	}
}

func shutdown(grpcServer *grpc.Server, httpServer *http.Server) {
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown: %v", err)
	}

	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-shutdownCtx.Done():
		log.Println("Graceful shutdown timeout exceeded, forcing stop")
		grpcServer.Stop()
	case <-stopped:
		log.Println("Servers stopped gracefully")
	}
}

// newSessionRepository returns the Redis repository when an address is
// configured, the in-memory one otherwise
func newSessionRepository(ctx context.Context, cfg *serverConfig) (lookupsession.Repository, func(), error) {
	if cfg.RedisAddr == "" {
		log.Println("Using in-memory session storage")
		return lookupsession.NewInMemory(clock.New()), func() {}, nil
	}

	client, err := redisclient.NewClient(cfg.RedisAddr, &redisclient.Options{
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create redis client: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddr, err)
	}

	repo, err := lookupsession.NewRedis(&lookupsession.RedisConfig{
		Client: client,
		Clock:  clock.New(),
	})
	if err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to create session repository: %w", err)
	}

	log.Printf("Using Redis session storage at %s", cfg.RedisAddr)
	return repo, func() { _ = client.Close() }, nil
}

func newGRPCServer(logger *slog.Logger, lookupService lookup.Service) (*grpc.Server, error) {
	logFunc := grpc_logging.LoggerFunc(func(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
		logger.Log(ctx, slog.Level(level), msg, fields...)
	})

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(logFunc),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(logFunc),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	lookupHandler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		LookupService: lookupService,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create lookup handler: %w", err)
	}

	v1alpha1.RegisterLookupServiceServer(srv, lookupHandler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	return srv, nil
}

func newHTTPServer(
	cfg *serverConfig,
	logger *slog.Logger,
	lookupService lookup.Service,
	statusHub *hub.Hub,
) (*http.Server, error) {
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	handler, err := web.NewHandler(&web.Config{
		Service:    lookupService,
		Hub:        statusHub,
		Logger:     logger,
		SessionTTL: cfg.SessionTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create web handler: %w", err)
	}

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           web.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}
