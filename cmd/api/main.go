package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/auth"
	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/config"
	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/data"
	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/data/memory"
	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/db"
	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/engine"
	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/middleware"
	"github.com/PaulBabatuyi/skillSwap-gRPC/pkg/logger"
	"github.com/PaulBabatuyi/skillSwap-gRPC/pkg/metrics"
	v1 "github.com/PaulBabatuyi/skillSwap-gRPC/proto/skillswap/v1"

	"github.com/joho/godotenv"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
)

// limitedMethods are rate limited per account.
var limitedMethods = map[string]bool{
	v1.SkillSwapService_Register_FullMethodName: true,
	v1.SkillSwapService_Login_FullMethodName:    true,
}

func main() {
	// A missing .env is fine; the environment may already be set
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to read .env: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}

	log := logger.Named("api")
	if err := run(ctx, cfg, log); err != nil {
		log.Fatal(ctx, "server exited", logger.Error(err))
	}
}

// stores is satisfied by both the Mongo stores and the memory store.
type stores interface {
	engine.UserStore
	engine.SessionStore
	engine.RatingStore
	engine.ThreadStore
	accountStore
	chatStore
}

// mongoStores combines the per-collection stores into one value.
type mongoStores struct {
	*data.UsersStore
	*data.SessionsStore
	*data.RatingsStore
	*data.MessagesStore
}

// openStore connects the configured backend. The returned probe is used by
// /healthz and close releases the backend.
func openStore(ctx context.Context, cfg *config.Config, log logger.Logger) (st stores, probe func(context.Context) error, closeFn func(), err error) {
	if cfg.Store == config.StoreMemory {
		log.Warn(ctx, "using in-memory store; data is lost on restart")
		return memory.New(), func(context.Context) error { return nil }, func() {}, nil
	}

	dbClient, err := db.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, nil, nil, err
	}
	closeFn = func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = dbClient.Close(shutdownCtx)
	}

	// Ensure indexes exist
	if err := dbClient.CreateIndexes(ctx); err != nil {
		closeFn()
		return nil, nil, nil, err
	}

	st = mongoStores{
		UsersStore:    data.NewUsersStore(dbClient.UsersCollection()),
		SessionsStore: data.NewSessionsStore(dbClient.SessionsCollection()),
		RatingsStore:  data.NewRatingsStore(dbClient.RatingsCollection()),
		MessagesStore: data.NewMessagesStore(dbClient.MessagesCollection(), dbClient.ChatsCollection()),
	}
	return st, dbClient.Ping, closeFn, nil
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	keys, activeKid, err := cfg.SigningKeys()
	if err != nil {
		return err
	}

	st, probe, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer closeStore()

	jwtMgr := auth.NewJWTManagerFromKeys(keys, activeKid, cfg.TokenTTL)

	eng := engine.New(st, st, st,
		engine.WithThreads(st),
		engine.WithLogger(log.Named("engine")),
		engine.WithLocation(loc),
	)
	srv := newServer(eng, st, st, jwtMgr, log.Named("rpc"))

	// Limiter for Register and Login (small burst to allow a couple of quick retries)
	limiterStore := middleware.NewLimiterStore(cfg.RateLimitRPM, cfg.RateLimitBurst, time.Minute)
	defer limiterStore.Stop()

	var serverOpts []grpc.ServerOption

	// If TLS certs are configured, create server credentials and require TLS
	if cfg.TLSCert != "" && cfg.TLSKey != "" {
		creds, err := credentials.NewServerTLSFromFile(cfg.TLSCert, cfg.TLSKey)
		if err != nil {
			return fmt.Errorf("failed to load TLS certs: %w", err)
		}
		serverOpts = append(serverOpts, grpc.Creds(creds))
	} else if cfg.RequireTLS {
		return errors.New("require_tls is set but tls_cert/tls_key are not configured")
	}

	// logging -> rate limiter -> auth
	serverOpts = append(serverOpts,
		grpc.ChainUnaryInterceptor(
			loggingUnaryInterceptor(log.Named("rpc")),
			middleware.RateLimitUnaryInterceptor(limiterStore, limitedMethods),
			authUnaryInterceptor(jwtMgr),
		),
		grpc.ChainStreamInterceptor(
			loggingStreamInterceptor(log.Named("rpc")),
			authStreamInterceptor(jwtMgr),
		),
	)

	grpcServer := grpc.NewServer(serverOpts...)
	registerService(grpcServer, srv)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	errCh := make(chan error, 2)
	go func() {
		log.Info(ctx, "gRPC server listening", logger.String("addr", cfg.GRPCAddr), logger.String("store", cfg.Store))
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- fmt.Errorf("gRPC server exit: %w", err)
		}
	}()

	var opsServer *http.Server
	if cfg.OpsAddr != "" {
		opsServer = &http.Server{
			Addr:              cfg.OpsAddr,
			Handler:           opsHandler(probe),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			log.Info(ctx, "ops server listening", logger.String("addr", cfg.OpsAddr))
			if err := opsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("ops server exit: %w", err)
			}
		}()
	}

	// Graceful shutdown on SIGINT/SIGTERM
	select {
	case <-ctx.Done():
	case err := <-errCh:
		grpcServer.Stop()
		return err
	}

	log.Info(context.Background(), "shutting down")
	if opsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = opsServer.Shutdown(shutdownCtx)
	}
	grpcServer.GracefulStop()
	return nil
}

// opsHandler serves Prometheus metrics and a health check backed by probe.
func opsHandler(probe func(context.Context) error) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := probe(ctx); err != nil {
			http.Error(w, "unhealthy", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}
