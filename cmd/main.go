package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	httpctx "github.com/mkravtsov/authgate/internal/api/http/context"
	"github.com/mkravtsov/authgate/internal/api/http/router"
	httpServer "github.com/mkravtsov/authgate/internal/api/http/server"
	"github.com/mkravtsov/authgate/internal/config"
	"github.com/mkravtsov/authgate/internal/logger"
	"github.com/mkravtsov/authgate/internal/model"
	"github.com/mkravtsov/authgate/internal/ratelimit"
	"github.com/mkravtsov/authgate/internal/repository/memory"
	"github.com/mkravtsov/authgate/internal/repository/postgres"
	"github.com/mkravtsov/authgate/internal/server"
	"github.com/mkravtsov/authgate/internal/service"
	"github.com/mkravtsov/authgate/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	// Local .env is optional, real deployments set the environment
	// directly.
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	var accountStore model.AccountStore

	if cfg.Database.DSN != "" {
		db, err := postgres.NewConnection(ctx, cfg.Database.DSN, cfg.Database.QueryTimeout)
		if err != nil {
			logger.Fatal("failed to initialize storage", "error", err)
		}
		defer db.Close()

		accountStore = postgres.NewAccountRepository(db)
	} else {
		logger.Info("no database DSN configured, using in-memory account store")
		accountStore = memory.NewAccountRepository()
	}

	var counters ratelimit.CounterStore

	if cfg.RateLimit.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RateLimit.RedisAddr,
			Password: cfg.RateLimit.RedisPassword,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Fatal("failed to connect to redis", "error", err)
		}
		counters = ratelimit.NewRedisCounters(rdb, cfg.RateLimit.Window)
	} else {
		counters = ratelimit.NewMemoryCounters()
	}

	limiter := ratelimit.New(counters, cfg.RateLimit.Threshold, cfg.RateLimit.Window, logger)
	go limiter.Run(ctx)

	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)

	registrationService := service.NewRegistration(accountStore, tokenManager, logger)
	sessionService := service.NewSession(tokenManager, logger)
	ctxMgr := httpctx.NewManager()

	srv := registerHTTPServer(logger, registrationService, sessionService, accountStore, limiter, ctxMgr, fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func registerHTTPServer(
	logger *logger.Logger,
	registrationService *service.Registration,
	sessionService *service.Session,
	accountStore model.AccountStore,
	limiter *ratelimit.Limiter,
	ctxMgr model.ContextManager,
	addr string,
) *httpServer.HTTPServer {
	r := router.New(registrationService, sessionService, accountStore, limiter, ctxMgr, logger)
	engine := r.Register()

	return httpServer.NewHTTPServer(engine, addr)
}
