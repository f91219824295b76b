package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/N30R4BB1t/login-register/internal/api"
	"github.com/N30R4BB1t/login-register/internal/api/handler"
	"github.com/N30R4BB1t/login-register/internal/core/ports"
	"github.com/N30R4BB1t/login-register/internal/core/service"
	"github.com/N30R4BB1t/login-register/internal/infrastructure/config"
	mongodb "github.com/N30R4BB1t/login-register/internal/infrastructure/db/mongo"
	"github.com/N30R4BB1t/login-register/internal/infrastructure/db/postgres"
	redisdb "github.com/N30R4BB1t/login-register/internal/infrastructure/db/redis"
	"github.com/N30R4BB1t/login-register/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger is not up yet; fail loudly.
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Account Store ---
	var (
		repo   ports.UserRepository
		checks = map[string]handler.PingFunc{}
	)
	switch cfg.StoreDriver {
	case "mongo":
		client, db, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() {
			_ = client.Disconnect(context.Background())
		}()

		userRepo := mongodb.NewUserRepository(db)
		if err := userRepo.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("mongo index creation failed")
		}
		repo = userRepo
		checks["mongodb"] = func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		}

	case "postgres":
		db, err := postgres.Connect(ctx, cfg.Postgres.DSN)
		if err != nil {
			log.Fatal().Err(err).Msg("postgres connection failed")
		}
		defer db.Close()

		userRepo := postgres.NewUserRepository(db)
		if err := userRepo.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("postgres schema bootstrap failed")
		}
		repo = userRepo
		checks["postgres"] = db.PingContext

	default:
		log.Fatal().Str("driver", cfg.StoreDriver).Msg("unknown store driver")
	}

	// --- Optional user cache ---
	var cache ports.UserCache
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer rdb.Close()

		cache = redisdb.NewUserCache(rdb)
		checks["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
	}

	// --- Core services ---
	hasher := service.NewBcryptHasher(cfg.BcryptCost)
	tokens := service.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	users := service.NewUserService(repo, hasher, tokens, cache, log)

	e := api.NewRouter(api.RouterConfig{
		Users:      users,
		Tokens:     tokens,
		Checks:     checks,
		CORSOrigin: cfg.CORSOrigin,
		StaticDir:  cfg.StaticDir,
		Log:        log,
	})

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Str("store", cfg.StoreDriver).
			Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
