package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/driveline/dealership-system/internal/api"
	"github.com/driveline/dealership-system/internal/core/domain"
	"github.com/driveline/dealership-system/internal/core/ports"
	"github.com/driveline/dealership-system/internal/core/service"
	"github.com/driveline/dealership-system/internal/infrastructure/config"
	"github.com/driveline/dealership-system/internal/infrastructure/db/postgres"
	"github.com/driveline/dealership-system/internal/infrastructure/db/redis"
	"github.com/driveline/dealership-system/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Connect(ctx, postgres.Config{
		URL:      cfg.Database.URL,
		MaxConns: cfg.Database.MaxConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer db.Close()

	// Redis is optional: without it server-side logout is disabled.
	var rdb *goredis.Client
	var revoker ports.TokenRevoker
	if cfg.Redis.Addr != "" {
		rdb, err = redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer rdb.Close()
		revoker = redis.NewDenylist(rdb)
	} else {
		log.Warn().Msg("REDIS_ADDR not set, token revocation disabled")
	}

	store := postgres.NewStore(db)
	hasher := service.BcryptHasher{}
	roles := domain.NewRoleSet(cfg.AccountTypes)
	tokenTTL := time.Duration(cfg.TokenTTLMinutes) * time.Minute

	mutations := service.NewMutationService(store, hasher, roles, log)
	queries := service.NewQueryService(store, log)
	auth := service.NewAuthService(store, store, hasher, revoker, cfg.JWTSecret, tokenTTL, log)

	e := api.NewRouter(api.Dependencies{
		Mutations: mutations,
		Queries:   queries,
		Auth:      auth,
		Revoker:   revoker,
		DB:        db,
		Redis:     rdb,
		JWTSecret: cfg.JWTSecret,
		Logger:    log,
	})

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
