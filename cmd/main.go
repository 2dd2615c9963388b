package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "campaign-manager/internal/adapter/http"
	"campaign-manager/internal/adapter/password"
	"campaign-manager/internal/adapter/postgres"
	"campaign-manager/internal/adapter/token"
	"campaign-manager/internal/adapter/usecase"
	"campaign-manager/internal/config"
	"campaign-manager/internal/db"
)

const seedPassword = "demo123"

// main is the entry point of the campaign manager. It loads configuration,
// optionally runs database migrations and seeds demo data, initializes the
// database pool, stores and use cases, then starts the HTTP server. On
// receiving a termination signal it gracefully shuts down the server.
func main() {
	exitCode := 1
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		} else {
			os.Exit(exitCode)
		}
	}()

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		return
	}

	logger := cfg.Log.New(os.Stdout)

	if cfg.Auth.UsesDefaultSecret() && cfg.Env != "dev" {
		logger.Warn("AUTH_JWT_SECRET is not set; tokens are signed with the development secret",
			slog.String("env", cfg.Env))
	}

	if cfg.Psql.RunMigrations {
		if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
			logger.Error("migration error", slog.Any("error", err))
			return
		}
		logger.Info("migrations applied successfully")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		logger.Error("database connection error", slog.Any("error", err))
		return
	}
	defer pool.Close()

	hasher := password.NewHasher(cfg.Auth.BcryptCost)

	if cfg.Psql.Seed {
		hash, err := hasher.Hash(seedPassword)
		if err == nil {
			err = db.Seed(ctx, pool, hash)
		}
		if err != nil {
			logger.Error("seed error", slog.Any("error", err))
		} else {
			logger.Info("demo data seeded", slog.String("email", db.SeedEmail))
		}
	}

	tokens := token.NewService(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL)
	authSvc := usecase.NewAuthUseCase(postgres.NewUserRepository(pool), hasher, tokens)
	campaignSvc := usecase.NewCampaignUseCase(postgres.NewCampaignRepository(pool))

	handler := httpadapter.NewHandler(authSvc, campaignSvc, tokens, pool, logger)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      handler.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err = <-serveErr:
		logger.Error("server error", slog.Any("error", err))
		return
	case <-ctx.Done():
		exitCode = 0
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		exitCode = 1
	} else {
		logger.Info("server gracefully stopped")
	}
}
