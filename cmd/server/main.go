// @title        MKX Community API
// @version      1.0
// @description  Accounts, session and feed of the MKX community site.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mkx/community/internal/api"
	"github.com/mkx/community/internal/core/service"
	"github.com/mkx/community/internal/infrastructure/config"
	"github.com/mkx/community/internal/infrastructure/db"
	"github.com/mkx/community/internal/infrastructure/queue"
	"github.com/mkx/community/internal/infrastructure/records"
	"github.com/mkx/community/internal/infrastructure/seed"
	"github.com/mkx/community/pkg/logger"
)

func main() {
	// A missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "mkx-community",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := db.Open(ctx, cfg, logger.Component("store"))
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("failed to open store")
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Error().Err(err).Msg("failed to close store")
		}
	}()

	recordLog := logger.Component("records")
	accounts := records.NewAccounts(store, recordLog)
	sessions := records.NewSessions(store, recordLog)
	posts := records.NewPosts(store, recordLog)

	if cfg.Seed.File != "" {
		f, err := seed.Load(cfg.Seed.File)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load seed file")
		}
		seeder := seed.NewSeeder(store, accounts, sessions, logger.Component("seed"))
		if _, err := seeder.Apply(ctx, f, cfg.Seed.AutoLogin); err != nil {
			log.Fatal().Err(err).Msg("failed to seed store")
		}
	}

	hasher, err := service.NewPasswordHasher(cfg.Auth.PasswordHashing, cfg.Auth.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid password settings")
	}
	ids := service.NewTimestampIDs(nil)

	authSvc := service.NewAuthService(accounts, sessions, hasher, ids, cfg.Auth.EmailDomains, logger.Component("auth"))
	postSvc := service.NewPostService(posts, accounts, ids, logger.Component("posts"))
	avatarSvc := service.NewAvatarService(sessions, accounts, posts, logger.Component("avatar"))

	exec := queue.NewExecutor(logger.Component("executor"))
	execCtx, stopExec := context.WithCancel(context.Background())
	defer stopExec()
	exec.Start(execCtx)

	router := api.NewRouter(api.Dependencies{
		Auth:     authSvc,
		Posts:    postSvc,
		Avatars:  avatarSvc,
		Executor: exec,
		Store:    store,
		Driver:   cfg.Store.Driver,
		Logger:   logger.Component("http"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errorCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("driver", cfg.Store.Driver).Msg("server starting")
		errorCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
		log.Info().Msg("server stopped")
	case err := <-errorCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
			stopExec()
			os.Exit(1)
		}
	}
}
