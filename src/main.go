package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"fintrack-server/src/api"
	"fintrack-server/src/auth"
	"fintrack-server/src/config"
	"fintrack-server/src/db"
	"fintrack-server/src/db/backend"
	"fintrack-server/src/logging"
	"fintrack-server/src/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	store, err := backend.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Cleanup()

	profiles, err := db.NewProfileCache(cfg.ProfileCacheTTL)
	if err != nil {
		return err
	}
	defer profiles.Close()

	identity := service.NewIdentity(
		store.Users,
		auth.NewPasswordHasher(cfg.BcryptCost),
		auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL),
		profiles,
	)
	router := api.NewRouter(api.Services{
		Identity: identity,
		Expenses: service.NewExpenseLedger(store.Expenses),
		Incomes:  service.NewIncomeLedger(store.Incomes),
		Reports:  service.NewReporting(store.Expenses, store.Incomes),
	}, api.Options{
		CORSOrigins:  cfg.CORSOrigins,
		IsDemo:       cfg.DemoMode,
		ErrorDetails: cfg.IsDevelopment(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("API server running", "port", cfg.Port, "backend", store.Type, "env", cfg.AppEnv, "demo", cfg.DemoMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
