package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/config"
	"github.com/mamadbah2/dairy/internal/repository"
	"github.com/mamadbah2/dairy/internal/repository/memory"
	"github.com/mamadbah2/dairy/internal/repository/mongodb"
	"github.com/mamadbah2/dairy/internal/repository/sheets"
	"github.com/mamadbah2/dairy/internal/scheduler"
	"github.com/mamadbah2/dairy/internal/server/handlers"
	"github.com/mamadbah2/dairy/internal/server/router"
	adminsvc "github.com/mamadbah2/dairy/internal/service/admin"
	authsvc "github.com/mamadbah2/dairy/internal/service/auth"
	"github.com/mamadbah2/dairy/internal/service/records"
	"github.com/mamadbah2/dairy/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	stores, closeStores, err := openStores(cfg, baseLogger)
	if err != nil {
		baseLogger.Fatal("failed to open stores", zap.Error(err))
	}
	defer func() {
		if err := closeStores(context.Background()); err != nil {
			baseLogger.Error("failed to close stores", zap.Error(err))
		}
	}()

	tokens, err := authsvc.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		baseLogger.Fatal("failed to init token service", zap.Error(err))
	}
	authService := authsvc.NewService(stores.Accounts, authsvc.NewBcryptHasher(cfg.Auth.BcryptCost), tokens, logger.Named(baseLogger, "svc.auth"))

	if cfg.Admin.Email != "" {
		created, err := authService.EnsureAdmin(context.Background(), cfg.Admin.Email, cfg.Admin.Password)
		if err != nil {
			baseLogger.Fatal("failed to bootstrap admin account", zap.Error(err))
		}
		if !created {
			baseLogger.Info("admin account already exists")
		}
	} else {
		baseLogger.Warn("ADMIN_EMAIL not set, skipping admin bootstrap")
	}

	var exporter adminsvc.Exporter
	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, logger.Named(baseLogger, "repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		exporter = sheets.NewSnapshotExporter(sheetsRepo, cfg.Sheets.Range)
		baseLogger.Info("snapshot export to google sheets enabled")
	}
	adminService := adminsvc.NewService(stores, exporter, logger.Named(baseLogger, "svc.admin"))

	engine := router.New(router.Deps{
		Auth:           handlers.NewAuthHandler(authService, logger.Named(baseLogger, "handlers.auth")),
		Authenticator:  authService,
		Admin:          handlers.NewAdminHandler(adminService, logger.Named(baseLogger, "handlers.admin")),
		Milk:           records.NewMilkService(stores.Milk, logger.Named(baseLogger, "svc.milk")),
		Feeds:          records.NewFeedService(stores.Feeds, logger.Named(baseLogger, "svc.feeds")),
		Breeds:         records.NewBreedService(stores.Breeds, logger.Named(baseLogger, "svc.breeds")),
		Health:         records.NewHealthService(stores.Health, logger.Named(baseLogger, "svc.health")),
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, logger.Named(baseLogger, "router"))

	sched, err := scheduler.NewScheduler(cfg.Snapshot, adminService, logger.Named(baseLogger, "scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("store", cfg.Store.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// openStores connects the configured backend and returns a function releasing it.
func openStores(cfg *config.Config, baseLogger *zap.Logger) (repository.Stores, func(context.Context) error, error) {
	if cfg.Store.Driver == config.StoreMemory {
		baseLogger.Warn("using in-memory stores; data is lost on restart")
		return memory.NewStores(), func(context.Context) error { return nil }, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongodb.Connect(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName, logger.Named(baseLogger, "repo.mongodb"))
	if err != nil {
		return repository.Stores{}, nil, err
	}
	if err := client.EnsureIndexes(ctx); err != nil {
		_ = client.Close(context.Background())
		return repository.Stores{}, nil, err
	}
	return client.Stores(), client.Close, nil
}
