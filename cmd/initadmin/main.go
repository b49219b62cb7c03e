// Command initadmin creates the administrator account from ADMIN_EMAIL and
// ADMIN_PASSWORD and exits. It is a no-op when the account already exists.
package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/config"
	"github.com/mamadbah2/dairy/internal/repository/mongodb"
	authsvc "github.com/mamadbah2/dairy/internal/service/auth"
	"github.com/mamadbah2/dairy/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	if cfg.Store.Driver != config.StoreMongoDB {
		baseLogger.Fatal("initadmin requires STORE_DRIVER=mongodb", zap.String("store", cfg.Store.Driver))
	}
	if cfg.Admin.Email == "" {
		baseLogger.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := mongodb.Connect(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName, logger.Named(baseLogger, "repo.mongodb"))
	if err != nil {
		baseLogger.Fatal("failed to connect to mongodb", zap.Error(err))
	}
	defer func() { _ = client.Close(context.Background()) }()

	if err := client.EnsureIndexes(ctx); err != nil {
		baseLogger.Fatal("failed to ensure indexes", zap.Error(err))
	}

	tokens, err := authsvc.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		baseLogger.Fatal("failed to init token service", zap.Error(err))
	}
	svc := authsvc.NewService(client.Stores().Accounts, authsvc.NewBcryptHasher(cfg.Auth.BcryptCost), tokens, logger.Named(baseLogger, "svc.auth"))

	created, err := svc.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password)
	if err != nil {
		baseLogger.Fatal("failed to create admin account", zap.Error(err))
	}
	if created {
		baseLogger.Info("admin account created")
		return
	}
	baseLogger.Info("admin account already exists")
}
