package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hongminglow/safeguard/internal/config"
	"github.com/hongminglow/safeguard/internal/logging"
	"github.com/hongminglow/safeguard/internal/server"
	"github.com/hongminglow/safeguard/internal/storage"
	"github.com/hongminglow/safeguard/internal/storage/memory"
	"github.com/hongminglow/safeguard/internal/storage/mongo"
	"github.com/hongminglow/safeguard/internal/storage/postgres"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	ctx := context.Background()
	if envErr != nil {
		logger.Info(ctx, "no .env file found; relying on existing environment")
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error(ctx, "init credential store", "driver", cfg.StorageDriver, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	srv := server.New(cfg, store, logger)

	go func() {
		logger.Info(ctx, "SafeGuard backend listening", "addr", cfg.HTTPAddress(), "storage", cfg.StorageDriver)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error(ctx, "graceful shutdown error", "error", err)
	}
}

func openStore(ctx context.Context, cfg config.Config) (storage.UserStore, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	switch cfg.StorageDriver {
	case config.DriverPostgres:
		return postgres.NewUserStore(connectCtx, cfg.DatabaseURL)
	case config.DriverMongo:
		return mongo.NewUserStore(connectCtx, cfg.MongoURI, cfg.MongoDatabase)
	case config.DriverMemory:
		return memory.NewUserStore(), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}
