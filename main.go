package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/yaelahbim/aryastore/handlers"
	"github.com/yaelahbim/aryastore/internal/cart"
	"github.com/yaelahbim/aryastore/internal/catalog"
	"github.com/yaelahbim/aryastore/internal/stores/kafka"
	"github.com/yaelahbim/aryastore/internal/stores/postgres"
	redisstore "github.com/yaelahbim/aryastore/internal/stores/redis"
	"github.com/yaelahbim/aryastore/pkg/logkey"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, relying on environment")
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := run(); err != nil {
		slog.Error("service startup failed", slog.String(logkey.ERROR, err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := catalog.Load(getEnv("STORE_CONFIG_PATH", "data/store-config.json"))
	if err != nil {
		return fmt.Errorf("loading store config: %w", err)
	}

	slots, cleanup, err := buildSlotFactory()
	if err != nil {
		return err
	}
	defer cleanup()

	var kafkaConf *kafka.Conf
	if os.Getenv("KAFKA_BROKERS") != "" {
		kafkaConf, err = kafka.NewConf()
		if err != nil {
			return fmt.Errorf("connecting to kafka: %w", err)
		}
		defer kafkaConf.Close()
	}

	grace := time.Duration(getEnvAsInt("CART_EMPTY_GRACE_SECONDS", 3)) * time.Second
	prefix := getEnv("SERVICE_ENDPOINT_PREFIX", "/v1/checkout")
	api := handlers.API(prefix, cfg, slots, kafkaConf, grace)

	srv := &http.Server{
		Addr:         ":" + getEnv("APP_PORT", "8080"),
		Handler:      api,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("checkout service listening", slog.String("Addr", srv.Addr), slog.String("Prefix", prefix))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
	}
	return nil
}

// buildSlotFactory picks the durable cart storage backend from CART_STORE.
func buildSlotFactory() (handlers.SlotFactory, func(), error) {
	backend := getEnv("CART_STORE", "postgres")
	switch backend {
	case "postgres":
		db, err := postgres.OpenDB()
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		if err := postgres.Migrate(db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		factory := func(sessionID string) cart.Slot {
			return postgres.NewCartSlot(db, sessionID)
		}
		return factory, func() { _ = db.Close() }, nil

	case "redis":
		client, err := redisstore.NewClient()
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to redis: %w", err)
		}
		factory := func(sessionID string) cart.Slot {
			return redisstore.NewCartSlot(client, "cart:"+sessionID)
		}
		return factory, func() { _ = client.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown CART_STORE %q (want postgres or redis)", backend)
	}
}

func getEnv(key, defaultVal string) string {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsInt(key string, defaultVal int) int {
	val, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		slog.Warn("env var is not an integer, using default",
			slog.String("Key", key), slog.String("Value", val), slog.Int("Default", defaultVal))
		return defaultVal
	}
	return i
}
