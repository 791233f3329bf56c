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
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/summit-resolutions/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/summit-resolutions/internal/adapters/handler/http"
	"github.com/comitanigiacomo/summit-resolutions/internal/adapters/storage"
	"github.com/comitanigiacomo/summit-resolutions/internal/config"
	"github.com/comitanigiacomo/summit-resolutions/internal/core/services"
	"github.com/comitanigiacomo/summit-resolutions/internal/logger"
)

type app struct {
	router *gin.Engine
	store  *services.GoalStore
	close  func()
}

// buildApp wires storage, the goal store and the router from cfg. The store
// is loaded before the router is returned.
func buildApp(ctx context.Context, cfg *config.Config, startTime time.Time) (*app, error) {
	var rdb *redis.Client
	if cfg.UsesRedis() {
		client, err := cache.NewRedisClient(ctx, cache.Options{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			if cfg.StorageDriver == config.StorageRedis {
				return nil, err
			}
			slog.Warn("redis unavailable, rate limiting disabled", "error", err)
		} else {
			rdb = client
			slog.Info("redis connected", "addr", cfg.RedisHost+":"+cfg.RedisPort)
		}
	}

	kv, closeStorage, err := storage.Open(ctx, cfg, rdb)
	if err != nil {
		if rdb != nil {
			_ = rdb.Close()
		}
		return nil, err
	}
	slog.Info("storage ready", "driver", cfg.StorageDriver)

	store := services.NewGoalStore(kv,
		services.WithStorageKey(cfg.StorageKey),
		services.WithLocation(cfg.Location()),
	)
	if err := store.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}
	slog.Info("goals loaded", "count", store.Len())

	var rateLimit int
	if cfg.RateLimitEnabled {
		rateLimit = cfg.RateLimit
	}

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		GoalHandler:  adapterHTTP.NewGoalHandler(store),
		StatsHandler: adapterHTTP.NewStatsHandler(store),
		Storage:      kv,
		Redis:        rdb,
		RateLimit:    rateLimit,
		RateWindow:   cfg.RateLimitWindow,
		StartTime:    startTime,
	})

	return &app{
		router: router,
		store:  store,
		close: func() {
			if err := closeStorage(); err != nil {
				slog.Error("failed to close storage", "error", err)
			}
			if rdb != nil {
				_ = rdb.Close()
			}
		},
	}, nil
}

func main() {
	startTime := time.Now()

	cfg := config.Load()
	logger.Init(os.Stdout, cfg.IsDevelopment(), cfg.SentryDSN)
	defer sentry.Flush(2 * time.Second)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	a, err := buildApp(context.Background(), cfg, startTime)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer a.close()

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      a.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("summit resolutions running", "addr", "http://localhost:"+cfg.Port, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("stop signal received, shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("forced shutdown", "error", err)
		return
	}

	slog.Info("server stopped gracefully")
}
