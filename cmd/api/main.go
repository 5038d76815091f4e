package main

// @title Gym Finder API
// @version 1.0.0
// @description Discovers gyms near the user's location. A client mounts a map screen,
// @description reports the device location, and drives radius searches and place selection;
// @description the service owns the discovery state and returns the derived map view.

// @contact.name API Support
// @contact.email support@gym-finder.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	_ "github.com/gym-finder/docs/swagger"
	"github.com/gym-finder/internal/config"
	httpDelivery "github.com/gym-finder/internal/delivery/http"
	"github.com/gym-finder/internal/delivery/http/handler"
	"github.com/gym-finder/internal/domain/repository"
	"github.com/gym-finder/internal/infrastructure/devicelocation"
	"github.com/gym-finder/internal/infrastructure/googleplaces"
	"github.com/gym-finder/internal/observability"
	"github.com/gym-finder/internal/pkg/links"
	"github.com/gym-finder/internal/pkg/logger"
	"github.com/gym-finder/internal/repository/cache"
	"github.com/gym-finder/internal/usecase"
	"github.com/gym-finder/internal/worker"
	"github.com/gym-finder/internal/worker/session"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Gym Finder")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
	)

	if cfg.Places.APIKey == "" {
		log.Warn("PLACES_API_KEY is empty, every search will fail with a provider error")
	}

	// 3. Metrics
	metrics, err := observability.NewDiscoveryCollector(nil)
	if err != nil {
		log.Fatal("Failed to register metrics", zap.Error(err))
	}

	// 4. Places provider, optionally behind the Redis quota guard
	var places repository.PlaceSearchClient = googleplaces.NewClient(&cfg.Places, log)

	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = redisClient.Health(ctx)
		cancel()
		if err != nil {
			log.Fatal("Redis health check failed", zap.Error(err))
		}
		log.Info("Redis connected")

		places = googleplaces.NewQuotaGuard(
			places,
			cache.NewQuotaRepository(redisClient.Client(), log),
			apiKeyID(cfg.Places.APIKey),
			cfg.Quota.MaxRequests,
			cfg.Quota.Window,
			log,
		)
	}

	// 5. Use cases
	registry := usecase.NewScreenRegistry(
		func() repository.DeviceLocationSource { return devicelocation.NewSource(log) },
		places,
		links.NewBuilder(cfg.Places.BaseURL, cfg.Places.APIKey, cfg.Places.PhotoMaxWidth),
		metrics,
		log,
		usecase.WithSearchTimeout(cfg.Session.SearchTimeout),
	)

	// 6. Workers
	workers := worker.NewWorkerManager(log, shutdownTimeout)
	workers.Register(session.NewReaperWorker(registry, cfg.Session.IdleTTL, cfg.Session.ReapInterval, log))

	// 7. HTTP server
	screenHandler := handler.NewScreenHandler(registry, cfg.Session.SearchTimeout+time.Second, log)
	server := httpDelivery.NewServer(cfg, log, screenHandler, metrics)

	// 8. Run until a signal or a component failure
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := server.Start(); err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := workers.Start(gctx); err != nil {
			return fmt.Errorf("workers: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down gracefully...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown error", zap.Error(err))
		}
		if err := workers.Stop(); err != nil {
			log.Error("Workers shutdown error", zap.Error(err))
		}
		registry.CloseAll()

		return nil
	})

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	if err := g.Wait(); err != nil {
		log.Error("Stopped with error", zap.Error(err))
		return
	}

	log.Info("Server stopped successfully")
}

// apiKeyID names the quota counter without putting the key into Redis.
func apiKeyID(apiKey string) string {
	sum := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(sum[:])[:12]
}
