package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/diagnosis/staycheck/pkg/config"
	"github.com/diagnosis/staycheck/pkg/database"
	"github.com/diagnosis/staycheck/pkg/events"
	"github.com/diagnosis/staycheck/pkg/logger"
	"github.com/diagnosis/staycheck/pkg/mailer"
	mw "github.com/diagnosis/staycheck/pkg/middleware"
	"github.com/diagnosis/staycheck/pkg/notify"
	"github.com/diagnosis/staycheck/services/checkin/internal/handlers"
	"github.com/diagnosis/staycheck/services/checkin/internal/repository"
	"github.com/diagnosis/staycheck/services/checkin/internal/service"
)

// backend bundles the store-specific implementations picked by STORE_BACKEND.
type backend struct {
	store       repository.RecordStore
	limiter     mw.Limiter
	idempotency mw.IdempotencyStore
	close       func()
}

func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	switch cfg.Store.Backend {
	case "memory":
		return &backend{
			store:       repository.NewMemoryStore(),
			limiter:     repository.NewMemoryRateLimiter(cfg.Auth.CheckInRateLimit, cfg.Auth.CheckInRateWindow),
			idempotency: repository.NewMemoryIdempotencyStore(),
			close:       func() {},
		}, nil

	case "redis":
		client, err := database.ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		prefix := cfg.Redis.KeyPrefix
		return &backend{
			store:       repository.NewRedisStore(client, prefix),
			limiter:     repository.NewRedisRateLimiter(client, prefix, cfg.Auth.CheckInRateLimit, cfg.Auth.CheckInRateWindow),
			idempotency: repository.NewRedisIdempotencyStore(client, prefix),
			close:       func() { client.Close() },
		}, nil

	case "postgres":
		pool, err := database.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := repository.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		limiter := repository.NewPostgresRateLimiter(pool, cfg.Auth.CheckInRateLimit, cfg.Auth.CheckInRateWindow)
		idempotency := repository.NewPostgresIdempotencyStore(pool)
		stopCleanup := startCleanup(limiter, idempotency)
		return &backend{
			store:       repository.NewPostgresStore(pool),
			limiter:     limiter,
			idempotency: idempotency,
			close: func() {
				stopCleanup()
				pool.Close()
			},
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", repository.ErrUnknownBackend, cfg.Store.Backend)
}

type expirer interface {
	CleanupExpired(ctx context.Context) (int64, error)
}

// startCleanup purges expired rate limit and idempotency rows every hour.
func startCleanup(tables ...expirer) func() {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				for _, t := range tables {
					if n, err := t.CleanupExpired(ctx); err != nil {
						logger.Error("Cleanup failed", "error", err)
					} else if n > 0 {
						logger.Debug("Cleaned up expired rows", "rows", n)
					}
				}
			}
		}
	}()
	return cancel
}

// connectEvents falls back to an in-process bus when NATS is unreachable so
// a single checkin binary still runs. The notify consumer then lives here too.
func connectEvents(cfg *config.Config) events.EventBus {
	bus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err == nil {
		return bus
	}
	logger.Warn("NATS unavailable, using in-process event bus", "error", err, "url", cfg.NATS.URL)

	local := events.NewLocalEventBus()
	if err := notify.NewConsumer(mailer.New(cfg.Email)).Subscribe(local, cfg.NATS.Queue); err != nil {
		logger.Error("Failed to subscribe in-process notify consumer", "error", err)
	}
	return local
}

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Debug(".env not loaded; using process environment", "error", err)
	}

	cfg := config.Load()
	ctx := context.Background()

	be, err := openBackend(ctx, cfg)
	if err != nil {
		logger.Error("Failed to open record store", "error", err, "backend", cfg.Store.Backend)
		os.Exit(1)
	}
	defer be.close()

	eventBus := connectEvents(cfg)
	defer eventBus.Close()

	collections := repository.NewCollections(be.store, cfg.Store.SeedDemoData, func() time.Time {
		return time.Now().In(cfg.App.Location())
	})

	deps := service.NewDeps(collections, eventBus, cfg)
	adminService := service.NewAdminService(deps)
	checkInService := service.NewCheckInService(deps)

	h := handlers.New(adminService, checkInService, cfg)

	r := chi.NewRouter()
	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("checkin"))
	r.Use(mw.Logging)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Idempotent-Replayed"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(mw.Health)

	h.Register(r, be.limiter, be.idempotency)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down checkin service...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Checkin service shutdown error", "error", err)
		}
	}()

	logger.Info("Starting checkin service", "port", cfg.Server.Port, "store", cfg.Store.Backend, "seed_demo_data", cfg.Store.SeedDemoData)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Checkin service error", "error", err)
		os.Exit(1)
	}
}
