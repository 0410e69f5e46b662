package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"propworth/internal/agent"
	"propworth/internal/lead"
	"propworth/internal/notify"
	"propworth/internal/platform/config"
	"propworth/internal/platform/httpserver"
	"propworth/internal/platform/logger"
	"propworth/internal/platform/metrics"
	platformredis "propworth/internal/platform/redis"
	"propworth/internal/ratelimit"
	httptransport "propworth/internal/transport/http"
)

// main wires dependencies and owns the server lifecycle. Optional backends
// (postgres, redis, kafka) degrade to in-process implementations when their
// URLs are absent, so a bare `go run ./cmd/server` serves a working stack.
func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	log := logger.New()
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	// Lead store: postgres when configured, otherwise in-memory.
	var store lead.Store
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()
		if _, err := pool.Exec(ctx, lead.Schema); err != nil {
			return err
		}
		store = lead.NewPostgresStore(pool, cfg.Consent, log)
		log.Info("using postgres lead store")
	} else {
		store = lead.NewInMemoryStore(cfg.Consent)
		log.Warn("DATABASE_URL not set, leads will not survive restarts")
	}

	// Rate limit state: redis when configured, otherwise process-local.
	var limiterStore ratelimit.Store
	rdb, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
		limiterStore = ratelimit.NewRedisStore(rdb.Client)
		log.Info("using redis rate-limit store")
	} else {
		limiterStore = ratelimit.NewInMemoryStore()
	}
	limiter := ratelimit.NewLimiter(limiterStore, cfg.RateLimitMax, cfg.RateLimitWindow)

	// Notifications: kafka when configured, otherwise the structured log.
	var sink notify.Sink
	if cfg.KafkaBrokers != "" {
		kafkaSink, err := notify.NewKafkaSink(strings.Split(cfg.KafkaBrokers, ","), cfg.KafkaTopic, log)
		if err != nil {
			return err
		}
		defer kafkaSink.Close()
		sink = kafkaSink
		log.Info("publishing lead notifications to kafka", "topic", cfg.KafkaTopic)
	} else {
		sink = notify.NewLogSink(log)
	}

	directory := agent.NewStaticDirectory(agent.SeedAgents())
	service := lead.NewService(
		limiter,
		lead.NewValidator(),
		agent.NewAssigner(directory),
		store,
		sink,
		lead.WithLogger(log),
		lead.WithMetrics(m),
	)

	router := httptransport.NewRouter(httptransport.New(service, store, log))
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting lead intake server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
