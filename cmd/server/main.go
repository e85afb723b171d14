package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"shopgate/internal/audit"
	"shopgate/internal/auth/service"
	refreshtoken "shopgate/internal/auth/store/refresh-token"
	"shopgate/internal/auth/token"
	"shopgate/internal/platform/config"
	"shopgate/internal/platform/httpserver"
	"shopgate/internal/platform/logger"
	"shopgate/internal/platform/metrics"
	"shopgate/internal/platform/redis"
	"shopgate/internal/transport/cookies"
	httptransport "shopgate/internal/transport/http"
	"shopgate/internal/users"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err.Error())
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// User directory: postgres when configured, in-memory otherwise.
	var directory users.Directory
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			return err
		}
		directory = users.NewPostgresDirectory(db)
	} else {
		log.Warn("DATABASE_URL not set, using in-memory user directory")
		directory = users.NewInMemoryDirectory()
	}

	// Refresh credential store: redis when configured, in-memory otherwise.
	var store refreshtoken.Store
	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		store = refreshtoken.NewRedisStore(redisClient)
	} else {
		log.Warn("REDIS_URL not set, using in-memory refresh token store")
		store = refreshtoken.NewInMemoryStore()
	}

	// Audit trail: kafka sink when brokers are configured, process-local
	// otherwise. The worker drains the publisher until shutdown.
	var sink audit.Sink = audit.NewInMemorySink()
	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink, err := audit.NewKafkaSink(cfg.KafkaBrokers, cfg.AuditTopic)
		if err != nil {
			return err
		}
		defer kafkaSink.Close()
		sink = kafkaSink
	}
	publisher := audit.NewPublisher(256, log)
	worker := audit.NewWorker(sink, publisher.Events(), log)

	codec := token.NewCodec(cfg.AccessTokenSecret, cfg.RefreshTokenSecret)
	svc, err := service.NewService(directory, codec, store, log,
		service.WithAudit(publisher),
		service.WithMetrics(metrics.New(prometheus.DefaultRegisterer)),
	)
	if err != nil {
		return err
	}

	binder := cookies.NewBinder(cfg.CookieSecure())
	authHandler := httptransport.NewAuthHandler(svc, binder, codec, directory, log)
	adminHandler := httptransport.NewAdminHandler(directory, codec, log)

	var health httptransport.HealthChecker
	if redisClient != nil {
		health = redisClient
	}
	router := httptransport.NewRouter(authHandler, adminHandler, health)

	srv := httpserver.New(cfg.Addr, router)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return worker.Run(ctx)
	})

	g.Go(func() error {
		log.Info("starting shopgate", "addr", cfg.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("shopgate stopped cleanly")
	return nil
}
