// Package server boots the application: configuration, datastores, queue
// workers, and the HTTP kernel with graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/drovo/backend/app/jobs"
	"github.com/drovo/backend/app/routes"
	"github.com/drovo/backend/config"
	"github.com/drovo/backend/pkg/cache"
	"github.com/drovo/backend/pkg/database"
	"github.com/drovo/backend/pkg/logger"
	"github.com/drovo/backend/pkg/metrics"
	"github.com/drovo/backend/pkg/middleware"
	"github.com/drovo/backend/pkg/otp"
	"github.com/drovo/backend/pkg/queue"
	"github.com/drovo/backend/pkg/reqid"
	"github.com/drovo/backend/pkg/router"
	"github.com/drovo/backend/pkg/storage"
)

const queueWorkers = 4

// Run boots every subsystem and serves HTTP until SIGINT/SIGTERM.
func Run() error {
	if err := config.Load(); err != nil {
		logger.Warn("server: no .env file loaded", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.Connect(ctx); err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		database.Disconnect(shutdownCtx) //nolint:errcheck
	}()

	codes := connectRedis(ctx)
	storage.Connect()
	registerJobs()
	queue.StartWorkers(ctx, queueWorkers)

	r := NewRouter(codes)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("server: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// NewRouter assembles the middleware stack and the full route table.
// Exposed so the route:list command can print it without booting stores.
func NewRouter(codes otp.Store) *router.Router {
	r := router.New()
	r.Use(
		metrics.Middleware(),
		reqid.Middleware(),
		middleware.Recovery,
		middleware.Logger,
		middleware.CORS,
		middleware.RateLimit(300, time.Minute),
	)

	r.Mount("/metrics", metrics.Handler())
	r.Mount("/images", http.StripPrefix("/images", http.FileServer(http.Dir(storage.LocalRoot()))))

	routes.Register(r, codes)
	return r
}

// StartQueue boots just enough for a standalone worker process: config,
// the redis queue driver when configured, and the job registry. Blocks
// until ctx is cancelled.
func StartQueue(ctx context.Context, workers int) {
	if err := config.Load(); err != nil {
		logger.Warn("server: no .env file loaded", "error", err)
	}
	connectRedis(ctx)
	registerJobs()
	queue.StartWorkers(ctx, workers)
	<-ctx.Done()
}

// connectRedis wires every redis-backed concern when REDIS_ADDR is set:
// the cache, the OTP store, and the queue driver. Without redis the app
// falls back to in-process equivalents.
func connectRedis(ctx context.Context) otp.Store {
	if config.RedisAddr() == "" {
		logger.Info("server: redis not configured, using in-memory otp store and queue")
		return otp.NewMemoryStore()
	}

	if err := cache.Connect(ctx); err != nil {
		logger.Warn("server: redis unavailable, falling back to memory", "error", err)
		return otp.NewMemoryStore()
	}

	queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	return otp.NewRedisStore(cache.RDB)
}

func registerJobs() {
	queue.Register(jobs.OTPMailJob{}.JobName(), func() queue.Job { return &jobs.OTPMailJob{} })
	queue.Register(jobs.OrderPlacedJob{}.JobName(), func() queue.Job { return &jobs.OrderPlacedJob{} })
	queue.Register(jobs.FeedbackMailJob{}.JobName(), func() queue.Job { return &jobs.FeedbackMailJob{} })
}
