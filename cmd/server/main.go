// cmd/server is the application entry point. It wires together all layers
// and runs the HTTP server until interrupted.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"eventpulse/internal/auth"
	"eventpulse/internal/config"
	"eventpulse/internal/database"
	"eventpulse/internal/handler"
	"eventpulse/internal/ledger"
	"eventpulse/internal/metrics"
	"eventpulse/internal/notifier"
	"eventpulse/internal/popularity"
	"eventpulse/internal/repository"
	"eventpulse/internal/service"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	if err := run(log); err != nil {
		log.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage.
	pool, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := database.Bootstrap(ctx, pool); err != nil {
		return err
	}
	log.Info("connected to postgres", "db", cfg.Database.DBName)

	// Popularity counters: Redis when configured, in-process otherwise.
	var views popularity.Store
	redisViews, err := popularity.NewRedis(ctx, cfg.Redis.URL)
	if err != nil {
		return err
	}
	if redisViews != nil {
		defer redisViews.Close()
		views = redisViews
		log.Info("connected to redis")
	} else {
		views = popularity.NewMemory()
		log.Info("redis not configured, using in-memory view counters")
	}

	// Confirmation mail: best effort, disabled without a mailer endpoint.
	var mail notifier.Notifier = notifier.Nop{}
	if cfg.Mailer.URL != "" {
		mail = notifier.NewMailer(cfg.Mailer.URL, cfg.Mailer.Timeout)
	}

	// Wire up layers.
	m := metrics.New(prometheus.DefaultRegisterer)
	events := repository.NewEventRepository(pool)
	regLedger := ledger.NewPostgres(pool)

	eventSvc := service.NewEventService(events, views, log)
	discoverySvc := service.NewDiscoveryService(events, views, m)
	registrationSvc := service.NewRegistrationService(regLedger, events, mail, log, m, cfg.Mailer.Timeout)

	validator := auth.NewValidator(cfg.Auth.JWTSigningKey)
	eventHandler := handler.NewEventHandler(eventSvc, discoverySvc, registrationSvc)

	// Build the router.
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(handler.Logger(log))
	r.Use(handler.CORS)

	r.Handle("/metrics", promhttp.Handler())
	r.Mount("/", eventHandler.Routes(handler.RequireAuth(validator, log)))

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}
