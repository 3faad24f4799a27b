package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/nekogravitycat/freight-booking-backend/internal/app"
	"github.com/nekogravitycat/freight-booking-backend/internal/booking"
	"github.com/nekogravitycat/freight-booking-backend/internal/config"
	"github.com/nekogravitycat/freight-booking-backend/internal/db"
	"github.com/nekogravitycat/freight-booking-backend/internal/event"
	"github.com/nekogravitycat/freight-booking-backend/internal/pkg/logger"
	"github.com/nekogravitycat/freight-booking-backend/internal/pkg/pagination"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Init logger
	zl, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	zap.ReplaceGlobals(zl)

	// Connect DB
	pool, err := db.NewPool(ctx, cfg.DBDSN, db.PoolOptions{
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		MaxConnLifetime: cfg.DBMaxConnLifetime,
	})
	if err != nil {
		zl.Fatal("failed to connect to db", zap.Error(err))
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, zl); err != nil {
			zl.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Init components
	container := app.NewContainer(app.Config{
		IsProduction: cfg.IsProduction,
		ProdOrigins:  cfg.ProdOrigins,
		DBPool:       pool,
		JWTSecret:    cfg.JWTSecret,
		JWTTTL:       cfg.JWTAccessTokenTTL,
		Paging: pagination.Options{
			DefaultPageSize: cfg.PageSizeDefault,
			MaxPageSize:     cfg.PageSizeMax,
			DefaultSort:     booking.DefaultSort,
		},
		Logger: zl,
	})

	// Outbox relay, only when a broker is configured
	var wg sync.WaitGroup
	if cfg.AMQPURL != "" {
		publisher, err := event.NewAMQPPublisher(cfg.AMQPURL, cfg.EventExchange)
		if err != nil {
			zl.Fatal("failed to connect to broker", zap.Error(err))
		}
		defer func() { _ = publisher.Close() }()

		relay := event.NewRelay(container.EventRepo, container.TxManager, publisher,
			zl.Named("relay"), cfg.OutboxPollInterval, cfg.OutboxBatchSize)
		wg.Add(1)
		go func() {
			defer wg.Done()
			relay.Run(ctx)
		}()
	} else {
		zl.Info("AMQP_URL not set, lifecycle events stay in the outbox")
	}

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           container.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server in separate goroutine
	go func() {
		zl.Info("server running", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	zl.Info("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		zl.Warn("server forced to shutdown", zap.Error(err))
	}
	wg.Wait()

	zl.Info("server exited gracefully")
}
