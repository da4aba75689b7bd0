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

	"github.com/example/concierge-availability/internal/application"
	"github.com/example/concierge-availability/internal/config"
	"github.com/example/concierge-availability/internal/content/cache"
	"github.com/example/concierge-availability/internal/content/sqlite"
	httptransport "github.com/example/concierge-availability/internal/http"
	"github.com/example/concierge-availability/internal/logging"
)

func main() {
	logger := logging.New(os.Stdout, slog.LevelInfo)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.Open(cfg.ContentDSN)
	if err != nil {
		logger.Error("failed to open content database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Error("failed to close content database", "error", cerr)
		}
	}()

	if err := store.Ping(ctx); err != nil {
		logger.Error("content database is unreachable", "error", err, "dsn", cfg.ContentDSN)
		os.Exit(1)
	}

	snapshots := cache.New(store, cfg.SnapshotCacheSize, cfg.SnapshotCacheTTL)
	availability := application.NewAvailabilityServiceWithLogger(snapshots, time.Now, logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Departments: httptransport.NewDepartmentHandler(availability, logger),
		Events:      httptransport.NewEventHandler(availability, logger),
		Health:      httptransport.HealthHandler(store),
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
		},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("availability API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}
