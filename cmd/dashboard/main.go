package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/kokihydro/swatmf-dashboard-service/internal/adapter/httpapi"
	"github.com/kokihydro/swatmf-dashboard-service/internal/config"
	"github.com/kokihydro/swatmf-dashboard-service/internal/observability"
	"github.com/kokihydro/swatmf-dashboard-service/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	st := store.New(cfg, logger, metrics)
	srv := httpapi.NewServer(cfg, st, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Warm the dataset cache up front so the first dashboard request
	// doesn't pay the parse cost. A missing file is not fatal here; the
	// readiness probe keeps reporting the condition until it is fixed.
	if _, err := st.Get(ctx); err != nil {
		logger.Warn("initial dataset load failed", "error", err)
	}

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
