// Package main is the entry point for the tikkun-api relay server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tikkun/tikkun-api/internal/config"
	"github.com/tikkun/tikkun-api/internal/http/handlers"
	"github.com/tikkun/tikkun-api/internal/http/routes"
	"github.com/tikkun/tikkun-api/internal/llm"
	"github.com/tikkun/tikkun-api/internal/logging"
	"github.com/tikkun/tikkun-api/internal/metrics"
	"github.com/tikkun/tikkun-api/internal/profiles"
	"github.com/tikkun/tikkun-api/internal/shutdown"
	"github.com/tikkun/tikkun-api/internal/version"
	"github.com/tikkun/tikkun-api/internal/web"
)

func main() {
	// Initialize logger with TTY detection, source paths, and format control
	logger := logging.SetDefault()

	v := version.Get()
	logger.Info("starting tikkun-api",
		"version", v.Version,
		"commit", v.Commit,
		"built", v.Date,
		"go_version", v.GoVersion,
	)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	filters := logging.NewFiltersLoader(logging.FiltersConfig{
		Path:   cfg.LogFiltersFile,
		Reload: cfg.LogFiltersReload,
		Logger: logger,
	})

	registry, err := profiles.Load(cfg.ProfilesFile)
	if err != nil {
		logger.Error("failed to load functions", "file", cfg.ProfilesFile, "error", err)
		os.Exit(1)
	}

	static, err := web.Handler(cfg.StaticDir)
	if err != nil {
		logger.Error("failed to open static directory", "dir", cfg.StaticDir, "error", err)
		os.Exit(1)
	}

	m := metrics.New()
	client := llm.NewClient(llm.Config{
		APIKey:  cfg.AnthropicAPIKey,
		BaseURL: cfg.AnthropicBaseURL,
		Version: cfg.AnthropicVersion,
		// No client timeout: the inbound request context bounds each call.
		HTTPClient: &http.Client{},
	}, logger, m)

	if !cfg.HasAPIKey() {
		logger.Warn("ANTHROPIC_API_KEY is not set; chat requests will fail until it is configured")
	}

	idle := shutdown.NewIdleMonitor(shutdown.IdleConfig{
		Timeout: cfg.IdleTimeout,
		Logger:  logger,
	})

	router, _ := routes.NewRouter(cfg, routes.Deps{
		Handlers: handlers.New(registry, client, logger),
		Metrics:  m,
		Static:   static,
		Idle:     idle,
	})

	// WriteTimeout stays unset so a slow upstream call only holds its own request.
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		select {
		case <-ctx.Done():
			logger.Info("shutting down server", "reason", "signal", "active_requests", idle.ActiveRequests())
		case <-idle.ShutdownChan():
			logger.Info("shutting down server", "reason", "idle")
		}
		idle.Stop()
		filters.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", "error", err)
		}
	}()

	filters.Start(ctx)
	idle.Start()

	logger.Info("starting server",
		"port", cfg.Port,
		"url", fmt.Sprintf("http://localhost:%d", cfg.Port),
		"functions", registry.Len(),
		"upstream", cfg.AnthropicBaseURL,
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	<-done
	logger.Info("server stopped")
}
