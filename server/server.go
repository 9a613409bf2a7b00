// Package server wires the registry, HTTP handlers and metrics into a running
// HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"tinyurl/config"
	"tinyurl/handlers"
	"tinyurl/metrics"
	"tinyurl/services"
	"tinyurl/storage"
	"tinyurl/urlgen"
)

// Run starts the server and blocks until ctx is cancelled or the process
// receives SIGINT or SIGTERM, then shuts down gracefully.
func Run(ctx context.Context, logger *zap.Logger, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	listener, err := net.Listen("tcp", cfg.ServerAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.ServerAddr, err)
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = baseURLFromAddr(listener.Addr())
	}

	router, err := setupRouter(ctx, cfg, logger)
	if err != nil {
		listener.Close()
		return err
	}

	srv := setupServer(cfg, router)
	serveErr := make(chan error, 1)
	go startServer(srv, listener, logger, serveErr)

	return waitForShutdown(ctx, srv, cfg, logger, serveErr)
}

func setupRegistry(cfg *config.Config) (services.Registry, error) {
	generate, err := urlgen.New()
	if err != nil {
		return nil, fmt.Errorf("create code generator: %w", err)
	}
	store := storage.NewInMemoryStorage(cfg.Capacity)
	return services.NewRegistry(store, urlgen.Skipping(generate, handlers.IsReservedCode)), nil
}

func setupRouter(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*gin.Engine, error) {
	registry, err := setupRegistry(cfg)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.New(reg, registry.Count)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	urlHandler, err := handlers.NewURLHandler(ctx, registry, cfg, logger, m)
	if err != nil {
		logger.Error("Failed to create URL handler", zap.Error(err))
		return nil, err
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		handlers.RequestIDMiddleware(),
		handlers.LoggingMiddleware(logger),
		m.Middleware(),
	)
	handlers.RegisterRoutes(router, urlHandler, m.Handler())

	logger.Debug("Router configured", zap.String("base_url", cfg.BaseURL))
	return router, nil
}

func setupServer(cfg *config.Config, router *gin.Engine) *http.Server {
	return &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           router,
		ReadHeaderTimeout: cfg.RequestTimeout,
		ReadTimeout:       cfg.RequestTimeout,
		WriteTimeout:      cfg.RequestTimeout,
	}
}

func startServer(srv *http.Server, listener net.Listener, logger *zap.Logger, serveErr chan<- error) {
	logger.Info("Starting server", zap.String("address", listener.Addr().String()))
	if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", zap.Error(err))
		serveErr <- err
		return
	}
	logger.Debug("Server stopped")
}

func waitForShutdown(ctx context.Context, srv *http.Server, cfg *config.Config, logger *zap.Logger, serveErr <-chan error) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		logger.Info("Received signal. Initiating server shutdown...", zap.String("signal", sig.String()))
	case <-ctx.Done():
		logger.Info("Context cancelled. Initiating server shutdown...")
	case err := <-serveErr:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	logger.Info("Server gracefully stopped")
	return nil
}

// baseURLFromAddr turns a bound listener address into the prefix for short
// URLs. Wildcard hosts are replaced with localhost.
func baseURLFromAddr(addr net.Addr) string {
	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return "http://" + addr.String()
	}
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}
