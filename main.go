package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tinyurl/config"
	"tinyurl/server"
)

func newLogger(level string) (*zap.Logger, error) {
	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = atomicLevel
	return zapCfg.Build()
}

// applyFlags lets non-empty command-line values override the environment.
func applyFlags(cfg *config.Config, addr, baseURL string) {
	if addr != "" {
		cfg.ServerAddr = addr
	}
	if baseURL != "" {
		cfg.SetBaseURL(baseURL)
	}
}

func main() {
	addr := flag.String("addr", "", "Address to listen on (overrides "+config.EnvServerAddr+")")
	baseURL := flag.String("base-url", "", "Public base URL for short links (overrides "+config.EnvBaseURL+")")
	flag.Parse()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	applyFlags(cfg, *addr, *baseURL)

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		panic("Failed to initialize zap logger: " + err.Error())
	}
	defer logger.Sync()

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting URL Shortener application...", zap.String("address", cfg.ServerAddr))
	if err := server.Run(context.Background(), logger, cfg); err != nil {
		logger.Fatal("Application error", zap.Error(err))
	}
	logger.Info("URL Shortener application stopped.")
}
