package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/maidacontrol/internal/logger"
	"github.com/maidacontrol/internal/relay"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)

	cfg, err := relay.LoadConfig()
	if err != nil {
		// Config carries the log settings, so report with a plain text logger
		logger.InitLogger("production", false).Error("failed to load config", "error", err)
		os.Exit(1)
	}

	appLogger := logger.InitLogger(cfg.Environment, cfg.LogJSON)

	if cfg.Environment == "development" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger.Info("relay configuration loaded",
		"listen_address", cfg.ListenAddress,
		"authorize_url", cfg.AuthorizeURL(),
		"environment", cfg.Environment,
	)

	upstream := relay.NewUpstream(cfg.AuthorizeURL(), nil, appLogger)
	server := relay.NewServer(cfg, upstream, appLogger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil {
		appLogger.Error("relay server error", "error", err)
		os.Exit(1)
	}
	appLogger.Info("relay stopped")
}
