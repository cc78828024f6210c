// Package main is the entry point for the wavy plane viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/wavy-plane/internal/app"
	"github.com/Faultbox/wavy-plane/internal/config"
	"github.com/Faultbox/wavy-plane/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Wavy Plane ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	a, err := app.New(cfg)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer a.Close()

	// A failed first render leaves the window open so a preset or reload can recover.
	if err := a.Render(app.SceneParams(cfg.Scene)); err != nil {
		logger.Error("initial render failed", zap.Error(err))
	}

	a.Run()

	logger.Info("viewer closed normally")
}
