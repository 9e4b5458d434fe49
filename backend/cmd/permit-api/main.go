package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mesto-decin/parking-permits/backend/internal/router"
	"github.com/mesto-decin/parking-permits/backend/internal/setup"
	"github.com/mesto-decin/parking-permits/shared/config"
	"github.com/mesto-decin/parking-permits/shared/logger"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to the public config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Log.Error("configuration failed", "error", err)
		os.Exit(1)
	}
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		logger.Log.Error("setup failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := deps.Cleanup(); err != nil {
			logger.Log.Error("storage cleanup failed", "error", err)
		}
	}()

	srv := &http.Server{
		Addr:         cfg.Public.Addr,
		Handler:      router.New(deps),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("server started", "addr", cfg.Public.Addr, "provider", string(cfg.Provider))
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Log.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Log.Error("shutdown failed", "error", err)
		}
	}
}
