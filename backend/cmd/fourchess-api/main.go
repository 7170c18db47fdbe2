package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/fourchess/fourchess/backend/internal/router"
	"github.com/fourchess/fourchess/backend/internal/setup"
	"github.com/fourchess/fourchess/shared/config"
	"github.com/fourchess/fourchess/shared/logger"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "backend/config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.Log.Level, cfg.Public.Log.JSON)

	if err := run(cfg); err != nil {
		logger.Log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Log.Info("server stopped")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := setup.SetupDependencies(ctx, cfg)
	if err != nil {
		return fmt.Errorf("setup: %w", err)
	}
	defer func() {
		if err := deps.Close(); err != nil {
			logger.Log.Error("failed to close dependencies", "error", err)
		}
	}()

	httpCfg := cfg.Public.Http
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", httpCfg.Port),
		Handler:      router.New(deps),
		ReadTimeout:  httpCfg.ReadTimeout,
		WriteTimeout: httpCfg.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Log.Info("server started", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
		defer cancel()
		logger.Log.Info("shutting down server", "timeout", httpCfg.ShutdownTimeout)
		return server.Shutdown(shutdownCtx)
	})

	if deps.GC != nil {
		g.Go(func() error {
			return deps.GC.Run(gctx, cfg.Public.Media.GCInterval)
		})
	}

	return g.Wait()
}
