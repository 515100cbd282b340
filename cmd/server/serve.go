package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diewo77/recipe-api/internal/db"
	"github.com/diewo77/recipe-api/internal/ratelimit"
	"github.com/diewo77/recipe-api/internal/repository"
	"github.com/diewo77/recipe-api/internal/server"
	"github.com/diewo77/recipe-api/internal/tokencache"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (c *cli) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.serve(cmd.Context())
		},
	}
}

func (c *cli) serve(ctx context.Context) error {
	cfg, log := c.cfg, c.logger

	dbConn, err := db.Connect(cfg.Database, log)
	if err != nil {
		return err
	}
	if sqlDB, err := dbConn.DB(); err == nil {
		defer sqlDB.Close()
	}

	// SQLite has no separate migration step, so it always migrates.
	if cfg.App.Migrations || cfg.Database.IsSQLite() {
		if err := db.Migrate(dbConn); err != nil {
			return err
		}
		log.Info("migrations completed")
	}

	var repoOpts []repository.Option
	if cfg.Redis.URL != "" {
		cache, err := tokencache.Open(ctx, cfg.Redis.URL, time.Duration(cfg.Redis.TokenTTL)*time.Second)
		if err != nil {
			log.Warn("token cache disabled", zap.Error(err))
		} else {
			defer cache.Close()
			repoOpts = append(repoOpts, repository.WithTokenCache(cache))
			log.Info("token cache enabled")
		}
	}

	limiter := ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst, 10*time.Minute)
	defer limiter.Close()

	handler := server.New(dbConn, server.Options{
		Logger:      log,
		Limiter:     limiter,
		RepoOptions: repoOpts,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("port", cfg.Server.Port), zap.Bool("dev", cfg.App.Dev))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)
	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-quit:
		log.Info("shutdown signal received")
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("error during shutdown", zap.Error(err))
	}
	log.Info("server stopped gracefully")
	return nil
}
