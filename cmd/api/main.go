package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/pranto48/lifeos-backend/internal/api"
	"github.com/pranto48/lifeos-backend/internal/api/handlers"
	"github.com/pranto48/lifeos-backend/internal/auth"
	"github.com/pranto48/lifeos-backend/internal/bootstrap"
	"github.com/pranto48/lifeos-backend/internal/database"
	"github.com/pranto48/lifeos-backend/internal/license"
	"github.com/pranto48/lifeos-backend/internal/repository"
	"github.com/pranto48/lifeos-backend/pkg/config"
	"github.com/pranto48/lifeos-backend/pkg/logger"
)

func main() {
	cfg := config.MustLoad()

	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("starting LifeOS backend", zap.String("port", cfg.APIPort))

	// The handle manager starts empty; bootstrap fills it when the
	// environment names a database, setup-initialize fills it otherwise.
	manager := database.NewManager()
	bootstrap.Run(context.Background(), cfg, manager, log)

	repos := repository.NewProvider(manager)
	tokens := auth.NewTokenCodec(cfg.JWTSecret)
	authSvc := auth.NewService(repos, tokens, log)
	licenseSvc := license.NewService(repos, log)

	router := api.NewRouter(api.Dependencies{
		AuthHandler:    handlers.NewAuthHandler(authSvc),
		SetupHandler:   handlers.NewSetupHandler(cfg, manager, log),
		LicenseHandler: handlers.NewLicenseHandler(licenseSvc, authSvc),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}

	if db := manager.Swap(nil); db != nil {
		_ = db.Close()
	}
}
