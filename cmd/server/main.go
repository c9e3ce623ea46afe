package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"housing/server/config"
	"housing/server/internal/api"
	"housing/server/internal/metrics"
	"housing/server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		logger.WithError(err).Warn("Unknown log level, using info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	gin.SetMode(cfg.Server.GinMode)

	// Load whatever models are present; missing ones only disable their mode
	logger.WithField("dir", cfg.Models.Dir).Info("Loading models...")
	modelStore := store.Load(cfg.Models.Dir, logger)

	m := metrics.New()
	loaded := modelStore.Loaded()
	for _, mode := range store.Modes {
		m.SetModelLoaded(mode, contains(loaded, mode))
	}
	if len(loaded) == 0 {
		logger.Warn("No models loaded, every prediction will fail until artifacts are provided")
	}

	handler := api.NewHandler(modelStore, config.DefaultFormOptions(), logger)
	router := api.NewRouter(handler, m, cfg.Server.AllowedOrigins, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Infof("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shut down")
	}
	logger.Info("Server stopped")
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
