package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"productapi/config"
	"productapi/database"
	"productapi/logger"
	"productapi/routes"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	log := logger.New(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := database.Open(connectCtx, cfg)
	cancel()
	if err != nil {
		log.WithError(err).Fatal("failed to open product store")
	}
	log.WithFields(logrus.Fields{
		"driver":     cfg.StorageDriver,
		"database":   cfg.DBName,
		"collection": cfg.CollectionName,
	}).Info("connected to product store")

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: routes.NewRouter(cfg, store, log),
	}

	go func() {
		log.WithField("port", cfg.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("server forced to shutdown")
	}
	if err := store.Close(ctx); err != nil {
		log.WithError(err).Error("failed to close product store")
	}

	log.Info("server stopped")
}
