package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront/internal/config"
	apphttp "storefront/internal/http"
	mongorepo "storefront/internal/repository/mongo"
	"storefront/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := mongorepo.Connect(ctx, cfg.Mongo.URI)
	if err != nil {
		logger.Fatalf("connect mongo: %v", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			logger.Warnf("mongo disconnect: %v", err)
		}
	}()

	analyticsRepo := mongorepo.NewAnalyticsRepository(client.Database(cfg.Mongo.AnalyticsDB))
	analyticsService := service.NewAnalyticsService(analyticsRepo)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewAnalyticsHandler(analyticsService)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Analytics.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("analytics listening on %s", cfg.Analytics.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}
	logger.Info("bye")
}
