package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/games"
	apphttp "storefront/internal/http"
	"storefront/internal/repository/postgres"
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

	db, err := postgres.Open(ctx, cfg.Postgres.DSN)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	productRepo := postgres.NewProductRepository(db)
	userRepo := postgres.NewUserRepository(db)
	orderRepo := postgres.NewOrderRepository(db)

	if err := productRepo.Init(ctx); err != nil {
		logger.Fatalf("init product repository: %v", err)
	}
	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}
	if err := orderRepo.Init(ctx); err != nil {
		logger.Fatalf("init order repository: %v", err)
	}

	productService := service.NewProductService(productRepo)
	userService := service.NewUserService(userRepo)
	orderService := service.NewOrderService(orderRepo, productRepo, userRepo)

	var tokens *auth.TokenManager
	if secret := strings.TrimSpace(cfg.Auth.JWTSecret); secret != "" {
		tokens = auth.NewTokenManager(secret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)
		logger.Info("order creation requires a bearer token")
	}

	gamesClient := games.NewClient(cfg.Games.BaseURL)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewCheckoutHandler(productService, userService, orderService, gamesClient, tokens)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Checkout.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("checkout listening on %s", cfg.Checkout.Addr)
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
