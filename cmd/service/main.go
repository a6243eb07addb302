package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gameshop-api/config"
	"gameshop-api/internal/cache"
	"gameshop-api/internal/database"
	"gameshop-api/internal/handlers"
	"gameshop-api/internal/hashing"
	"gameshop-api/internal/logger"
	"gameshop-api/internal/mailer"
	"gameshop-api/internal/payment"
	"gameshop-api/internal/repository"
	"gameshop-api/internal/router"
	"gameshop-api/internal/service"
	"gameshop-api/internal/storage"
	"gameshop-api/internal/token"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}
	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)

	db := database.Connect(cfg.DatabaseURL, log)
	defer database.Close(db, log)

	repos := repository.New(db)

	var redisClient *cache.RedisClient
	if cfg.Redis.Enabled {
		var err error
		redisClient, err = cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
		if err != nil {
			log.Fatal("failed to create redis client", zap.Error(err))
		}
		defer redisClient.Close()
		log.Info("Redis rate limiting enabled")
	} else {
		log.Info("Redis rate limiting disabled")
	}

	uploads, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Fatal("failed to init upload storage", zap.Error(err))
	}

	hasher := hashing.NewBcrypt(0)
	tokens := token.NewHSProvider(cfg.JWTSecret, "gameshop-api", "gameshop-client")
	mail := mailer.New(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From, cfg.ClientOrigin, log)
	gateway := payment.NewStripeClient(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret, cfg.ClientOrigin, log)

	authSvc := service.NewAuthService(repos.Users, hasher, tokens, mail, 24*time.Hour, log)
	catalogSvc := service.NewCatalogService(repos.Games, log)
	orderSvc := service.NewOrderService(repos.Orders, repos.Games, log)
	checkoutSvc := service.NewCheckoutService(repos.Games, gateway, log)
	webhookSvc := service.NewWebhookService(repos.Orders, repos.Games, repos.Users, mail, log)
	reviewSvc := service.NewReviewService(repos.Reviews, repos.Games, log)

	r := router.Router(cfg, router.Deps{
		Auth:     handlers.NewAuthHandler(authSvc, uploads, log),
		Games:    handlers.NewGameHandler(catalogSvc, uploads, log),
		Orders:   handlers.NewOrderHandler(orderSvc, log),
		Checkout: handlers.NewCheckoutHandler(checkoutSvc, webhookSvc, gateway, log),
		Reviews:  handlers.NewReviewHandler(reviewSvc, log),
		Tokens:   tokens,
		Redis:    redisClient,
	}, log)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-quit
	log.Info("Shutting down HTTP server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	log.Info("HTTP server stopped gracefully")
}
