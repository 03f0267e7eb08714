// @title           HostCraft Platform API
// @version         1.0
// @description     Backend for the HostCraft hosting website: OAuth login,
// @description     plan catalog, coupon redemption, and order management.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hostcraft/platform-api/internal/api"
	"github.com/hostcraft/platform-api/internal/core/ports"
	"github.com/hostcraft/platform-api/internal/core/service"
	"github.com/hostcraft/platform-api/internal/infrastructure/config"
	mongodb "github.com/hostcraft/platform-api/internal/infrastructure/db/mongo"
	redisdb "github.com/hostcraft/platform-api/internal/infrastructure/db/redis"
	"github.com/hostcraft/platform-api/internal/infrastructure/notify"
	"github.com/hostcraft/platform-api/internal/infrastructure/oauth"
	"github.com/hostcraft/platform-api/pkg/logger"

	_ "github.com/hostcraft/platform-api/docs"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	couponRepo := mongodb.NewCouponRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)
	catalogRepo := mongodb.NewCatalogRepository(db)

	for name, ensure := range map[string]func(context.Context) error{
		"users":   userRepo.EnsureIndexes,
		"coupons": couponRepo.EnsureIndexes,
		"orders":  orderRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	// --- Outbound notifications ---
	var notifier ports.OrderNotifier
	if cfg.Webhook.URL != "" {
		dispatcher := notify.NewDispatcher(cfg.Webhook.Workers, notify.NewWebhook(cfg.Webhook.URL, log), log)
		dispatcher.Start(ctx)
		notifier = dispatcher
	} else {
		log.Warn().Msg("webhook url not configured, order notifications disabled")
	}

	// --- Services ---
	provider := oauth.NewProvider(oauth.Config{
		ClientID:     cfg.OAuth.ClientID,
		ClientSecret: cfg.OAuth.ClientSecret,
		RedirectURL:  cfg.OAuth.RedirectURL,
		AuthURL:      cfg.OAuth.AuthURL,
		TokenURL:     cfg.OAuth.TokenURL,
		UserInfoURL:  cfg.OAuth.UserInfoURL,
	})

	authService := service.NewAuthService(provider, redisdb.NewStateStore(rdb), userRepo,
		cfg.JWTSecret, cfg.TokenTTL, log)
	couponService := service.NewCouponService(couponRepo, log)
	orderService := service.NewOrderService(orderRepo, couponService, notifier, log)
	userService := service.NewUserService(userRepo, log)
	catalogService := service.NewCatalogService(catalogRepo, redisdb.NewCatalogCache(rdb), log)

	// --- HTTP ---
	e := api.NewRouter(api.RouterConfig{
		DB:        db,
		Redis:     rdb,
		JWTSecret: cfg.JWTSecret,
		Logger:    log,

		Auth:    authService,
		Coupons: couponService,
		Orders:  orderService,
		Users:   userService,
		Catalog: catalogService,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
