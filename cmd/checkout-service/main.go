package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/belvieshop/checkout-service/internal/api"
	"github.com/belvieshop/checkout-service/internal/cache"
	"github.com/belvieshop/checkout-service/internal/checkout"
	"github.com/belvieshop/checkout-service/internal/config"
	"github.com/belvieshop/checkout-service/internal/repository/postgres"
	"github.com/belvieshop/checkout-service/internal/service"
	"github.com/belvieshop/checkout-service/pkg/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	conn, err := db.NewPostgresConnection(cfg.Database)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := postgres.EnsureSchema(ctx, conn); err != nil {
		cancel()
		logger.Fatal("schema setup", zap.Error(err))
	}
	cancel()

	repos := postgres.NewRepositories(conn, logger)
	svc := service.NewCheckoutService(
		repos.Zones,
		repos.Promos,
		repos.Orders,
		cache.NewPromoCache(cfg.Checkout.PromoCacheTTL),
		checkout.DefaultRate{
			Price:            cfg.Checkout.DefaultShippingPrice,
			DeliveryEstimate: cfg.Checkout.DefaultDeliveryEstimate,
		},
		logger,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewRouter(svc, logger),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)
		<-c
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("HTTP server Shutdown", zap.Error(err))
		}
		close(idleConnsClosed)
	}()

	logger.Info("starting checkout-service", zap.String("port", cfg.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("listen", zap.Error(err))
	}

	<-idleConnsClosed
	logger.Info("server stopped")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Environment == "production" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zc.Level = level
	return zc.Build()
}
