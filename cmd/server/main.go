package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/vendora/marketplace/internal/cache"
	"github.com/vendora/marketplace/internal/config"
	"github.com/vendora/marketplace/internal/events"
	"github.com/vendora/marketplace/internal/httpserver"
	"github.com/vendora/marketplace/internal/repo"
	"github.com/vendora/marketplace/internal/search"
	"github.com/vendora/marketplace/internal/service"
	"github.com/vendora/marketplace/internal/tracing"
	"github.com/vendora/marketplace/pkg/db"
	"github.com/vendora/marketplace/pkg/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := repo.AutoMigrate(gdb); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	tp, err := tracing.Init(cfg.ServiceName, cfg.JaegerEndpoint)
	if err != nil {
		logger.Warn("tracing_disabled", "error", err)
		tp = nil
	}

	producer := events.NewProducer(cfg.KafkaBrokers)
	publisher := events.NewPublisher(producer)

	var productIndex *search.Index
	if cfg.ESURL != "" {
		es, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			logger.Warn("search_disabled", "error", err)
		} else {
			productIndex = search.NewIndex(es, cfg.ESIndex)
		}
	}

	productCache := cache.New(cfg.RedisAddr)

	r := repo.New(gdb)

	deps := httpserver.Deps{
		Logger: logger,
		DB:     gdb,

		Auth:     &service.AuthService{Repo: r, JWTSecret: cfg.JWTSecret},
		Catalog:  &service.CatalogService{Repo: r, Events: publisher, Search: productIndex, Cache: productCache},
		Cart:     &service.CartService{Repo: r},
		Wishlist: &service.WishlistService{Repo: r},
		Orders:   &service.OrderService{Repo: r, Events: publisher},
		Payments: &service.PaymentService{Repo: r, Events: publisher},

		JWTSecret: cfg.JWTSecret,
	}

	e := echo.New()
	e.HideBanner = true

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(echomw.CORS())

	httpserver.Register(e, deps)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.ServerPort)
		logger.Info("server_starting", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info("server_stopping")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo_shutdown", "error", err)
	}

	if err := producer.Close(); err != nil {
		logger.Error("producer_close", "error", err)
	}
	if err := productCache.Close(); err != nil {
		logger.Error("cache_close", "error", err)
	}
	if tp != nil {
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Error("tracing_shutdown", "error", err)
		}
	}

	sqlDB, err := gdb.DB()
	if err == nil {
		sqlDB.Close()
	}

	logger.Info("server_stopped")
}
