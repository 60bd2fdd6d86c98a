package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fitshop/fitshop-backend/config"
	"github.com/fitshop/fitshop-backend/internal/app/controller"
	"github.com/fitshop/fitshop-backend/internal/app/repository"
	"github.com/fitshop/fitshop-backend/internal/app/service"
	"github.com/fitshop/fitshop-backend/internal/cache"
	"github.com/fitshop/fitshop-backend/internal/db"
	"github.com/fitshop/fitshop-backend/internal/router"
	"github.com/fitshop/fitshop-backend/internal/scheduler"
	"github.com/fitshop/fitshop-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting FitShop Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Seed database (optional)
	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	counterRepo := repository.NewCounterRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())

	// Ranking cache is optional: without redis the rankings come straight
	// from the counters tables.
	var rankingCache *cache.RankingCache
	if cfg.Redis.Enabled {
		rankingCache, err = cache.New(&cfg.Redis, cfg.Rankings.CacheTTL)
		if err != nil {
			logger.Warn("Ranking cache unavailable, serving rankings from database", map[string]interface{}{
				"error": err.Error(),
			})
			rankingCache = nil
		} else {
			defer rankingCache.Close()
		}
	}

	// Initialize services
	productService := service.NewProductService(productRepo, counterRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	orderService := service.NewOrderService(orderRepo, productRepo, db.GetDB())
	checkoutService := service.NewCheckoutService(counterRepo, cfg.WhatsApp.Host)
	popularityService := service.NewPopularityService(counterRepo, rankingCache, cfg.Rankings.Limit)

	// Initialize controllers
	productController := controller.NewProductController(productService, popularityService)
	categoryController := controller.NewCategoryController(categoryService)
	orderController := controller.NewOrderController(orderService)
	checkoutController := controller.NewCheckoutController(checkoutService)

	// Ranking refresh scheduler only makes sense with a cache to warm.
	if rankingCache != nil {
		rankingScheduler := scheduler.NewRankingScheduler(popularityService, cfg.Rankings.RefreshCron)
		if err := rankingScheduler.Start(); err != nil {
			logger.Warn("Ranking scheduler not started", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer rankingScheduler.Stop()
		}
	}

	// Setup router
	r := router.NewRouter(
		productController,
		categoryController,
		orderController,
		checkoutController,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
