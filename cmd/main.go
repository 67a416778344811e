package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"berrymarket/internal/app/shop/config"
	"berrymarket/internal/app/shop/entity"
	"berrymarket/internal/app/shop/handler"
	"berrymarket/internal/app/shop/repository"
	"berrymarket/internal/app/shop/service"
	"berrymarket/internal/app/shop/util"
	"berrymarket/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logger.Init("shop-service", logLevel)

	logstashAddr := os.Getenv("LOGSTASH_ADDR")
	if logstashAddr != "" {
		if err := logger.InitLogstash(logstashAddr, "shop-service", logLevel); err != nil {
			logger.Warn().Err(err).Msg("Failed to connect to Logstash, using stdout only")
		} else {
			logger.Info().Str("logstash_addr", logstashAddr).Msg("Connected to Logstash")
		}
	}

	db, err := connectDB(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	logger.Info().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.DBName).
		Msg("Connected to PostgreSQL")

	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Product{},
		&entity.Review{},
		&entity.Order{},
		&entity.OrderItem{},
		&entity.Favorite{},
	); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	redisClient, err := util.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()
	logger.Info().Str("addr", cfg.Redis.Addr).Msg("Connected to Redis")

	reviewsProducer := util.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.ReviewsTopic)
	defer reviewsProducer.Close()
	ordersProducer := util.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.OrdersTopic)
	defer ordersProducer.Close()
	productsProducer := util.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.ProductTopic)
	defer productsProducer.Close()
	logger.Info().
		Strs("topics", []string{cfg.Kafka.ReviewsTopic, cfg.Kafka.OrdersTopic, cfg.Kafka.ProductTopic}).
		Msg("Initialized Kafka producers")

	productRepo := repository.NewProductRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)

	catalogService := service.NewCatalogService(productRepo, redisClient, productsProducer)
	reviewService := service.NewReviewService(reviewRepo, redisClient, reviewsProducer)
	orderService := service.NewOrderService(orderRepo, ordersProducer)
	favoriteService := service.NewFavoriteService(favoriteRepo)

	productHandler := handler.NewProductHandler(catalogService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	orderHandler := handler.NewOrderHandler(orderService)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService)
	router := handler.SetupRoutes(productHandler, reviewHandler, orderHandler, favoriteHandler)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("Starting Shop Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Shop Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Shop Service stopped gracefully")
}

func connectDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}

	var db *gorm.DB
	var err error

	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
		if err == nil {
			sqlDB, sqlErr := db.DB()
			if sqlErr != nil {
				err = sqlErr
			} else {
				pingErr := sqlDB.Ping()
				if pingErr != nil {
					err = pingErr
				} else {
					sqlDB.SetMaxOpenConns(25)
					sqlDB.SetMaxIdleConns(5)
					sqlDB.SetConnMaxLifetime(5 * time.Minute)
					sqlDB.SetConnMaxIdleTime(1 * time.Minute)
					return db, nil
				}
			}
		}
		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to database, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
}
