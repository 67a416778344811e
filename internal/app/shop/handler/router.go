package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"berrymarket/pkg/logger"
	"berrymarket/pkg/metrics"
)

// SetupRoutes настраивает все маршруты приложения с использованием Gin
func SetupRoutes(
	productHandler *ProductHandler,
	reviewHandler *ReviewHandler,
	orderHandler *OrderHandler,
	favoriteHandler *FavoriteHandler,
) *gin.Engine {
	router := gin.New()

	// Recovery middleware для обработки panic
	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов
	router.Use(logger.GinLoggerMiddleware())

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware("shop-service"))

	// CORS настройки
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "shop-service",
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Маршруты-коллекции регистрируются в обеих формах: POST с телом
	// не должен проходить через 307 redirect на вариант со слешем
	products := router.Group("/products")
	{
		products.POST("", productHandler.CreateProduct)
		products.POST("/", productHandler.CreateProduct)
		products.GET("", productHandler.GetProducts)
		products.GET("/", productHandler.GetProducts)
		products.GET("/:id", productHandler.GetProduct)
		products.PUT("/:id", productHandler.UpdateProduct)
		products.DELETE("/:id", productHandler.DeleteProduct)

		// Отзывы живут под товаром
		products.POST("/:id/reviews", reviewHandler.CreateReview)
		products.POST("/:id/reviews/", reviewHandler.CreateReview)
		products.GET("/:id/reviews", reviewHandler.GetReviews)
		products.GET("/:id/reviews/", reviewHandler.GetReviews)
	}

	orders := router.Group("/orders")
	{
		orders.POST("", orderHandler.CreateOrder)
		orders.POST("/", orderHandler.CreateOrder)
	}

	users := router.Group("/users")
	{
		users.POST("/:id/favorites", favoriteHandler.AddFavorite)
		users.POST("/:id/favorites/", favoriteHandler.AddFavorite)
		users.GET("/:id/favorites", favoriteHandler.GetFavorites)
		users.GET("/:id/favorites/", favoriteHandler.GetFavorites)
		users.DELETE("/:id/favorites/:product_id", favoriteHandler.RemoveFavorite)
	}

	return router
}
