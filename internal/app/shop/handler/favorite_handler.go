package handler

import (
	"errors"
	"net/http"

	"berrymarket/internal/app/shop/entity"
	"berrymarket/internal/app/shop/service"
	"berrymarket/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// FavoriteHandler обрабатывает HTTP запросы избранного
type FavoriteHandler struct {
	favoriteService service.FavoriteServiceInterface
	validator       *validator.Validate
}

// NewFavoriteHandler создает новый обработчик избранного
func NewFavoriteHandler(favoriteService service.FavoriteServiceInterface) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteService: favoriteService,
		validator:       validator.New(),
	}
}

// AddFavorite обрабатывает POST /users/{id}/favorites/
// Повторное добавление той же пары идемпотентно: возвращается
// существующая запись и статус 200 вместо 201
func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	userID, err := parseUintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var req entity.AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	favorite, created, err := h.favoriteService.AddFavorite(c.Request.Context(), userID, *req.ProductID)
	if err != nil {
		logger.Error().Err(err).Uint("user_id", userID).Msg("add favorite failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add favorite"})
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, favorite)
}

// RemoveFavorite обрабатывает DELETE /users/{id}/favorites/{product_id}
func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	userID, err := parseUintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	productID, err := parseUintParam(c, "product_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	if _, err := h.favoriteService.RemoveFavorite(c.Request.Context(), userID, productID); err != nil {
		if errors.Is(err, service.ErrFavoriteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Favorite not found"})
			return
		}
		logger.Error().Err(err).Uint("user_id", userID).Msg("remove favorite failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove favorite"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Favorite removed"})
}

// GetFavorites обрабатывает GET /users/{id}/favorites/
// Возвращает товары, а не записи закладок
func (h *FavoriteHandler) GetFavorites(c *gin.Context) {
	userID, err := parseUintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	products, err := h.favoriteService.GetFavorites(c.Request.Context(), userID)
	if err != nil {
		logger.Error().Err(err).Uint("user_id", userID).Msg("get favorites failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get favorites"})
		return
	}

	if products == nil {
		products = []entity.Product{}
	}
	c.JSON(http.StatusOK, products)
}
