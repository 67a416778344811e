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

// ReviewHandler обрабатывает HTTP запросы отзывов
type ReviewHandler struct {
	reviewService service.ReviewServiceInterface
	validator     *validator.Validate
}

// NewReviewHandler создает новый обработчик отзывов
func NewReviewHandler(reviewService service.ReviewServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		validator:     validator.New(),
	}
}

// CreateReview обрабатывает POST /products/{id}/reviews/
// Висячая ссылка на пользователя или товар - это 400, а не 404:
// запрос ссылается на несуществующую сущность, самого ресурса это не касается
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	productID, err := parseUintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req entity.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	review, err := h.reviewService.CreateReview(c.Request.Context(), productID, &req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User not found"})
			return
		}
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product not found"})
			return
		}
		logger.Error().Err(err).Uint("product_id", productID).Msg("create review failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}

	c.JSON(http.StatusCreated, review)
}

// GetReviews обрабатывает GET /products/{id}/reviews/?sort_by&order
func (h *ReviewHandler) GetReviews(c *gin.Context) {
	productID, err := parseUintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	sortBy := c.DefaultQuery("sort_by", "created_at")
	order := c.DefaultQuery("order", "desc")

	reviews, err := h.reviewService.GetReviews(c.Request.Context(), productID, sortBy, order)
	if err != nil {
		logger.Error().Err(err).Uint("product_id", productID).Msg("get reviews failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get reviews"})
		return
	}

	if reviews == nil {
		reviews = []entity.Review{}
	}
	c.JSON(http.StatusOK, reviews)
}
