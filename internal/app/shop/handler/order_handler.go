package handler

import (
	"net/http"

	"berrymarket/internal/app/shop/entity"
	"berrymarket/internal/app/shop/service"
	"berrymarket/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// OrderHandler обрабатывает HTTP запросы заказов
type OrderHandler struct {
	orderService service.OrderServiceInterface
	validator    *validator.Validate
}

// NewOrderHandler создает новый обработчик заказов
func NewOrderHandler(orderService service.OrderServiceInterface) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		validator:    validator.New(),
	}
}

// CreateOrder обрабатывает POST /orders/
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req entity.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		logger.Error().Err(err).Msg("create order failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	c.JSON(http.StatusCreated, order)
}
