package handler

import (
	"errors"
	"net/http"
	"strconv"

	"berrymarket/internal/app/shop/entity"
	"berrymarket/internal/app/shop/service"
	"berrymarket/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	defaultSkip  = 0
	defaultLimit = 10
)

// ProductHandler обрабатывает HTTP запросы каталога товаров
type ProductHandler struct {
	catalogService service.CatalogServiceInterface
	validator      *validator.Validate
}

// NewProductHandler создает новый обработчик каталога
func NewProductHandler(catalogService service.CatalogServiceInterface) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
		validator:      validator.New(),
	}
}

// CreateProduct обрабатывает POST /products/
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req entity.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		logger.Error().Err(err).Msg("create product failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, product)
}

// GetProducts обрабатывает GET /products/?skip&limit&category
func (h *ProductHandler) GetProducts(c *gin.Context) {
	skip := parseQueryInt(c, "skip", defaultSkip)
	limit := parseQueryInt(c, "limit", defaultLimit)
	category := c.Query("category")

	products, err := h.catalogService.GetProducts(c.Request.Context(), skip, limit, category)
	if err != nil {
		logger.Error().Err(err).Msg("get products failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get products"})
		return
	}

	if products == nil {
		products = []entity.Product{}
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct обрабатывает GET /products/{id}
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		logger.Error().Err(err).Uint("product_id", id).Msg("get product failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get product"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// UpdateProduct обрабатывает PUT /products/{id} (частичное обновление)
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req entity.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		logger.Error().Err(err).Uint("product_id", id).Msg("update product failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct обрабатывает DELETE /products/{id}
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	if _, err := h.catalogService.DeleteProduct(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		logger.Error().Err(err).Uint("product_id", id).Msg("delete product failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Product deleted"})
}

// === HELPER FUNCTIONS ===

// parseUintParam читает числовой path-параметр
func parseUintParam(c *gin.Context, name string) (uint, error) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(value), nil
}

// parseQueryInt читает числовой query-параметр с значением по умолчанию
func parseQueryInt(c *gin.Context, name string, defaultValue int) int {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return defaultValue
	}
	return value
}

// formatValidationError форматирует ошибки валидации, называя поле
func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}
