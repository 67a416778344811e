package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"berrymarket/internal/app/shop/entity"
	"berrymarket/internal/app/shop/repository"
	"berrymarket/internal/app/shop/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCatalogService() (*CatalogService, *mocks.MockProductRepository, *mocks.MockProductCache, *mocks.MockMessagePublisher) {
	productRepo := new(mocks.MockProductRepository)
	cache := new(mocks.MockProductCache)
	kafkaProducer := &mocks.MockMessagePublisher{Messages: make([][]byte, 0)}
	return NewCatalogService(productRepo, cache, kafkaProducer), productRepo, cache, kafkaProducer
}

// ===================== CreateProduct Tests =====================

func TestCreateProduct_Success(t *testing.T) {
	// Arrange
	svc, productRepo, _, _ := newCatalogService()

	ctx := context.Background()
	req := &entity.CreateProductRequest{
		Name:        "Клубника",
		Description: "Свежая",
		Price:       floatPtr(199.90),
		Category:    "berries",
	}

	productRepo.On("Create", ctx, mock.AnythingOfType("*entity.Product")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Product).ID = 1
		}).
		Return(nil)

	// Act
	product, err := svc.CreateProduct(ctx, req)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, uint(1), product.ID)
	assert.Equal(t, "Клубника", product.Name)
	assert.Equal(t, 199.90, product.Price)
	assert.Equal(t, 0.0, product.AverageRating)
	productRepo.AssertExpectations(t)
}

func TestCreateProduct_ZeroPriceAllowed(t *testing.T) {
	// Arrange
	svc, productRepo, _, _ := newCatalogService()

	ctx := context.Background()
	req := &entity.CreateProductRequest{Name: "Пробник", Price: floatPtr(0), Category: "samples"}

	productRepo.On("Create", ctx, mock.AnythingOfType("*entity.Product")).Return(nil)

	// Act
	product, err := svc.CreateProduct(ctx, req)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 0.0, product.Price)
}

// ===================== GetProduct Tests =====================

func TestGetProduct_CacheHit(t *testing.T) {
	// Arrange
	svc, productRepo, cache, _ := newCatalogService()

	ctx := context.Background()
	cached := &entity.Product{ID: 5, Name: "Малина", Price: 250}

	cache.On("GetProduct", ctx, uint(5)).Return(cached, nil)

	// Act
	product, err := svc.GetProduct(ctx, 5)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, cached, product)
	// До БД не дошли
	productRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestGetProduct_CacheMissLoadsAndCaches(t *testing.T) {
	// Arrange
	svc, productRepo, cache, _ := newCatalogService()

	ctx := context.Background()
	stored := &entity.Product{ID: 5, Name: "Малина", Price: 250}

	cache.On("GetProduct", ctx, uint(5)).Return(nil, nil)
	productRepo.On("GetByID", ctx, uint(5)).Return(stored, nil)
	cache.On("SetProduct", ctx, stored, time.Hour).Return(nil)

	// Act
	product, err := svc.GetProduct(ctx, 5)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, stored, product)
	cache.AssertExpectations(t)
}

func TestGetProduct_NotFound(t *testing.T) {
	// Arrange
	svc, productRepo, cache, _ := newCatalogService()

	ctx := context.Background()
	cache.On("GetProduct", ctx, uint(404)).Return(nil, nil)
	productRepo.On("GetByID", ctx, uint(404)).Return(nil, repository.ErrProductNotFound)

	// Act
	product, err := svc.GetProduct(ctx, 404)

	// Assert
	assert.Nil(t, product)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestGetProduct_CacheErrorFallsBackToDB(t *testing.T) {
	// Arrange
	svc, productRepo, cache, _ := newCatalogService()

	ctx := context.Background()
	stored := &entity.Product{ID: 5, Name: "Малина"}

	cache.On("GetProduct", ctx, uint(5)).Return(nil, errors.New("redis down"))
	productRepo.On("GetByID", ctx, uint(5)).Return(stored, nil)
	cache.On("SetProduct", ctx, stored, time.Hour).Return(errors.New("redis down"))

	// Act
	product, err := svc.GetProduct(ctx, 5)

	// Assert: проблемы с кешем не ломают чтение
	assert.NoError(t, err)
	assert.Equal(t, stored, product)
}

// ===================== UpdateProduct Tests =====================

func TestUpdateProduct_PartialUpdate(t *testing.T) {
	// Arrange
	svc, productRepo, cache, kafkaProducer := newCatalogService()

	ctx := context.Background()
	stored := &entity.Product{ID: 5, Name: "Малина", Description: "Старое", Price: 250, Category: "berries"}

	productRepo.On("GetByID", ctx, uint(5)).Return(stored, nil)
	productRepo.On("Update", ctx, mock.AnythingOfType("*entity.Product")).Return(nil)
	cache.On("DeleteProduct", ctx, uint(5)).Return(nil)

	req := &entity.UpdateProductRequest{Description: strPtr("Новое описание")}

	// Act
	product, err := svc.UpdateProduct(ctx, 5, req)

	// Assert: остальные поля не тронуты
	assert.NoError(t, err)
	assert.Equal(t, "Малина", product.Name)
	assert.Equal(t, "Новое описание", product.Description)
	assert.Equal(t, 250.0, product.Price)
	// Цена не менялась, события нет
	assert.Empty(t, kafkaProducer.Messages)
	cache.AssertExpectations(t)
}

func TestUpdateProduct_PriceChangePublishesEvent(t *testing.T) {
	// Arrange
	svc, productRepo, cache, kafkaProducer := newCatalogService()

	ctx := context.Background()
	stored := &entity.Product{ID: 5, Name: "Малина", Price: 250, Category: "berries"}

	productRepo.On("GetByID", ctx, uint(5)).Return(stored, nil)
	productRepo.On("Update", ctx, mock.AnythingOfType("*entity.Product")).Return(nil)
	cache.On("DeleteProduct", ctx, uint(5)).Return(nil)
	kafkaProducer.On("PublishMessage", ctx, "5", mock.Anything).Return(nil)

	req := &entity.UpdateProductRequest{Price: floatPtr(199)}

	// Act
	_, err := svc.UpdateProduct(ctx, 5, req)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, kafkaProducer.Messages, 1)

	var event entity.ProductEvent
	assert.NoError(t, json.Unmarshal(kafkaProducer.Messages[0], &event))
	assert.Equal(t, "PRODUCT_UPDATED", event.EventType)
	assert.Equal(t, 199.0, event.Price)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	// Arrange
	svc, productRepo, _, _ := newCatalogService()

	ctx := context.Background()
	productRepo.On("GetByID", ctx, uint(404)).Return(nil, repository.ErrProductNotFound)

	// Act
	product, err := svc.UpdateProduct(ctx, 404, &entity.UpdateProductRequest{Name: strPtr("X")})

	// Assert
	assert.Nil(t, product)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

// ===================== DeleteProduct Tests =====================

func TestDeleteProduct_Success(t *testing.T) {
	// Arrange
	svc, productRepo, cache, _ := newCatalogService()

	ctx := context.Background()
	stored := &entity.Product{ID: 5, Name: "Малина"}

	productRepo.On("GetByID", ctx, uint(5)).Return(stored, nil)
	productRepo.On("Delete", ctx, uint(5)).Return(nil)
	cache.On("DeleteProduct", ctx, uint(5)).Return(nil)

	// Act
	product, err := svc.DeleteProduct(ctx, 5)

	// Assert: возвращается удаленная запись
	assert.NoError(t, err)
	assert.Equal(t, stored, product)
	productRepo.AssertExpectations(t)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	// Arrange
	svc, productRepo, _, _ := newCatalogService()

	ctx := context.Background()
	productRepo.On("GetByID", ctx, uint(404)).Return(nil, repository.ErrProductNotFound)

	// Act
	product, err := svc.DeleteProduct(ctx, 404)

	// Assert
	assert.Nil(t, product)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

// ===================== GetProducts Tests =====================

func TestGetProducts_WithCategoryFilter(t *testing.T) {
	// Arrange
	svc, productRepo, _, _ := newCatalogService()

	ctx := context.Background()
	expected := []entity.Product{{ID: 1, Category: "berries"}, {ID: 2, Category: "berries"}}

	productRepo.On("GetAll", ctx, 0, 10, "berries").Return(expected, nil)

	// Act
	products, err := svc.GetProducts(ctx, 0, 10, "berries")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, expected, products)
}

func TestGetProducts_RepositoryError(t *testing.T) {
	// Arrange
	svc, productRepo, _, _ := newCatalogService()

	ctx := context.Background()
	productRepo.On("GetAll", ctx, 0, 10, "").Return(nil, errors.New("db down"))

	// Act
	products, err := svc.GetProducts(ctx, 0, 10, "")

	// Assert
	assert.Error(t, err)
	assert.Nil(t, products)
}
