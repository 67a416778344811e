package mocks

import (
	"context"
	"time"

	"berrymarket/internal/app/shop/entity"

	"github.com/stretchr/testify/mock"
)

// MockProductRepository мок для ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *entity.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uint) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductRepository) GetAll(ctx context.Context, skip, limit int, category string) ([]entity.Product, error) {
	args := m.Called(ctx, skip, limit, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *entity.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockReviewRepository мок для ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *entity.Review) (float64, error) {
	args := m.Called(ctx, review)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockReviewRepository) GetByProductID(ctx context.Context, productID uint, sortBy, order string) ([]entity.Review, error) {
	args := m.Called(ctx, productID, sortBy, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Review), args.Error(1)
}

// MockOrderRepository мок для OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateWithItems(ctx context.Context, order *entity.Order, items []entity.OrderItem) error {
	args := m.Called(ctx, order, items)
	return args.Error(0)
}

// MockFavoriteRepository мок для FavoriteRepository
type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) GetByUserAndProduct(ctx context.Context, userID, productID uint) (*entity.Favorite, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Favorite), args.Error(1)
}

func (m *MockFavoriteRepository) Create(ctx context.Context, favorite *entity.Favorite) error {
	args := m.Called(ctx, favorite)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Delete(ctx context.Context, userID, productID uint) (*entity.Favorite, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Favorite), args.Error(1)
}

func (m *MockFavoriteRepository) GetProductsByUser(ctx context.Context, userID uint) ([]entity.Product, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

// MockMessagePublisher мок для MessagePublisher
type MockMessagePublisher struct {
	mock.Mock
	Messages [][]byte
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	m.Messages = append(m.Messages, value)
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	return nil
}

// MockProductCache мок для ProductCache
type MockProductCache struct {
	mock.Mock
}

func (m *MockProductCache) GetProduct(ctx context.Context, id uint) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductCache) SetProduct(ctx context.Context, product *entity.Product, ttl time.Duration) error {
	args := m.Called(ctx, product, ttl)
	return args.Error(0)
}

func (m *MockProductCache) DeleteProduct(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductCache) Close() error {
	return nil
}
