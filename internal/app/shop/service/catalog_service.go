package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"berrymarket/internal/app/shop/entity"
	"berrymarket/internal/app/shop/infrastructure"
	"berrymarket/internal/app/shop/repository"
	"berrymarket/pkg/logger"
	"berrymarket/pkg/metrics"
)

const productCacheTTL = time.Hour

// CatalogService обрабатывает бизнес-логику каталога товаров
// Координирует работу репозитория, Redis кеша и Kafka producer
type CatalogService struct {
	productRepo   repository.ProductRepository
	cache         infrastructure.ProductCache
	kafkaProducer infrastructure.MessagePublisher
}

// NewCatalogService создает новый сервис каталога с внедрением зависимостей
func NewCatalogService(
	productRepo repository.ProductRepository,
	cache infrastructure.ProductCache,
	kafkaProducer infrastructure.MessagePublisher,
) *CatalogService {
	return &CatalogService{
		productRepo:   productRepo,
		cache:         cache,
		kafkaProducer: kafkaProducer,
	}
}

// CreateProduct создает новый товар
// average_rating нового товара всегда 0.0, клиент его не задает
func (s *CatalogService) CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error) {
	product := &entity.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Category:    req.Category,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	metrics.ProductsCreated.Inc()
	return product, nil
}

// GetProducts получает товары с пагинацией и фильтром по категории
func (s *CatalogService) GetProducts(ctx context.Context, skip, limit int, category string) ([]entity.Product, error) {
	products, err := s.productRepo.GetAll(ctx, skip, limit, category)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	return products, nil
}

// GetProduct получает товар по ID
// Сначала проверяет кеш, при промахе загружает из БД и кеширует
func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*entity.Product, error) {
	cached, err := s.cache.GetProduct(ctx, id)
	if err != nil {
		// Проблемы с кешем не критичны, читаем из БД
		logger.Warn().Err(err).Uint("product_id", id).Msg("product cache read failed")
	}
	if cached != nil {
		return cached, nil
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if err := s.cache.SetProduct(ctx, product, productCacheTTL); err != nil {
		logger.Warn().Err(err).Uint("product_id", id).Msg("product cache write failed")
	}

	return product, nil
}

// UpdateProduct частично обновляет товар и инвалидирует кеш
// При изменении цены отправляет событие PRODUCT_UPDATED в Kafka
func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, req *entity.UpdateProductRequest) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	oldPrice := product.Price

	// Обновляем только переданные поля (частичное обновление)
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Category != nil {
		product.Category = *req.Category
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	// Инвалидируем кеш до ответа клиенту, чтобы следующее чтение
	// увидело свежие данные
	if err := s.cache.DeleteProduct(ctx, id); err != nil {
		logger.Warn().Err(err).Uint("product_id", id).Msg("product cache invalidation failed")
	}

	if product.Price != oldPrice {
		event := entity.ProductEvent{
			EventType: "PRODUCT_UPDATED",
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Category:  product.Category,
			Timestamp: time.Now(),
		}
		if err := s.publishProductEvent(ctx, event); err != nil {
			// Товар уже обновлен, проблемы с Kafka не критичны
			logger.Warn().Err(err).Uint("product_id", id).Msg("failed to publish product updated event")
		}
	}

	return product, nil
}

// DeleteProduct удаляет товар и возвращает удаленную запись
func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}

	if err := s.cache.DeleteProduct(ctx, id); err != nil {
		logger.Warn().Err(err).Uint("product_id", id).Msg("product cache invalidation failed")
	}

	return product, nil
}

// publishProductEvent отправляет событие о товаре в Kafka
// Key - это ProductID для партиционирования
func (s *CatalogService) publishProductEvent(ctx context.Context, event entity.ProductEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal product event: %w", err)
	}

	key := strconv.FormatUint(uint64(event.ProductID), 10)
	if err := s.kafkaProducer.PublishMessage(ctx, key, eventData); err != nil {
		return fmt.Errorf("failed to publish to kafka: %w", err)
	}

	return nil
}
