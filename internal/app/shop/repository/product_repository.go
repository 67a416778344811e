package repository

import (
	"context"
	"errors"

	"berrymarket/internal/app/shop/entity"

	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository создает новый репозиторий товаров
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create создает новый товар
func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	result := r.db.WithContext(ctx).Create(product)
	return result.Error
}

// GetByID получает товар по ID
func (r *productRepository) GetByID(ctx context.Context, id uint) (*entity.Product, error) {
	var product entity.Product
	result := r.db.WithContext(ctx).First(&product, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, result.Error
	}

	return &product, nil
}

// GetAll получает товары с пагинацией и необязательным фильтром по категории
// Фильтр по категории - точное совпадение
func (r *productRepository) GetAll(ctx context.Context, skip, limit int, category string) ([]entity.Product, error) {
	query := r.db.WithContext(ctx).Model(&entity.Product{})
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var products []entity.Product
	result := query.Order("id").Offset(skip).Limit(limit).Find(&products)

	if result.Error != nil {
		return nil, result.Error
	}

	return products, nil
}

// Update сохраняет измененные поля товара
// average_rating здесь не трогаем, им владеет пересчет рейтинга
func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	result := r.db.WithContext(ctx).Model(product).Where("id = ?", product.ID).Updates(map[string]interface{}{
		"name":        product.Name,
		"description": product.Description,
		"price":       product.Price,
		"category":    product.Category,
	})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete удаляет товар
func (r *productRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.Product{}, "id = ?", id)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}
