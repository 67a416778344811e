package repository

import (
	"context"
	"errors"

	"berrymarket/internal/app/shop/entity"
	"berrymarket/pkg/metrics"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository создает новый репозиторий отзывов
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create вставляет отзыв и пересчитывает average_rating товара в одной
// транзакции. Строка товара блокируется через SELECT ... FOR UPDATE, поэтому
// конкурентные отзывы на один товар сериализуются и пересчет не теряет
// обновления. Читатель никогда не увидит отзыв без обновленного рейтинга.
func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) (float64, error) {
	var averageRating float64

	timer := metrics.NewDbTimer("shop-service", metrics.DbOpInsert, "reviews")
	defer timer.ObserveDuration()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Блокируем строку товара до конца транзакции
		var product entity.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, "id = ?", review.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		// Проверяем что автор отзыва существует
		var user entity.User
		if err := tx.First(&user, "id = ?", review.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if err := tx.Create(review).Error; err != nil {
			return err
		}

		// Простое среднее по всем отзывам товара, включая только что вставленный
		if err := tx.Model(&entity.Review{}).
			Where("product_id = ?", review.ProductID).
			Select("COALESCE(AVG(rating), 0)").
			Scan(&averageRating).Error; err != nil {
			return err
		}

		return tx.Model(&entity.Product{}).
			Where("id = ?", review.ProductID).
			Update("average_rating", averageRating).Error
	})

	if err != nil {
		if !errors.Is(err, ErrProductNotFound) && !errors.Is(err, ErrUserNotFound) {
			metrics.RecordDbError("shop-service", metrics.DbOpInsert)
		}
		return 0, err
	}

	return averageRating, nil
}

// GetByProductID получает отзывы товара с сортировкой
// sort_by: rating или created_at (по умолчанию created_at, неизвестное
// значение откатывается на created_at), order: asc или desc (по умолчанию desc)
func (r *reviewRepository) GetByProductID(ctx context.Context, productID uint, sortBy, order string) ([]entity.Review, error) {
	column := "created_at"
	if sortBy == "rating" {
		column = "rating"
	}

	direction := "DESC"
	if order == "asc" {
		direction = "ASC"
	}

	var reviews []entity.Review
	result := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order(column + " " + direction).
		Find(&reviews)

	if result.Error != nil {
		return nil, result.Error
	}

	return reviews, nil
}
