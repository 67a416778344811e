package repository

import (
	"context"
	"errors"

	"berrymarket/internal/app/shop/entity"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository создает новый репозиторий избранного
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// GetByUserAndProduct ищет закладку по паре (user_id, product_id)
func (r *favoriteRepository) GetByUserAndProduct(ctx context.Context, userID, productID uint) (*entity.Favorite, error) {
	var favorite entity.Favorite
	result := r.db.WithContext(ctx).
		First(&favorite, "user_id = ? AND product_id = ?", userID, productID)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrFavoriteNotFound
		}
		return nil, result.Error
	}

	return &favorite, nil
}

// Create создает новую закладку
// Конкурентная вставка той же пары упирается в уникальный индекс
// idx_favorites_user_product и возвращает ErrFavoriteExists
func (r *favoriteRepository) Create(ctx context.Context, favorite *entity.Favorite) error {
	result := r.db.WithContext(ctx).Create(favorite)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return ErrFavoriteExists
		}
		return result.Error
	}
	return nil
}

// isUniqueViolation распознает нарушение уникального индекса
// 23505 - код unique_violation в PostgreSQL
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Delete удаляет закладку и возвращает удаленную запись
func (r *favoriteRepository) Delete(ctx context.Context, userID, productID uint) (*entity.Favorite, error) {
	favorite, err := r.GetByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).Delete(&entity.Favorite{}, "id = ?", favorite.ID)
	if result.Error != nil {
		return nil, result.Error
	}

	return favorite, nil
}

// GetProductsByUser получает товары из избранного пользователя через JOIN
func (r *favoriteRepository) GetProductsByUser(ctx context.Context, userID uint) ([]entity.Product, error) {
	var products []entity.Product
	result := r.db.WithContext(ctx).
		Model(&entity.Product{}).
		Joins("JOIN favorites ON favorites.product_id = products.id").
		Where("favorites.user_id = ?", userID).
		Find(&products)

	if result.Error != nil {
		return nil, result.Error
	}

	return products, nil
}
