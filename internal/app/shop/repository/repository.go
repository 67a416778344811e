package repository

import (
	"context"
	"errors"

	"berrymarket/internal/app/shop/entity"
)

var (
	// Стандартные ошибки репозитория для обработки в service layer
	ErrProductNotFound  = errors.New("product not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrFavoriteExists   = errors.New("favorite already exists")
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uint) (*entity.Product, error)
	GetAll(ctx context.Context, skip, limit int, category string) ([]entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uint) error
}

type ReviewRepository interface {
	// Create вставляет отзыв и пересчитывает средний рейтинг товара
	// в одной транзакции. Возвращает ErrUserNotFound / ErrProductNotFound
	// если ссылки ведут на несуществующие записи.
	Create(ctx context.Context, review *entity.Review) (float64, error)
	GetByProductID(ctx context.Context, productID uint, sortBy, order string) ([]entity.Review, error)
}

type OrderRepository interface {
	// CreateWithItems сохраняет заказ и все его позиции в одной транзакции
	CreateWithItems(ctx context.Context, order *entity.Order, items []entity.OrderItem) error
}

type FavoriteRepository interface {
	GetByUserAndProduct(ctx context.Context, userID, productID uint) (*entity.Favorite, error)
	Create(ctx context.Context, favorite *entity.Favorite) error
	Delete(ctx context.Context, userID, productID uint) (*entity.Favorite, error)
	GetProductsByUser(ctx context.Context, userID uint) ([]entity.Product, error)
}
