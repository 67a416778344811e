package service

import (
	"context"

	"berrymarket/internal/app/shop/entity"
)

type CatalogServiceInterface interface {
	CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error)
	GetProducts(ctx context.Context, skip, limit int, category string) ([]entity.Product, error)
	GetProduct(ctx context.Context, id uint) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id uint, req *entity.UpdateProductRequest) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id uint) (*entity.Product, error)
}

type ReviewServiceInterface interface {
	CreateReview(ctx context.Context, productID uint, req *entity.CreateReviewRequest) (*entity.Review, error)
	GetReviews(ctx context.Context, productID uint, sortBy, order string) ([]entity.Review, error)
}

type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, req *entity.CreateOrderRequest) (*entity.Order, error)
}

type FavoriteServiceInterface interface {
	AddFavorite(ctx context.Context, userID, productID uint) (*entity.Favorite, bool, error)
	RemoveFavorite(ctx context.Context, userID, productID uint) (*entity.Favorite, error)
	GetFavorites(ctx context.Context, userID uint) ([]entity.Product, error)
}
