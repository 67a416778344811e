package infrastructure

import (
	"context"
	"time"

	"berrymarket/internal/app/shop/entity"
)

type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}

type ProductCache interface {
	GetProduct(ctx context.Context, id uint) (*entity.Product, error)
	SetProduct(ctx context.Context, product *entity.Product, ttl time.Duration) error
	DeleteProduct(ctx context.Context, id uint) error
	Close() error
}
