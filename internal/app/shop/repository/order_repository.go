package repository

import (
	"context"

	"berrymarket/internal/app/shop/entity"

	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository создает новый репозиторий заказов
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// CreateWithItems сохраняет заказ и его позиции в одной транзакции
// Заказ без позиций в базе появиться не может: при ошибке на любой
// позиции откатывается вся транзакция
func (r *orderRepository) CreateWithItems(ctx context.Context, order *entity.Order, items []entity.OrderItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
