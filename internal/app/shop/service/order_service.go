package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"berrymarket/internal/app/shop/entity"
	"berrymarket/internal/app/shop/infrastructure"
	"berrymarket/internal/app/shop/repository"
	"berrymarket/pkg/logger"
	"berrymarket/pkg/metrics"
)

// OrderService обрабатывает бизнес-логику заказов
type OrderService struct {
	orderRepo     repository.OrderRepository
	kafkaProducer infrastructure.MessagePublisher
}

// NewOrderService создает новый сервис заказов с внедрением зависимостей
func NewOrderService(
	orderRepo repository.OrderRepository,
	kafkaProducer infrastructure.MessagePublisher,
) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		kafkaProducer: kafkaProducer,
	}
}

// CreateOrder создает заказ со всеми позициями в одной транзакции
// Заказ без позиций невозможен: валидация требует минимум одну позицию,
// а транзакция в репозитории откатывает заказ при ошибке на любой позиции
func (s *OrderService) CreateOrder(ctx context.Context, req *entity.CreateOrderRequest) (*entity.Order, error) {
	order := &entity.Order{
		UserID: *req.UserID,
		Status: entity.OrderStatusNew,
	}

	items := make([]entity.OrderItem, 0, len(req.Items))
	for _, itemReq := range req.Items {
		items = append(items, entity.OrderItem{
			ProductID: *itemReq.ProductID,
			Quantity:  *itemReq.Quantity,
			Price:     *itemReq.Price,
		})
	}

	if err := s.orderRepo.CreateWithItems(ctx, order, items); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	order.Items = items

	metrics.OrdersCreated.Inc()

	event := entity.OrderEvent{
		EventType:  "ORDER_CREATED",
		OrderID:    order.ID,
		UserID:     order.UserID,
		Status:     order.Status,
		ItemsCount: len(items),
		Timestamp:  time.Now(),
	}
	if err := s.publishOrderEvent(ctx, event); err != nil {
		// Заказ уже создан, проблемы с Kafka не критичны
		logger.Warn().Err(err).Uint("order_id", order.ID).Msg("failed to publish order created event")
	}

	return order, nil
}

// publishOrderEvent отправляет событие о заказе в Kafka
func (s *OrderService) publishOrderEvent(ctx context.Context, event entity.OrderEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	key := strconv.FormatUint(uint64(event.OrderID), 10)
	if err := s.kafkaProducer.PublishMessage(ctx, key, eventData); err != nil {
		return fmt.Errorf("failed to publish to kafka: %w", err)
	}

	return nil
}
