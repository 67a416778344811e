package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"berrymarket/internal/app/shop/entity"
	"berrymarket/internal/app/shop/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// ===================== CreateOrder Tests =====================

func TestCreateOrder_Success(t *testing.T) {
	// Arrange
	orderRepo := new(mocks.MockOrderRepository)
	kafkaProducer := &mocks.MockMessagePublisher{Messages: make([][]byte, 0)}

	svc := NewOrderService(orderRepo, kafkaProducer)

	ctx := context.Background()
	req := &entity.CreateOrderRequest{
		UserID: uintPtr(1),
		Items: []entity.OrderItemRequest{
			{ProductID: uintPtr(5), Quantity: intPtr(2), Price: floatPtr(250)},
			{ProductID: uintPtr(7), Quantity: intPtr(1), Price: floatPtr(99.90)},
		},
	}

	orderRepo.On("CreateWithItems", ctx, mock.AnythingOfType("*entity.Order"), mock.AnythingOfType("[]entity.OrderItem")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Order).ID = 10
		}).
		Return(nil)
	kafkaProducer.On("PublishMessage", ctx, "10", mock.Anything).Return(nil)

	// Act
	order, err := svc.CreateOrder(ctx, req)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, uint(10), order.ID)
	assert.Equal(t, uint(1), order.UserID)
	assert.Equal(t, entity.OrderStatusNew, order.Status)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, uint(5), order.Items[0].ProductID)
	assert.Equal(t, 2, order.Items[0].Quantity)
	orderRepo.AssertExpectations(t)
}

func TestCreateOrder_PublishesEvent(t *testing.T) {
	// Arrange
	orderRepo := new(mocks.MockOrderRepository)
	kafkaProducer := &mocks.MockMessagePublisher{Messages: make([][]byte, 0)}

	svc := NewOrderService(orderRepo, kafkaProducer)

	ctx := context.Background()
	req := &entity.CreateOrderRequest{
		UserID: uintPtr(3),
		Items: []entity.OrderItemRequest{
			{ProductID: uintPtr(5), Quantity: intPtr(1), Price: floatPtr(100)},
		},
	}

	orderRepo.On("CreateWithItems", ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Order).ID = 42
		}).
		Return(nil)
	kafkaProducer.On("PublishMessage", ctx, "42", mock.Anything).Return(nil)

	// Act
	_, err := svc.CreateOrder(ctx, req)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, kafkaProducer.Messages, 1)

	var event entity.OrderEvent
	assert.NoError(t, json.Unmarshal(kafkaProducer.Messages[0], &event))
	assert.Equal(t, "ORDER_CREATED", event.EventType)
	assert.Equal(t, uint(42), event.OrderID)
	assert.Equal(t, 1, event.ItemsCount)
}

func TestCreateOrder_RepositoryError(t *testing.T) {
	// Arrange
	orderRepo := new(mocks.MockOrderRepository)
	kafkaProducer := &mocks.MockMessagePublisher{Messages: make([][]byte, 0)}

	svc := NewOrderService(orderRepo, kafkaProducer)

	ctx := context.Background()
	req := &entity.CreateOrderRequest{
		UserID: uintPtr(1),
		Items: []entity.OrderItemRequest{
			{ProductID: uintPtr(5), Quantity: intPtr(1), Price: floatPtr(100)},
		},
	}

	orderRepo.On("CreateWithItems", ctx, mock.Anything, mock.Anything).
		Return(errors.New("db down"))

	// Act
	order, err := svc.CreateOrder(ctx, req)

	// Assert: при откате транзакции события нет
	assert.Nil(t, order)
	assert.Error(t, err)
	assert.Empty(t, kafkaProducer.Messages)
}

func TestCreateOrder_KafkaFailureDoesNotFailRequest(t *testing.T) {
	// Arrange
	orderRepo := new(mocks.MockOrderRepository)
	kafkaProducer := &mocks.MockMessagePublisher{Messages: make([][]byte, 0)}

	svc := NewOrderService(orderRepo, kafkaProducer)

	ctx := context.Background()
	req := &entity.CreateOrderRequest{
		UserID: uintPtr(1),
		Items: []entity.OrderItemRequest{
			{ProductID: uintPtr(5), Quantity: intPtr(1), Price: floatPtr(100)},
		},
	}

	orderRepo.On("CreateWithItems", ctx, mock.Anything, mock.Anything).Return(nil)
	kafkaProducer.On("PublishMessage", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(errors.New("kafka unavailable"))

	// Act
	order, err := svc.CreateOrder(ctx, req)

	// Assert: заказ создан несмотря на проблемы с Kafka
	assert.NoError(t, err)
	assert.NotNil(t, order)
}
