package util

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"berrymarket/internal/app/shop/entity"
	"berrymarket/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

const productKeyPrefix = "product:"

// RedisClient кеширует отдельные товары по ID
// Кеш инвалидируется при любой мутации строки товара, включая пересчет
// рейтинга при создании отзыва, поэтому клиент не увидит устаревший
// average_rating после ответа на создание отзыва
type RedisClient struct {
	client *redis.Client
}

func NewRedisClient(addr, password string, db int) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

// NewRedisClientFrom оборачивает уже созданный клиент (используется в тестах с miniredis)
func NewRedisClientFrom(client *redis.Client) *RedisClient {
	return &RedisClient{client: client}
}

func productKey(id uint) string {
	return fmt.Sprintf("%s%d", productKeyPrefix, id)
}

// SetProduct кладет товар в кеш с TTL
func (r *RedisClient) SetProduct(ctx context.Context, product *entity.Product, ttl time.Duration) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product: %w", err)
	}

	timer := metrics.NewRedisTimer("shop-service", metrics.RedisOpSet)
	defer timer.ObserveDuration()

	if err := r.client.Set(ctx, productKey(product.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set product in cache: %w", err)
	}

	return nil
}

// GetProduct читает товар из кеша
// Возвращает (nil, nil) при промахе кеша
func (r *RedisClient) GetProduct(ctx context.Context, id uint) (*entity.Product, error) {
	timer := metrics.NewRedisTimer("shop-service", metrics.RedisOpGet)
	defer timer.ObserveDuration()

	data, err := r.client.Get(ctx, productKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			metrics.RecordCacheMiss("shop-service", productKeyPrefix)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product from cache: %w", err)
	}

	var product entity.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}

	metrics.RecordCacheHit("shop-service", productKeyPrefix)
	return &product, nil
}

// DeleteProduct инвалидирует кеш товара
func (r *RedisClient) DeleteProduct(ctx context.Context, id uint) error {
	timer := metrics.NewRedisTimer("shop-service", metrics.RedisOpDel)
	defer timer.ObserveDuration()

	if err := r.client.Del(ctx, productKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete product from cache: %w", err)
	}
	return nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
