package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"berrymarket/internal/app/shop/entity"
	"berrymarket/internal/app/shop/infrastructure"
	"berrymarket/internal/app/shop/repository"
	"berrymarket/pkg/logger"
	"berrymarket/pkg/metrics"
)

// ReviewService обрабатывает бизнес-логику отзывов и поддерживает
// average_rating товара согласованным с множеством его отзывов
type ReviewService struct {
	reviewRepo    repository.ReviewRepository
	cache         infrastructure.ProductCache
	kafkaProducer infrastructure.MessagePublisher
}

// NewReviewService создает новый сервис отзывов с внедрением зависимостей
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	cache infrastructure.ProductCache,
	kafkaProducer infrastructure.MessagePublisher,
) *ReviewService {
	return &ReviewService{
		reviewRepo:    reviewRepo,
		cache:         cache,
		kafkaProducer: kafkaProducer,
	}
}

// CreateReview создает отзыв на товар
// Вставка отзыва и пересчет среднего рейтинга выполняются репозиторием
// в одной транзакции. После коммита и до ответа инвалидируется кеш
// товара, чтобы чтение после создания отзыва не вернуло старый рейтинг.
func (s *ReviewService) CreateReview(ctx context.Context, productID uint, req *entity.CreateReviewRequest) (*entity.Review, error) {
	review := &entity.Review{
		UserID:    *req.UserID,
		ProductID: productID,
		Rating:    *req.Rating,
		Comment:   req.Comment,
	}

	averageRating, err := s.reviewRepo.Create(ctx, review)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	if err := s.cache.DeleteProduct(ctx, productID); err != nil {
		logger.Warn().Err(err).Uint("product_id", productID).Msg("product cache invalidation failed")
	}

	metrics.ReviewsCreated.Inc()
	metrics.ReviewsRating.Observe(float64(review.Rating))

	event := entity.ReviewEvent{
		EventType:     "REVIEW_CREATED",
		ReviewID:      review.ID,
		ProductID:     review.ProductID,
		UserID:        review.UserID,
		Rating:        review.Rating,
		AverageRating: averageRating,
		Timestamp:     time.Now(),
	}
	if err := s.publishReviewEvent(ctx, event); err != nil {
		// Отзыв уже создан, проблемы с Kafka не критичны
		logger.Warn().Err(err).Uint("review_id", review.ID).Msg("failed to publish review created event")
	}

	return review, nil
}

// GetReviews получает отзывы товара с сортировкой
// sort_by: rating или created_at, order: asc или desc
func (s *ReviewService) GetReviews(ctx context.Context, productID uint, sortBy, order string) ([]entity.Review, error) {
	reviews, err := s.reviewRepo.GetByProductID(ctx, productID, sortBy, order)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}

	return reviews, nil
}

// publishReviewEvent отправляет событие об отзыве в Kafka
// Key - это ProductID, чтобы события одного товара сохраняли порядок
func (s *ReviewService) publishReviewEvent(ctx context.Context, event entity.ReviewEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal review event: %w", err)
	}

	key := strconv.FormatUint(uint64(event.ProductID), 10)
	if err := s.kafkaProducer.PublishMessage(ctx, key, eventData); err != nil {
		return fmt.Errorf("failed to publish to kafka: %w", err)
	}

	return nil
}
