package service

import (
	"context"
	"errors"
	"fmt"

	"berrymarket/internal/app/shop/entity"
	"berrymarket/internal/app/shop/repository"
	"berrymarket/pkg/metrics"
)

// FavoriteService обрабатывает бизнес-логику избранного
type FavoriteService struct {
	favoriteRepo repository.FavoriteRepository
}

// NewFavoriteService создает новый сервис избранного
func NewFavoriteService(favoriteRepo repository.FavoriteRepository) *FavoriteService {
	return &FavoriteService{favoriteRepo: favoriteRepo}
}

// AddFavorite добавляет товар в избранное идемпотентно
// Если пара (user_id, product_id) уже существует, возвращает существующую
// запись и created=false, чтобы handler мог выбрать между 200 и 201
func (s *FavoriteService) AddFavorite(ctx context.Context, userID, productID uint) (*entity.Favorite, bool, error) {
	existing, err := s.favoriteRepo.GetByUserAndProduct(ctx, userID, productID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrFavoriteNotFound) {
		return nil, false, fmt.Errorf("failed to check favorite: %w", err)
	}

	favorite := &entity.Favorite{
		UserID:    userID,
		ProductID: productID,
	}
	if err := s.favoriteRepo.Create(ctx, favorite); err != nil {
		// Проигравший гонку конкурентный запрос упирается в уникальный
		// индекс; отвечаем как на повторное добавление
		if errors.Is(err, repository.ErrFavoriteExists) {
			existing, getErr := s.favoriteRepo.GetByUserAndProduct(ctx, userID, productID)
			if getErr != nil {
				return nil, false, fmt.Errorf("failed to check favorite: %w", getErr)
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("failed to create favorite: %w", err)
	}

	metrics.FavoritesAdded.Inc()
	return favorite, true, nil
}

// RemoveFavorite удаляет товар из избранного
func (s *FavoriteService) RemoveFavorite(ctx context.Context, userID, productID uint) (*entity.Favorite, error) {
	favorite, err := s.favoriteRepo.Delete(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, repository.ErrFavoriteNotFound) {
			return nil, ErrFavoriteNotFound
		}
		return nil, fmt.Errorf("failed to remove favorite: %w", err)
	}

	return favorite, nil
}

// GetFavorites получает товары из избранного пользователя
func (s *FavoriteService) GetFavorites(ctx context.Context, userID uint) ([]entity.Product, error) {
	products, err := s.favoriteRepo.GetProductsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get favorites: %w", err)
	}

	return products, nil
}
