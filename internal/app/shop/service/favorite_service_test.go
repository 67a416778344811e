package service

import (
	"context"
	"errors"
	"testing"

	"berrymarket/internal/app/shop/entity"
	"berrymarket/internal/app/shop/repository"
	"berrymarket/internal/app/shop/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// ===================== AddFavorite Tests =====================

func TestAddFavorite_NewPair(t *testing.T) {
	// Arrange
	favoriteRepo := new(mocks.MockFavoriteRepository)
	svc := NewFavoriteService(favoriteRepo)

	ctx := context.Background()
	favoriteRepo.On("GetByUserAndProduct", ctx, uint(1), uint(5)).
		Return(nil, repository.ErrFavoriteNotFound)
	favoriteRepo.On("Create", ctx, mock.AnythingOfType("*entity.Favorite")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Favorite).ID = 3
		}).
		Return(nil)

	// Act
	favorite, created, err := svc.AddFavorite(ctx, 1, 5)

	// Assert
	assert.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, uint(3), favorite.ID)
	assert.Equal(t, uint(1), favorite.UserID)
	assert.Equal(t, uint(5), favorite.ProductID)
	favoriteRepo.AssertExpectations(t)
}

func TestAddFavorite_Idempotent(t *testing.T) {
	// Arrange
	favoriteRepo := new(mocks.MockFavoriteRepository)
	svc := NewFavoriteService(favoriteRepo)

	ctx := context.Background()
	existing := &entity.Favorite{ID: 3, UserID: 1, ProductID: 5}

	favoriteRepo.On("GetByUserAndProduct", ctx, uint(1), uint(5)).Return(existing, nil)

	// Act: повторное добавление той же пары
	favorite, created, err := svc.AddFavorite(ctx, 1, 5)

	// Assert: возвращается существующая запись без новой вставки
	assert.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, existing, favorite)
	favoriteRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddFavorite_ConcurrentDuplicate(t *testing.T) {
	// Arrange: пара появилась между проверкой и вставкой
	favoriteRepo := new(mocks.MockFavoriteRepository)
	svc := NewFavoriteService(favoriteRepo)

	ctx := context.Background()
	existing := &entity.Favorite{ID: 3, UserID: 1, ProductID: 5}

	favoriteRepo.On("GetByUserAndProduct", ctx, uint(1), uint(5)).
		Return(nil, repository.ErrFavoriteNotFound).Once()
	favoriteRepo.On("Create", ctx, mock.AnythingOfType("*entity.Favorite")).
		Return(repository.ErrFavoriteExists)
	favoriteRepo.On("GetByUserAndProduct", ctx, uint(1), uint(5)).
		Return(existing, nil).Once()

	// Act
	favorite, created, err := svc.AddFavorite(ctx, 1, 5)

	// Assert: проигравший гонку запрос отвечает как повторное добавление
	assert.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, existing, favorite)
	favoriteRepo.AssertExpectations(t)
}

func TestAddFavorite_LookupError(t *testing.T) {
	// Arrange
	favoriteRepo := new(mocks.MockFavoriteRepository)
	svc := NewFavoriteService(favoriteRepo)

	ctx := context.Background()
	favoriteRepo.On("GetByUserAndProduct", ctx, uint(1), uint(5)).
		Return(nil, errors.New("db down"))

	// Act
	favorite, created, err := svc.AddFavorite(ctx, 1, 5)

	// Assert
	assert.Nil(t, favorite)
	assert.False(t, created)
	assert.Error(t, err)
}

// ===================== RemoveFavorite Tests =====================

func TestRemoveFavorite_Success(t *testing.T) {
	// Arrange
	favoriteRepo := new(mocks.MockFavoriteRepository)
	svc := NewFavoriteService(favoriteRepo)

	ctx := context.Background()
	deleted := &entity.Favorite{ID: 3, UserID: 1, ProductID: 5}

	favoriteRepo.On("Delete", ctx, uint(1), uint(5)).Return(deleted, nil)

	// Act
	favorite, err := svc.RemoveFavorite(ctx, 1, 5)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, deleted, favorite)
}

func TestRemoveFavorite_NotFound(t *testing.T) {
	// Arrange
	favoriteRepo := new(mocks.MockFavoriteRepository)
	svc := NewFavoriteService(favoriteRepo)

	ctx := context.Background()
	favoriteRepo.On("Delete", ctx, uint(1), uint(5)).
		Return(nil, repository.ErrFavoriteNotFound)

	// Act
	favorite, err := svc.RemoveFavorite(ctx, 1, 5)

	// Assert
	assert.Nil(t, favorite)
	assert.ErrorIs(t, err, ErrFavoriteNotFound)
}

// ===================== GetFavorites Tests =====================

func TestGetFavorites_Success(t *testing.T) {
	// Arrange
	favoriteRepo := new(mocks.MockFavoriteRepository)
	svc := NewFavoriteService(favoriteRepo)

	ctx := context.Background()
	expected := []entity.Product{{ID: 5, Name: "Малина"}, {ID: 7, Name: "Клубника"}}

	favoriteRepo.On("GetProductsByUser", ctx, uint(1)).Return(expected, nil)

	// Act
	products, err := svc.GetFavorites(ctx, 1)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, expected, products)
}

func TestGetFavorites_Empty(t *testing.T) {
	// Arrange
	favoriteRepo := new(mocks.MockFavoriteRepository)
	svc := NewFavoriteService(favoriteRepo)

	ctx := context.Background()
	favoriteRepo.On("GetProductsByUser", ctx, uint(2)).Return([]entity.Product{}, nil)

	// Act
	products, err := svc.GetFavorites(ctx, 2)

	// Assert
	assert.NoError(t, err)
	assert.Empty(t, products)
}
