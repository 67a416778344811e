package service

import "errors"

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrProductNotFound  = errors.New("product not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrFavoriteNotFound = errors.New("favorite not found")
)
