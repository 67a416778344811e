package entity

// Поля с допустимым нулевым значением (price, rating, quantity) объявлены
// указателями: required проверяет наличие ключа, а не истинность значения.
// Цена 0 - валидный запрос.

type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=200"`
	Description string   `json:"description" validate:"max=2000"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Category    string   `json:"category" validate:"required,min=1,max=100"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Category    *string  `json:"category" validate:"omitempty,min=1,max=100"`
}

type CreateReviewRequest struct {
	UserID  *uint  `json:"user_id" validate:"required"`
	Rating  *int   `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

type CreateOrderRequest struct {
	UserID *uint              `json:"user_id" validate:"required"`
	Items  []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type OrderItemRequest struct {
	ProductID *uint    `json:"product_id" validate:"required"`
	Quantity  *int     `json:"quantity" validate:"required,gt=0"`
	Price     *float64 `json:"price" validate:"required,gte=0"`
}

type AddFavoriteRequest struct {
	ProductID *uint `json:"product_id" validate:"required,gt=0"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}
