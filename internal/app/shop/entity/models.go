package entity

import (
	"time"
)

// User представляет пользователя магазина
// Пользователи создаются внешним сервисом, здесь только читаются
type User struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"type:varchar(200);not null"`
	Email string `json:"email" gorm:"type:varchar(200);uniqueIndex;not null"`
}

// TableName указывает имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// Product представляет товар в каталоге
type Product struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"type:varchar(200);not null"`
	Description string  `json:"description" gorm:"type:text"`
	Price       float64 `json:"price" gorm:"type:decimal(10,2);not null;check:price >= 0"`
	Category    string  `json:"category" gorm:"type:varchar(100);not null;index"`
	// Средний рейтинг считается из отзывов, клиент его не задает
	AverageRating float64 `json:"average_rating" gorm:"not null;default:0"`
}

// TableName указывает имя таблицы для GORM
func (Product) TableName() string {
	return "products"
}

// Review представляет отзыв на товар
// Отзыв неизменяем после создания
type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	ProductID uint      `json:"product_id" gorm:"not null;index"`
	Rating    int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"` // Оценка от 1 до 5
	Comment   string    `json:"comment" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName указывает имя таблицы для GORM
func (Review) TableName() string {
	return "reviews"
}

// OrderStatus представляет статусы заказа
type OrderStatus string

const (
	OrderStatusNew OrderStatus = "new" // Единственный статус, переходы не реализованы
)

// Order представляет заказ
type Order struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	UserID    uint        `json:"user_id" gorm:"not null;index"`
	OrderDate time.Time   `json:"order_date" gorm:"autoCreateTime"`
	Status    OrderStatus `json:"status" gorm:"type:varchar(50);not null;default:'new'"`
	Items     []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName указывает имя таблицы для GORM
func (Order) TableName() string {
	return "orders"
}

// OrderItem представляет позицию в заказе
type OrderItem struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	OrderID   uint    `json:"order_id" gorm:"not null;index"` // Ссылка на заказ
	ProductID uint    `json:"product_id" gorm:"not null"`
	Quantity  int     `json:"quantity" gorm:"not null;check:quantity > 0"`
	Price     float64 `json:"price" gorm:"type:decimal(10,2);not null"` // Цена за единицу на момент покупки
}

// TableName указывает имя таблицы для GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Favorite представляет закладку пользователя на товар
// Пара (user_id, product_id) уникальна
type Favorite struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	UserID    uint `json:"user_id" gorm:"not null;uniqueIndex:idx_favorites_user_product"`
	ProductID uint `json:"product_id" gorm:"not null;uniqueIndex:idx_favorites_user_product"`
}

// TableName указывает имя таблицы для GORM
func (Favorite) TableName() string {
	return "favorites"
}

// ReviewEvent представляет событие создания отзыва для Kafka
type ReviewEvent struct {
	EventType     string    `json:"event_type"` // REVIEW_CREATED
	ReviewID      uint      `json:"review_id"`
	ProductID     uint      `json:"product_id"`
	UserID        uint      `json:"user_id"`
	Rating        int       `json:"rating"`
	AverageRating float64   `json:"average_rating"`
	Timestamp     time.Time `json:"timestamp"`
}

// OrderEvent представляет событие создания заказа для Kafka
type OrderEvent struct {
	EventType  string      `json:"event_type"` // ORDER_CREATED
	OrderID    uint        `json:"order_id"`
	UserID     uint        `json:"user_id"`
	Status     OrderStatus `json:"status"`
	ItemsCount int         `json:"items_count"`
	Timestamp  time.Time   `json:"timestamp"`
}

// ProductEvent представляет событие изменения товара для Kafka
type ProductEvent struct {
	EventType string    `json:"event_type"` // PRODUCT_UPDATED
	ProductID uint      `json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Category  string    `json:"category"`
	Timestamp time.Time `json:"timestamp"`
}
