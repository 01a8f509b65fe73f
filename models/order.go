package models

import "time"

const OrdersCollection = "orders"

// OrderStatus represents all possible states of a guest order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// Order is placed by a guest without an account. Items and Total are stored
// as sent; the server does not recompute the total.
type Order struct {
	ID                 string      `json:"id" gorm:"primaryKey" bson:"id"`
	GuestName          string      `json:"guest_name" gorm:"not null" bson:"guest_name"`
	RoomNumber         string      `json:"room_number" gorm:"not null" bson:"room_number"`
	Phone              string      `json:"phone" bson:"phone"`
	DeliveryPreference string      `json:"delivery_preference" bson:"delivery_preference"`
	Notes              *string     `json:"notes" bson:"notes"`
	Items              []OrderItem `json:"items" gorm:"type:text;serializer:json" bson:"items"`
	Total              float64     `json:"total" bson:"total"`
	Status             OrderStatus `json:"status" gorm:"index;not null" bson:"status"`
	CreatedAt          time.Time   `json:"created_at" gorm:"index" bson:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at" bson:"updated_at"`
}

func (Order) TableName() string { return OrdersCollection }

// OrderItem is a snapshot of the product name and price at order time.
// ProductID may point to a product that no longer exists.
type OrderItem struct {
	ProductID string  `json:"product_id" bson:"product_id"`
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
}
