package models

import "time"

const AnalyticsEventsCollection = "analytics_events"

// EventType is a step of the view -> add_to_cart -> order funnel.
type EventType string

const (
	EventView      EventType = "view"
	EventAddToCart EventType = "add_to_cart"
	EventOrder     EventType = "order"
)

// AnalyticsEvent is append-only. ProductID is not checked against the catalog.
type AnalyticsEvent struct {
	ID        string    `json:"id" gorm:"primaryKey" bson:"id"`
	ProductID string    `json:"product_id" gorm:"index" bson:"product_id"`
	EventType EventType `json:"event_type" gorm:"index" bson:"event_type"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

func (AnalyticsEvent) TableName() string { return AnalyticsEventsCollection }

type ProductMetrics struct {
	ProductID      string  `json:"product_id"`
	NamePT         string  `json:"name_pt"`
	NameEN         string  `json:"name_en"`
	NameES         string  `json:"name_es"`
	Category       string  `json:"category"`
	Price          float64 `json:"price"`
	Views          int64   `json:"views"`
	AddToCart      int64   `json:"add_to_cart"`
	Orders         int64   `json:"orders"`
	ConversionRate float64 `json:"conversion_rate"`
	Revenue        float64 `json:"revenue"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type Summary struct {
	TotalOrders       int64           `json:"total_orders"`
	PendingOrders     int64           `json:"pending_orders"`
	CompletedOrders   int64           `json:"completed_orders"`
	TotalRevenue      float64         `json:"total_revenue"`
	RecentOrders      int64           `json:"recent_orders"`
	PopularCategories []CategoryCount `json:"popular_categories"`
}
