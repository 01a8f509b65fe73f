package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hostel-shop-api/models"
	"hostel-shop-api/statemachine"
	"hostel-shop-api/store"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// EventRecorder appends analytics events. AnalyticsService implements it.
type EventRecorder interface {
	TrackEvent(ctx context.Context, productID string, eventType models.EventType) error
}

type OrderService struct {
	store  store.Store
	events EventRecorder
	now    func() time.Time
}

func NewOrderService(st store.Store, events EventRecorder) *OrderService {
	return &OrderService{store: st, events: events, now: time.Now}
}

type OrderItemInput struct {
	ProductID string  `json:"product_id" validate:"required"`
	Name      string  `json:"name" validate:"required"`
	Price     float64 `json:"price" validate:"gte=0"`
	Quantity  int     `json:"quantity" validate:"gte=1"`
}

type CreateOrderInput struct {
	GuestName          string           `json:"guest_name" validate:"required"`
	RoomNumber         string           `json:"room_number" validate:"required"`
	Phone              string           `json:"phone" validate:"required"`
	DeliveryPreference string           `json:"delivery_preference" validate:"required"`
	Notes              *string          `json:"notes"`
	Items              []OrderItemInput `json:"items" validate:"required,min=1,dive"`
	Total              float64          `json:"total" validate:"gte=0"`
}

// CreateOrder stores the order as pending, then records one "order" event per
// line item. Event failures are logged; the order is already committed.
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	now := stamp(s.now)
	items := make([]models.OrderItem, len(in.Items))
	for i, it := range in.Items {
		items[i] = models.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		}
	}
	order := models.Order{
		ID:                 uuid.NewString(),
		GuestName:          in.GuestName,
		RoomNumber:         in.RoomNumber,
		Phone:              in.Phone,
		DeliveryPreference: in.DeliveryPreference,
		Notes:              in.Notes,
		Items:              items,
		Total:              in.Total,
		Status:             models.StatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.store.Insert(ctx, models.OrdersCollection, &order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	for _, item := range order.Items {
		if err := s.events.TrackEvent(ctx, item.ProductID, models.EventOrder); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"order_id":   order.ID,
				"product_id": item.ProductID,
			}).Warn("Failed to record order analytics event")
		}
	}

	logrus.WithFields(logrus.Fields{
		"order_id": order.ID,
		"room":     order.RoomNumber,
		"items":    len(order.Items),
		"total":    order.Total,
	}).Info("Order placed")
	return &order, nil
}

// ListOrders returns the most recent orders first. An empty status lists all.
func (s *OrderService) ListOrders(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	var filter store.Filter
	if status != "" {
		filter = store.Where(store.Eq("status", string(status)))
	}
	orders := []models.Order{}
	err := s.store.Find(ctx, models.OrdersCollection, filter,
		store.FindOptions{SortBy: "created_at", Desc: true}, &orders)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := s.store.FindOne(ctx, models.OrdersCollection, store.ByID(id), &order)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Entity: "Order", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

// UpdateStatus overwrites the status. Only unknown status values are
// rejected; moves outside the lifecycle table (e.g. completed -> pending) are
// allowed so staff can correct mistakes, and are logged.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	if !statemachine.IsKnown(status) {
		return nil, &ValidationError{
			Field:   "status",
			Message: fmt.Sprintf("must be one of %v", statemachine.KnownStatuses()),
		}
	}
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.Status != status {
		if err := statemachine.CanTransition(order.Status, status); err != nil {
			logrus.WithFields(logrus.Fields{
				"order_id": id,
				"from":     order.Status,
				"to":       status,
			}).Warn("Order status set outside the lifecycle table")
		}
	}

	fields := map[string]any{
		"status":     string(status),
		"updated_at": nextUpdate(s.now, order.UpdatedAt),
	}
	if _, err := s.store.UpdateFields(ctx, models.OrdersCollection, store.ByID(id), fields); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	return s.GetOrder(ctx, id)
}
